package s3store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timeoutError satisfies net.Error with Timeout() == true
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassifyHeadError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want HeadErrorKind
	}{
		{
			name: "not found type",
			err:  &types.NotFound{},
			want: HeadNotFound,
		},
		{
			name: "no such key type",
			err:  &types.NoSuchKey{},
			want: HeadNotFound,
		},
		{
			name: "wrapped not found",
			err:  fmt.Errorf("head failed: %w", &types.NotFound{}),
			want: HeadNotFound,
		},
		{
			name: "deadline exceeded",
			err:  fmt.Errorf("request: %w", context.DeadlineExceeded),
			want: HeadTimeout,
		},
		{
			name: "net timeout",
			err:  fmt.Errorf("dial: %w", timeoutError{}),
			want: HeadTimeout,
		},
		{
			name: "serialization failure",
			err:  &smithy.SerializationError{Err: errors.New("marshal failed")},
			want: HeadConstruction,
		},
		{
			name: "response error with 404",
			err: &awshttp.ResponseError{
				ResponseError: &smithyhttp.ResponseError{
					Response: &smithyhttp.Response{
						Response: &http.Response{StatusCode: 404},
					},
					Err: errors.New("not found"),
				},
			},
			want: HeadNotFound,
		},
		{
			name: "response error with 500",
			err: &awshttp.ResponseError{
				ResponseError: &smithyhttp.ResponseError{
					Response: &smithyhttp.Response{
						Response: &http.Response{StatusCode: 500},
					},
					Err: errors.New("internal error"),
				},
			},
			want: HeadResponse,
		},
		{
			name: "api error with not found code",
			err:  &smithy.GenericAPIError{Code: "NotFound", Message: "no such object"},
			want: HeadNotFound,
		},
		{
			name: "api error with other code",
			err:  &smithy.GenericAPIError{Code: "AccessDenied", Message: "forbidden"},
			want: HeadService,
		},
		{
			name: "operation error without api cause",
			err: &smithy.OperationError{
				ServiceID:     "S3",
				OperationName: "HeadObject",
				Err:           errors.New("connection refused"),
			},
			want: HeadDispatch,
		},
		{
			name: "unrecognized error",
			err:  errors.New("something else"),
			want: HeadService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			he := classifyHeadError("meme.png", tt.err)
			require.NotNil(t, he)
			assert.Equal(t, tt.want, he.Kind)
			assert.Equal(t, "meme.png", he.Key)
			assert.ErrorIs(t, he, tt.err, "wrapped error must stay reachable")
		})
	}
}

func TestIsNotFound(t *testing.T) {
	notFound := classifyHeadError("a.png", &types.NotFound{})
	assert.True(t, IsNotFound(notFound))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", notFound)))

	timeout := classifyHeadError("a.png", context.DeadlineExceeded)
	assert.False(t, IsNotFound(timeout))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestHeadErrorMessages(t *testing.T) {
	he := &HeadError{Kind: HeadTimeout, Key: "a.png", Err: context.DeadlineExceeded}
	assert.Contains(t, he.Error(), "a.png")
	assert.Contains(t, he.Error(), "timeout")
}

func TestUploadErrorMessages(t *testing.T) {
	open := &UploadError{Kind: UploadFileOpen, Key: "a.png", Err: errors.New("permission denied")}
	assert.Contains(t, open.Error(), "open local file")

	put := &UploadError{Kind: UploadFailure, Key: "a.png", Err: errors.New("rejected")}
	assert.Contains(t, put.Error(), "upload failed")
}
