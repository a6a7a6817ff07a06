package s3store

import (
	"context"
	"errors"
	"fmt"
	"net"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// HeadErrorKind discriminates the ways an existence check can fail so
// the caller can tell "the object is not there" from "the service is
// unreachable" and decide whether retrying later makes sense.
type HeadErrorKind int

const (
	// HeadNotFound means the object does not exist in the bucket.
	HeadNotFound HeadErrorKind = iota
	// HeadTimeout means the request deadline expired.
	HeadTimeout
	// HeadDispatch means the request never reached the service.
	HeadDispatch
	// HeadConstruction means the request could not be built or signed.
	HeadConstruction
	// HeadResponse means the service answered with something unusable.
	HeadResponse
	// HeadService covers every other service-side error.
	HeadService
)

func (k HeadErrorKind) String() string {
	switch k {
	case HeadNotFound:
		return "not found"
	case HeadTimeout:
		return "timeout"
	case HeadDispatch:
		return "dispatch failure"
	case HeadConstruction:
		return "construction failure"
	case HeadResponse:
		return "response error"
	default:
		return "service error"
	}
}

// HeadError is the typed result of a failed existence check
type HeadError struct {
	Kind HeadErrorKind
	Key  string
	Err  error
}

func (e *HeadError) Error() string {
	return fmt.Sprintf("head %s: %s: %v", e.Key, e.Kind, e.Err)
}

func (e *HeadError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a HeadError for a missing object
func IsNotFound(err error) bool {
	var he *HeadError
	return errors.As(err, &he) && he.Kind == HeadNotFound
}

// UploadErrorKind discriminates put failures
type UploadErrorKind int

const (
	// UploadFileOpen means the local file could not be read.
	UploadFileOpen UploadErrorKind = iota
	// UploadFailure means the store rejected or dropped the put.
	UploadFailure
)

// UploadError is the typed result of a failed put
type UploadError struct {
	Kind UploadErrorKind
	Key  string
	Err  error
}

func (e *UploadError) Error() string {
	if e.Kind == UploadFileOpen {
		return fmt.Sprintf("put %s: open local file: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("put %s: upload failed: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// classifyHeadError maps an SDK error onto a HeadErrorKind. The SDK
// wraps everything in layers of smithy errors, so ordering matters:
// the specific not-found types first, then transport-level causes,
// then the generic API error bucket.
func classifyHeadError(key string, err error) *HeadError {
	kind := HeadService

	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	var respErr *awshttp.ResponseError
	var apiErr smithy.APIError
	var opErr *smithy.OperationError
	var serErr *smithy.SerializationError
	var netErr net.Error

	switch {
	case errors.As(err, &notFound), errors.As(err, &noSuchKey):
		kind = HeadNotFound
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		kind = HeadTimeout
	case errors.As(err, &serErr):
		kind = HeadConstruction
	case errors.As(err, &respErr):
		if respErr.HTTPStatusCode() == 404 {
			kind = HeadNotFound
		} else {
			kind = HeadResponse
		}
	case errors.As(err, &apiErr):
		if apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchKey" {
			kind = HeadNotFound
		} else {
			kind = HeadService
		}
	case errors.As(err, &opErr):
		kind = HeadDispatch
	}

	return &HeadError{Kind: kind, Key: key, Err: err}
}
