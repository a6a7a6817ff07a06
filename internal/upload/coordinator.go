// Package upload coordinates sending a local file to the object store
// while avoiding duplicate uploads: an existence check runs first and
// a hit short-circuits the put entirely.
package upload

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"memedir/internal/s3store"
)

// Store is the object-store surface the coordinator needs. The real
// implementation is *s3store.Client; tests substitute a mock.
type Store interface {
	Head(ctx context.Context, key string) (*s3store.ObjectInfo, error)
	Put(ctx context.Context, key, localPath, contentType string) error
}

// Status is the final classification of an upload attempt
type Status int

const (
	// StatusAlreadyExists means the object was found remotely and no
	// upload happened. Treated as success-without-upload.
	StatusAlreadyExists Status = iota
	// StatusUploaded means the put completed.
	StatusUploaded
	// StatusAborted means the attempt never reached the store, for
	// example because the client could not be constructed.
	StatusAborted
	// StatusFailed means the head or put errored.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusAlreadyExists:
		return "already exists"
	case StatusUploaded:
		return "uploaded"
	case StatusAborted:
		return "aborted"
	default:
		return "failed"
	}
}

// Outcome is the single result of one upload attempt
type Outcome struct {
	Status    Status
	LocalPath string
	Key       string
	Remote    *s3store.ObjectInfo // set when Status is StatusAlreadyExists
	Reason    string              // set when Status is StatusAborted
	Err       error               // set when Status is StatusFailed
}

// Aborted builds an Outcome for an attempt that never started
func Aborted(localPath, reason string) Outcome {
	return Outcome{Status: StatusAborted, LocalPath: localPath, Reason: reason}
}

// Coordinator uploads local files one at a time. Single-flight is
// structural: the background worker is the only caller and it is
// serial, so no in-flight bookkeeping is needed here.
type Coordinator struct {
	store Store
}

// NewCoordinator creates a coordinator over the given store
func NewCoordinator(store Store) *Coordinator {
	return &Coordinator{store: store}
}

// Upload derives the remote key from the file's base name, checks for
// an existing object, and uploads only when the key is absent. It
// never mutates the local file.
func (c *Coordinator) Upload(ctx context.Context, localPath string) Outcome {
	key := filepath.Base(localPath)

	remote, err := c.store.Head(ctx, key)
	if err == nil {
		logrus.Infof("Object %s already exists, skipping upload of %s", key, localPath)
		return Outcome{
			Status:    StatusAlreadyExists,
			LocalPath: localPath,
			Key:       key,
			Remote:    remote,
		}
	}

	if !s3store.IsNotFound(err) {
		var he *s3store.HeadError
		if errors.As(err, &he) {
			logrus.WithError(err).Errorf("Existence check for %s failed (%s)", key, he.Kind)
		} else {
			logrus.WithError(err).Errorf("Existence check for %s failed", key)
		}
		return Outcome{Status: StatusFailed, LocalPath: localPath, Key: key, Err: err}
	}

	logrus.Debugf("Uploading %s as %s", localPath, key)
	contentType := DetectContentType(localPath)
	if err := c.store.Put(ctx, key, localPath, contentType); err != nil {
		return Outcome{Status: StatusFailed, LocalPath: localPath, Key: key, Err: err}
	}

	return Outcome{Status: StatusUploaded, LocalPath: localPath, Key: key}
}
