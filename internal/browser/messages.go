package browser

import (
	"fmt"
	"image"

	"memedir/internal/upload"
)

// Request is a unit of work the controller hands to the background
// worker. Exactly one Response comes back per Request, in order.
type Request interface {
	isRequest()
}

// Response is what the worker emits back to the controller
type Response interface {
	isResponse()
}

// LoadRequest asks the worker to decode a thumbnail for one file.
// Page records which page of the listing the request belongs to so a
// response can be attributed after the user has moved on.
type LoadRequest struct {
	Path string
	Page int
}

func (LoadRequest) isRequest() {}

// LoadResult carries a decoded thumbnail, or the error that prevented
// one. A failed load is reported once and never retried by the worker.
type LoadResult struct {
	Path  string
	Page  int
	Thumb image.Image
	Err   error
}

func (LoadResult) isResponse() {}

// String keeps the pixel data out of log lines
func (r LoadResult) String() string {
	return fmt.Sprintf("LoadResult{path=%s page=%d err=%v}", r.Path, r.Page, r.Err)
}

// UploadRequest asks the worker to run the upload coordinator for a
// local file.
type UploadRequest struct {
	Path string
}

func (UploadRequest) isRequest() {}

// UploadDone carries the coordinator's single outcome back
type UploadDone struct {
	Outcome upload.Outcome
}

func (UploadDone) isResponse() {}

// StateChange travels in both directions: the controller can route a
// transition through the worker, and the worker forwards it back
// unchanged. Both directions share one channel pair, so the worker is
// also the transport for state changes.
type StateChange struct {
	State AppState
}

func (StateChange) isRequest()  {}
func (StateChange) isResponse() {}
