package browser

import (
	"context"

	"github.com/sirupsen/logrus"

	"memedir/internal/thumbs"
	"memedir/internal/upload"
)

// Queue capacities. Submission never blocks the render loop (Submit
// falls back to a goroutine when the queue is full), and the worker
// blocks on the response channel until the controller drains it.
const (
	requestQueueSize  = 64
	responseQueueSize = 64
)

// CoordinatorFactory builds the upload coordinator on demand. It runs
// once per upload request, so configuration problems surface as an
// aborted upload rather than at startup. Mirrors how the store client
// is only needed when the user actually uploads.
type CoordinatorFactory func() (*upload.Coordinator, error)

// Worker is the single serial consumer behind the UI. It drains the
// request queue strictly in arrival order and produces exactly one
// response per request; there is no internal concurrency, which bounds
// decode CPU usage and makes response ordering deterministic.
type Worker struct {
	requests  chan Request
	responses chan Response
	box       thumbs.Box
	newCoord  CoordinatorFactory
}

// NewWorker creates a worker that decodes thumbnails into box and
// builds upload coordinators through newCoord.
func NewWorker(box thumbs.Box, newCoord CoordinatorFactory) *Worker {
	return &Worker{
		requests:  make(chan Request, requestQueueSize),
		responses: make(chan Response, responseQueueSize),
		box:       box,
		newCoord:  newCoord,
	}
}

// Responses is the channel the controller drains each tick
func (w *Worker) Responses() <-chan Response {
	return w.responses
}

// Submit enqueues a request. The render path must never block, so a
// full queue shifts the send onto a goroutine instead of waiting.
// Ordering is preserved in the common (non-full) case, which is the
// only case the serial-ordering guarantee covers.
func (w *Worker) Submit(req Request) {
	select {
	case w.requests <- req:
	default:
		logrus.Warnf("Worker queue full, deferring submission")
		go func() {
			w.requests <- req
		}()
	}
}

// Start launches the worker loop. It exits when ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *Worker) run(ctx context.Context) {
	logrus.Info("Background worker started")
	for {
		select {
		case <-ctx.Done():
			logrus.Info("Background worker stopped")
			return
		case req := <-w.requests:
			resp := w.process(ctx, req)
			select {
			case w.responses <- resp:
			case <-ctx.Done():
				return
			}
		}
	}
}

// process handles one request to completion. Failures are wrapped
// into the response, logged, and never stop the loop.
func (w *Worker) process(ctx context.Context, req Request) Response {
	switch req := req.(type) {
	case LoadRequest:
		return w.load(req)
	case UploadRequest:
		return w.upload(ctx, req)
	case StateChange:
		// The worker is also the transport for state transitions;
		// they pass through unchanged.
		return req
	default:
		logrus.Errorf("Worker received unknown request type %T", req)
		return StateChange{State: ShowErrorState("internal error: unknown request", nil)}
	}
}

func (w *Worker) load(req LoadRequest) Response {
	img, err := thumbs.Load(req.Path, w.box)
	if err != nil {
		logrus.WithError(err).Errorf("Failed to load %s", req.Path)
		return LoadResult{Path: req.Path, Page: req.Page, Err: err}
	}
	return LoadResult{Path: req.Path, Page: req.Page, Thumb: img}
}

func (w *Worker) upload(ctx context.Context, req UploadRequest) Response {
	coord, err := w.newCoord()
	if err != nil {
		logrus.WithError(err).Error("Failed to create upload coordinator")
		return UploadDone{Outcome: upload.Aborted(req.Path, err.Error())}
	}
	return UploadDone{Outcome: coord.Upload(ctx, req.Path)}
}
