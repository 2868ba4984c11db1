// Package worker runs planning requests on a background goroutine and tags
// every response with a generation token, so callers that fire a new request
// while an old one is still computing can recognize and discard the stale
// result when it eventually arrives.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/panelcut/panelcut/internal/engine"
	"github.com/panelcut/panelcut/internal/model"
)

// Response pairs a finished plan with the generation of the request that
// produced it.
type Response struct {
	Generation uint64
	Result     model.PlanResult
}

// Runner executes plans off the caller's goroutine. Submitted requests all
// run to completion; superseded results are not aborted, only identifiable
// as stale via their generation.
type Runner struct {
	responses chan Response
	latest    atomic.Uint64
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewRunner creates a Runner whose response channel buffers up to queue
// results. A queue of at least 1 keeps a slow consumer from blocking workers.
func NewRunner(queue int) *Runner {
	if queue < 1 {
		queue = 1
	}
	return &Runner{responses: make(chan Response, queue)}
}

// Submit schedules a planning run and returns its generation token. The
// result arrives on Responses later; compare its generation against Latest
// to detect staleness.
func (r *Runner) Submit(req model.PackRequest) uint64 {
	gen := r.latest.Add(1)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.responses <- Response{Generation: gen, Result: engine.Pack(req)}
	}()
	return gen
}

// Responses delivers finished runs in completion order, which is not
// necessarily submission order.
func (r *Runner) Responses() <-chan Response {
	return r.responses
}

// Latest returns the generation of the most recently submitted request.
// A response is stale when its generation is lower.
func (r *Runner) Latest() uint64 {
	return r.latest.Load()
}

// Wait arranges for the response channel to close once every submitted run
// has delivered its response, then returns. Consuming Responses() to
// completion observes the close; closing off the caller's goroutine keeps
// workers free to deliver even when submissions outnumber the channel
// buffer. Call only after the final Submit.
func (r *Runner) Wait() {
	r.closeOnce.Do(func() {
		go func() {
			r.wg.Wait()
			close(r.responses)
		}()
	})
}

// RunSync plans a request on a background goroutine but blocks until it
// finishes or ctx is done. The computation itself is not interruptible;
// on early ctx cancellation it continues in the background and its result
// is dropped.
func RunSync(ctx context.Context, req model.PackRequest) (model.PlanResult, error) {
	done := make(chan model.PlanResult, 1)
	go func() {
		done <- engine.Pack(req)
	}()
	select {
	case res := <-done:
		return res, nil
	case <-ctx.Done():
		return model.PlanResult{}, ctx.Err()
	}
}
