package indexer

import "context"

// Job is a handle on a background indexing run. It is always joined, never
// fire-and-forget: Stop cancels the run and waits for it to exit, so no
// in-flight network call outlives the process.
type Job struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Start launches fn on its own goroutine with a context derived from ctx.
func Start(ctx context.Context, fn func(context.Context) error) *Job {
	ctx, cancel := context.WithCancel(ctx)
	j := &Job{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(j.done)
		j.err = fn(ctx)
	}()
	return j
}

// Wait blocks until the run finishes or ctx is done, whichever comes
// first, and returns the run's error.
func (j *Job) Wait(ctx context.Context) error {
	select {
	case <-j.done:
		return j.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop cancels the run and waits for it to exit.
func (j *Job) Stop(ctx context.Context) error {
	j.cancel()
	return j.Wait(ctx)
}

// Running reports whether the run is still in flight.
func (j *Job) Running() bool {
	select {
	case <-j.done:
		return false
	default:
		return true
	}
}
