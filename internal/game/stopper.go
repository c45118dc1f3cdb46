package game

import (
	"context"
	"sync"
)

// Stopper hands a stop request from any goroutine to the loop that owns a
// session. The loop watches Context, releases its resources on its own
// goroutine and then calls Finish; Stop blocks until that happens.
type Stopper struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewStopper creates a Stopper whose context is derived from parent.
func NewStopper(parent context.Context) *Stopper {
	ctx, cancel := context.WithCancel(parent)
	return &Stopper{ctx: ctx, cancel: cancel, done: make(chan struct{})}
}

// Context is cancelled once a stop is requested.
func (s *Stopper) Context() context.Context {
	return s.ctx
}

// Stop requests a stop and waits until the loop calls Finish.
func (s *Stopper) Stop() {
	s.cancel()
	<-s.done
}

// Finish marks cleanup complete and releases every Stop caller. Calling it
// again is a no-op.
func (s *Stopper) Finish() {
	s.once.Do(func() {
		s.cancel()
		close(s.done)
	})
}

// Done is closed by Finish.
func (s *Stopper) Done() <-chan struct{} {
	return s.done
}
