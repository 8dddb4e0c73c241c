// Package loop provides the single execution context every session
// operation runs on.
package loop

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// ErrClosed is returned when work is scheduled on a closed loop.
var ErrClosed = errors.New("loop closed")

// Loop runs submitted jobs one at a time on a single goroutine.
//
// Jobs receive the loop's base context, which lives until Close. Resources
// opened inside a job (such as a streaming connection) may therefore outlive
// the caller that scheduled it.
type Loop struct {
	jobs   chan func(context.Context)
	ctx    context.Context
	cancel context.CancelFunc
	logger zerolog.Logger

	mutex  sync.RWMutex
	closed bool

	stoppedCh chan struct{}
}

// New creates a loop and starts its goroutine.
func New(logger zerolog.Logger) *Loop {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loop{
		jobs:      make(chan func(context.Context)),
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger.With().Str("component", "loop").Logger(),
		stoppedCh: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.stoppedCh)

	l.logger.Debug().Msg("Loop started")
	for {
		select {
		case <-l.ctx.Done():
			l.logger.Debug().Msg("Loop stopped")
			return
		case job := <-l.jobs:
			job(l.ctx)
		}
	}
}

// Do schedules fn and blocks until it has run.
func (l *Loop) Do(fn func(ctx context.Context)) error {
	l.mutex.RLock()
	if l.closed {
		l.mutex.RUnlock()
		return ErrClosed
	}
	l.mutex.RUnlock()

	done := make(chan struct{})
	job := func(ctx context.Context) {
		defer close(done)
		fn(ctx)
	}

	select {
	case l.jobs <- job:
	case <-l.stoppedCh:
		return ErrClosed
	}

	<-done
	return nil
}

// Run schedules fn on l and returns its result.
func Run[T any](l *Loop, fn func(ctx context.Context) T) (T, error) {
	var result T
	err := l.Do(func(ctx context.Context) {
		result = fn(ctx)
	})
	return result, err
}

// Close cancels the base context and stops accepting work. A job already
// running is allowed to finish.
func (l *Loop) Close() error {
	l.mutex.Lock()
	if l.closed {
		l.mutex.Unlock()
		return nil
	}
	l.closed = true
	l.mutex.Unlock()

	l.cancel()
	<-l.stoppedCh
	return nil
}
