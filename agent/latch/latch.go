// Package latch is a one-shot signal with a slot for the latest value.
package latch

import (
	"context"
	"sync"
	"time"
)

// Latch is signalled at most once. Every Signal stores its value, but only
// the first one releases the waiters. The zero value isn't usable, use New.
type Latch[T any] struct {
	lk    sync.Mutex
	value T
	done  chan struct{}
	fired bool
}

func New[T any]() *Latch[T] {
	return &Latch[T]{done: make(chan struct{})}
}

// Signal stores v and releases the waiters if the latch wasn't signalled
// already. It returns true for the first signal.
func (l *Latch[T]) Signal(v T) (first bool) {
	l.lk.Lock()
	defer l.lk.Unlock()

	l.value = v
	if l.fired {
		return false
	}
	l.fired = true
	close(l.done)
	return true
}

// Wait waits for the signal at most timeout. A zero or negative timeout
// only polls.
func (l *Latch[T]) Wait(timeout time.Duration) (v T, ok bool) {
	if timeout <= 0 {
		return l.poll()
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-l.done:
		return l.Value(), true
	case <-timer.C:
		return l.poll()
	}
}

// WaitContext waits until the latch is signalled or the ctx is done.
func (l *Latch[T]) WaitContext(ctx context.Context) (v T, err error) {
	select {
	case <-l.done:
		return l.Value(), nil
	case <-ctx.Done():
		if v, ok := l.poll(); ok {
			return v, nil
		}
		return v, ctx.Err()
	}
}

// Value returns the value of the latest Signal.
func (l *Latch[T]) Value() T {
	l.lk.Lock()
	defer l.lk.Unlock()
	return l.value
}

func (l *Latch[T]) Signalled() bool {
	l.lk.Lock()
	defer l.lk.Unlock()
	return l.fired
}

// Done returns a channel which is closed when the latch is signalled.
func (l *Latch[T]) Done() <-chan struct{} {
	return l.done
}

func (l *Latch[T]) poll() (v T, ok bool) {
	l.lk.Lock()
	defer l.lk.Unlock()
	if !l.fired {
		return v, false
	}
	return l.value, true
}
