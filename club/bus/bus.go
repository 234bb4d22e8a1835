// Package bus is the change bus: a best-effort, payload-free invalidation
// channel between every live instance of the application. A signal means
// "something changed somewhere, re-read whatever you care about" - nothing
// more. Delivery is at-most-once and unordered relative to the underlying
// writes, and a signal fired with no subscriber listening is simply lost.
package bus

import (
	"context"
	"sync"
)

// Bus is the injectable contract the store engine publishes through. Tests
// substitute a plain LocalBus; production wires a RedisBus so other instances
// hear the signal too.
type Bus interface {
	// Publish fires one change signal. It never blocks on subscribers and
	// never reports delivery failure to the caller.
	Publish(ctx context.Context)
	// Subscribe registers a callback invoked once per received signal,
	// including signals published by this same instance. The returned
	// function unsubscribes; calling it more than once is harmless.
	Subscribe(fn func()) (unsubscribe func())
}

// LocalBus dispatches signals to subscribers within this process only.
type LocalBus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

// NewLocalBus creates an in-process change bus.
func NewLocalBus() *LocalBus {
	return &LocalBus{subs: make(map[int]func())}
}

// Publish delivers the signal to every current subscriber.
func (b *LocalBus) Publish(_ context.Context) {
	b.dispatch()
}

// Subscribe registers fn and returns its unsubscribe function.
func (b *LocalBus) Subscribe(fn func()) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// dispatch invokes every subscriber outside the lock so a callback may
// subscribe or unsubscribe without deadlocking.
func (b *LocalBus) dispatch() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
