package negotiate

import (
	"context"
	"sync"
)

// keyedLocks serializes negotiations per target index name. Each iteration
// creates and tears down a transient remote resource under that name, so two
// concurrent negotiations against the same name would race on it.
type keyedLocks struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{slots: make(map[string]chan struct{})}
}

// acquire blocks until the lock for name is free or the context is done.
func (k *keyedLocks) acquire(ctx context.Context, name string) error {
	k.mu.Lock()
	slot, ok := k.slots[name]
	if !ok {
		slot = make(chan struct{}, 1)
		k.slots[name] = slot
	}
	k.mu.Unlock()

	select {
	case slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// release frees the lock for name. Must only be called after a successful
// acquire.
func (k *keyedLocks) release(name string) {
	k.mu.Lock()
	slot := k.slots[name]
	k.mu.Unlock()
	<-slot
}
