package interviewinfra

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Abraxas-365/hrms/pkg/recruitment/interview"
)

// InMemoryLocker implementación en memoria del Locker. Sirve para un único
// proceso; con varias réplicas usar RedisLocker.
type InMemoryLocker struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
	wait  time.Duration
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

// NewInMemoryLocker crea un locker que espera hasta wait por cada clave ocupada
func NewInMemoryLocker(wait time.Duration) *InMemoryLocker {
	return &InMemoryLocker{
		slots: make(map[string]*lockSlot),
		wait:  wait,
	}
}

// Lock acquires every key in sorted order so two callers sharing keys cannot
// deadlock.
func (l *InMemoryLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = normalizeKeys(keys)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	held := make([]string, 0, len(keys))
	releaseHeld := func() {
		for _, k := range held {
			l.release(k)
		}
	}

	for _, key := range keys {
		slot := l.acquireSlot(key)
		select {
		case slot.ch <- struct{}{}:
			held = append(held, key)
		case <-timer.C:
			l.dropSlot(key)
			releaseHeld()
			return nil, interview.ErrSchedulingBusy().WithDetail("key", key)
		case <-ctx.Done():
			l.dropSlot(key)
			releaseHeld()
			return nil, ctx.Err()
		}
	}

	var once sync.Once
	return func() { once.Do(releaseHeld) }, nil
}

func (l *InMemoryLocker) acquireSlot(key string) *lockSlot {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot, ok := l.slots[key]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = slot
	}
	slot.refs++
	return slot
}

func (l *InMemoryLocker) release(key string) {
	l.mu.Lock()
	slot := l.slots[key]
	l.mu.Unlock()

	<-slot.ch
	l.dropSlot(key)
}

// dropSlot forgets the key once nobody holds or waits on it.
func (l *InMemoryLocker) dropSlot(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot := l.slots[key]
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
}

func normalizeKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
