// Package notify fans state changes out to subscribers.
package notify

import "sync"

// Broadcaster delivers values of type T to every current subscriber, in
// subscription order. Publish runs callbacks synchronously on the caller's
// goroutine; callers must not hold their own locks while publishing.
type Broadcaster[T any] struct {
	mu   sync.Mutex
	next int
	subs map[int]func(T)
	ord  []int
}

// Subscribe registers fn and returns a function that removes it.
// Cancelling more than once is harmless.
func (b *Broadcaster[T]) Subscribe(fn func(T)) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == nil {
		b.subs = make(map[int]func(T))
	}
	id := b.next
	b.next++
	b.subs[id] = fn
	b.ord = append(b.ord, id)

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Broadcaster[T]) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
	for i, v := range b.ord {
		if v == id {
			b.ord = append(b.ord[:i], b.ord[i+1:]...)
			break
		}
	}
}

// Publish calls every subscriber with v.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	fns := make([]func(T), 0, len(b.ord))
	for _, id := range b.ord {
		fns = append(fns, b.subs[id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
