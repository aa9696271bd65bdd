// Package notify delivers controller change notifications to subscribers.
package notify

import "sync"

// Dispatcher fans values out to subscribers in the order they were enqueued.
//
// Owners call Enqueue while holding their own lock, so queue order matches
// mutation order, and Flush after releasing it. Only one goroutine drains
// at a time; a subscriber that mutates the owner again has its change
// queued and delivered after it returns.
type Dispatcher[T any] struct {
	mu       sync.Mutex
	subs     map[uint64]func(T)
	order    []uint64
	nextID   uint64
	queue    []T
	draining bool
}

// Subscribe registers fn and returns a function that removes it.
func (d *Dispatcher[T]) Subscribe(fn func(T)) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.subs == nil {
		d.subs = make(map[uint64]func(T))
	}
	d.nextID++
	id := d.nextID
	d.subs[id] = fn
	d.order = append(d.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(id) })
	}
}

func (d *Dispatcher[T]) remove(id uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.subs, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Enqueue queues v for delivery on the next Flush.
func (d *Dispatcher[T]) Enqueue(v T) {
	d.mu.Lock()
	d.queue = append(d.queue, v)
	d.mu.Unlock()
}

// Flush delivers queued values. It returns immediately if another
// goroutine (or an outer call on this stack) is already draining.
func (d *Dispatcher[T]) Flush() {
	d.mu.Lock()
	if d.draining {
		d.mu.Unlock()
		return
	}
	d.draining = true
	for len(d.queue) > 0 {
		batch := d.queue
		d.queue = nil
		subs := d.snapshot()
		d.mu.Unlock()

		for _, v := range batch {
			for _, fn := range subs {
				fn(v)
			}
		}

		d.mu.Lock()
	}
	d.draining = false
	d.mu.Unlock()
}

// Reset drops all subscribers and pending values.
func (d *Dispatcher[T]) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs = nil
	d.order = nil
	d.queue = nil
}

// Len reports the number of subscribers.
func (d *Dispatcher[T]) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}

func (d *Dispatcher[T]) snapshot() []func(T) {
	subs := make([]func(T), 0, len(d.order))
	for _, id := range d.order {
		if fn, ok := d.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	return subs
}
