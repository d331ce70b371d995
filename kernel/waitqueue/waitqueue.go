// Package waitqueue implements the kernel's FIFO blocking event queue
// (spec.md §3/§5), the sink Environment.events uses.
//
// It generalizes the teacher's utils.SyncPipe/Fifo — a blocking
// rendezvous carrying a single "signal" byte between two parties —
// into a many-producer, single-consumer-at-a-time FIFO of arbitrary
// values, guarded by a mutex and condition variable rather than an OS
// pipe, since the kernel core has no file descriptors of its own to
// spend on it.
package waitqueue

import "sync"

// WaitQueue is a FIFO queue, bounded only by memory. Push never
// blocks; Pop blocks until an item is available.
type WaitQueue[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []T
	// closed marks the queue as drained permanently; Pop on a closed,
	// empty queue returns immediately with ok=false instead of
	// blocking forever (used to unblock waiters at shutdown/teardown).
	closed bool
}

// New returns an empty WaitQueue.
func New[T any]() *WaitQueue[T] {
	wq := &WaitQueue[T]{}
	wq.cond = sync.NewCond(&wq.mu)
	return wq
}

// Push enqueues x and wakes one waiter. Non-blocking.
func (wq *WaitQueue[T]) Push(x T) {
	wq.mu.Lock()
	wq.items = append(wq.items, x)
	wq.mu.Unlock()
	wq.cond.Signal()
}

// Pop blocks (the caller's context would be marked blocked and
// yielded, per spec.md §5) until an item is available, then returns
// it. ok is false only if the queue was closed while empty.
func (wq *WaitQueue[T]) Pop() (item T, ok bool) {
	wq.mu.Lock()
	defer wq.mu.Unlock()
	for len(wq.items) == 0 && !wq.closed {
		wq.cond.Wait()
	}
	if len(wq.items) == 0 {
		var zero T
		return zero, false
	}
	item = wq.items[0]
	wq.items = wq.items[1:]
	return item, true
}

// Len returns the number of queued-but-unconsumed items.
func (wq *WaitQueue[T]) Len() int {
	wq.mu.Lock()
	defer wq.mu.Unlock()
	return len(wq.items)
}

// Close marks the queue closed and wakes all waiters; further Pop
// calls on an empty queue return immediately instead of blocking.
func (wq *WaitQueue[T]) Close() {
	wq.mu.Lock()
	wq.closed = true
	wq.mu.Unlock()
	wq.cond.Broadcast()
}
