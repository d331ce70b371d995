// Package intex provides the kernel's interrupt-masking mutex: a
// critical-section guard that keeps a shared datum consistent against
// both concurrent contexts and IRQ handlers on the same CPU
// (spec.md §5).
//
// There is no real interrupt controller to mask in a hosted Go
// process, so "disabling interrupts" is modeled as ordinary mutual
// exclusion; acquisition does not nest (see Intex), matching the teacher's small, focused sync-utility packages
// (utils.SyncPipe) rather than anything from the wider ecosystem — no
// library models a CPU's interrupt flag.
package intex

import "sync"

// Intex guards T. Acquisition corresponds to "disable interrupts";
// release corresponds to "re-enable". Unlike the original kernel's
// Intex, this port does not support recursive acquisition by the same
// goroutine (Go's sync.Mutex has no notion of "owner"); every code
// path in this repo takes at most one Intex at a time and releases it
// before calling into anything that might want it again, which is the
// same discipline spec.md §5 demands (never hold across a suspension
// point).
type Intex[T any] struct {
	mu    sync.Mutex
	value T
}

// New returns an Intex guarding the given initial value.
func New[T any](value T) *Intex[T] {
	return &Intex[T]{value: value}
}

// Guard is the handle returned by Lock; it must be released exactly
// once via Unlock.
type Guard[T any] struct {
	ix *Intex[T]
}

// Lock acquires the critical section, giving mutable access to the
// guarded value for its duration. The returned Guard must be released
// with Unlock.
func (ix *Intex[T]) Lock() *Guard[T] {
	ix.mu.Lock()
	return &Guard[T]{ix: ix}
}

// Get returns a pointer to the guarded value, valid for the lifetime
// of the Guard.
func (g *Guard[T]) Get() *T {
	return &g.ix.value
}

// Unlock releases the critical section.
func (g *Guard[T]) Unlock() {
	g.ix.mu.Unlock()
}

// With runs fn with the guarded value locked, releasing automatically
// even on panic — the common case throughout the kernel core.
func (ix *Intex[T]) With(fn func(value *T)) {
	g := ix.Lock()
	defer g.Unlock()
	fn(g.Get())
}

// WithErr is like With but propagates an error result.
func WithErr[T, R any](ix *Intex[T], fn func(value *T) (R, error)) (R, error) {
	g := ix.Lock()
	defer g.Unlock()
	return fn(g.Get())
}
