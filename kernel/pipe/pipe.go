// Package pipe implements pipe2's in-memory bounded byte buffer with
// two endpoints (spec.md §4.5), grounded on the teacher's
// utils.SyncPipe two-endpoint rendezvous, reworked from an OS pipe-fd
// wrapper around a real file descriptor pair into an in-kernel ring
// buffer guarded by a mutex and condition variable, in the same
// "small sync utility" style as kernel/intex and kernel/waitqueue.
package pipe

import (
	"sync"

	"github.com/vvlevchenko/mini32k/kernel/errno"
	"github.com/vvlevchenko/mini32k/kernel/resource"
	"github.com/vvlevchenko/mini32k/kernel/stat"
)

// capacity is the bounded ring size. The core specifies EOF and EPIPE
// semantics but leaves buffer size to the implementation (spec.md §9);
// 64 KiB is the design note's suggested figure.
const capacity = 64 * 1024

// buffer is the shared ring state behind a pipe's two endpoints.
type buffer struct {
	mu          sync.Mutex
	cond        *sync.Cond
	data        []byte
	readClosed  bool
	writeClosed bool
}

func newBuffer() *buffer {
	b := &buffer{data: make([]byte, 0, capacity)}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// New constructs the two Resource endpoints of a pipe2 pipe: the read
// end (readEnd) and the write end (writeEnd). Both must be installed
// in the caller's FD table (spec.md §4.5).
func New() (readEnd resource.Resource, writeEnd resource.Resource) {
	b := newBuffer()
	return &reader{b: b}, &writer{b: b}
}

// reader is pipe2's read endpoint.
type reader struct {
	resource.Unsupported
	b      *buffer
	closed bool
}

// Read blocks until data is available or the write end closes (EOF).
func (r *reader) Read(p []byte) (int, error) {
	b := r.b
	b.mu.Lock()
	defer b.mu.Unlock()
	for len(b.data) == 0 && !b.writeClosed {
		b.cond.Wait()
	}
	if len(b.data) == 0 {
		return 0, nil
	}
	n := copy(p, b.data)
	b.data = b.data[n:]
	b.cond.Broadcast()
	return n, nil
}

// Close marks the read end closed; a writer blocked on a full buffer
// wakes and sees EPIPE on its next write.
func (r *reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	b := r.b
	b.mu.Lock()
	b.readClosed = true
	b.cond.Broadcast()
	b.mu.Unlock()
	return nil
}

func (r *reader) Stat(out *stat.Stat) error {
	out.Mode = stat.ModeFifo
	return nil
}

// Dup returns a second read endpoint over the same buffer (spec.md
// §4.2: "a pipe endpoint duplication shares the buffer").
func (r *reader) Dup() (resource.Resource, error) {
	return &reader{b: r.b}, nil
}

// writer is pipe2's write endpoint.
type writer struct {
	resource.Unsupported
	b      *buffer
	closed bool
}

// Write blocks while the buffer is full, fails EPIPE once the read end
// has closed (spec.md §4.5), and otherwise appends up to capacity.
func (w *writer) Write(p []byte) (int, error) {
	b := w.b
	b.mu.Lock()
	defer b.mu.Unlock()
	written := 0
	for written < len(p) {
		if b.readClosed {
			return written, errno.ErrBrokenPipe
		}
		room := capacity - len(b.data)
		if room == 0 {
			b.cond.Wait()
			continue
		}
		n := len(p) - written
		if n > room {
			n = room
		}
		b.data = append(b.data, p[written:written+n]...)
		written += n
		b.cond.Broadcast()
	}
	return written, nil
}

// Close marks the write end closed; blocked readers wake and observe
// EOF once the buffer drains.
func (w *writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	b := w.b
	b.mu.Lock()
	b.writeClosed = true
	b.cond.Broadcast()
	b.mu.Unlock()
	return nil
}

func (w *writer) Stat(out *stat.Stat) error {
	out.Mode = stat.ModeFifo
	return nil
}

// Dup returns a second write endpoint over the same buffer (spec.md
// §4.2: "a pipe endpoint duplication shares the buffer").
func (w *writer) Dup() (resource.Resource, error) {
	return &writer{b: w.b}, nil
}
