// Package resource defines the kernel's uniform open-handle interface
// (spec.md §3/§4.2).
package resource

import "github.com/vvlevchenko/mini32k/kernel/stat"

// Whence selects how Seek interprets its offset.
type Whence int

const (
	// SeekStart seeks to an absolute offset.
	SeekStart Whence = iota
	// SeekCurrent seeks relative to the current offset.
	SeekCurrent
	// SeekEnd seeks relative to the end of the resource.
	SeekEnd
)

// Resource is an open handle returned by a Scheme. A provider that
// cannot implement a given capability returns errno.ErrUnsupported (or
// errno.ErrNotSeekable for Seek); see DESIGN.md.
//
// A Resource is exclusively owned by one fd slot in one context at a
// time; closing drops it.
type Resource interface {
	// Read reads into buf, returning the number of bytes read. Short
	// reads are permitted.
	Read(buf []byte) (int, error)
	// Write writes buf, returning the number of bytes written. Short
	// writes are permitted.
	Write(buf []byte) (int, error)
	// Seek repositions the resource per whence and returns the new
	// offset.
	Seek(offset int64, whence Whence) (int64, error)
	// Stat populates out with the resource's metadata.
	Stat(out *stat.Stat) error
	// Dup returns an independently usable handle sharing this
	// resource's logical state where appropriate.
	Dup() (Resource, error)
	// Truncate resizes the resource to length bytes.
	Truncate(length int64) error
	// Sync flushes any buffered state to the backing device.
	Sync() error
	// Path writes the resource's canonical path into buf, returning
	// the number of bytes written.
	Path(buf []byte) (int, error)
	// Close releases the resource. Called exactly once, when the
	// owning fd slot is removed.
	Close() error
}
