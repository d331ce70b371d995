// Package environment implements the kernel's process-wide singleton
// (spec.md §3/§4.3): the owner of contexts, clocks, disks, schemes,
// the pending-event queue, and the interrupt counters.
package environment

import (
	"io"
	"strings"

	"github.com/vvlevchenko/mini32k/kernel/duration"
	"github.com/vvlevchenko/mini32k/kernel/errno"
	"github.com/vvlevchenko/mini32k/kernel/intex"
	"github.com/vvlevchenko/mini32k/kernel/kurl"
	"github.com/vvlevchenko/mini32k/kernel/resource"
	"github.com/vvlevchenko/mini32k/kernel/scheme"
	"github.com/vvlevchenko/mini32k/kernel/stat"
	"github.com/vvlevchenko/mini32k/kernel/task"
	"github.com/vvlevchenko/mini32k/kernel/waitqueue"
)

// Console is the narrow interface the kernel core needs from whatever
// drives the physical or virtual console (out of scope per spec.md §1).
type Console interface {
	io.Reader
	io.Writer
}

// Disk is the narrow block-device interface the core needs; real disk
// controllers are out of scope (spec.md §1).
type Disk interface {
	ReadAt(block uint64, buf []byte) (int, error)
	WriteAt(block uint64, buf []byte) (int, error)
	Size() uint64
}

// LogLevel classifies a kernel log entry.
type LogLevel int

// Kernel log levels.
const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
)

// String returns the lower-case level name.
func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "debug"
	case LogInfo:
		return "info"
	case LogWarn:
		return "warn"
	case LogError:
		return "error"
	default:
		return "unknown"
	}
}

// LogEntry is one line in the kernel's in-memory log buffer.
type LogEntry struct {
	Level   LogLevel
	Message string
}

// Event is an item on the kernel's pending-event queue.
type Event struct {
	Kind string
	Data any
}

// Environment is the kernel's process-wide singleton. Every mutable
// field except Events is guarded by its own Intex (spec.md §5's "every
// field of Environment is an Intex"); Events is a WaitQueue, which
// carries its own lock.
type Environment struct {
	Contexts *intex.Intex[task.Manager]

	ClockRealtime  *intex.Intex[duration.Duration]
	ClockMonotonic *intex.Intex[duration.Duration]

	Console *intex.Intex[Console]
	Disks   *intex.Intex[[]Disk]

	Events *waitqueue.WaitQueue[Event]

	Logs *intex.Intex[[]LogEntry]

	Schemes *intex.Intex[[]scheme.Scheme]

	Interrupts *intex.Intex[[256]uint64]
}

// New builds a fresh, empty Environment (the body of the Rust
// original's Environment::new()). Most callers want the process-wide
// singleton (Init/Get); New exists so tests and tools that need an
// isolated Environment are not forced through the one-shot cell.
func New() *Environment {
	return newEnvironment()
}

// newEnvironment builds a fresh, empty Environment (the body of the
// Rust original's Environment::new()).
func newEnvironment() *Environment {
	return &Environment{
		Contexts:       intex.New(*task.NewManager()),
		ClockRealtime:  intex.New(duration.Duration{}),
		ClockMonotonic: intex.New(duration.Duration{}),
		Console:        intex.New[Console](nil),
		Disks:          intex.New([]Disk{}),
		Events:         waitqueue.New[Event](),
		Logs:           intex.New([]LogEntry{}),
		Schemes:        intex.New([]scheme.Scheme{}),
		Interrupts:     intex.New([256]uint64{}),
	}
}

// Log appends a message to the kernel log ring.
func (e *Environment) Log(level LogLevel, message string) {
	e.Logs.With(func(logs *[]LogEntry) {
		*logs = append(*logs, LogEntry{Level: level, Message: message})
	})
}

// OnIRQ fans out irq to every registered scheme's OnIRQ, in
// registration order, with the schemes lock held for the whole fan-out
// (spec.md §4.6/§5 — providers must not re-enter the scheme registry).
func (e *Environment) OnIRQ(irq uint8) {
	e.Schemes.With(func(schemes *[]scheme.Scheme) {
		for _, s := range *schemes {
			s.OnIRQ(irq)
		}
	})
}

// RegisterScheme appends s to the scheme registry under its own name.
// Used at boot to install built-in providers; returns ErrSchemeExists
// if the name is already taken.
func (e *Environment) RegisterScheme(s scheme.Scheme) error {
	return intex.WithErr(e.Schemes, func(schemes *[]scheme.Scheme) (struct{}, error) {
		for _, existing := range *schemes {
			if existing.Name() != "" && existing.Name() == s.Name() {
				return struct{}{}, errno.ErrSchemeExists
			}
		}
		*schemes = append(*schemes, s)
		return struct{}{}, nil
	})
}

// findScheme returns the first registered scheme with the given name,
// scanning in registration order (spec.md §4.3/§5).
func findScheme(schemes []scheme.Scheme, name string) (scheme.Scheme, bool) {
	for _, s := range schemes {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// Open implements spec.md §4.3's open routing, including the two
// empty-scheme special cases (root listing, scheme self-registration).
func (e *Environment) Open(url kurl.URL, flags int) (resource.Resource, error) {
	if url.Scheme() == "" {
		ref := strings.Trim(url.Reference(), "/")
		if ref == "" {
			return e.rootListing()
		}
		if flags&OCreat == OCreat {
			return e.registerUserScheme(ref)
		}
		return nil, errno.New(errno.ENOENT, "open")
	}

	s, err := e.lookupScheme(url.Scheme(), "open")
	if err != nil {
		return nil, err
	}
	return s.Open(url, flags)
}

// lookupScheme takes the Schemes Intex just long enough to find the
// first provider named name, then releases it before returning — the
// scheme-dispatch code must not hold the lock across a call into a
// provider that may block (spec.md §5).
func (e *Environment) lookupScheme(name, op string) (scheme.Scheme, error) {
	return intex.WithErr(e.Schemes, func(schemes *[]scheme.Scheme) (scheme.Scheme, error) {
		if name == "" {
			return nil, errno.New(errno.ENOENT, op)
		}
		s, ok := findScheme(*schemes, name)
		if !ok {
			return nil, errno.New(errno.ENOENT, op)
		}
		return s, nil
	})
}

// Mkdir, Rmdir, Stat, and Unlink all share the routing rule of
// spec.md §4.3: extract the scheme, first-match scan, ENOENT
// otherwise. They never special-case an empty scheme.
func (e *Environment) Mkdir(url kurl.URL, flags int) error {
	s, err := e.lookupScheme(url.Scheme(), "mkdir")
	if err != nil {
		return err
	}
	return s.Mkdir(url, flags)
}

func (e *Environment) Rmdir(url kurl.URL) error {
	s, err := e.lookupScheme(url.Scheme(), "rmdir")
	if err != nil {
		return err
	}
	return s.Rmdir(url)
}

func (e *Environment) Stat(url kurl.URL, out *stat.Stat) error {
	s, err := e.lookupScheme(url.Scheme(), "stat")
	if err != nil {
		return err
	}
	return s.Stat(url, out)
}

func (e *Environment) Unlink(url kurl.URL) error {
	s, err := e.lookupScheme(url.Scheme(), "unlink")
	if err != nil {
		return err
	}
	return s.Unlink(url)
}

func (e *Environment) rootListing() (resource.Resource, error) {
	return intex.WithErr(e.Schemes, func(schemes *[]scheme.Scheme) (resource.Resource, error) {
		var names []string
		for _, s := range *schemes {
			if s.Name() != "" {
				names = append(names, s.Name())
			}
		}
		return resource.NewVec(":", []byte(strings.Join(names, "\n"))), nil
	})
}
