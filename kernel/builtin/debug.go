// Package builtin implements the kernel's built-in schemes — the
// narrow Scheme adapters spec.md §4.8 lists as installed at boot, each
// reducing a spec.md §1 "out of scope" collaborator (console driver,
// device enumeration, initfs content, disk/network controllers) to the
// Scheme interface the core actually invokes.
package builtin

import (
	"golang.org/x/term"

	"github.com/vvlevchenko/mini32k/kernel/environment"
	"github.com/vvlevchenko/mini32k/kernel/errno"
	"github.com/vvlevchenko/mini32k/kernel/kurl"
	"github.com/vvlevchenko/mini32k/kernel/resource"
	"github.com/vvlevchenko/mini32k/kernel/scheme"
	"github.com/vvlevchenko/mini32k/kernel/stat"
)

// Termsize is the narrow interface a real terminal exposes for sizing
// COLUMNS/LINES; *os.File satisfies it via golang.org/x/term.
type Termsize interface {
	Fd() uintptr
}

// DebugScheme is the "debug:" console device (spec.md §4.8's three
// kinit stdio handles). Grounded on the teacher's utils.Console PTY
// wrapper, reduced here to "read/write bytes through the Environment's
// Console", since the physical PTY/serial wiring is out of scope
// (spec.md §1).
//
// Every Open returns an independent Resource sharing the same
// underlying Console, matching a real debug console where multiple
// fds (stdin/stdout/stderr) all talk to one device.
type DebugScheme struct {
	scheme.Base
	env  *environment.Environment
	term Termsize
}

// NewDebugScheme returns the debug: scheme. term is optional; when
// supplied and it refers to a real terminal, Size() reports the
// attached TTY's dimensions via golang.org/x/term instead of a
// synthetic default.
func NewDebugScheme(env *environment.Environment, term Termsize) *DebugScheme {
	return &DebugScheme{Base: scheme.Base{SchemeName: "debug"}, env: env, term: term}
}

// Size reports COLUMNS/LINES. If the scheme was built with a real
// terminal, it queries x/term; otherwise it falls back to the
// display's geometry, matching spec.md §6.
func (d *DebugScheme) Size(displayWidth, displayHeight int) (cols, lines int) {
	if d.term != nil && term.IsTerminal(int(d.term.Fd())) {
		if w, h, err := term.GetSize(int(d.term.Fd())); err == nil {
			return w, h
		}
	}
	return displayWidth / 8, displayHeight / 16
}

// Open returns a new debugResource wrapping the Environment's Console.
func (d *DebugScheme) Open(url kurl.URL, flags int) (resource.Resource, error) {
	return &debugResource{env: d.env}, nil
}

// Stat reports the console as a character device.
func (d *DebugScheme) Stat(url kurl.URL, out *stat.Stat) error {
	out.Mode = stat.ModeChar
	return nil
}

type debugResource struct {
	resource.Unsupported
	env *environment.Environment
}

func (r *debugResource) Read(buf []byte) (int, error) {
	var n int
	var err error
	r.env.Console.With(func(c *environment.Console) {
		if *c == nil {
			err = errno.New(errno.EIO, "read")
			return
		}
		n, err = (*c).Read(buf)
	})
	return n, err
}

func (r *debugResource) Write(buf []byte) (int, error) {
	var n int
	var err error
	r.env.Console.With(func(c *environment.Console) {
		if *c == nil {
			err = errno.New(errno.EIO, "write")
			return
		}
		n, err = (*c).Write(buf)
	})
	return n, err
}

func (r *debugResource) Stat(out *stat.Stat) error {
	out.Mode = stat.ModeChar
	return nil
}

func (r *debugResource) Dup() (resource.Resource, error) {
	return &debugResource{env: r.env}, nil
}

func (r *debugResource) Path(buf []byte) (int, error) {
	return copy(buf, []byte("debug:")), nil
}

func (r *debugResource) Close() error { return nil }
