// Package scheme defines the kernel's named-provider interface
// (spec.md §3/§4.2).
package scheme

import (
	"github.com/vvlevchenko/mini32k/kernel/errno"
	"github.com/vvlevchenko/mini32k/kernel/kurl"
	"github.com/vvlevchenko/mini32k/kernel/resource"
	"github.com/vvlevchenko/mini32k/kernel/stat"
)

// Scheme is a named provider that interprets URLs of the form
// "name:rest". Name may be empty for anonymous/root providers.
//
// Providers that don't serve directories may return EPERM/ENOENT from
// Mkdir/Rmdir. OnIRQ is invoked on every hardware IRQ with the IRQ
// number; implementations must not block and must not allocate, and
// must not re-enter the scheme registry (spec.md §4.2/§5/§9).
type Scheme interface {
	// Name returns the scheme's registered name ("" for anonymous).
	Name() string
	// Open opens reference under this scheme with the given flags.
	Open(url kurl.URL, flags int) (resource.Resource, error)
	// Mkdir creates a directory named by url.
	Mkdir(url kurl.URL, flags int) error
	// Rmdir removes the directory named by url.
	Rmdir(url kurl.URL) error
	// Stat populates out with url's metadata.
	Stat(url kurl.URL, out *stat.Stat) error
	// Unlink removes the resource named by url.
	Unlink(url kurl.URL) error
	// OnIRQ is called for every hardware IRQ, with the list lock held.
	OnIRQ(irq uint8)
}

// Base can be embedded by a Scheme implementation to get ENOENT/EPERM
// defaults for directory operations it doesn't support, and a no-op
// OnIRQ, matching spec.md §4.2's "may return ENOENT/EPERM" allowance.
type Base struct {
	SchemeName string
}

func (b Base) Name() string { return b.SchemeName }
func (b Base) Mkdir(kurl.URL, int) error { return errno.New(errno.EPERM, "mkdir") }
func (b Base) Rmdir(kurl.URL) error      { return errno.New(errno.ENOENT, "rmdir") }
func (b Base) Unlink(kurl.URL) error     { return errno.New(errno.ENOENT, "unlink") }
func (b Base) OnIRQ(uint8)               {}
