// Package task implements the kernel's Context (task) and
// ContextManager (spec.md §3/§4.4).
//
// Grounded on the teacher's container.Container (struct shape,
// constructors) and spec.ContainerState; the scheduling state here is
// reduced to the Context.Blocked flag.
package task

import (
	"path"
	"strings"

	"github.com/vvlevchenko/mini32k/kernel/errno"
	"github.com/vvlevchenko/mini32k/kernel/resource"
)

// FileEntry is one slot in a Context's file-descriptor table.
type FileEntry struct {
	FD       int
	Resource resource.Resource
}

// AddressSpace is an opaque per-context address-space handle. The
// core only needs to carry and eventually tear it down; paging itself
// is out of scope (spec.md §1).
type AddressSpace interface {
	// Teardown releases the address space's backing pages.
	Teardown()
}

// Context is a schedulable task: its own fd table, cwd, environment,
// and address space.
//
// Every field here is only ever touched while the owning
// ContextManager's Intex is held (see kernel/environment), so Context
// itself carries no additional locking — the same "reached through a
// shared lock" discipline spec.md §9 calls out, minus the interior
// mutability: callers get a *Context for the duration of the guarded
// section and can mutate it directly.
type Context struct {
	PID     int
	Name    string
	Blocked bool
	Time    uint64
	Cwd     string
	Files   []FileEntry
	Env     map[string]string
	Space   AddressSpace
}

// NewContext constructs a Context with an empty fd table and cwd "/".
func NewContext(pid int, name string) *Context {
	return &Context{
		PID:  pid,
		Name: name,
		Cwd:  "/",
		Env:  make(map[string]string),
	}
}

// NextFD returns 1 + max(fd in Files), or 0 if Files is empty
// (spec.md §3).
func (c *Context) NextFD() int {
	max := -1
	for _, f := range c.Files {
		if f.FD > max {
			max = f.FD
		}
	}
	return max + 1
}

// Canonicalize joins p against Cwd unless p already carries a scheme
// (contains ':'), per spec.md §3.
func (c *Context) Canonicalize(p string) string {
	if strings.Contains(p, ":") {
		return p
	}
	if path.IsAbs(p) {
		return path.Clean(p)
	}
	return path.Clean(path.Join(c.Cwd, p))
}

// AddFile installs r under the next available fd and returns it.
func (c *Context) AddFile(r resource.Resource) int {
	fd := c.NextFD()
	c.Files = append(c.Files, FileEntry{FD: fd, Resource: r})
	return fd
}

// GetFile returns the resource installed at fd, or ErrBadFD.
func (c *Context) GetFile(fd int) (resource.Resource, error) {
	for i := range c.Files {
		if c.Files[i].FD == fd {
			return c.Files[i].Resource, nil
		}
	}
	return nil, errno.ErrBadFD
}

// RemoveFile removes the entry at fd, returning ErrBadFD if absent.
// The lock is not released between the find and the remove (spec.md
// §9's open question): both happen under the single caller-held Intex
// guard, so there is no re-entrancy window to worry about.
func (c *Context) RemoveFile(fd int) (resource.Resource, error) {
	for i := range c.Files {
		if c.Files[i].FD == fd {
			r := c.Files[i].Resource
			c.Files = append(c.Files[:i], c.Files[i+1:]...)
			return r, nil
		}
	}
	return nil, errno.ErrBadFD
}

// Destroy closes every open file and tears down the address space.
// Called on sys_exit or a fatal fault (spec.md §3).
func (c *Context) Destroy() {
	for _, f := range c.Files {
		f.Resource.Close()
	}
	c.Files = nil
	if c.Space != nil {
		c.Space.Teardown()
	}
}
