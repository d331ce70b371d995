package builtin

import (
	"fmt"

	"github.com/vvlevchenko/mini32k/kernel/kurl"
	"github.com/vvlevchenko/mini32k/kernel/resource"
	"github.com/vvlevchenko/mini32k/kernel/scheme"
	"github.com/vvlevchenko/mini32k/kernel/stat"
)

// Allocator is the narrow interface the "memory:" scheme needs from
// the page allocator, which is out of scope for the core (spec.md
// §1). TotalPages and FreePages are reported in 4 KiB pages, matching
// the original kernel's frame-allocator accounting.
type Allocator interface {
	TotalPages() uint64
	FreePages() uint64
}

// MemoryScheme is the "memory:" scheme: a read-only snapshot of page
// allocator accounting, formatted as "MemTotal: N kB\nMemFree: N kB".
type MemoryScheme struct {
	scheme.Base
	alloc Allocator
}

// NewMemoryScheme returns the memory: scheme reporting alloc's
// accounting. alloc may be nil, in which case the scheme reports
// zeroes rather than failing — a kernel with no real allocator wired
// in still has a memory: scheme to open.
func NewMemoryScheme(alloc Allocator) *MemoryScheme {
	return &MemoryScheme{Base: scheme.Base{SchemeName: "memory"}, alloc: alloc}
}

// Open snapshots the allocator's current counters into a read-only Vec.
func (s *MemoryScheme) Open(url kurl.URL, flags int) (resource.Resource, error) {
	var total, free uint64
	if s.alloc != nil {
		total, free = s.alloc.TotalPages(), s.alloc.FreePages()
	}
	const pageKB = 4
	body := fmt.Sprintf("MemTotal: %d kB\nMemFree: %d kB", total*pageKB, free*pageKB)
	return resource.NewVec("memory:", []byte(body)), nil
}

// Stat reports the allocator snapshot as a regular (read-only) file.
func (s *MemoryScheme) Stat(url kurl.URL, out *stat.Stat) error {
	out.Mode = stat.ModeFile
	return nil
}
