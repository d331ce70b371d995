package builtin

import (
	"fmt"

	"github.com/vvlevchenko/mini32k/kernel/kurl"
	"github.com/vvlevchenko/mini32k/kernel/resource"
	"github.com/vvlevchenko/mini32k/kernel/scheme"
	"github.com/vvlevchenko/mini32k/kernel/stat"
)

// DisplayScheme is the "display:" scheme: a read-only report of the
// framebuffer's pixel geometry (spec.md §6, the source kinit derives
// COLUMNS/LINES from). Actual framebuffer drawing is out of scope
// (spec.md §1); this scheme only reports the dimensions a caller
// would otherwise read out of a mode-set framebuffer header.
type DisplayScheme struct {
	scheme.Base
	width, height int
}

// NewDisplayScheme returns the display: scheme reporting the given
// pixel geometry.
func NewDisplayScheme(width, height int) *DisplayScheme {
	return &DisplayScheme{Base: scheme.Base{SchemeName: "display"}, width: width, height: height}
}

// Open returns a read-only "WIDTHxHEIGHT" resource.
func (s *DisplayScheme) Open(url kurl.URL, flags int) (resource.Resource, error) {
	return resource.NewVec("display:", []byte(fmt.Sprintf("%dx%d", s.width, s.height))), nil
}

// Stat reports the geometry resource as a regular (read-only) file.
func (s *DisplayScheme) Stat(url kurl.URL, out *stat.Stat) error {
	out.Mode = stat.ModeFile
	return nil
}
