package environment

import (
	"github.com/vvlevchenko/mini32k/kernel/kurl"
	"github.com/vvlevchenko/mini32k/kernel/resource"
	"github.com/vvlevchenko/mini32k/kernel/scheme"
	"github.com/vvlevchenko/mini32k/kernel/stat"
)

// fakeScheme is a minimal named Scheme used by environment tests to
// exercise routing without needing a real device backend.
type fakeScheme struct {
	scheme.Base
	opens   int
	mkdirs  int
	rmdirs  int
	stats   int
	unlinks int
	onIRQ   func()
}

func newFakeScheme(name string) *fakeScheme {
	return &fakeScheme{Base: scheme.Base{SchemeName: name}}
}

func (s *fakeScheme) Open(url kurl.URL, flags int) (resource.Resource, error) {
	s.opens++
	return fakeResource{}, nil
}

func (s *fakeScheme) Mkdir(url kurl.URL, flags int) error {
	s.mkdirs++
	return nil
}

func (s *fakeScheme) Rmdir(url kurl.URL) error {
	s.rmdirs++
	return nil
}

func (s *fakeScheme) Stat(url kurl.URL, out *stat.Stat) error {
	s.stats++
	return nil
}

func (s *fakeScheme) Unlink(url kurl.URL) error {
	s.unlinks++
	return nil
}

func (s *fakeScheme) OnIRQ(irq uint8) {
	if s.onIRQ != nil {
		s.onIRQ()
	}
}

// fakeResource is a no-op Resource used only as a placeholder return
// value in scheme tests.
type fakeResource struct {
	resource.Unsupported
}
