package builtin

import (
	"github.com/vvlevchenko/mini32k/kernel/errno"
	"github.com/vvlevchenko/mini32k/kernel/kurl"
	"github.com/vvlevchenko/mini32k/kernel/resource"
	"github.com/vvlevchenko/mini32k/kernel/scheme"
	"github.com/vvlevchenko/mini32k/kernel/stat"
)

// TestScheme is the "test:" scheme: a trivial in-memory echo buffer
// with no backing device at all, used to exercise the scheme/resource
// protocol itself (registration, open, read/write round trips) without
// depending on any real collaborator. Every opened handle is
// independent.
type TestScheme struct {
	scheme.Base
}

// NewTestScheme returns the test: scheme.
func NewTestScheme() *TestScheme {
	return &TestScheme{Base: scheme.Base{SchemeName: "test"}}
}

// Open returns a fresh, empty echo buffer.
func (s *TestScheme) Open(url kurl.URL, flags int) (resource.Resource, error) {
	return &testResource{}, nil
}

// Stat reports the echo buffer as a regular file.
func (s *TestScheme) Stat(url kurl.URL, out *stat.Stat) error {
	out.Mode = stat.ModeFile
	return nil
}

type testResource struct {
	resource.Unsupported
	data   []byte
	offset int64
}

func (r *testResource) Write(buf []byte) (int, error) {
	r.data = append(r.data, buf...)
	return len(buf), nil
}

func (r *testResource) Read(buf []byte) (int, error) {
	if r.offset >= int64(len(r.data)) {
		return 0, nil
	}
	n := copy(buf, r.data[r.offset:])
	r.offset += int64(n)
	return n, nil
}

func (r *testResource) Seek(offset int64, whence resource.Whence) (int64, error) {
	var base int64
	switch whence {
	case resource.SeekStart:
		base = 0
	case resource.SeekCurrent:
		base = r.offset
	case resource.SeekEnd:
		base = int64(len(r.data))
	default:
		return 0, errno.New(errno.EINVAL, "seek")
	}
	r.offset = base + offset
	return r.offset, nil
}

func (r *testResource) Stat(out *stat.Stat) error {
	out.Mode = stat.ModeFile
	out.Size = uint64(len(r.data))
	return nil
}

func (r *testResource) Dup() (resource.Resource, error) {
	return &testResource{data: r.data, offset: r.offset}, nil
}

func (r *testResource) Truncate(length int64) error {
	if length < int64(len(r.data)) {
		r.data = r.data[:length]
	} else {
		r.data = append(r.data, make([]byte, length-int64(len(r.data)))...)
	}
	return nil
}

func (r *testResource) Path(buf []byte) (int, error) {
	return copy(buf, []byte("test:")), nil
}

func (r *testResource) Close() error { return nil }
