package resource

import (
	"github.com/vvlevchenko/mini32k/kernel/errno"
	"github.com/vvlevchenko/mini32k/kernel/stat"
)

// Vec is a read-only resource backed by an in-memory byte slice — the
// kernel's own fs::VecResource, used for synthetic content like the
// root scheme listing (spec.md §4.3).
type Vec struct {
	Unsupported
	name   string
	data   []byte
	offset int64
}

// NewVec returns a Vec resource named name (used only by Path),
// exposing data for reading.
func NewVec(name string, data []byte) *Vec {
	return &Vec{name: name, data: data}
}

// Read implements Resource.
func (v *Vec) Read(buf []byte) (int, error) {
	if v.offset >= int64(len(v.data)) {
		return 0, nil
	}
	n := copy(buf, v.data[v.offset:])
	v.offset += int64(n)
	return n, nil
}

// Seek implements Resource.
func (v *Vec) Seek(offset int64, whence Whence) (int64, error) {
	var base int64
	switch whence {
	case SeekStart:
		base = 0
	case SeekCurrent:
		base = v.offset
	case SeekEnd:
		base = int64(len(v.data))
	default:
		return 0, errno.New(errno.EINVAL, "seek")
	}
	v.offset = base + offset
	return v.offset, nil
}

// Stat implements Resource.
func (v *Vec) Stat(out *stat.Stat) error {
	out.Mode = stat.ModeFile
	out.Size = uint64(len(v.data))
	return nil
}

// Dup implements Resource, sharing the same backing bytes but an
// independent offset snapshot at dup time — matching a regular file's
// dup semantics isn't required here since Vec content never changes.
func (v *Vec) Dup() (Resource, error) {
	return &Vec{name: v.name, data: v.data, offset: v.offset}, nil
}

// Path implements Resource.
func (v *Vec) Path(buf []byte) (int, error) {
	return copy(buf, []byte(v.name)), nil
}

// Close implements Resource.
func (v *Vec) Close() error { return nil }
