package resource

import (
	"github.com/vvlevchenko/mini32k/kernel/errno"
	"github.com/vvlevchenko/mini32k/kernel/stat"
)

// Unsupported can be embedded by a Resource implementation to get
// EINVAL (or ESPIPE for Seek) on every capability it doesn't override,
// matching the "default behavior" spec.md §4.2 requires. Close is a
// no-op that succeeds.
type Unsupported struct{}

func (Unsupported) Read([]byte) (int, error)  { return 0, errno.ErrUnsupported }
func (Unsupported) Write([]byte) (int, error) { return 0, errno.ErrUnsupported }
func (Unsupported) Seek(int64, Whence) (int64, error) {
	return 0, errno.ErrNotSeekable
}
func (Unsupported) Stat(*stat.Stat) error       { return errno.ErrUnsupported }
func (Unsupported) Dup() (Resource, error)      { return nil, errno.ErrUnsupported }
func (Unsupported) Truncate(int64) error        { return errno.ErrUnsupported }
func (Unsupported) Sync() error                 { return errno.ErrUnsupported }
func (Unsupported) Path([]byte) (int, error)    { return 0, errno.ErrUnsupported }
func (Unsupported) Close() error                { return nil }
