// Package stat defines the POSIX-like record providers fill in on the
// stat/fstat syscalls (spec.md §3/§6).
package stat

// Mode bits, mirroring the subset of golang.org/x/sys/unix's S_IF*
// constants the kernel core cares about.
const (
	ModeDir  uint32 = 0o040000
	ModeFile uint32 = 0o100000
	ModeFifo uint32 = 0o010000
	ModeChar uint32 = 0o020000
)

// Stat is the fixed record a Scheme populates on stat/fstat. Field
// names and meaning follow POSIX struct stat (and, in spirit,
// golang.org/x/sys/unix.Stat_t), trimmed to what a scheme can
// plausibly report in a microkernel with no POSIX permission model.
type Stat struct {
	// Mode holds the file-type bits (ModeDir, ModeFile, ModeFifo, ...).
	Mode uint32
	// Size is the resource's logical size in bytes.
	Size uint64
	// Blocks is the number of 512-byte blocks backing the resource.
	Blocks uint64
	// Mtime is the last-modified time, Unix seconds.
	Mtime int64
	// MtimeNsec is the sub-second part of Mtime.
	MtimeNsec int32
}

// IsDir reports whether Mode carries the directory bit.
func (s Stat) IsDir() bool { return s.Mode&ModeDir != 0 }
