// Package fsyscall implements the file syscall family (spec.md §4.5):
// the layer translating (fd, path, flags) tuples into Resource and
// Environment calls on behalf of the current context.
//
// Grounded on the teacher's container/syscalls.go — a thin package of
// one-function-per-syscall wrappers — generalized from "wrap one host
// syscall" to "wrap one kernel operation". Every function here follows
// the same two-phase shape the design notes require: acquire the
// contexts lock just long enough to resolve the current context and
// its fd table, release it, then perform any I/O that might block
// outside the lock.
package fsyscall

import (
	"github.com/vvlevchenko/mini32k/kernel/environment"
	"github.com/vvlevchenko/mini32k/kernel/errno"
	"github.com/vvlevchenko/mini32k/kernel/intex"
	"github.com/vvlevchenko/mini32k/kernel/kurl"
	"github.com/vvlevchenko/mini32k/kernel/pipe"
	"github.com/vvlevchenko/mini32k/kernel/resource"
	"github.com/vvlevchenko/mini32k/kernel/stat"
	"github.com/vvlevchenko/mini32k/kernel/task"

	"golang.org/x/sys/unix"
)

// SEEK_* values, matching the host's numeric lseek whence constants
// (spec.md §4.5).
const (
	SeekSet = unix.SEEK_SET
	SeekCur = unix.SEEK_CUR
	SeekEnd = unix.SEEK_END
)

// canonicalize resolves pathC against the current context's cwd.
func canonicalize(env *environment.Environment, pathC string) (string, error) {
	return intex.WithErr(env.Contexts, func(m *task.Manager) (string, error) {
		ctx, err := m.Current()
		if err != nil {
			return "", err
		}
		return ctx.Canonicalize(pathC), nil
	})
}

// getFile resolves fd to a Resource in the current context.
func getFile(env *environment.Environment, fd int) (resource.Resource, error) {
	return intex.WithErr(env.Contexts, func(m *task.Manager) (resource.Resource, error) {
		ctx, err := m.Current()
		if err != nil {
			return nil, err
		}
		return ctx.GetFile(fd)
	})
}

// installFile installs r under the next free fd in the current
// context and returns that fd.
func installFile(env *environment.Environment, r resource.Resource) (int, error) {
	return intex.WithErr(env.Contexts, func(m *task.Manager) (int, error) {
		ctx, err := m.Current()
		if err != nil {
			return 0, err
		}
		return ctx.AddFile(r), nil
	})
}

// removeFile removes fd from the current context's fd table.
func removeFile(env *environment.Environment, fd int) (resource.Resource, error) {
	return intex.WithErr(env.Contexts, func(m *task.Manager) (resource.Resource, error) {
		ctx, err := m.Current()
		if err != nil {
			return nil, err
		}
		return ctx.RemoveFile(fd)
	})
}

// Open canonicalizes path_c against cwd, parses it as a URL, delegates
// to the Environment, and installs the returned resource under a new
// fd in the current context (spec.md §4.5).
func Open(env *environment.Environment, pathC string, flags int) (int, error) {
	p, err := canonicalize(env, pathC)
	if err != nil {
		return -1, err
	}
	url, err := kurl.Parse(p)
	if err != nil {
		return -1, err
	}
	r, err := env.Open(url, flags)
	if err != nil {
		return -1, err
	}
	fd, err := installFile(env, r)
	if err != nil {
		r.Close()
		return -1, err
	}
	return fd, nil
}

// Close removes fd from the current context's table and drops it.
func Close(env *environment.Environment, fd int) error {
	r, err := removeFile(env, fd)
	if err != nil {
		return err
	}
	return r.Close()
}

// Dup clones fd's resource via Resource.Dup and installs the clone
// under a fresh fd.
func Dup(env *environment.Environment, fd int) (int, error) {
	r, err := getFile(env, fd)
	if err != nil {
		return -1, err
	}
	dup, err := r.Dup()
	if err != nil {
		return -1, err
	}
	newFD, err := installFile(env, dup)
	if err != nil {
		dup.Close()
		return -1, err
	}
	return newFD, nil
}

// Read forwards to fd's Resource. Short reads are permitted.
func Read(env *environment.Environment, fd int, buf []byte) (int, error) {
	r, err := getFile(env, fd)
	if err != nil {
		return 0, err
	}
	return r.Read(buf)
}

// Write forwards to fd's Resource. Short writes are permitted.
func Write(env *environment.Environment, fd int, buf []byte) (int, error) {
	r, err := getFile(env, fd)
	if err != nil {
		return 0, err
	}
	return r.Write(buf)
}

// Lseek maps the numeric whence value and forwards to fd's Resource.
func Lseek(env *environment.Environment, fd int, offset int64, whence int) (int64, error) {
	var w resource.Whence
	switch whence {
	case SeekSet:
		w = resource.SeekStart
	case SeekCur:
		w = resource.SeekCurrent
	case SeekEnd:
		w = resource.SeekEnd
	default:
		return -1, errno.New(errno.EINVAL, "lseek")
	}
	r, err := getFile(env, fd)
	if err != nil {
		return -1, err
	}
	return r.Seek(offset, w)
}

// Stat canonicalizes path_c, parses it as a URL, and delegates to the
// Environment. out must be non-nil (spec.md §4.5's "translate user
// pointer ... failing EFAULT if the pointer is null").
func Stat(env *environment.Environment, pathC string, out *stat.Stat) error {
	if out == nil {
		return errno.ErrNilPointer
	}
	p, err := canonicalize(env, pathC)
	if err != nil {
		return err
	}
	url, err := kurl.Parse(p)
	if err != nil {
		return err
	}
	return env.Stat(url, out)
}

// Fstat delegates to fd's Resource.Stat. out must be non-nil.
func Fstat(env *environment.Environment, fd int, out *stat.Stat) error {
	if out == nil {
		return errno.ErrNilPointer
	}
	r, err := getFile(env, fd)
	if err != nil {
		return err
	}
	return r.Stat(out)
}

// Fpath delegates to fd's Resource.Path.
func Fpath(env *environment.Environment, fd int, buf []byte) (int, error) {
	r, err := getFile(env, fd)
	if err != nil {
		return 0, err
	}
	return r.Path(buf)
}

// Fsync delegates to fd's Resource.Sync.
func Fsync(env *environment.Environment, fd int) error {
	r, err := getFile(env, fd)
	if err != nil {
		return err
	}
	return r.Sync()
}

// Ftruncate delegates to fd's Resource.Truncate.
func Ftruncate(env *environment.Environment, fd int, length int64) error {
	r, err := getFile(env, fd)
	if err != nil {
		return err
	}
	return r.Truncate(length)
}

// Mkdir canonicalizes path_c then delegates to the Environment.
func Mkdir(env *environment.Environment, pathC string, flags int) error {
	p, err := canonicalize(env, pathC)
	if err != nil {
		return err
	}
	url, err := kurl.Parse(p)
	if err != nil {
		return err
	}
	return env.Mkdir(url, flags)
}

// Rmdir canonicalizes path_c then delegates to the Environment.
func Rmdir(env *environment.Environment, pathC string) error {
	p, err := canonicalize(env, pathC)
	if err != nil {
		return err
	}
	url, err := kurl.Parse(p)
	if err != nil {
		return err
	}
	return env.Rmdir(url)
}

// Unlink canonicalizes path_c then delegates to the Environment.
func Unlink(env *environment.Environment, pathC string) error {
	p, err := canonicalize(env, pathC)
	if err != nil {
		return err
	}
	url, err := kurl.Parse(p)
	if err != nil {
		return err
	}
	return env.Unlink(url)
}

// Chdir canonicalizes path_c, confirms it names a directory, then
// installs it as the current context's cwd.
func Chdir(env *environment.Environment, pathC string) error {
	p, err := canonicalize(env, pathC)
	if err != nil {
		return err
	}
	url, err := kurl.Parse(p)
	if err != nil {
		return err
	}
	var st stat.Stat
	if err := env.Stat(url, &st); err != nil {
		return err
	}
	if !st.IsDir() {
		return errno.New(errno.ENOTDIR, "chdir")
	}
	_, err = intex.WithErr(env.Contexts, func(m *task.Manager) (struct{}, error) {
		ctx, err := m.Current()
		if err != nil {
			return struct{}{}, err
		}
		ctx.Cwd = p
		return struct{}{}, nil
	})
	return err
}

// Pipe2 constructs an in-memory pipe and installs both endpoints in
// the current context, writing their fds into outFds (spec.md §4.5).
// outFds must be non-nil. flags is accepted for ABI compatibility; no
// pipe flags are currently defined.
func Pipe2(env *environment.Environment, outFds *[2]int, flags int) error {
	if outFds == nil {
		return errno.ErrNilPointer
	}
	r, w := pipe.New()
	readFD, err := installFile(env, r)
	if err != nil {
		r.Close()
		w.Close()
		return err
	}
	writeFD, err := installFile(env, w)
	if err != nil {
		removeFile(env, readFD)
		r.Close()
		w.Close()
		return err
	}
	outFds[0] = readFD
	outFds[1] = writeFD
	return nil
}
