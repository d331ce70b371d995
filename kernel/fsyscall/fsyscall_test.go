package fsyscall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvlevchenko/mini32k/kernel/environment"
	"github.com/vvlevchenko/mini32k/kernel/errno"
	"github.com/vvlevchenko/mini32k/kernel/intex"
	"github.com/vvlevchenko/mini32k/kernel/kurl"
	"github.com/vvlevchenko/mini32k/kernel/resource"
	"github.com/vvlevchenko/mini32k/kernel/scheme"
	"github.com/vvlevchenko/mini32k/kernel/stat"
	"github.com/vvlevchenko/mini32k/kernel/task"
)

// memFile is a minimal seekable, writable, truncatable in-memory file
// used only to exercise the syscall surface end to end.
type memFile struct {
	resource.Unsupported
	data   []byte
	offset int64
}

func (f *memFile) Read(buf []byte) (int, error) {
	if f.offset >= int64(len(f.data)) {
		return 0, nil
	}
	n := copy(buf, f.data[f.offset:])
	f.offset += int64(n)
	return n, nil
}

func (f *memFile) Write(buf []byte) (int, error) {
	end := f.offset + int64(len(buf))
	if end > int64(len(f.data)) {
		grown := make([]byte, end)
		copy(grown, f.data)
		f.data = grown
	}
	copy(f.data[f.offset:end], buf)
	f.offset = end
	return len(buf), nil
}

func (f *memFile) Seek(offset int64, whence resource.Whence) (int64, error) {
	var base int64
	switch whence {
	case resource.SeekStart:
		base = 0
	case resource.SeekCurrent:
		base = f.offset
	case resource.SeekEnd:
		base = int64(len(f.data))
	}
	f.offset = base + offset
	return f.offset, nil
}

func (f *memFile) Stat(out *stat.Stat) error {
	out.Mode = stat.ModeFile
	out.Size = uint64(len(f.data))
	return nil
}

func (f *memFile) Truncate(length int64) error {
	if length <= int64(len(f.data)) {
		f.data = f.data[:length]
	} else {
		grown := make([]byte, length)
		copy(grown, f.data)
		f.data = grown
	}
	return nil
}

func (f *memFile) Sync() error { return nil }

func (f *memFile) Path(buf []byte) (int, error) {
	return copy(buf, []byte("mem:/file")), nil
}

func (f *memFile) Close() error { return nil }

// memScheme serves a single memFile at any path; mkdir/rmdir/unlink
// are no-ops that succeed, so Mkdir/Rmdir/Unlink syscalls have
// something to route to.
type memScheme struct {
	scheme.Base
	file *memFile
}

func newMemScheme(name string, data []byte) *memScheme {
	return &memScheme{Base: scheme.Base{SchemeName: name}, file: &memFile{data: data}}
}

func (s *memScheme) Open(url kurl.URL, flags int) (resource.Resource, error) {
	return s.file, nil
}

func (s *memScheme) Mkdir(url kurl.URL, flags int) error { return nil }
func (s *memScheme) Rmdir(url kurl.URL) error            { return nil }
func (s *memScheme) Stat(url kurl.URL, out *stat.Stat) error {
	return s.file.Stat(out)
}
func (s *memScheme) Unlink(url kurl.URL) error { return nil }

func setupEnv(t *testing.T) *environment.Environment {
	t.Helper()
	env := environment.New()
	intex.With(env.Contexts, func(m *task.Manager) {
		m.Push(task.NewContext(m.AllocatePID(), "init"))
	})
	return env
}

func TestOpenCloseRoundTrip(t *testing.T) {
	env := setupEnv(t)
	require.NoError(t, env.RegisterScheme(newMemScheme("mem", nil)))

	fd, err := Open(env, "mem:/file", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, fd)

	require.NoError(t, Close(env, fd))
	_, err = Read(env, fd, make([]byte, 1))
	require.Error(t, err)
	assert.True(t, errno.Is(err, errno.EBADF))
}

func TestWriteThenReadBack(t *testing.T) {
	env := setupEnv(t)
	require.NoError(t, env.RegisterScheme(newMemScheme("mem", nil)))

	fd, err := Open(env, "mem:/file", 0)
	require.NoError(t, err)

	n, err := Write(env, fd, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = Lseek(env, fd, 0, SeekSet)
	require.NoError(t, err)

	buf := make([]byte, 5)
	n, err = Read(env, fd, buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestLseekSeekEndAndInvalidWhence(t *testing.T) {
	env := setupEnv(t)
	require.NoError(t, env.RegisterScheme(newMemScheme("mem", make([]byte, 100))))

	fd, err := Open(env, "mem:/file", 0)
	require.NoError(t, err)

	off, err := Lseek(env, fd, 10, SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(110), off)

	_, err = Lseek(env, fd, 0, 99)
	require.Error(t, err)
	assert.True(t, errno.Is(err, errno.EINVAL))
}

func TestDupOnNonDupableResourceIsEINVAL(t *testing.T) {
	env := setupEnv(t)
	require.NoError(t, env.RegisterScheme(newMemScheme("mem", nil)))

	fd, err := Open(env, "mem:/file", 0)
	require.NoError(t, err)

	// memFile does not override Dup, so it falls back to
	// resource.Unsupported and fails EINVAL.
	_, err = Dup(env, fd)
	require.Error(t, err)
	assert.True(t, errno.Is(err, errno.EINVAL))
}

func TestDupPipeEndpointSharesBuffer(t *testing.T) {
	env := setupEnv(t)

	var fds [2]int
	require.NoError(t, Pipe2(env, &fds, 0))

	dupWriteFD, err := Dup(env, fds[1])
	require.NoError(t, err)

	_, err = Write(env, dupWriteFD, []byte("dup"))
	require.NoError(t, err)

	buf := make([]byte, 16)
	n, err := Read(env, fds[0], buf)
	require.NoError(t, err)
	assert.Equal(t, "dup", string(buf[:n]))
}

func TestStatFstatFpath(t *testing.T) {
	env := setupEnv(t)
	require.NoError(t, env.RegisterScheme(newMemScheme("mem", []byte("xyz"))))

	var st stat.Stat
	require.NoError(t, Stat(env, "mem:/file", &st))
	assert.Equal(t, uint64(3), st.Size)

	fd, err := Open(env, "mem:/file", 0)
	require.NoError(t, err)

	var fst stat.Stat
	require.NoError(t, Fstat(env, fd, &fst))
	assert.Equal(t, uint64(3), fst.Size)

	buf := make([]byte, 32)
	n, err := Fpath(env, fd, buf)
	require.NoError(t, err)
	assert.Equal(t, "mem:/file", string(buf[:n]))
}

func TestFsyncFtruncate(t *testing.T) {
	env := setupEnv(t)
	require.NoError(t, env.RegisterScheme(newMemScheme("mem", []byte("123456"))))

	fd, err := Open(env, "mem:/file", 0)
	require.NoError(t, err)

	require.NoError(t, Fsync(env, fd))
	require.NoError(t, Ftruncate(env, fd, 2))

	var st stat.Stat
	require.NoError(t, Fstat(env, fd, &st))
	assert.Equal(t, uint64(2), st.Size)
}

func TestMkdirRmdirUnlinkRouteThroughScheme(t *testing.T) {
	env := setupEnv(t)
	require.NoError(t, env.RegisterScheme(newMemScheme("mem", nil)))

	require.NoError(t, Mkdir(env, "mem:/d", 0))
	require.NoError(t, Rmdir(env, "mem:/d"))
	require.NoError(t, Unlink(env, "mem:/d"))
}

func TestChdirRejectsNonDirectory(t *testing.T) {
	env := setupEnv(t)
	require.NoError(t, env.RegisterScheme(newMemScheme("mem", []byte("x"))))

	err := Chdir(env, "mem:/file")
	require.Error(t, err)
	assert.True(t, errno.Is(err, errno.ENOTDIR))
}

func TestPipe2EOFAndBrokenPipe(t *testing.T) {
	env := setupEnv(t)

	var fds [2]int
	require.NoError(t, Pipe2(env, &fds, 0))

	n, err := Write(env, fds[1], []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	require.NoError(t, Close(env, fds[1]))

	buf := make([]byte, 16)
	n, err = Read(env, fds[0], buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))

	n, err = Read(env, fds[0], buf)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPipe2SeekIsESPIPE(t *testing.T) {
	env := setupEnv(t)

	var fds [2]int
	require.NoError(t, Pipe2(env, &fds, 0))

	_, err := Lseek(env, fds[0], -200, SeekCur)
	require.Error(t, err)
	assert.True(t, errno.Is(err, errno.ESPIPE))
}

func TestStatNilPointerIsEFAULT(t *testing.T) {
	env := setupEnv(t)
	require.NoError(t, env.RegisterScheme(newMemScheme("mem", []byte("x"))))

	err := Stat(env, "mem:/file", nil)
	require.Error(t, err)
	assert.True(t, errno.Is(err, errno.EFAULT))
}

func TestFstatNilPointerIsEFAULT(t *testing.T) {
	env := setupEnv(t)
	require.NoError(t, env.RegisterScheme(newMemScheme("mem", []byte("x"))))

	fd, err := Open(env, "mem:/file", 0)
	require.NoError(t, err)

	err = Fstat(env, fd, nil)
	require.Error(t, err)
	assert.True(t, errno.Is(err, errno.EFAULT))
}

func TestPipe2NilOutFDsIsEFAULT(t *testing.T) {
	env := setupEnv(t)

	err := Pipe2(env, nil, 0)
	require.Error(t, err)
	assert.True(t, errno.Is(err, errno.EFAULT))
}
