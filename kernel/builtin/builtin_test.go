package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvlevchenko/mini32k/kernel/environment"
	"github.com/vvlevchenko/mini32k/kernel/kurl"
	"github.com/vvlevchenko/mini32k/kernel/task"
)

func TestTestSchemeEchoRoundTrip(t *testing.T) {
	s := NewTestScheme()
	url, _ := kurl.Parse("test:")
	res, err := s.Open(url, 0)
	require.NoError(t, err)

	n, err := res.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = res.Seek(0, 0)
	require.NoError(t, err)

	buf := make([]byte, 16)
	n, err = res.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestKlogSchemeSnapshotsRing(t *testing.T) {
	env := environment.New()
	env.Log(environment.LogInfo, "boot complete")
	env.Log(environment.LogError, "oops")

	s := NewKlogScheme(env)
	url, _ := kurl.Parse("klog:")
	res, err := s.Open(url, 0)
	require.NoError(t, err)

	buf := make([]byte, 256)
	n, err := res.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "info: boot complete\nerror: oops", string(buf[:n]))
}

func TestInterruptSchemeReportsCounts(t *testing.T) {
	env := environment.New()
	env.Interrupts.With(func(counts *[256]uint64) {
		counts[0x20] = 42
	})

	s := NewInterruptScheme(env)
	url, _ := kurl.Parse("interrupt:32")
	res, err := s.Open(url, 0)
	require.NoError(t, err)

	buf := make([]byte, 16)
	n, err := res.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "42", string(buf[:n]))
}

func TestContextSchemeListsAndLooksUpByPID(t *testing.T) {
	env := environment.New()
	env.Contexts.With(func(m *task.Manager) {
		m.Push(task.NewContext(m.AllocatePID(), "kernel"))
		m.Push(task.NewContext(m.AllocatePID(), "kinit"))
	})

	s := NewContextScheme(env)

	allURL, _ := kurl.Parse("context:")
	res, err := s.Open(allURL, 0)
	require.NoError(t, err)
	buf := make([]byte, 256)
	n, err := res.Read(buf)
	require.NoError(t, err)
	assert.Contains(t, string(buf[:n]), "kernel")
	assert.Contains(t, string(buf[:n]), "kinit")

	oneURL, _ := kurl.Parse("context:1")
	res, err = s.Open(oneURL, 0)
	require.NoError(t, err)
	n, err = res.Read(buf)
	require.NoError(t, err)
	assert.Contains(t, string(buf[:n]), "kinit")
}

func TestInitfsSchemeServesFilesAndDirectories(t *testing.T) {
	s := NewInitfsScheme(map[string][]byte{
		"/bin/init": []byte("#!binary"),
	})

	fileURL, _ := kurl.Parse("initfs:/bin/init")
	res, err := s.Open(fileURL, 0)
	require.NoError(t, err)
	buf := make([]byte, 32)
	n, err := res.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "#!binary", string(buf[:n]))

	dirURL, _ := kurl.Parse("initfs:/bin")
	res, err = s.Open(dirURL, 0)
	require.NoError(t, err)
	n, err = res.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "init", string(buf[:n]))

	missingURL, _ := kurl.Parse("initfs:/nope")
	_, err = s.Open(missingURL, 0)
	require.Error(t, err)
}

func TestDiskSchemeReadWriteRoundTrip(t *testing.T) {
	d := newMemDisk(4)
	env := environment.New()
	env.Disks.With(func(disks *[]environment.Disk) {
		*disks = append(*disks, d)
	})

	s := NewDiskScheme(env)
	url, _ := kurl.Parse("disk:/0")
	res, err := s.Open(url, 0)
	require.NoError(t, err)

	n, err := res.Write([]byte("hello disk"))
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	_, err = res.Seek(0, 0)
	require.NoError(t, err)
	buf := make([]byte, 10)
	n, err = res.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello disk", string(buf[:n]))
}

func TestInstallOrdersBuiltinSchemes(t *testing.T) {
	env := environment.New()
	schemes := Install(env, Config{})
	var names []string
	for _, s := range schemes {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{
		"debug", "initfs", "context", "display", "env",
		"interrupt", "klog", "memory", "test", "disk", "network",
	}, names)
}

// memDisk is a tiny in-memory environment.Disk used only by tests.
type memDisk struct {
	blocks [][blockSize]byte
}

func newMemDisk(nBlocks int) *memDisk {
	return &memDisk{blocks: make([][blockSize]byte, nBlocks)}
}

func (d *memDisk) ReadAt(block uint64, buf []byte) (int, error) {
	if int(block) >= len(d.blocks) {
		return 0, nil
	}
	return copy(buf, d.blocks[block][:]), nil
}

func (d *memDisk) WriteAt(block uint64, buf []byte) (int, error) {
	if int(block) >= len(d.blocks) {
		return 0, nil
	}
	return copy(d.blocks[block][:], buf), nil
}

func (d *memDisk) Size() uint64 { return uint64(len(d.blocks)) }
