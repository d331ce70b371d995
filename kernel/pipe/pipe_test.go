package pipe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvlevchenko/mini32k/kernel/errno"
)

func TestWriteThenReadRoundTrips(t *testing.T) {
	r, w := New()
	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	buf := make([]byte, 16)
	n, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestReadAfterWriterClosesReturnsEOF(t *testing.T) {
	r, w := New()
	_, err := w.Write([]byte("abcde"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	buf := make([]byte, 16)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestWriteAfterReaderClosedIsEPIPE(t *testing.T) {
	r, w := New()
	require.NoError(t, r.Close())

	_, err := w.Write([]byte("x"))
	require.Error(t, err)
	assert.True(t, errno.Is(err, errno.EPIPE))
}

func TestReadBlocksUntilWrite(t *testing.T) {
	r, w := New()
	done := make(chan string, 1)
	go func() {
		buf := make([]byte, 16)
		n, err := r.Read(buf)
		if err != nil {
			done <- "error: " + err.Error()
			return
		}
		done <- string(buf[:n])
	}()

	select {
	case <-done:
		t.Fatal("read returned before any write")
	case <-time.After(50 * time.Millisecond):
	}

	_, err := w.Write([]byte("late"))
	require.NoError(t, err)

	select {
	case got := <-done:
		assert.Equal(t, "late", got)
	case <-time.After(time.Second):
		t.Fatal("read did not unblock after write")
	}
}

func TestFullBufferBlocksWriterUntilDrained(t *testing.T) {
	r, w := New()
	full := make([]byte, capacity)
	n, err := w.Write(full)
	require.NoError(t, err)
	require.Equal(t, capacity, n)

	blocked := make(chan struct{})
	go func() {
		_, _ = w.Write([]byte("more"))
		close(blocked)
	}()

	select {
	case <-blocked:
		t.Fatal("write returned while buffer was full")
	case <-time.After(50 * time.Millisecond):
	}

	drain := make([]byte, capacity)
	_, err = r.Read(drain)
	require.NoError(t, err)

	select {
	case <-blocked:
	case <-time.After(time.Second):
		t.Fatal("write did not unblock after drain")
	}
}
