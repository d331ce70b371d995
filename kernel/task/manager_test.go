package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvlevchenko/mini32k/kernel/errno"
)

func TestCurrentWithNoContextsIsESRCH(t *testing.T) {
	m := NewManager()
	_, err := m.Current()
	require.Error(t, err)
	assert.True(t, errno.Is(err, errno.ESRCH))
}

func TestPushFirstContextBecomesCurrent(t *testing.T) {
	m := NewManager()
	root := NewContext(m.AllocatePID(), "root")
	m.Push(root)

	cur, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, root.PID, cur.PID)
}

func TestSwitchIsNoOpWhileDisabled(t *testing.T) {
	m := NewManager()
	a := NewContext(m.AllocatePID(), "a")
	b := NewContext(m.AllocatePID(), "b")
	m.Push(a)
	m.Push(b)

	m.Switch()
	cur, _ := m.Current()
	assert.Equal(t, a.PID, cur.PID)
}

func TestSwitchRoundRobinsOverRunnable(t *testing.T) {
	m := NewManager()
	m.Enable()
	a := NewContext(m.AllocatePID(), "a")
	b := NewContext(m.AllocatePID(), "b")
	c := NewContext(m.AllocatePID(), "c")
	m.Push(a)
	m.Push(b)
	m.Push(c)

	m.Switch()
	cur, _ := m.Current()
	assert.Equal(t, b.PID, cur.PID)

	m.Switch()
	cur, _ = m.Current()
	assert.Equal(t, c.PID, cur.PID)

	m.Switch()
	cur, _ = m.Current()
	assert.Equal(t, a.PID, cur.PID)
}

func TestSwitchSkipsBlockedContexts(t *testing.T) {
	m := NewManager()
	m.Enable()
	a := NewContext(m.AllocatePID(), "a")
	b := NewContext(m.AllocatePID(), "b")
	c := NewContext(m.AllocatePID(), "c")
	b.Blocked = true
	m.Push(a)
	m.Push(b)
	m.Push(c)

	m.Switch()
	cur, _ := m.Current()
	assert.Equal(t, c.PID, cur.PID, "should skip blocked b")
}

func TestSwitchNoOpWhenAllBlocked(t *testing.T) {
	m := NewManager()
	m.Enable()
	a := NewContext(m.AllocatePID(), "a")
	b := NewContext(m.AllocatePID(), "b")
	b.Blocked = true
	m.Push(a)
	m.Push(b)

	m.Switch() // a is current and also the only runnable one after itself
	cur, _ := m.Current()
	assert.Equal(t, a.PID, cur.PID)
}

func TestRemoveDestroysAndReindexes(t *testing.T) {
	m := NewManager()
	a := NewContext(m.AllocatePID(), "a")
	b := NewContext(m.AllocatePID(), "b")
	m.Push(a)
	m.Push(b)

	ok := m.Remove(a.PID)
	require.True(t, ok)

	cur, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, b.PID, cur.PID)

	_, found := m.ByPID(a.PID)
	assert.False(t, found)
}

func TestAllBlockedExceptRoot(t *testing.T) {
	m := NewManager()
	root := NewContext(m.AllocatePID(), "root")
	worker := NewContext(m.AllocatePID(), "worker")
	worker.Blocked = true
	m.Push(root)
	m.Push(worker)

	assert.True(t, m.AllBlockedExceptRoot())

	worker.Blocked = false
	assert.False(t, m.AllBlockedExceptRoot())
}
