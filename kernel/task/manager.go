package task

import "github.com/vvlevchenko/mini32k/kernel/errno"

// Manager holds an insertion-ordered sequence of contexts and performs
// round-robin scheduling among the runnable ones (spec.md §4.4).
type Manager struct {
	contexts   []*Context
	currentIdx int
	enabled    bool
	nextPID    int
}

// NewManager returns an empty Manager with scheduling disabled (the
// early-boot state spec.md §4.4 describes).
func NewManager() *Manager {
	return &Manager{currentIdx: -1}
}

// AllocatePID returns the next monotonically increasing PID.
func (m *Manager) AllocatePID() int {
	pid := m.nextPID
	m.nextPID++
	return pid
}

// Push appends ctx to the ordered context list. If it is the first
// context pushed, it becomes current.
func (m *Manager) Push(ctx *Context) {
	m.contexts = append(m.contexts, ctx)
	if m.currentIdx < 0 {
		m.currentIdx = 0
	}
}

// Remove drops the context with the given pid (destruction on exit or
// fatal fault). Reports whether a context was found.
func (m *Manager) Remove(pid int) bool {
	for i, c := range m.contexts {
		if c.PID == pid {
			c.Destroy()
			m.contexts = append(m.contexts[:i], m.contexts[i+1:]...)
			if len(m.contexts) == 0 {
				m.currentIdx = -1
			} else if m.currentIdx >= len(m.contexts) {
				m.currentIdx = 0
			} else if i < m.currentIdx {
				m.currentIdx--
			}
			return true
		}
	}
	return false
}

// Current returns the currently running context, or ESRCH if none
// exists (spec.md §4.4).
func (m *Manager) Current() (*Context, error) {
	if m.currentIdx < 0 || m.currentIdx >= len(m.contexts) {
		return nil, errno.ErrNoCurrentContext
	}
	return m.contexts[m.currentIdx], nil
}

// ByPID returns the context with the given pid, if present.
func (m *Manager) ByPID(pid int) (*Context, bool) {
	for _, c := range m.contexts {
		if c.PID == pid {
			return c, true
		}
	}
	return nil, false
}

// All returns the ordered list of live contexts. The slice is a copy;
// mutating it does not affect the manager.
func (m *Manager) All() []*Context {
	out := make([]*Context, len(m.contexts))
	copy(out, m.contexts)
	return out
}

// Enable turns on scheduling; Switch is a no-op until this is called
// (spec.md §4.4's early-boot state).
func (m *Manager) Enable() { m.enabled = true }

// Enabled reports whether scheduling is turned on.
func (m *Manager) Enabled() bool { return m.enabled }

// Switch advances to the next runnable (unblocked) context after the
// current one, in round-robin order. A no-op while disabled or when no
// other context is runnable.
func (m *Manager) Switch() {
	if !m.enabled {
		return
	}
	n := len(m.contexts)
	if n == 0 {
		return
	}
	for i := 1; i <= n; i++ {
		idx := (m.currentIdx + i) % n
		if !m.contexts[idx].Blocked {
			m.currentIdx = idx
			return
		}
	}
}

// AllBlockedExceptRoot reports whether every context but the first
// (the root context, index 0) is blocked — the idle-loop halt
// condition in spec.md §4.7.
func (m *Manager) AllBlockedExceptRoot() bool {
	for i, c := range m.contexts {
		if i == 0 {
			continue
		}
		if !c.Blocked {
			return false
		}
	}
	return true
}
