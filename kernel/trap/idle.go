package trap

import "github.com/vvlevchenko/mini32k/kernel/task"

// IdleLoop implements spec.md §4.7: with interrupts conceptually
// disabled, check whether every context but the root is blocked. If
// so, halt until the next interrupt; otherwise yield one instruction
// and switch. There is no real `cli`/`sti`/`hlt` in a hosted process,
// so this single pass is the whole of the idle loop's one iteration;
// callers (vector 0xFF, or a test driving the boot sequence) invoke it
// once per tick of the host's own event loop rather than spinning
// forever, which is the hosted equivalent of "halt until interrupt".
func (d *Dispatcher) IdleLoop() {
	d.Env.Contexts.With(func(m *task.Manager) {
		if m.AllBlockedExceptRoot() {
			return
		}
		m.Switch()
	})
}
