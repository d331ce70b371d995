package trap

import (
	"fmt"

	"github.com/vvlevchenko/mini32k/kernel/duration"
	"github.com/vvlevchenko/mini32k/kernel/environment"
	"github.com/vvlevchenko/mini32k/kernel/intex"
	"github.com/vvlevchenko/mini32k/kernel/task"
)

// ExitMax is the original kernel's usize::MAX exit status for a
// faulting context (spec.md §4.6/§7). Contexts carry no exit status in
// this port, so the dispatcher does not record it anywhere.
const ExitMax = ^uint(0)

// Dispatcher is the kernel's single trap entry point (spec.md §4.6).
// Env is required; PIC and Boot may be nil (PIC writes are then
// skipped, and vector 0xFF becomes a no-op init with no boot
// sequence), which is convenient for unit tests that only want to
// exercise tick/IRQ/syscall/fault handling.
type Dispatcher struct {
	Env  *environment.Environment
	PIC  PIC
	Boot func(env *environment.Environment, tssPhysAddr uint32)
}

// Dispatch is the kernel's single trap entry point: `kernel(vector,
// regs)` (spec.md §4.6). It classifies vector, runs the matching
// handler, then sends EOI for the IRQ range.
func (d *Dispatcher) Dispatch(vector uint8, regs *Regs) {
	if vector < 0xFF {
		d.Env.Interrupts.With(func(counts *[256]uint64) {
			counts[vector]++
		})
	}

	switch {
	case vector == 0x20:
		d.tick()
	case vector >= 0x21 && vector <= 0x2F:
		d.Env.OnIRQ(vector - 0x20)
	case vector == 0x80:
		d.Syscall(regs)
	case vector == 0xFF:
		if d.Boot != nil {
			d.Boot(d.Env, regs.AX)
		}
		d.IdleLoop()
	default:
		d.fault(vector, regs)
	}

	if vector >= 0x20 && vector < 0x30 {
		sendEOI(d.PIC, vector)
	}
}

// tick implements vector 0x20: advance both clocks by PITDuration,
// account the tick against the current context, then reschedule.
func (d *Dispatcher) tick() {
	d.Env.ClockMonotonic.With(func(c *duration.Duration) {
		*c = c.Add(duration.PITDuration)
	})
	d.Env.ClockRealtime.With(func(c *duration.Duration) {
		*c = c.Add(duration.PITDuration)
	})
	d.Env.Contexts.With(func(m *task.Manager) {
		if ctx, err := m.Current(); err == nil {
			ctx.Time++
		}
		m.Switch()
	})
}

// fault implements the CPU-exception vectors (0x00-0x1F and any
// unrecognized vector): log the fault and remove the current context
// (spec.md §4.6/§7); no exit status is recorded.
func (d *Dispatcher) fault(vector uint8, regs *Regs) {
	if errorCodeVectors[vector] {
		rotateErrorFrame(regs)
	}

	pid, name := d.currentIdentity()
	d.Env.Log(environment.LogError, fmt.Sprintf("PID %d: %s", pid, name))

	d.Env.Log(environment.LogError, fmt.Sprintf(
		"  INT %X: %s", vector, faultName(vector)))
	d.Env.Log(environment.LogError, fmt.Sprintf(
		"    CS:  %08X    IP:  %08X    FLG: %08X", regs.CS, regs.IP, regs.Flags))
	d.Env.Log(environment.LogError, fmt.Sprintf(
		"    SS:  %08X    SP:  %08X    BP:  %08X", regs.SS, regs.SP, regs.BP))
	d.Env.Log(environment.LogError, fmt.Sprintf(
		"    AX:  %08X    BX:  %08X    CX:  %08X    DX:  %08X", regs.AX, regs.BX, regs.CX, regs.DX))
	if errorCodeVectors[vector] {
		d.Env.Log(environment.LogError, fmt.Sprintf("    ERR: %08X", regs.ErrorCode))
	}

	d.exitCurrent()
}

// currentIdentity returns the current context's pid and name, or
// (-1, "<none>") if there is no current context.
func (d *Dispatcher) currentIdentity() (int, string) {
	type identity struct {
		pid  int
		name string
	}
	id, _ := intex.WithErr(d.Env.Contexts, func(m *task.Manager) (identity, error) {
		ctx, err := m.Current()
		if err != nil {
			return identity{pid: -1, name: "<none>"}, nil
		}
		return identity{pid: ctx.PID, name: ctx.Name}, nil
	})
	return id.pid, id.name
}

// exitCurrent terminates the current context by removing it from the
// manager (which destroys it), standing in for the original kernel's
// `loop { do_sys_exit(usize::MAX) }`; no exit status is kept — the loop
// exists only because the original's exit never returns; once the
// context is gone there is nothing left to loop on here.
func (d *Dispatcher) exitCurrent() {
	d.Env.Contexts.With(func(m *task.Manager) {
		ctx, err := m.Current()
		if err != nil {
			return
		}
		m.Remove(ctx.PID)
	})
}
