// Package trap implements the kernel's single interrupt/exception
// entry point (spec.md §4.6), the idle loop (§4.7), and the vector
// 0xFF kernel-init sequence (§4.8).
//
// Grounded on the teacher's hooks.Hooks package: an ordered classify-
// then-run-a-list shape (Run switches on a HookType, then executes
// that type's action list in order). The trap dispatcher generalizes
// the same shape to "classify a vector, then run that vector's
// handler", and the boot sequence generalizes it again to "run an
// ordered list of scheme registrations".
package trap

import "github.com/vvlevchenko/mini32k/kernel/stat"

// Regs carries the handful of register-like values a vector handler
// needs. There is no real protected-mode register file to read in a
// hosted process, so user-pointer arguments that the original kernel
// would translate from raw addresses (a path string, an I/O buffer, a
// stat record, a pipe fd pair) are carried here already decoded — the
// "translate user pointer to kernel-visible bytes" step of spec.md
// §4.5 has no meaningful hosted analogue and is folded into whatever
// constructs Regs for a given syscall.
type Regs struct {
	AX    uint32 // syscall number in, return value (or negated errno) out
	BX    uint32 // first integer argument (fd, flags)
	CX    uint32 // second integer argument (offset, length)
	DX    uint32 // third integer argument (whence)
	DI    uint32
	SI    uint32
	SP    uint32
	BP    uint32
	IP    uint32
	CS    uint32
	SS    uint32
	Flags uint32

	// ErrorCode holds the CPU-pushed error code for the vectors that
	// carry one, populated by rotating the saved frame (spec.md §4.6).
	ErrorCode uint32

	// Decoded syscall arguments (vector 0x80 only).
	Path   string
	Buf    []byte
	OutFDs *[2]int
	Stat   *stat.Stat
}
