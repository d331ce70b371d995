package trap

// faultNames maps the CPU exception vectors to their names for the
// register-dump log line (spec.md §4.6). Vectors absent from this
// table (and anything >= 0x20 that isn't otherwise handled) fall back
// to "Unknown Interrupt".
var faultNames = map[uint8]string{
	0x0:  "Divide by zero exception",
	0x1:  "Debug exception",
	0x2:  "Non-maskable interrupt",
	0x3:  "Breakpoint exception",
	0x4:  "Overflow exception",
	0x5:  "Bound range exceeded exception",
	0x6:  "Invalid opcode exception",
	0x7:  "Device not available exception",
	0x8:  "Double fault",
	0x9:  "Coprocessor Segment Overrun",
	0xA:  "Invalid TSS exception",
	0xB:  "Segment not present exception",
	0xC:  "Stack-segment fault",
	0xD:  "General protection fault",
	0xE:  "Page fault",
	0x10: "x87 floating-point exception",
	0x11: "Alignment check exception",
	0x12: "Machine check exception",
	0x13: "SIMD floating-point exception",
	0x14: "Virtualization exception",
	0x1E: "Security exception",
}

// errorCodeVectors carries the CPU-pushed error code that must be
// extracted by rotating the saved frame before logging (spec.md
// §4.6).
var errorCodeVectors = map[uint8]bool{
	0x8:  true,
	0xA:  true,
	0xB:  true,
	0xC:  true,
	0xD:  true,
	0xE:  true,
	0x11: true,
	0x1E: true,
}

func faultName(vector uint8) string {
	if name, ok := faultNames[vector]; ok {
		return name
	}
	return "Unknown Interrupt"
}

// rotateErrorFrame extracts the CPU-pushed error code by shifting the
// saved frame fields down one slot, mirroring the original kernel's
// register juggling for the vectors that push one.
func rotateErrorFrame(regs *Regs) {
	regs.ErrorCode = regs.IP
	regs.IP = regs.CS
	regs.CS = regs.Flags
	regs.Flags = regs.SP
	regs.SP = regs.SS
	regs.SS = 0
}
