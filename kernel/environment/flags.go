package environment

import "golang.org/x/sys/unix"

// OCreat mirrors spec.md §6: on an empty-scheme open, register a new
// scheme; elsewhere, create-if-missing semantics are a Scheme's own
// business. Reuses the real POSIX O_CREAT value rather than inventing
// a kernel-private flag numbering.
const OCreat = unix.O_CREAT
