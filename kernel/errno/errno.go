// Package errno provides the kernel's POSIX-flavored error taxonomy.
//
// Every failure the kernel core produces is classified into one of the
// codes below. Errors support the standard errors.Is()/errors.As() so
// callers can test for a specific code without caring which layer
// produced it.
package errno

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Code identifies a POSIX-style error number.
type Code int32

// Codes used by the kernel core (spec.md §6/§7).
const (
	EACCES Code = Code(unix.EACCES)
	EBADF  Code = Code(unix.EBADF)
	EEXIST Code = Code(unix.EEXIST)
	EFAULT Code = Code(unix.EFAULT)
	EINVAL Code = Code(unix.EINVAL)
	EIO    Code = Code(unix.EIO)
	EISDIR Code = Code(unix.EISDIR)
	ENOENT Code = Code(unix.ENOENT)
	ENOMEM Code = Code(unix.ENOMEM)
	ENOSPC Code = Code(unix.ENOSPC)
	ENOTDIR Code = Code(unix.ENOTDIR)
	EPERM  Code = Code(unix.EPERM)
	EPIPE  Code = Code(unix.EPIPE)
	EROFS  Code = Code(unix.EROFS)
	ESPIPE Code = Code(unix.ESPIPE)
	ESRCH  Code = Code(unix.ESRCH)
)

// String returns the canonical POSIX name for the code.
func (c Code) String() string {
	switch c {
	case EACCES:
		return "EACCES"
	case EBADF:
		return "EBADF"
	case EEXIST:
		return "EEXIST"
	case EFAULT:
		return "EFAULT"
	case EINVAL:
		return "EINVAL"
	case EIO:
		return "EIO"
	case EISDIR:
		return "EISDIR"
	case ENOENT:
		return "ENOENT"
	case ENOMEM:
		return "ENOMEM"
	case ENOSPC:
		return "ENOSPC"
	case ENOTDIR:
		return "ENOTDIR"
	case EPERM:
		return "EPERM"
	case EPIPE:
		return "EPIPE"
	case EROFS:
		return "EROFS"
	case ESPIPE:
		return "ESPIPE"
	case ESRCH:
		return "ESRCH"
	default:
		return "EUNKNOWN"
	}
}

// Error represents a kernel operation failure.
type Error struct {
	// Op is the operation that failed (e.g. "open", "lseek").
	Op string
	// Path is the path or fd-ish context, if applicable.
	Path string
	// Code is the POSIX error classification.
	Code Code
	// Err is the wrapped underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Code.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target shares this error's Code.
func (e *Error) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// New creates a new Error of the given code for operation op.
func New(code Code, op string) *Error {
	return &Error{Op: op, Code: code}
}

// NewPath creates a new Error carrying the offending path.
func NewPath(code Code, op, path string) *Error {
	return &Error{Op: op, Code: code, Path: path}
}

// Wrap wraps an underlying error with a kernel error code.
func Wrap(err error, code Code, op string) *Error {
	return &Error{Op: op, Code: code, Err: err}
}

// GetCode extracts the Code from err, if it is (or wraps) an *Error.
func GetCode(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	c, ok := GetCode(err)
	return ok && c == code
}

// Negate renders err for the syscall ABI: non-negative on nil, negated
// errno on failure (spec.md §6). Unrecognized errors map to -EIO.
func Negate(err error) int {
	if err == nil {
		return 0
	}
	if c, ok := GetCode(err); ok {
		return -int(c)
	}
	return -int(EIO)
}

// As re-exports errors.As for convenience, matching the teacher's pattern
// of exposing stdlib error helpers from this package.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
