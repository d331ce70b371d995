package errno

// Sentinel errors for common kernel failures, usable directly with
// errors.Is.

var (
	// ErrNoCurrentContext indicates there is no running context (e.g.
	// a syscall issued during kernel init, before any context exists).
	ErrNoCurrentContext = New(ESRCH, "current")

	// ErrBadFD indicates the fd does not name an open file in the
	// calling context.
	ErrBadFD = New(EBADF, "fd")

	// ErrSchemeExists indicates a scheme name is already registered.
	ErrSchemeExists = New(EEXIST, "open")

	// ErrNoSuchScheme indicates no scheme matches the URL.
	ErrNoSuchScheme = New(ENOENT, "open")

	// ErrNotSeekable indicates the resource does not support seek.
	ErrNotSeekable = New(ESPIPE, "seek")

	// ErrUnsupported indicates the resource does not implement the
	// requested capability.
	ErrUnsupported = New(EINVAL, "op")

	// ErrBrokenPipe indicates a write to a pipe whose read end closed.
	ErrBrokenPipe = New(EPIPE, "write")

	// ErrNilPointer indicates a required user pointer was null.
	ErrNilPointer = New(EFAULT, "arg")
)
