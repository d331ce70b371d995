package environment

import (
	"github.com/vvlevchenko/mini32k/kernel/errno"
	"github.com/vvlevchenko/mini32k/kernel/intex"
	"github.com/vvlevchenko/mini32k/kernel/kurl"
	"github.com/vvlevchenko/mini32k/kernel/resource"
	"github.com/vvlevchenko/mini32k/kernel/scheme"
	"github.com/vvlevchenko/mini32k/kernel/stat"
)

// Request is one message a UserScheme forwards to its server resource
// (spec.md §4.3 case 2: "the details of the message protocol between
// handle and server are owned by the Scheme implementation"). This is
// the core's minimal implementation of that protocol, grounded on the
// teacher's utils.SyncPipe two-endpoint rendezvous, generalized from a
// single signal byte to a typed request/reply pair over a channel.
type Request struct {
	Op    string
	URL   kurl.URL
	Flags int
	Reply chan Response
}

// Response answers a Request.
type Response struct {
	Resource resource.Resource
	Err      error
}

// Server operation names carried on Request.Op.
const (
	OpOpen   = "open"
	OpMkdir  = "mkdir"
	OpRmdir  = "rmdir"
	OpStat   = "stat"
	OpUnlink = "unlink"
)

// ServerResource is returned to the caller of open(name, O_CREAT); the
// userspace process reads Requests from it (via Accept) and answers
// them, implementing its own scheme out-of-process.
type ServerResource struct {
	resource.Unsupported
	requests chan Request
	closed   chan struct{}
}

func newServerResource() *ServerResource {
	return &ServerResource{
		requests: make(chan Request),
		closed:   make(chan struct{}),
	}
}

// Accept blocks for the next Request, or returns ok=false once the
// server resource has been closed.
func (s *ServerResource) Accept() (Request, bool) {
	select {
	case r := <-s.requests:
		return r, true
	case <-s.closed:
		return Request{}, false
	}
}

// Close implements resource.Resource; it unblocks any pending or
// future Accept/dispatch calls with a closed-server error.
func (s *ServerResource) Close() error {
	select {
	case <-s.closed:
	default:
		close(s.closed)
	}
	return nil
}

func (s *ServerResource) dispatch(req Request) (resource.Resource, error) {
	select {
	case s.requests <- req:
	case <-s.closed:
		return nil, errno.New(errno.ENOENT, req.Op)
	}
	resp := <-req.Reply
	return resp.Resource, resp.Err
}

// UserScheme is the scheme handle installed in the registry once a
// userspace process registers a name via open(name, O_CREAT). Every
// routing call is forwarded as a Request to the paired ServerResource.
type UserScheme struct {
	scheme.Base
	server *ServerResource
}

func (u *UserScheme) call(op string, url kurl.URL, flags int) (resource.Resource, error) {
	reply := make(chan Response, 1)
	res, err := u.server.dispatch(Request{Op: op, URL: url, Flags: flags, Reply: reply})
	return res, err
}

// Open forwards to the server resource.
func (u *UserScheme) Open(url kurl.URL, flags int) (resource.Resource, error) {
	return u.call(OpOpen, url, flags)
}

// Mkdir forwards to the server resource.
func (u *UserScheme) Mkdir(url kurl.URL, flags int) error {
	_, err := u.call(OpMkdir, url, flags)
	return err
}

// Rmdir forwards to the server resource.
func (u *UserScheme) Rmdir(url kurl.URL) error {
	_, err := u.call(OpRmdir, url, 0)
	return err
}

// Unlink forwards to the server resource.
func (u *UserScheme) Unlink(url kurl.URL) error {
	_, err := u.call(OpUnlink, url, 0)
	return err
}

// Stat forwards to the server resource via a dedicated reply that
// carries the populated Stat back, since stat()'s ABI returns through
// an out-parameter rather than a Resource.
func (u *UserScheme) Stat(url kurl.URL, out *stat.Stat) error {
	reply := make(chan Response, 1)
	res, err := u.server.dispatch(Request{Op: OpStat, URL: url, Reply: reply})
	if err != nil {
		return err
	}
	if res != nil {
		return res.Stat(out)
	}
	return nil
}

// registerUserScheme implements spec.md §4.3 case 2: appends a new
// anonymous scheme named ref and returns its server resource, failing
// EEXIST if ref is already registered.
func (e *Environment) registerUserScheme(ref string) (resource.Resource, error) {
	return intex.WithErr(e.Schemes, func(schemes *[]scheme.Scheme) (resource.Resource, error) {
		if _, exists := findScheme(*schemes, ref); exists {
			return nil, errno.ErrSchemeExists
		}
		server := newServerResource()
		*schemes = append(*schemes, &UserScheme{Base: scheme.Base{SchemeName: ref}, server: server})
		return server, nil
	})
}
