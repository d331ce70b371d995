package builtin

import (
	"github.com/vvlevchenko/mini32k/kernel/environment"
	"github.com/vvlevchenko/mini32k/kernel/errno"
	"github.com/vvlevchenko/mini32k/kernel/klog"
	"github.com/vvlevchenko/mini32k/kernel/kurl"
	"github.com/vvlevchenko/mini32k/kernel/resource"
	"github.com/vvlevchenko/mini32k/kernel/scheme"
	"github.com/vvlevchenko/mini32k/kernel/stat"
	"github.com/vvlevchenko/mini32k/kernel/task"
	"github.com/vvlevchenko/mini32k/kernel/waitqueue"
)

// NIC is the narrow interface the "network:" scheme needs from a
// network card driver — itself out of scope for the core (spec.md
// §1). Send transmits one raw frame; the IRQ handler for received
// frames is the NIC driver's own business and reaches this scheme
// only through Deliver.
type NIC interface {
	Send(frame []byte) error
}

// NetworkScheme is the "network:" scheme: a raw-frame queue fed by
// Deliver (called from a NIC driver's IRQ handler, outside this
// scheme's OnIRQ so the scheme registry lock is never held across a
// driver callback) and drained by Open'd resources' Read. The TCP/IP
// stack itself — ARP resolution, ICMP, and anything above raw frames —
// is out of scope (spec.md §1). SpawnARPResponder/SpawnICMPResponder
// start reply loops that drain this queue; they only recognize the
// traffic and do not implement the protocols. Neither Install nor
// trap.Boot calls them, so a booted kernel has no reply-loop contexts.
type NetworkScheme struct {
	scheme.Base
	nic     NIC
	inbound *waitqueue.WaitQueue[[]byte]
}

// NewNetworkScheme returns the network: scheme fronting nic. nic may
// be nil, in which case Write fails ENOENT (no card attached).
func NewNetworkScheme(nic NIC) *NetworkScheme {
	return &NetworkScheme{
		Base:    scheme.Base{SchemeName: "network"},
		nic:     nic,
		inbound: waitqueue.New[[]byte](),
	}
}

// Deliver enqueues a received frame for the next Read. Called by the
// NIC driver's IRQ path, never by OnIRQ itself.
func (s *NetworkScheme) Deliver(frame []byte) {
	s.inbound.Push(frame)
}

// Open returns a handle reading/writing raw frames against the queue.
func (s *NetworkScheme) Open(url kurl.URL, flags int) (resource.Resource, error) {
	return &networkResource{scheme: s}, nil
}

// Stat reports the device as a character device (a NIC has no
// meaningful size).
func (s *NetworkScheme) Stat(url kurl.URL, out *stat.Stat) error {
	out.Mode = stat.ModeChar
	return nil
}

type networkResource struct {
	resource.Unsupported
	scheme *NetworkScheme
}

// Read blocks for the next received frame (spec.md §5's WaitQueue.pop
// suspension point).
func (r *networkResource) Read(buf []byte) (int, error) {
	frame, ok := r.scheme.inbound.Pop()
	if !ok {
		return 0, nil
	}
	return copy(buf, frame), nil
}

// Write transmits buf as one frame via the attached NIC.
func (r *networkResource) Write(buf []byte) (int, error) {
	if r.scheme.nic == nil {
		return 0, errno.New(errno.ENOENT, "write")
	}
	if err := r.scheme.nic.Send(buf); err != nil {
		return 0, errno.Wrap(err, errno.EIO, "write")
	}
	return len(buf), nil
}

func (r *networkResource) Stat(out *stat.Stat) error {
	out.Mode = stat.ModeChar
	return nil
}

func (r *networkResource) Dup() (resource.Resource, error) {
	return &networkResource{scheme: r.scheme}, nil
}

func (r *networkResource) Path(buf []byte) (int, error) {
	return copy(buf, []byte("network:")), nil
}

func (r *networkResource) Close() error { return nil }

// Ethernet/IPv4 offsets a reply loop needs to tell frames apart. The
// stack above these offsets — actually building an ARP or ICMP echo
// reply — is out of scope (spec.md §1); these constants only let the
// loops recognize the traffic they'd otherwise have handled.
const (
	etherTypeOffset = 12
	etherTypeARP    = 0x0806
	etherTypeIPv4   = 0x0800
	ipProtoOffset   = 14 + 9
	ipProtoICMP     = 1
)

func etherType(frame []byte) uint16 {
	if len(frame) < etherTypeOffset+2 {
		return 0
	}
	return uint16(frame[etherTypeOffset])<<8 | uint16(frame[etherTypeOffset+1])
}

func isARPFrame(frame []byte) bool {
	return etherType(frame) == etherTypeARP
}

func isICMPFrame(frame []byte) bool {
	return etherType(frame) == etherTypeIPv4 && len(frame) > ipProtoOffset && frame[ipProtoOffset] == ipProtoICMP
}

// spawnReplyLoop registers a named kernel context (so it is visible to
// the "context:" scheme and ps, matching spec.md §4.8's "kernel-init
// spawns kernel contexts for ARP and ICMP reply loops") and runs a
// goroutine that drains frames matching want off the scheme's inbound
// queue, putting back anything that isn't its own traffic. It stops
// once the scheme's queue is closed.
func spawnReplyLoop(env *environment.Environment, s *NetworkScheme, name string, want func([]byte) bool) {
	var pid int
	env.Contexts.With(func(m *task.Manager) {
		pid = m.AllocatePID()
		m.Push(task.NewContext(pid, name))
	})

	log := klog.Default().With("pid", pid, "name", name)
	go func() {
		for {
			frame, ok := s.inbound.Pop()
			if !ok {
				return
			}
			if !want(frame) {
				s.inbound.Push(frame)
				continue
			}
			log.Debug("reply loop received matching frame", "bytes", len(frame))
		}
	}()
}

// SpawnARPResponder starts the kernel context that would answer ARP
// requests for this NIC (spec.md §4.8). The loop only recognizes and
// drains ARP traffic off the shared queue; synthesizing the actual
// reply is out of scope (spec.md §1).
func SpawnARPResponder(env *environment.Environment, s *NetworkScheme) {
	spawnReplyLoop(env, s, "arpd", isARPFrame)
}

// SpawnICMPResponder starts the kernel context that would answer ICMP
// echo requests for this NIC (spec.md §4.8), with the same scope limit
// as SpawnARPResponder.
func SpawnICMPResponder(env *environment.Environment, s *NetworkScheme) {
	spawnReplyLoop(env, s, "icmpd", isICMPFrame)
}
