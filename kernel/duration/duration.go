// Package duration implements the kernel's wrapping {secs, nanos} clock
// value (spec.md §3).
package duration

const nanosPerSec = 1_000_000_000

// PITDuration is the programmable-interval-timer tick length: 0
// seconds, 4,500,572 nanoseconds (~222 Hz), matching the programmed
// PIT divisor (spec.md §4.6).
var PITDuration = Duration{Secs: 0, Nanos: 4_500_572}

// Duration is a wall/monotonic clock reading. Nanos is always kept in
// [0, 1_000_000_000); Secs wraps on overflow exactly like the u64 the
// kernel stores it in.
type Duration struct {
	Secs  uint64
	Nanos uint32
}

// New constructs a Duration, normalizing an out-of-range nanos into
// Secs the same way the add path does.
func New(secs uint64, nanos uint32) Duration {
	d := Duration{Secs: secs}
	d.Secs += uint64(nanos) / nanosPerSec
	d.Nanos = nanos % nanosPerSec
	return d
}

// Add returns d+other with carry from Nanos into Secs, wrapping Secs on
// overflow (u64 wraparound semantics).
func (d Duration) Add(other Duration) Duration {
	nanos := d.Nanos + other.Nanos
	carry := uint64(0)
	if nanos >= nanosPerSec {
		nanos -= nanosPerSec
		carry = 1
	}
	return Duration{
		Secs:  d.Secs + other.Secs + carry, // wraps on overflow, as uint64 does
		Nanos: nanos,
	}
}

// Less reports whether d is strictly before other.
func (d Duration) Less(other Duration) bool {
	if d.Secs != other.Secs {
		return d.Secs < other.Secs
	}
	return d.Nanos < other.Nanos
}

// Equal reports value equality.
func (d Duration) Equal(other Duration) bool {
	return d.Secs == other.Secs && d.Nanos == other.Nanos
}
