package duration

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddCarriesNanos(t *testing.T) {
	d := Duration{Secs: 0, Nanos: 900_000_000}
	result := d.Add(Duration{Secs: 0, Nanos: 200_000_000})
	assert.Equal(t, uint64(1), result.Secs)
	assert.Equal(t, uint32(100_000_000), result.Nanos)
}

func TestAddWrapsSecs(t *testing.T) {
	d := Duration{Secs: math.MaxUint64, Nanos: 0}
	result := d.Add(Duration{Secs: 1, Nanos: 0})
	assert.Equal(t, uint64(0), result.Secs)
}

func TestNewNormalizesOverflowNanos(t *testing.T) {
	d := New(0, 1_500_000_000)
	assert.Equal(t, uint64(1), d.Secs)
	assert.Equal(t, uint32(500_000_000), d.Nanos)
}

func TestTickMonotonicity(t *testing.T) {
	const pitNanos = 4_500_572
	pit := Duration{Secs: 0, Nanos: pitNanos}
	clock := Duration{}
	for i := 0; i < 1000; i++ {
		clock = clock.Add(pit)
	}
	want := New(4, 500_572_000) // 1000 × 4,500,572 ns = 4.500572 s
	assert.True(t, clock.Equal(want))
}

func TestLess(t *testing.T) {
	a := Duration{Secs: 1, Nanos: 0}
	b := Duration{Secs: 1, Nanos: 5}
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
}
