package intex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithMutatesValue(t *testing.T) {
	ix := New(0)
	ix.With(func(v *int) { *v = 42 })

	g := ix.Lock()
	defer g.Unlock()
	assert.Equal(t, 42, *g.Get())
}

func TestConcurrentWithSerializes(t *testing.T) {
	ix := New(0)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ix.With(func(v *int) { *v++ })
		}()
	}
	wg.Wait()

	g := ix.Lock()
	defer g.Unlock()
	assert.Equal(t, 100, *g.Get())
}

func TestWithErrPropagatesError(t *testing.T) {
	ix := New([]int{1, 2, 3})
	_, err := WithErr(ix, func(v *[]int) (int, error) {
		return 0, assertErr
	})
	assert.ErrorIs(t, err, assertErr)
}

var assertErr = errAssert("boom")

type errAssert string

func (e errAssert) Error() string { return string(e) }
