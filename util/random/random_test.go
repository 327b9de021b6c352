package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameSeedSameStream(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Uniform(), b.Uniform())
		require.Equal(t, a.Exponential(600), b.Exponential(600))
	}
}

func TestRanges(t *testing.T) {
	r := New(7)
	for i := 0; i < 1000; i++ {
		v := r.Between(10, 50)
		assert.GreaterOrEqual(t, v, 10.0)
		assert.Less(t, v, 50.0)

		n := r.Intn(3)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 3)

		assert.GreaterOrEqual(t, r.Exponential(600), 0.0)
	}
	assert.Equal(t, 0, r.Intn(0))
}

func TestReadFillsBuffer(t *testing.T) {
	buf := make([]byte, 16)
	n, err := New(1).Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 16, n)

	other := make([]byte, 16)
	_, _ = New(1).Read(other)
	assert.Equal(t, buf, other)
}

func TestSequence(t *testing.T) {
	s := NewSequence(0.5, 0.9)
	assert.Equal(t, 0.0, s.Between(-5, 5))
	assert.Equal(t, 2, s.Intn(3))
	assert.False(t, s.Chance(0.1))
	assert.Equal(t, 3, s.Draws())
	assert.Equal(t, 0.9, s.Uniform())
}

func TestTimeBetweenBlocks(t *testing.T) {
	r := New(3)
	for i := 0; i < 100; i++ {
		d := TimeBetweenBlocks(r, 600)
		assert.GreaterOrEqual(t, d, int64(1))
		assert.LessOrEqual(t, d, maxBlockInterval)
	}
	// a uniform draw of 0.5 gives mean*ln(2)
	assert.InDelta(t, 415888308336, TimeBetweenBlocks(NewSequence(0.5), 600), 1000)
}
