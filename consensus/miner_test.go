package consensus

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMineEmptyTargetMatchesNonceZero(t *testing.T) {
	m := NewMiner(DefaultDifficulty, 0, 0, 42)
	result, err := m.Mine(context.Background(), "payload")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, uint64(0), result.Nonce)
	assert.Equal(t, Hash("payload", 0), result.Hash)
	assert.Equal(t, 42.0, result.HashratePower)
}

func TestMineIsDeterministic(t *testing.T) {
	m := NewMiner(DefaultDifficulty, 2, 0, 1)
	first, err := m.Mine(context.Background(), "block789456")
	require.NoError(t, err)
	require.NotNil(t, first)
	second, err := m.Mine(context.Background(), "block789456")
	require.NoError(t, err)

	assert.Equal(t, first.Nonce, second.Nonce)
	assert.Equal(t, first.Hash, second.Hash)
	assert.True(t, strings.HasPrefix(first.Hash, "00"))
	assert.Len(t, first.Hash, 64)
	// first match wins
	for nonce := uint64(0); nonce < first.Nonce; nonce++ {
		assert.False(t, strings.HasPrefix(Hash("block789456", nonce), "00"))
	}
}

func TestMineExhaustsNonceRange(t *testing.T) {
	m := NewMiner(DefaultDifficulty, 20, 100, 1)
	result, err := m.Mine(context.Background(), "payload")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, uint64(100), m.Nonce())
}

func TestLongerTargetNeedsLaterNonce(t *testing.T) {
	short, err := NewMiner(DefaultDifficulty, 1, 5000, 1).Mine(context.Background(), "block789456")
	require.NoError(t, err)
	require.NotNil(t, short)

	for zeros := 2; zeros <= 6; zeros++ {
		long, err := NewMiner(DefaultDifficulty, zeros, 5000, 1).Mine(context.Background(), "block789456")
		require.NoError(t, err)
		if long == nil {
			continue
		}
		assert.GreaterOrEqual(t, long.Nonce, short.Nonce)
		assert.True(t, strings.HasPrefix(long.Hash, strings.Repeat("0", zeros)))
	}
	exhausted, err := NewMiner(DefaultDifficulty, 20, 5000, 1).Mine(context.Background(), "block789456")
	require.NoError(t, err)
	assert.Nil(t, exhausted)
}

func TestMineHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := NewMiner(DefaultDifficulty, 20, 0, 1)
	result, err := m.Mine(ctx, "payload")
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestAdjustDifficulty(t *testing.T) {
	tests := []struct {
		name       string
		difficulty int64
		blockTime  time.Duration
		expected   int64
		target     string
	}{
		{"fast block", 1000000, 100 * time.Second, 1500000, "00"},
		{"slow block", 1000000, 1300 * time.Second, 750000, "0"},
		{"on target", 1000000, 600 * time.Second, 1000000, "00"},
		{"lower bound is unchanged", 1000000, 300 * time.Second, 1000000, "00"},
		{"upper bound is unchanged", 1000000, 1200 * time.Second, 1000000, "00"},
		{"truncates down", 3, 1300 * time.Second, 2, "0"},
		{"truncates up", 1, time.Second, 1, "0"},
		{"never below one", 1, time.Hour, 1, "0"},
		{"several zeros", 4000000, time.Second, 6000000, "0000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMiner(tt.difficulty, DefaultTargetZeros, 0, 1)
			m.AdjustDifficulty(tt.blockTime)
			assert.Equal(t, tt.expected, m.Difficulty())
			assert.Equal(t, tt.target, m.Target())
		})
	}
}

func TestNewMinerDefaults(t *testing.T) {
	m := NewMiner(0, -1, 0, 10)
	assert.Equal(t, DefaultDifficulty, m.Difficulty())
	assert.Equal(t, "0000", m.Target())
	assert.Equal(t, 10.0, m.HashratePower())

	m.SetTargetZeros(-3)
	assert.Equal(t, "", m.Target())
}
