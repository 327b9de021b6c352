package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nodesim/interfaces"
)

func TestChainAppend(t *testing.T) {
	chain := NewChain(DefaultStartHeight)
	assert.Nil(t, chain.Tip())
	assert.Equal(t, GenesisPrevHash, chain.TipHash())
	assert.Len(t, chain.TipHash(), 64)
	assert.Equal(t, DefaultStartHeight, chain.NextHeight())
	_, ok := chain.Height()
	assert.False(t, ok)

	genesis := NewBlock("00aa", DefaultStartHeight, GenesisPrevHash, []*Transaction{tx("a", 0.01), tx("b", 0.02)}, now, 1000000, 42, "node1")
	require.NoError(t, chain.Append(genesis))
	assert.Equal(t, genesis, chain.Tip())
	assert.Equal(t, DefaultStartHeight+1, chain.NextHeight())
	assert.InDelta(t, 0.03, genesis.TotalFees(), 1e-12)

	next := NewBlock("00bb", DefaultStartHeight+1, "00aa", nil, now, 1000000, 7, "node1")
	require.NoError(t, chain.Append(next))
	assert.Equal(t, 2, chain.Len())
	height, ok := chain.Height()
	assert.True(t, ok)
	assert.Equal(t, DefaultStartHeight+1, height)
	assert.Equal(t, 2, chain.TxCount())
}

func TestChainRejectsBrokenLinks(t *testing.T) {
	chain := NewChain(10)

	err := chain.Append(NewBlock("00aa", 11, GenesisPrevHash, nil, now, 1, 0, "m"))
	assert.True(t, errors.Is(err, interfaces.ErrInvalidHeight))

	err = chain.Append(NewBlock("00aa", 10, "ffff", nil, now, 1, 0, "m"))
	assert.True(t, errors.Is(err, interfaces.ErrPrevHashMismatch))

	err = chain.Append(NewBlock("", 10, GenesisPrevHash, nil, now, 1, 0, "m"))
	assert.True(t, errors.Is(err, interfaces.ErrEmptyBlockHash))

	assert.Equal(t, 0, chain.Len())
}
