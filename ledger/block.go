package ledger

import (
	"fmt"
	"strings"
	"time"

	"nodesim/interfaces"
)

// GenesisPrevHash is the prevHash of the first block of a chain.
var GenesisPrevHash = strings.Repeat("0", 64)

const DefaultStartHeight uint64 = 789456

type Block struct {
	BHash         string         `json:"hash"`
	BHeight       uint64         `json:"height"`
	BPrevHash     string         `json:"prevHash"`
	BTransactions []*Transaction `json:"transactions"`
	BTimestamp    time.Time      `json:"timestamp"`
	BDifficulty   int64          `json:"difficulty"`
	BNonce        uint64         `json:"nonce"`
	BMiner        string         `json:"miner"`
}

func NewBlock(hash string, height uint64, prevHash string, txs []*Transaction, timestamp time.Time, difficulty int64, nonce uint64, miner string) *Block {
	return &Block{hash, height, prevHash, txs, timestamp, difficulty, nonce, miner}
}

func (block *Block) Hash() string {
	return block.BHash
}

func (block *Block) Height() uint64 {
	return block.BHeight
}

func (block *Block) PrevHash() string {
	return block.BPrevHash
}

func (block *Block) Transactions() []*Transaction {
	return block.BTransactions
}

func (block *Block) Timestamp() time.Time {
	return block.BTimestamp
}

func (block *Block) Difficulty() int64 {
	return block.BDifficulty
}

func (block *Block) Nonce() uint64 {
	return block.BNonce
}

func (block *Block) Miner() string {
	return block.BMiner
}

func (block *Block) TotalFees() float64 {
	fees := 0.0
	for _, tx := range block.BTransactions {
		fees += tx.Fee()
	}
	return fees
}

// Chain is an append-only list of blocks, each linked to its predecessor.
type Chain struct {
	blocks      []*Block
	startHeight uint64
}

func NewChain(startHeight uint64) *Chain {
	return &Chain{blocks: make([]*Block, 0, 64), startHeight: startHeight}
}

// NextHeight is the height the next appended block must have.
func (chain *Chain) NextHeight() uint64 {
	if len(chain.blocks) == 0 {
		return chain.startHeight
	}
	return chain.blocks[len(chain.blocks)-1].Height() + 1
}

// TipHash is the prevHash the next appended block must have.
func (chain *Chain) TipHash() string {
	if len(chain.blocks) == 0 {
		return GenesisPrevHash
	}
	return chain.blocks[len(chain.blocks)-1].Hash()
}

func (chain *Chain) Tip() *Block {
	if len(chain.blocks) == 0 {
		return nil
	}
	return chain.blocks[len(chain.blocks)-1]
}

// Height is the height of the tip, false while the chain is empty.
func (chain *Chain) Height() (uint64, bool) {
	if tip := chain.Tip(); tip != nil {
		return tip.Height(), true
	}
	return 0, false
}

func (chain *Chain) Append(block *Block) error {
	if block.Hash() == "" {
		return interfaces.ErrEmptyBlockHash
	}
	if block.Height() != chain.NextHeight() {
		return fmt.Errorf("%w: got %v, want %v", interfaces.ErrInvalidHeight, block.Height(), chain.NextHeight())
	}
	if block.PrevHash() != chain.TipHash() {
		return fmt.Errorf("%w: block %v", interfaces.ErrPrevHashMismatch, block.Height())
	}
	chain.blocks = append(chain.blocks, block)
	return nil
}

func (chain *Chain) Blocks() []*Block {
	return chain.blocks
}

func (chain *Chain) Len() int {
	return len(chain.blocks)
}

// TxCount is the number of transactions included in all blocks.
func (chain *Chain) TxCount() int {
	count := 0
	for _, b := range chain.blocks {
		count += len(b.Transactions())
	}
	return count
}
