package consensus

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nodesim/interfaces"
	"nodesim/ledger"
	"nodesim/util/logger"
	"nodesim/util/metrics"
)

const DefaultBlockTxLimit = 5

// Assembler turns pooled transactions into mined blocks on a chain.
type Assembler struct {
	pool         *ledger.TxPool
	chain        *ledger.Chain
	miner        *Miner
	minerId      string
	blockTxLimit int
	lastBlockAt  time.Time
}

// NewAssembler starts measuring block times from startTime.
func NewAssembler(pool *ledger.TxPool, chain *ledger.Chain, miner *Miner, minerId string, blockTxLimit int, startTime time.Time) *Assembler {
	if blockTxLimit <= 0 {
		blockTxLimit = DefaultBlockTxLimit
	}
	return &Assembler{pool: pool, chain: chain, miner: miner, minerId: minerId, blockTxLimit: blockTxLimit, lastBlockAt: startTime}
}

// BlockPayload is the string that is hashed together with the nonce.
func BlockPayload(prevHash string, height uint64, txs []*ledger.Transaction, timestamp time.Time) string {
	ids := make([]string, 0, len(txs))
	for _, tx := range txs {
		ids = append(ids, tx.Id())
	}
	return fmt.Sprintf("%v%v%v%v", prevHash, height, strings.Join(ids, ","), timestamp.Unix())
}

// MineBlock selects the highest-fee transactions, mines them and appends the
// block to the chain. When the nonce range is exhausted the transactions go back
// to the pool and nil is returned without error. Either way the time since the
// last block is fed into the difficulty controller.
func (a *Assembler) MineBlock(ctx context.Context, now time.Time) (*ledger.Block, error) {
	txs := a.pool.SelectForBlock(a.blockTxLimit)
	prevHash := a.chain.TipHash()
	height := a.chain.NextHeight()
	difficulty := a.miner.Difficulty()

	result, err := a.miner.Mine(ctx, BlockPayload(prevHash, height, txs, now))
	if err != nil || result == nil {
		a.returnToPool(txs)
		if err != nil {
			return nil, fmt.Errorf("mining block %v: %w", height, err)
		}
		logger.Debug("nonce range exhausted", "height", height, "target", a.miner.Target())
		a.miner.AdjustDifficulty(now.Sub(a.lastBlockAt))
		return nil, nil
	}

	block := ledger.NewBlock(result.Hash, height, prevHash, txs, now, difficulty, result.Nonce, a.minerId)
	if err := a.chain.Append(block); err != nil {
		a.returnToPool(txs)
		return nil, err
	}
	for _, tx := range txs {
		tx.MarkIncluded()
	}

	blockTime := now.Sub(a.lastBlockAt)
	a.lastBlockAt = now
	a.miner.AdjustDifficulty(blockTime)

	metrics.Counter(interfaces.METRIC_BLOCK_CREATED.String(), 1)
	metrics.Gauge(interfaces.METRIC_BLOCK_TXS.String(), int64(len(txs)))
	metrics.Timer(interfaces.METRIC_BLOCK_INTERVAL.String(), blockTime)
	logger.Debug("block mined", "height", height, "hash", result.Hash, "nonce", result.Nonce, "txs", len(txs), "difficulty", a.miner.Difficulty())
	return block, nil
}

func (a *Assembler) returnToPool(txs []*ledger.Transaction) {
	for _, tx := range txs {
		if !a.pool.Add(tx) {
			metrics.Counter(interfaces.METRIC_TX_DROPPED.String(), 1)
		}
	}
}

func (a *Assembler) Miner() *Miner {
	return a.miner
}

func (a *Assembler) Chain() *ledger.Chain {
	return a.chain
}

func (a *Assembler) Pool() *ledger.TxPool {
	return a.pool
}

func (a *Assembler) MinerId() string {
	return a.minerId
}
