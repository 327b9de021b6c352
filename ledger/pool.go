package ledger

import "sort"

const DefaultMaxPoolSize = 10000

type PoolStats struct {
	Count          int     `json:"count"`
	TotalFees      float64 `json:"totalFees"`
	AverageFee     float64 `json:"averageFee"`
	UtilizationPct float64 `json:"utilizationPct"`
}

// TxPool holds pending transactions in insertion order. An id is pending at
// most once.
type TxPool struct {
	txs     []*Transaction
	ids     map[string]struct{}
	maxSize int
}

func NewTxPool(maxSize int) *TxPool {
	if maxSize <= 0 {
		maxSize = DefaultMaxPoolSize
	}
	return &TxPool{txs: make([]*Transaction, 0, 64), ids: make(map[string]struct{}, 64), maxSize: maxSize}
}

// Add appends tx and returns false if the pool is full or already holds its id.
func (pool *TxPool) Add(tx *Transaction) bool {
	if tx == nil || len(pool.txs) >= pool.maxSize {
		return false
	}
	if _, ok := pool.ids[tx.Id()]; ok {
		return false
	}
	pool.txs = append(pool.txs, tx)
	pool.ids[tx.Id()] = struct{}{}
	return true
}

// SelectForBlock removes and returns the count highest-fee transactions, highest
// first. Equal fees keep their insertion order.
func (pool *TxPool) SelectForBlock(count int) []*Transaction {
	if count <= 0 || len(pool.txs) == 0 {
		return nil
	}
	sorted := make([]*Transaction, len(pool.txs))
	copy(sorted, pool.txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Fee() > sorted[j].Fee()
	})
	if count > len(sorted) {
		count = len(sorted)
	}
	selected := sorted[:count]

	picked := make(map[*Transaction]struct{}, count)
	for _, tx := range selected {
		picked[tx] = struct{}{}
		delete(pool.ids, tx.Id())
	}
	remaining := make([]*Transaction, 0, len(pool.txs)-count)
	for _, tx := range pool.txs {
		if _, ok := picked[tx]; !ok {
			remaining = append(remaining, tx)
		}
	}
	pool.txs = remaining
	return selected
}

func (pool *TxPool) Stats() PoolStats {
	stats := PoolStats{Count: len(pool.txs)}
	for _, tx := range pool.txs {
		stats.TotalFees += tx.Fee()
	}
	if stats.Count > 0 {
		stats.AverageFee = stats.TotalFees / float64(stats.Count)
	}
	stats.UtilizationPct = float64(stats.Count) / float64(pool.maxSize) * 100
	return stats
}

func (pool *TxPool) Len() int {
	return len(pool.txs)
}

func (pool *TxPool) MaxSize() int {
	return pool.maxSize
}

func (pool *TxPool) Get(id string) (*Transaction, bool) {
	if _, ok := pool.ids[id]; !ok {
		return nil, false
	}
	for _, tx := range pool.txs {
		if tx.Id() == id {
			return tx, true
		}
	}
	return nil, false
}

// Pending returns a copy of the pool in insertion order.
func (pool *TxPool) Pending() []*Transaction {
	pending := make([]*Transaction, len(pool.txs))
	copy(pending, pool.txs)
	return pending
}
