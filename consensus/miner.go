package consensus

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"nodesim/interfaces"
	"nodesim/util/metrics"
)

const (
	DefaultDifficulty       int64  = 1000000
	DefaultTargetZeros             = 4
	DefaultMaxNonce         uint64 = 1000000
	TargetBlockTime                = 600 * time.Second
	difficultyPerTargetZero int64  = 1000000
	fastBlockThreshold             = TargetBlockTime / 2
	slowBlockThreshold             = TargetBlockTime * 2
)

type MiningResult struct {
	Hash          string        `json:"hash"`
	Nonce         uint64        `json:"nonce"`
	Elapsed       time.Duration `json:"elapsed"`
	HashratePower float64       `json:"hashratePower"` // MH/s
}

// Miner searches nonces for a SHA-256 hash starting with its target prefix.
type Miner struct {
	difficulty    int64
	target        string
	nonce         uint64
	maxNonce      uint64
	hashratePower float64
}

func NewMiner(difficulty int64, targetZeros int, maxNonce uint64, hashratePower float64) *Miner {
	if difficulty < 1 {
		difficulty = DefaultDifficulty
	}
	if targetZeros < 0 {
		targetZeros = DefaultTargetZeros
	}
	if maxNonce == 0 {
		maxNonce = DefaultMaxNonce
	}
	return &Miner{difficulty: difficulty, target: strings.Repeat("0", targetZeros), maxNonce: maxNonce, hashratePower: hashratePower}
}

// Hash is the hex SHA-256 of payload followed by the decimal nonce.
func Hash(payload string, nonce uint64) string {
	sum := sha256.Sum256([]byte(payload + strconv.FormatUint(nonce, 10)))
	return hex.EncodeToString(sum[:])
}

// Mine tries nonces 0..maxNonce and returns the first one whose hash has the
// target prefix. A nil result without error means every nonce was tried.
// ctx is checked before every hash.
func (m *Miner) Mine(ctx context.Context, payload string) (*MiningResult, error) {
	start := time.Now()
	m.nonce = 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hash := Hash(payload, m.nonce)
		if strings.HasPrefix(hash, m.target) {
			elapsed := time.Since(start)
			metrics.Timer(interfaces.METRIC_MINING_TIME.String(), elapsed)
			return &MiningResult{Hash: hash, Nonce: m.nonce, Elapsed: elapsed, HashratePower: m.hashratePower}, nil
		}
		if m.nonce >= m.maxNonce {
			metrics.Counter(interfaces.METRIC_MINING_EXHAUSTED.String(), 1)
			return nil, nil
		}
		m.nonce++
	}
}

// AdjustDifficulty feeds the time the last block took into the controller.
// blocks faster than half the target time raise difficulty by half
// blocks slower than twice the target time lower it by a quarter
// difficulty cannot be below 1
// the target prefix gets one zero per started million of difficulty
func (m *Miner) AdjustDifficulty(blockTime time.Duration) {
	switch {
	case blockTime < fastBlockThreshold:
		m.difficulty = int64(float64(m.difficulty) * 1.5)
	case blockTime > slowBlockThreshold:
		m.difficulty = int64(float64(m.difficulty) * 0.75)
	}
	if m.difficulty < 1 {
		m.difficulty = 1
	}
	m.target = strings.Repeat("0", int(m.difficulty/difficultyPerTargetZero)+1)
	metrics.Gauge(interfaces.METRIC_DIFFICULTY.String(), m.difficulty)
}

// SetTargetZeros overrides the prefix length until the next adjustment.
func (m *Miner) SetTargetZeros(zeros int) {
	if zeros < 0 {
		zeros = 0
	}
	m.target = strings.Repeat("0", zeros)
}

func (m *Miner) Difficulty() int64 {
	return m.difficulty
}

func (m *Miner) Target() string {
	return m.target
}

// Nonce is the last nonce tried.
func (m *Miner) Nonce() uint64 {
	return m.nonce
}

func (m *Miner) HashratePower() float64 {
	return m.hashratePower
}
