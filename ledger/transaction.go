package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"nodesim/interfaces"
)

type Transaction struct {
	TId        string               `json:"id"`
	TFrom      string               `json:"from"`
	TTo        string               `json:"to"`
	TAmount    float64              `json:"amount"`
	TFee       float64              `json:"fee"`
	TCreatedAt time.Time            `json:"createdAt"`
	TStatus    interfaces.ITxStatus `json:"status"`
}

func NewTx(id string, from string, to string, amount float64, fee float64, createdAt time.Time) *Transaction {
	return &Transaction{TId: id, TFrom: from, TTo: to, TAmount: amount, TFee: fee, TCreatedAt: createdAt, TStatus: interfaces.TX_PENDING}
}

// GenerateTx creates a random pending transaction. The id is the first 16 hex
// chars of the SHA-256 of a uuid read from rng, so ids repeat for the same seed.
func GenerateTx(rng interfaces.IRandom, now time.Time) (*Transaction, error) {
	u, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return nil, fmt.Errorf("generating tx id: %w", err)
	}
	sum := sha256.Sum256([]byte(u.String()))
	id := hex.EncodeToString(sum[:])[:16]
	from := fmt.Sprintf("addr_%v", 1000+rng.Intn(9000))
	to := fmt.Sprintf("addr_%v", 1000+rng.Intn(9000))
	return NewTx(id, from, to, rng.Between(0.001, 10), rng.Between(0.0001, 0.01), now), nil
}

func (tx *Transaction) Id() string {
	return tx.TId
}

func (tx *Transaction) From() string {
	return tx.TFrom
}

func (tx *Transaction) To() string {
	return tx.TTo
}

func (tx *Transaction) Amount() float64 {
	return tx.TAmount
}

func (tx *Transaction) Fee() float64 {
	return tx.TFee
}

func (tx *Transaction) CreatedAt() time.Time {
	return tx.TCreatedAt
}

func (tx *Transaction) Status() interfaces.ITxStatus {
	return tx.TStatus
}

func (tx *Transaction) MarkIncluded() {
	tx.TStatus = interfaces.TX_INCLUDED
}
