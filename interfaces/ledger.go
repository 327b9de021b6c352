package interfaces

import "errors"

var (
	ErrInvalidHeight    = errors.New("block height does not follow the chain tip")
	ErrPrevHashMismatch = errors.New("block prevHash does not match the chain tip")
	ErrEmptyBlockHash   = errors.New("block hash is empty")
)

type txStatus string

type ITxStatus interface {
	getTxStatus() txStatus
	String() string
}

// this is just for preventing simple string from being used as ITxStatus
func (s txStatus) getTxStatus() txStatus {
	return s
}

func (s txStatus) String() string {
	return string(s)
}

const (
	TX_PENDING  = txStatus("pending")
	TX_INCLUDED = txStatus("included")
)
