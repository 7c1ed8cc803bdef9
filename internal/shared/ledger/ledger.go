// Package ledger defines the external token-ledger contract the protocol
// moves funds through. The core never reads balances except through this
// interface; every transfer is atomic and fails as a whole when the source
// balance is insufficient.
package ledger

import (
	"context"
	"errors"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownMint       = errors.New("unknown token mint")
)

// Ledger is the collaborator contract for fund movement and the two balance
// queries used by proposal threshold checks.
//
// The authority argument names the party authorizing the debit. The ledger
// itself rejects only on balance; authorization rules live with the callers,
// which gate every operation before moving funds.
type Ledger interface {
	Transfer(ctx context.Context, from, to, authority, mint string, amount uint64) error
	BalanceOf(ctx context.Context, account, mint string) (uint64, error)
	TotalSupply(ctx context.Context, mint string) (uint64, error)
}
