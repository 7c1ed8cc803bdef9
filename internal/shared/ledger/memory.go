package ledger

import (
	"context"
	"sync"
)

type balanceKey struct {
	account string
	mint    string
}

// MemoryLedger is an in-process Ledger used by tests and local wiring. All
// mutations happen under one mutex, so each call is an atomic transaction:
// a failed transfer leaves no partial effect.
type MemoryLedger struct {
	mu       sync.RWMutex
	balances map[balanceKey]uint64
	supply   map[string]uint64
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances: make(map[balanceKey]uint64),
		supply:   make(map[string]uint64),
	}
}

// MintTo credits freshly issued tokens to an account and grows the mint's
// total supply. Seeding helper; not part of the Ledger contract.
func (l *MemoryLedger) MintTo(_ context.Context, account, mint string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[balanceKey{account: account, mint: mint}] += amount
	l.supply[mint] += amount
	return nil
}

func (l *MemoryLedger) Transfer(_ context.Context, from, to, _ string, mint string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	source := balanceKey{account: from, mint: mint}
	if l.balances[source] < amount {
		return ErrInsufficientFunds
	}
	l.balances[source] -= amount
	l.balances[balanceKey{account: to, mint: mint}] += amount
	return nil
}

func (l *MemoryLedger) BalanceOf(_ context.Context, account, mint string) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[balanceKey{account: account, mint: mint}], nil
}

func (l *MemoryLedger) TotalSupply(_ context.Context, mint string) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	supply, ok := l.supply[mint]
	if !ok {
		return 0, ErrUnknownMint
	}
	return supply, nil
}
