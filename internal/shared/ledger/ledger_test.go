package ledger

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryLedgerTransfer(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger()
	if err := l.MintTo(ctx, "alice", "mint-a", 500); err != nil {
		t.Fatalf("mint: %v", err)
	}

	if err := l.Transfer(ctx, "alice", "bob", "alice", "mint-a", 200); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	aliceBalance, _ := l.BalanceOf(ctx, "alice", "mint-a")
	bobBalance, _ := l.BalanceOf(ctx, "bob", "mint-a")
	if aliceBalance != 300 || bobBalance != 200 {
		t.Fatalf("balances = %d/%d, want 300/200", aliceBalance, bobBalance)
	}
}

func TestMemoryLedgerInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger()
	if err := l.MintTo(ctx, "alice", "mint-a", 100); err != nil {
		t.Fatalf("mint: %v", err)
	}

	err := l.Transfer(ctx, "alice", "bob", "alice", "mint-a", 101)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("transfer err = %v, want ErrInsufficientFunds", err)
	}

	// Failed transfers leave no partial effect.
	aliceBalance, _ := l.BalanceOf(ctx, "alice", "mint-a")
	bobBalance, _ := l.BalanceOf(ctx, "bob", "mint-a")
	if aliceBalance != 100 || bobBalance != 0 {
		t.Fatalf("balances = %d/%d, want 100/0", aliceBalance, bobBalance)
	}
}

func TestMemoryLedgerTotalSupply(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLedger()

	if _, err := l.TotalSupply(ctx, "mint-a"); !errors.Is(err, ErrUnknownMint) {
		t.Fatalf("supply err = %v, want ErrUnknownMint", err)
	}

	_ = l.MintTo(ctx, "alice", "mint-a", 300)
	_ = l.MintTo(ctx, "bob", "mint-a", 200)
	supply, err := l.TotalSupply(ctx, "mint-a")
	if err != nil || supply != 500 {
		t.Fatalf("supply = %d, %v, want 500", supply, err)
	}

	// Transfers redistribute balances without touching supply.
	_ = l.Transfer(ctx, "alice", "bob", "alice", "mint-a", 300)
	supply, _ = l.TotalSupply(ctx, "mint-a")
	if supply != 500 {
		t.Fatalf("supply after transfer = %d, want 500", supply)
	}
}
