package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"

	escrowcommands "launchpad/contexts/governance/escrow-service/application/commands"
	"launchpad/contexts/governance/proposal-engine/application/commands"
	stakingapp "launchpad/contexts/staking/staking-pool/application"
	stakingentities "launchpad/contexts/staking/staking-pool/domain/entities"
)

// TestInMemoryStackWiring drives one launch through every module sharing
// the stack's ledger: fee config, registry, governance, staking pool,
// stake, proposal, and a boosted escrow lock whose weight lands in the
// proposal tally.
func TestInMemoryStackWiring(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	stack := BuildInMemoryStack(logger)

	const (
		mint      = "mint-a"
		authority = "authority-1"
		voter     = "voter-1"
		collector = "collector-1"
	)
	_ = stack.Ledger.MintTo(ctx, voter, mint, 100_000)

	if _, err := stack.Fees.Service.InitializeConfig(ctx, "admin-1", collector); err != nil {
		t.Fatalf("fee config: %v", err)
	}
	if _, err := stack.Governance.Registry.InitializeTokenRegistry(ctx, commands.InitializeTokenRegistryCommand{
		Authority:   authority,
		Mint:        mint,
		TokenName:   "Launch Token",
		TokenSymbol: "LNCH",
	}); err != nil {
		t.Fatalf("registry: %v", err)
	}
	if _, err := stack.Governance.Registry.InitializeGovernance(ctx, commands.InitializeGovernanceCommand{
		Authority:           authority,
		Mint:                mint,
		Name:                "launch-governance",
		VotingPeriodSeconds: 3600,
		MinVoteThreshold:    1,
		ProposalThreshold:   100,
		ProposalFee:         10,
	}); err != nil {
		t.Fatalf("governance: %v", err)
	}

	// The pool's authority check resolves through the governance registry.
	if _, err := stack.Staking.Service.InitializePool(ctx, stakingapp.InitializePoolCommand{
		Authority: authority,
		Mint:      mint,
	}); err != nil {
		t.Fatalf("pool: %v", err)
	}
	if _, err := stack.Staking.Service.Stake(ctx, stakingapp.StakeCommand{
		Staker: voter, Mint: mint, Amount: 1000, FeeCollector: collector,
	}); err != nil {
		t.Fatalf("stake: %v", err)
	}

	proposal, err := stack.Governance.Proposals.CreateProposal(ctx, commands.CreateProposalCommand{
		Proposer:     voter,
		Mint:         mint,
		Title:        "pick a direction",
		Choices:      []string{"a", "b"},
		FeeCollector: collector,
	})
	if err != nil {
		t.Fatalf("proposal: %v", err)
	}
	if proposal.Sequence != 0 {
		t.Fatalf("sequence = %d, want 0", proposal.Sequence)
	}

	escrow, err := stack.Escrows.Escrows.Lock(ctx, escrowcommands.LockCommand{
		Voter:        voter,
		ProposalID:   proposal.ProposalID,
		ChoiceID:     1,
		Amount:       500,
		UseBoost:     true,
		FeeCollector: collector,
	})
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	// staked=1000 boosts 500 by 1 + ln(10)/10, truncated to 615.
	if escrow.VoteWeight != 615 || escrow.LockedAmount != 500 {
		t.Fatalf("escrow = %+v, want weight 615 on principal 500", escrow)
	}

	tally, err := stack.Governance.Queries.Tally(ctx, proposal.ProposalID)
	if err != nil {
		t.Fatalf("tally: %v", err)
	}
	if tally.VoteCounts[1] != 615 || tally.TotalVotes != 615 {
		t.Fatalf("tally = %+v, want 615 on choice 1", tally)
	}

	// Fund movement: 1000 staked + 500 locked, plus the split shares of the
	// 1% stake fee (7+3), the flat proposal fee (7+3), and the 1% lock fee
	// (3+1, with one unsplit unit staying put).
	if got := balanceOf(t, stack, voter, mint); got != 100_000-1000-500-24 {
		t.Fatalf("voter balance = %d, want 98476", got)
	}
	if got := balanceOf(t, stack, collector, mint); got != 17 {
		t.Fatalf("collector balance = %d, want 17", got)
	}
	if got := balanceOf(t, stack, stakingentities.RewardsVaultAddress(mint), mint); got != 7 {
		t.Fatalf("rewards vault balance = %d, want 7", got)
	}
	if got := balanceOf(t, stack, escrow.VaultAddress(), mint); got != 500 {
		t.Fatalf("escrow vault balance = %d, want 500", got)
	}
	if got := balanceOf(t, stack, stakingentities.StakeVaultAddress(mint), mint); got != 1000 {
		t.Fatalf("stake vault balance = %d, want 1000", got)
	}

	// Every staking share that reached the rewards vault is claimable.
	pool, err := stack.Staking.Service.GetPool(ctx, mint)
	if err != nil {
		t.Fatalf("get pool: %v", err)
	}
	if pool.RewardBalance != 7 {
		t.Fatalf("reward balance = %d, want 7 matching the rewards vault", pool.RewardBalance)
	}

	if _, err := stack.Escrows.Queries.GetEscrow(ctx, proposal.ProposalID, 1, voter); err != nil {
		t.Fatalf("escrow lookup: %v", err)
	}
}

func balanceOf(t *testing.T, stack Stack, account, mint string) uint64 {
	t.Helper()
	value, err := stack.Ledger.BalanceOf(context.Background(), account, mint)
	if err != nil {
		t.Fatalf("balance of %s: %v", account, err)
	}
	return value
}
