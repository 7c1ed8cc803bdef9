package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	feememory "launchpad/contexts/finance-core/fee-engine/adapters/memory"
	feeapp "launchpad/contexts/finance-core/fee-engine/application"
	"launchpad/contexts/governance/escrow-service/adapters/memory"
	domainerrors "launchpad/contexts/governance/escrow-service/domain/errors"
	"launchpad/contexts/governance/escrow-service/ports"
	proposalmemory "launchpad/contexts/governance/proposal-engine/adapters/memory"
	proposalcommands "launchpad/contexts/governance/proposal-engine/application/commands"
	proposalentities "launchpad/contexts/governance/proposal-engine/domain/entities"
	governanceerrors "launchpad/contexts/governance/proposal-engine/domain/errors"
	stakingmemory "launchpad/contexts/staking/staking-pool/adapters/memory"
	stakingapp "launchpad/contexts/staking/staking-pool/application"
	stakingentities "launchpad/contexts/staking/staking-pool/domain/entities"
	"launchpad/internal/shared/ledger"
)

const (
	testMint      = "mint-a"
	testAuthority = "authority-1"
	testVoter     = "voter-1"
	testCollector = "collector-1"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type proposalDirectory struct {
	store *proposalmemory.Store
	votes proposalcommands.ProposalUseCase
}

func (d proposalDirectory) GetProposal(ctx context.Context, proposalID string) (ports.ProposalView, error) {
	proposal, err := d.store.GetProposal(ctx, proposalID)
	if err != nil {
		return ports.ProposalView{}, err
	}
	return ports.ProposalView{
		ProposalID:    proposal.ProposalID,
		Mint:          proposal.Mint,
		TokenCreator:  proposal.TokenCreator,
		Active:        proposal.Status == proposalentities.ProposalStatusActive,
		Executed:      proposal.Status == proposalentities.ProposalStatusExecuted,
		ChoiceCount:   uint8(len(proposal.Choices)),
		WinningChoice: proposal.WinningChoice,
	}, nil
}

func (d proposalDirectory) RecordVote(ctx context.Context, proposalID string, choiceID uint8, weight uint64) error {
	return d.votes.RecordVote(ctx, proposalID, choiceID, weight)
}

type registryDirectory struct {
	store *proposalmemory.Store
}

func (d registryDirectory) TokenAuthority(ctx context.Context, mint string) (string, error) {
	registry, found, err := d.store.GetTokenRegistry(ctx, mint)
	if err != nil {
		return "", err
	}
	if !found {
		return "", governanceerrors.ErrTokenRegistryNotFound
	}
	return registry.Authority, nil
}

type stakingGateway struct {
	service stakingapp.Service
}

func (g stakingGateway) StakeVault(mint string) string {
	return stakingentities.StakeVaultAddress(mint)
}

func (g stakingGateway) AddRedirectedStake(ctx context.Context, mint string, amount uint64) error {
	return g.service.AddRedirectedStake(ctx, mint, amount)
}

func (g stakingGateway) AccrueReward(ctx context.Context, mint string, amount uint64) error {
	return g.service.AccrueFeeReward(ctx, mint, amount)
}

type rewardsVaultLocator struct{}

func (rewardsVaultLocator) RewardsVault(mint string) string {
	return stakingentities.RewardsVaultAddress(mint)
}

type testHarness struct {
	clock         *fakeClock
	ledger        *ledger.MemoryLedger
	fees          feeapp.Service
	proposalStore *proposalmemory.Store
	proposals     proposalcommands.ProposalUseCase
	staking       stakingapp.Service
	escrows       EscrowUseCase
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tokenLedger := ledger.NewMemoryLedger()

	fees := feeapp.Service{
		Repo:         feememory.NewStore(),
		Ledger:       tokenLedger,
		RewardsVault: rewardsVaultLocator{},
		Clock:        clock,
	}
	if _, err := fees.InitializeConfig(ctx, "admin-1", testCollector); err != nil {
		t.Fatalf("initialize fee config: %v", err)
	}

	proposalStore := proposalmemory.NewStore()
	staking := stakingapp.Service{
		Repo:     stakingmemory.NewStore(),
		Ledger:   tokenLedger,
		Fees:     fees,
		Registry: registryDirectory{store: proposalStore},
		Clock:    clock,
	}
	registryUseCase := proposalcommands.RegistryUseCase{Repo: proposalStore, Clock: clock}
	proposalUseCase := proposalcommands.ProposalUseCase{
		Repo:    proposalStore,
		Tokens:  tokenLedger,
		Fees:    fees,
		Rewards: stakingGateway{service: staking},
		Clock:   clock,
		IDGen:   proposalStore,
	}
	if _, err := registryUseCase.InitializeTokenRegistry(ctx, proposalcommands.InitializeTokenRegistryCommand{
		Authority:   testAuthority,
		Mint:        testMint,
		TokenName:   "Launch Token",
		TokenSymbol: "LNCH",
	}); err != nil {
		t.Fatalf("initialize registry: %v", err)
	}
	if _, err := registryUseCase.InitializeGovernance(ctx, proposalcommands.InitializeGovernanceCommand{
		Authority:           testAuthority,
		Mint:                testMint,
		Name:                "launch-governance",
		VotingPeriodSeconds: 3600,
		MinVoteThreshold:    1,
	}); err != nil {
		t.Fatalf("initialize governance: %v", err)
	}

	if _, err := staking.InitializePool(ctx, stakingapp.InitializePoolCommand{
		Authority: testAuthority,
		Mint:      testMint,
	}); err != nil {
		t.Fatalf("initialize pool: %v", err)
	}

	escrowStore := memory.NewStore()
	escrows := EscrowUseCase{
		Repo:      escrowStore,
		Proposals: proposalDirectory{store: proposalStore, votes: proposalUseCase},
		Stakes:    staking,
		Staking:   stakingGateway{service: staking},
		Fees:      fees,
		Ledger:    tokenLedger,
		Clock:     clock,
		IDGen:     escrowStore,
	}

	return &testHarness{
		clock:         clock,
		ledger:        tokenLedger,
		fees:          fees,
		proposalStore: proposalStore,
		proposals:     proposalUseCase,
		staking:       staking,
		escrows:       escrows,
	}
}

func (h *testHarness) createProposal(t *testing.T, choices []string) string {
	t.Helper()
	proposal, err := h.proposals.CreateProposal(context.Background(), proposalcommands.CreateProposalCommand{
		Proposer:     testAuthority,
		Mint:         testMint,
		Title:        "pick a direction",
		Choices:      choices,
		FeeCollector: testCollector,
	})
	if err != nil {
		t.Fatalf("create proposal: %v", err)
	}
	return proposal.ProposalID
}

func (h *testHarness) executeProposal(t *testing.T, proposalID string) {
	t.Helper()
	h.clock.Advance(2 * time.Hour)
	if _, err := h.proposals.Execute(context.Background(), proposalcommands.ExecuteProposalCommand{
		Executor:   testAuthority,
		ProposalID: proposalID,
	}); err != nil {
		t.Fatalf("execute proposal: %v", err)
	}
}

func (h *testHarness) balance(t *testing.T, account string) uint64 {
	t.Helper()
	value, err := h.ledger.BalanceOf(context.Background(), account, testMint)
	if err != nil {
		t.Fatalf("balance of %s: %v", account, err)
	}
	return value
}

func TestLockRecordsWeightAndEscrowsPrincipal(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testVoter, testMint, 10_000)
	proposalID := h.createProposal(t, []string{"a", "b", "c"})

	escrow, err := h.escrows.Lock(ctx, LockCommand{
		Voter:        testVoter,
		ProposalID:   proposalID,
		ChoiceID:     1,
		Amount:       1000,
		FeeCollector: testCollector,
	})
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if escrow.VoteWeight != 1000 || escrow.LockedAmount != 1000 {
		t.Fatalf("escrow = %+v, want weight and principal 1000", escrow)
	}

	// 1000 principal in the vault, 10 fee (7 collector + 3 rewards vault)
	// charged on top.
	if got := h.balance(t, escrow.VaultAddress()); got != 1000 {
		t.Fatalf("vault balance = %d, want 1000", got)
	}
	if got := h.balance(t, testVoter); got != 8990 {
		t.Fatalf("voter balance = %d, want 8990", got)
	}
	if got := h.balance(t, testCollector); got != 7 {
		t.Fatalf("collector balance = %d, want 7", got)
	}

	proposal, err := h.proposalStore.GetProposal(ctx, proposalID)
	if err != nil {
		t.Fatalf("get proposal: %v", err)
	}
	if proposal.VoteCounts[1] != 1000 {
		t.Fatalf("vote counts = %v, want 1000 on choice 1", proposal.VoteCounts)
	}

	// The fee's staking share accrues to the pool's claimable balance.
	pool, err := h.staking.GetPool(ctx, testMint)
	if err != nil {
		t.Fatalf("get pool: %v", err)
	}
	if pool.RewardBalance != 3 {
		t.Fatalf("reward balance = %d, want the lock fee's staking share 3", pool.RewardBalance)
	}
}

func TestLockDuplicateFails(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testVoter, testMint, 10_000)
	proposalID := h.createProposal(t, []string{"a", "b"})

	if _, err := h.escrows.Lock(ctx, LockCommand{
		Voter: testVoter, ProposalID: proposalID, ChoiceID: 0, Amount: 1000, FeeCollector: testCollector,
	}); err != nil {
		t.Fatalf("first lock: %v", err)
	}
	_, err := h.escrows.Lock(ctx, LockCommand{
		Voter: testVoter, ProposalID: proposalID, ChoiceID: 0, Amount: 500, FeeCollector: testCollector,
	})
	if !errors.Is(err, domainerrors.ErrEscrowExists) {
		t.Fatalf("err = %v, want ErrEscrowExists", err)
	}

	// The same voter may still back a different choice.
	if _, err := h.escrows.Lock(ctx, LockCommand{
		Voter: testVoter, ProposalID: proposalID, ChoiceID: 1, Amount: 500, FeeCollector: testCollector,
	}); err != nil {
		t.Fatalf("second choice lock: %v", err)
	}
}

func TestLockInvalidChoice(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testVoter, testMint, 10_000)
	proposalID := h.createProposal(t, []string{"a", "b"})

	_, err := h.escrows.Lock(ctx, LockCommand{
		Voter: testVoter, ProposalID: proposalID, ChoiceID: 2, Amount: 500, FeeCollector: testCollector,
	})
	if !errors.Is(err, domainerrors.ErrInvalidChoiceID) {
		t.Fatalf("err = %v, want ErrInvalidChoiceID", err)
	}
}

func TestLockWithBoost(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testVoter, testMint, 10_000)
	proposalID := h.createProposal(t, []string{"a", "b"})

	_, err := h.escrows.Lock(ctx, LockCommand{
		Voter: testVoter, ProposalID: proposalID, ChoiceID: 0, Amount: 1000, UseBoost: true, FeeCollector: testCollector,
	})
	if !errors.Is(err, domainerrors.ErrNoStakedTokens) {
		t.Fatalf("err = %v, want ErrNoStakedTokens", err)
	}

	if _, err := h.staking.Stake(ctx, stakingapp.StakeCommand{
		Staker: testVoter, Mint: testMint, Amount: 1000, FeeCollector: testCollector,
	}); err != nil {
		t.Fatalf("stake: %v", err)
	}

	// staked=1000 boosts by 1 + ln(10)/10, truncated.
	escrow, err := h.escrows.Lock(ctx, LockCommand{
		Voter: testVoter, ProposalID: proposalID, ChoiceID: 0, Amount: 1000, UseBoost: true, FeeCollector: testCollector,
	})
	if err != nil {
		t.Fatalf("boosted lock: %v", err)
	}
	if escrow.VoteWeight != 1230 || escrow.LockedAmount != 1000 {
		t.Fatalf("escrow = %+v, want weight 1230 on principal 1000", escrow)
	}
	if !escrow.Boosted {
		t.Fatalf("escrow not marked boosted")
	}
}

func TestSettleWinnerReleasesNetPrincipal(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testVoter, testMint, 10_000)
	proposalID := h.createProposal(t, []string{"a", "b"})

	escrow, err := h.escrows.Lock(ctx, LockCommand{
		Voter: testVoter, ProposalID: proposalID, ChoiceID: 0, Amount: 1000, FeeCollector: testCollector,
	})
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	h.executeProposal(t, proposalID)

	creatorBefore := h.balance(t, testAuthority)
	released, err := h.escrows.SettleWinner(ctx, SettleCommand{
		Executor: testAuthority, ProposalID: proposalID, ChoiceID: 0, Voter: testVoter, FeeCollector: testCollector,
	})
	if err != nil {
		t.Fatalf("settle winner: %v", err)
	}
	if released != 990 {
		t.Fatalf("released = %d, want 990", released)
	}
	if got := h.balance(t, testAuthority); got != creatorBefore+990 {
		t.Fatalf("creator balance = %d, want +990", got)
	}
	if got := h.balance(t, escrow.VaultAddress()); got != 0 {
		t.Fatalf("vault balance = %d, want drained to 0", got)
	}

	// Lock fee and settlement fee each accrued a staking share of 3, and the
	// claimable balance matches what sits in the rewards vault.
	pool, err := h.staking.GetPool(ctx, testMint)
	if err != nil {
		t.Fatalf("get pool: %v", err)
	}
	if pool.RewardBalance != 6 {
		t.Fatalf("reward balance = %d, want 6", pool.RewardBalance)
	}
	if got := h.balance(t, stakingentities.RewardsVaultAddress(testMint)); got != 6 {
		t.Fatalf("rewards vault balance = %d, want 6", got)
	}
}

func TestSettleWinnerTwiceFailsOnVaultBalance(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testVoter, testMint, 10_000)
	proposalID := h.createProposal(t, []string{"a", "b"})

	if _, err := h.escrows.Lock(ctx, LockCommand{
		Voter: testVoter, ProposalID: proposalID, ChoiceID: 0, Amount: 1000, FeeCollector: testCollector,
	}); err != nil {
		t.Fatalf("lock: %v", err)
	}
	h.executeProposal(t, proposalID)

	settle := SettleCommand{
		Executor: testAuthority, ProposalID: proposalID, ChoiceID: 0, Voter: testVoter, FeeCollector: testCollector,
	}
	if _, err := h.escrows.SettleWinner(ctx, settle); err != nil {
		t.Fatalf("first settle: %v", err)
	}

	// No settled flag exists; the empty vault is the only guard.
	_, err := h.escrows.SettleWinner(ctx, settle)
	if !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("second settle err = %v, want ErrInsufficientFunds", err)
	}
}

func TestSettleLoserRedirectsToStakingPool(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testVoter, testMint, 10_000)
	_ = h.ledger.MintTo(ctx, "voter-2", testMint, 10_000)
	proposalID := h.createProposal(t, []string{"a", "b"})

	if _, err := h.escrows.Lock(ctx, LockCommand{
		Voter: testVoter, ProposalID: proposalID, ChoiceID: 0, Amount: 2000, FeeCollector: testCollector,
	}); err != nil {
		t.Fatalf("winner lock: %v", err)
	}
	loser, err := h.escrows.Lock(ctx, LockCommand{
		Voter: "voter-2", ProposalID: proposalID, ChoiceID: 1, Amount: 1000, FeeCollector: testCollector,
	})
	if err != nil {
		t.Fatalf("loser lock: %v", err)
	}
	h.executeProposal(t, proposalID)

	poolBefore, err := h.staking.GetPool(ctx, testMint)
	if err != nil {
		t.Fatalf("pool before: %v", err)
	}
	redirected, err := h.escrows.SettleLoser(ctx, SettleCommand{
		Executor: testAuthority, ProposalID: proposalID, ChoiceID: 1, Voter: "voter-2", FeeCollector: testCollector,
	})
	if err != nil {
		t.Fatalf("settle loser: %v", err)
	}

	// Only the protocol share of the fee leaves; the rest joins the pool.
	if redirected != 993 {
		t.Fatalf("redirected = %d, want 993", redirected)
	}
	if got := h.balance(t, stakingentities.StakeVaultAddress(testMint)); got != 993 {
		t.Fatalf("stake vault balance = %d, want 993", got)
	}
	pool, err := h.staking.GetPool(ctx, testMint)
	if err != nil {
		t.Fatalf("pool after: %v", err)
	}
	if pool.TotalStaked != poolBefore.TotalStaked+993 {
		t.Fatalf("pool total = %d, want +993 over %d", pool.TotalStaked, poolBefore.TotalStaked)
	}
	// The loser's staking share rides inside the redirected principal; no
	// extra reward accrues on top of the two lock fees.
	if pool.RewardBalance != poolBefore.RewardBalance {
		t.Fatalf("reward balance = %d, want unchanged %d", pool.RewardBalance, poolBefore.RewardBalance)
	}
	if got := h.balance(t, loser.VaultAddress()); got != 0 {
		t.Fatalf("loser vault balance = %d, want 0", got)
	}
}

func TestSettleSideChecks(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testVoter, testMint, 10_000)
	_ = h.ledger.MintTo(ctx, "voter-2", testMint, 10_000)
	proposalID := h.createProposal(t, []string{"a", "b"})

	if _, err := h.escrows.Lock(ctx, LockCommand{
		Voter: testVoter, ProposalID: proposalID, ChoiceID: 0, Amount: 2000, FeeCollector: testCollector,
	}); err != nil {
		t.Fatalf("winner lock: %v", err)
	}
	if _, err := h.escrows.Lock(ctx, LockCommand{
		Voter: "voter-2", ProposalID: proposalID, ChoiceID: 1, Amount: 1000, FeeCollector: testCollector,
	}); err != nil {
		t.Fatalf("loser lock: %v", err)
	}

	// Settlement requires an executed proposal.
	_, err := h.escrows.SettleWinner(ctx, SettleCommand{
		Executor: testAuthority, ProposalID: proposalID, ChoiceID: 0, Voter: testVoter, FeeCollector: testCollector,
	})
	if !errors.Is(err, domainerrors.ErrProposalNotExecuted) {
		t.Fatalf("err = %v, want ErrProposalNotExecuted", err)
	}

	h.executeProposal(t, proposalID)

	_, err = h.escrows.SettleWinner(ctx, SettleCommand{
		Executor: "stranger", ProposalID: proposalID, ChoiceID: 0, Voter: testVoter, FeeCollector: testCollector,
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}

	_, err = h.escrows.SettleWinner(ctx, SettleCommand{
		Executor: testAuthority, ProposalID: proposalID, ChoiceID: 1, Voter: "voter-2", FeeCollector: testCollector,
	})
	if !errors.Is(err, domainerrors.ErrNotWinningEscrow) {
		t.Fatalf("err = %v, want ErrNotWinningEscrow", err)
	}

	_, err = h.escrows.SettleLoser(ctx, SettleCommand{
		Executor: testAuthority, ProposalID: proposalID, ChoiceID: 0, Voter: testVoter, FeeCollector: testCollector,
	})
	if !errors.Is(err, domainerrors.ErrIsWinningEscrow) {
		t.Fatalf("err = %v, want ErrIsWinningEscrow", err)
	}
}

func TestLockAfterExecutionFails(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testVoter, testMint, 10_000)
	proposalID := h.createProposal(t, []string{"a", "b"})
	if _, err := h.escrows.Lock(ctx, LockCommand{
		Voter: testVoter, ProposalID: proposalID, ChoiceID: 0, Amount: 1000, FeeCollector: testCollector,
	}); err != nil {
		t.Fatalf("lock: %v", err)
	}
	h.executeProposal(t, proposalID)

	_, err := h.escrows.Lock(ctx, LockCommand{
		Voter: "voter-2", ProposalID: proposalID, ChoiceID: 1, Amount: 1000, FeeCollector: testCollector,
	})
	if !errors.Is(err, domainerrors.ErrProposalNotActive) {
		t.Fatalf("err = %v, want ErrProposalNotActive", err)
	}
}
