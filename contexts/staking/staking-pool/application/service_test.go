package application

import (
	"context"
	"errors"
	"testing"
	"time"

	feememory "launchpad/contexts/finance-core/fee-engine/adapters/memory"
	feeapp "launchpad/contexts/finance-core/fee-engine/application"
	"launchpad/contexts/staking/staking-pool/adapters/memory"
	"launchpad/contexts/staking/staking-pool/domain/entities"
	domainerrors "launchpad/contexts/staking/staking-pool/domain/errors"
	"launchpad/internal/shared/ledger"
)

const (
	testMint      = "mint-a"
	testAuthority = "authority-1"
	testStaker    = "staker-1"
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

type staticRegistry struct {
	authority string
}

func (r staticRegistry) TokenAuthority(context.Context, string) (string, error) {
	return r.authority, nil
}

type rewardsVaultLocator struct{}

func (rewardsVaultLocator) RewardsVault(mint string) string {
	return entities.RewardsVaultAddress(mint)
}

type testHarness struct {
	clock   *fakeClock
	ledger  *ledger.MemoryLedger
	service Service
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tokenLedger := ledger.NewMemoryLedger()
	fees := feeapp.Service{
		Repo:         feememory.NewStore(),
		Ledger:       tokenLedger,
		RewardsVault: rewardsVaultLocator{},
		Clock:        clock,
	}
	if _, err := fees.InitializeConfig(context.Background(), "admin-1", testCollector); err != nil {
		t.Fatalf("initialize fee config: %v", err)
	}
	return &testHarness{
		clock:  clock,
		ledger: tokenLedger,
		service: Service{
			Repo:     memory.NewStore(),
			Ledger:   tokenLedger,
			Fees:     fees,
			Registry: staticRegistry{authority: testAuthority},
			Clock:    clock,
		},
	}
}

func (h *testHarness) initPool(t *testing.T) {
	t.Helper()
	if _, err := h.service.InitializePool(context.Background(), InitializePoolCommand{
		Authority: testAuthority,
		Mint:      testMint,
	}); err != nil {
		t.Fatalf("initialize pool: %v", err)
	}
}

func (h *testHarness) stake(t *testing.T, staker string, amount uint64) {
	t.Helper()
	if _, err := h.service.Stake(context.Background(), StakeCommand{
		Staker: staker, Mint: testMint, Amount: amount, FeeCollector: testCollector,
	}); err != nil {
		t.Fatalf("stake %d for %s: %v", amount, staker, err)
	}
}

func (h *testHarness) distribute(t *testing.T, amount uint64) {
	t.Helper()
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testAuthority, testMint, amount)
	if _, err := h.service.DistributeRewards(ctx, DistributeRewardsCommand{
		Authority: testAuthority, Mint: testMint, Amount: amount,
	}); err != nil {
		t.Fatalf("distribute %d: %v", amount, err)
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

func TestInitializePool(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if _, err := h.service.InitializePool(ctx, InitializePoolCommand{
		Authority: "stranger", Mint: testMint,
	}); !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}

	h.initPool(t)

	if _, err := h.service.InitializePool(ctx, InitializePoolCommand{
		Authority: testAuthority, Mint: testMint,
	}); !errors.Is(err, domainerrors.ErrPoolExists) {
		t.Fatalf("err = %v, want ErrPoolExists", err)
	}
}

func TestStakeRequiresPoolAndMinimum(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testStaker, testMint, 10_000)

	_, err := h.service.Stake(ctx, StakeCommand{
		Staker: testStaker, Mint: testMint, Amount: 1000, FeeCollector: testCollector,
	})
	if !errors.Is(err, domainerrors.ErrPoolNotFound) {
		t.Fatalf("err = %v, want ErrPoolNotFound", err)
	}

	h.initPool(t)

	// The minimum binds on the first deposit only.
	_, err = h.service.Stake(ctx, StakeCommand{
		Staker: testStaker, Mint: testMint, Amount: entities.MinStakeAmount - 1, FeeCollector: testCollector,
	})
	if !errors.Is(err, domainerrors.ErrInsufficientStakingAmount) {
		t.Fatalf("err = %v, want ErrInsufficientStakingAmount", err)
	}
}

func TestStakeCreditsFullAmountAndChargesFeeOnTop(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testStaker, testMint, 10_000)
	h.initPool(t)

	account, err := h.service.Stake(ctx, StakeCommand{
		Staker: testStaker, Mint: testMint, Amount: 1000, FeeCollector: testCollector,
	})
	if err != nil {
		t.Fatalf("stake: %v", err)
	}
	if account.StakedAmount != 1000 {
		t.Fatalf("staked = %d, want 1000", account.StakedAmount)
	}
	if got := h.balance(t, entities.StakeVaultAddress(testMint)); got != 1000 {
		t.Fatalf("stake vault = %d, want 1000", got)
	}
	// 1% fee on top: 10 total, 7 to the collector, 3 to the rewards vault.
	if got := h.balance(t, testStaker); got != 8990 {
		t.Fatalf("staker balance = %d, want 8990", got)
	}
	if got := h.balance(t, testCollector); got != 7 {
		t.Fatalf("collector balance = %d, want 7", got)
	}
	// The fee's staking share is claimable immediately.
	pool, err := h.service.GetPool(ctx, testMint)
	if err != nil {
		t.Fatalf("get pool: %v", err)
	}
	if pool.RewardBalance != 3 {
		t.Fatalf("reward balance = %d, want the fee's staking share 3", pool.RewardBalance)
	}

	// A later top-up below the minimum is fine and does not refresh the
	// lockup start.
	start := account.StakeStartTime
	h.clock.Advance(time.Hour)
	account, err = h.service.Stake(ctx, StakeCommand{
		Staker: testStaker, Mint: testMint, Amount: 50, FeeCollector: testCollector,
	})
	if err != nil {
		t.Fatalf("top-up: %v", err)
	}
	if account.StakedAmount != 1050 {
		t.Fatalf("staked = %d, want 1050", account.StakedAmount)
	}
	if !account.StakeStartTime.Equal(start) {
		t.Fatalf("stake start moved from %v to %v", start, account.StakeStartTime)
	}
}

func TestUnstakeLockup(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testStaker, testMint, 10_000)
	h.initPool(t)
	h.stake(t, testStaker, 1000)

	_, err := h.service.Unstake(ctx, UnstakeCommand{Staker: testStaker, Mint: testMint, Amount: 500})
	if !errors.Is(err, domainerrors.ErrMinimumStakingPeriodNotMet) {
		t.Fatalf("err = %v, want ErrMinimumStakingPeriodNotMet", err)
	}

	h.clock.Advance(entities.MinStakingPeriod - time.Second)
	_, err = h.service.Unstake(ctx, UnstakeCommand{Staker: testStaker, Mint: testMint, Amount: 500})
	if !errors.Is(err, domainerrors.ErrMinimumStakingPeriodNotMet) {
		t.Fatalf("one second early err = %v, want ErrMinimumStakingPeriodNotMet", err)
	}

	h.clock.Advance(time.Second)
	_, err = h.service.Unstake(ctx, UnstakeCommand{Staker: testStaker, Mint: testMint, Amount: 1001})
	if !errors.Is(err, domainerrors.ErrInsufficientStakedTokens) {
		t.Fatalf("err = %v, want ErrInsufficientStakedTokens", err)
	}

	account, err := h.service.Unstake(ctx, UnstakeCommand{Staker: testStaker, Mint: testMint, Amount: 400})
	if err != nil {
		t.Fatalf("unstake: %v", err)
	}
	if account.StakedAmount != 600 {
		t.Fatalf("staked = %d, want 600", account.StakedAmount)
	}
}

func TestUnstakePaysPendingReward(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testStaker, testMint, 10_000)
	h.initPool(t)
	h.stake(t, testStaker, 1000)
	h.distribute(t, 500)
	h.clock.Advance(entities.MinStakingPeriod)

	balanceBefore := h.balance(t, testStaker)
	account, err := h.service.Unstake(ctx, UnstakeCommand{Staker: testStaker, Mint: testMint, Amount: 400})
	if err != nil {
		t.Fatalf("unstake: %v", err)
	}

	// Sole staker takes the whole reward balance alongside the principal:
	// the 500 distribution plus the stake fee's own staking share of 3.
	if got := h.balance(t, testStaker); got != balanceBefore+400+503 {
		t.Fatalf("staker balance = %d, want +903 over %d", got, balanceBefore)
	}
	if account.CumulativeRewards != 503 {
		t.Fatalf("cumulative rewards = %d, want 503", account.CumulativeRewards)
	}
	if !account.LastClaimTime.Equal(h.clock.Now()) {
		t.Fatalf("last claim = %v, want %v", account.LastClaimTime, h.clock.Now())
	}

	pool, err := h.service.GetPool(ctx, testMint)
	if err != nil {
		t.Fatalf("get pool: %v", err)
	}
	if pool.RewardBalance != 0 || pool.TotalStaked != 600 {
		t.Fatalf("pool = %+v, want reward 0 and total 600", pool)
	}
}

func TestClaimRewardsZeroShareIsNoOp(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testStaker, testMint, 10_000)
	h.initPool(t)
	// A 100-token stake carries a fee of 1 whose shares both floor to zero,
	// leaving the reward balance empty.
	h.stake(t, testStaker, 100)

	share, err := h.service.ClaimRewards(ctx, testStaker, testMint)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if share != 0 {
		t.Fatalf("share = %d, want 0", share)
	}
}

func TestClaimRewardsProRata(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testStaker, testMint, 10_000)
	_ = h.ledger.MintTo(ctx, "staker-2", testMint, 10_000)
	h.initPool(t)
	h.stake(t, testStaker, 3000)
	h.stake(t, "staker-2", 1000)
	h.distribute(t, 100)

	// Reward balance: 9 + 3 from the stake fees plus the 100 distribution.
	share, err := h.service.ClaimRewards(ctx, testStaker, testMint)
	if err != nil {
		t.Fatalf("claim 1: %v", err)
	}
	if share != 84 {
		t.Fatalf("share = %d, want floor(3000*112/4000) = 84", share)
	}

	// The second claim divides the remaining balance by the unchanged total.
	share, err = h.service.ClaimRewards(ctx, "staker-2", testMint)
	if err != nil {
		t.Fatalf("claim 2: %v", err)
	}
	if share != 7 {
		t.Fatalf("share = %d, want floor(1000*28/4000) = 7", share)
	}
}

func TestClaimRewardsAutoCompound(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testStaker, testMint, 10_000)
	h.initPool(t)
	h.stake(t, testStaker, 1000)
	if _, err := h.service.ToggleAutoCompound(ctx, ToggleAutoCompoundCommand{
		Caller: testStaker, Staker: testStaker, Mint: testMint, Enable: true,
	}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	h.distribute(t, 200)

	before, err := h.service.GetStaker(ctx, testStaker, testMint)
	if err != nil {
		t.Fatalf("get staker: %v", err)
	}
	walletBefore := h.balance(t, testStaker)

	h.clock.Advance(time.Hour)
	// Reward balance: the 200 distribution plus the stake fee's share of 3.
	share, err := h.service.ClaimRewards(ctx, testStaker, testMint)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if share != 203 {
		t.Fatalf("share = %d, want 203", share)
	}

	account, err := h.service.GetStaker(ctx, testStaker, testMint)
	if err != nil {
		t.Fatalf("get staker: %v", err)
	}
	// The share compounds into the position; the wallet sees nothing and
	// last_claim_time stays put.
	if account.StakedAmount != 1203 {
		t.Fatalf("staked = %d, want 1203", account.StakedAmount)
	}
	if got := h.balance(t, testStaker); got != walletBefore {
		t.Fatalf("wallet moved from %d to %d", walletBefore, got)
	}
	if !account.LastClaimTime.Equal(before.LastClaimTime) {
		t.Fatalf("last claim moved from %v to %v", before.LastClaimTime, account.LastClaimTime)
	}
	if account.CumulativeRewards != 203 {
		t.Fatalf("cumulative rewards = %d, want 203", account.CumulativeRewards)
	}

	pool, err := h.service.GetPool(ctx, testMint)
	if err != nil {
		t.Fatalf("get pool: %v", err)
	}
	if pool.TotalStaked != 1203 || pool.RewardBalance != 0 {
		t.Fatalf("pool = %+v, want total 1203 and reward 0", pool)
	}
	if got := h.balance(t, entities.StakeVaultAddress(testMint)); got != 1203 {
		t.Fatalf("stake vault = %d, want 1203", got)
	}
}

func TestToggleAutoCompoundOwnerOnly(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_ = h.ledger.MintTo(ctx, testStaker, testMint, 10_000)
	h.initPool(t)
	h.stake(t, testStaker, 1000)

	_, err := h.service.ToggleAutoCompound(ctx, ToggleAutoCompoundCommand{
		Caller: "stranger", Staker: testStaker, Mint: testMint, Enable: true,
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestDistributeRewards(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.initPool(t)
	_ = h.ledger.MintTo(ctx, testAuthority, testMint, 1000)

	_, err := h.service.DistributeRewards(ctx, DistributeRewardsCommand{
		Authority: "stranger", Mint: testMint, Amount: 100,
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}

	pool, err := h.service.DistributeRewards(ctx, DistributeRewardsCommand{
		Authority: testAuthority, Mint: testMint, Amount: 100,
	})
	if err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if pool.RewardBalance != 100 {
		t.Fatalf("reward balance = %d, want 100", pool.RewardBalance)
	}
	if got := h.balance(t, entities.RewardsVaultAddress(testMint)); got != 100 {
		t.Fatalf("rewards vault = %d, want 100", got)
	}
	if !pool.LastDistributionTime.Equal(h.clock.Now()) {
		t.Fatalf("last distribution = %v, want %v", pool.LastDistributionTime, h.clock.Now())
	}
}

func TestAccrueFeeReward(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// Shares collected before the pool exists stay in the vault with no
	// claimable balance; the accrual is a no-op, not an error.
	if err := h.service.AccrueFeeReward(ctx, testMint, 5); err != nil {
		t.Fatalf("accrue without pool: %v", err)
	}

	h.initPool(t)
	if err := h.service.AccrueFeeReward(ctx, testMint, 5); err != nil {
		t.Fatalf("accrue: %v", err)
	}
	if err := h.service.AccrueFeeReward(ctx, testMint, 0); err != nil {
		t.Fatalf("accrue zero: %v", err)
	}

	pool, err := h.service.GetPool(ctx, testMint)
	if err != nil {
		t.Fatalf("get pool: %v", err)
	}
	if pool.RewardBalance != 5 {
		t.Fatalf("reward balance = %d, want 5", pool.RewardBalance)
	}
}

func TestAddRedirectedStake(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if err := h.service.AddRedirectedStake(ctx, testMint, 500); !errors.Is(err, domainerrors.ErrPoolNotFound) {
		t.Fatalf("err = %v, want ErrPoolNotFound", err)
	}

	h.initPool(t)
	if err := h.service.AddRedirectedStake(ctx, testMint, 500); err != nil {
		t.Fatalf("add: %v", err)
	}
	// Zero amounts are accepted and ignored.
	if err := h.service.AddRedirectedStake(ctx, testMint, 0); err != nil {
		t.Fatalf("add zero: %v", err)
	}

	pool, err := h.service.GetPool(ctx, testMint)
	if err != nil {
		t.Fatalf("get pool: %v", err)
	}
	if pool.TotalStaked != 500 {
		t.Fatalf("total staked = %d, want 500", pool.TotalStaked)
	}
}
