package application

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"github.com/holiman/uint256"

	"launchpad/contexts/staking/staking-pool/domain/entities"
	domainerrors "launchpad/contexts/staking/staking-pool/domain/errors"
	"launchpad/contexts/staking/staking-pool/ports"
)

// Service carries the staking use cases for one deployment.
type Service struct {
	Repo     ports.Repository
	Ledger   ports.Ledger
	Fees     ports.FeePolicy
	Registry ports.RegistryDirectory
	Clock    ports.Clock
	Logger   *slog.Logger
}

type InitializePoolCommand struct {
	Authority                   string
	Mint                        string
	DistributionIntervalSeconds int64
}

type StakeCommand struct {
	Staker       string
	Mint         string
	Amount       uint64
	FeeCollector string
}

type UnstakeCommand struct {
	Staker string
	Mint   string
	Amount uint64
}

type ToggleAutoCompoundCommand struct {
	Caller string
	Staker string
	Mint   string
	Enable bool
}

type DistributeRewardsCommand struct {
	Authority string
	Mint      string
	Amount    uint64
}

// InitializePool creates the per-mint pool. Only the mint's token authority
// may do so, and only once.
func (s Service) InitializePool(ctx context.Context, cmd InitializePoolCommand) (entities.StakingPool, error) {
	authority := strings.TrimSpace(cmd.Authority)
	mint := strings.TrimSpace(cmd.Mint)
	if authority == "" || mint == "" {
		return entities.StakingPool{}, domainerrors.ErrInvalidInput
	}
	if cmd.DistributionIntervalSeconds < 0 {
		return entities.StakingPool{}, domainerrors.ErrInvalidInput
	}

	tokenAuthority, err := s.Registry.TokenAuthority(ctx, mint)
	if err != nil {
		return entities.StakingPool{}, err
	}
	if authority != tokenAuthority {
		return entities.StakingPool{}, domainerrors.ErrUnauthorized
	}

	if _, found, err := s.Repo.GetPool(ctx, mint); err != nil {
		return entities.StakingPool{}, err
	} else if found {
		return entities.StakingPool{}, domainerrors.ErrPoolExists
	}

	now := s.Clock.Now().UTC()
	pool := entities.StakingPool{
		Mint:                        mint,
		DistributionIntervalSeconds: cmd.DistributionIntervalSeconds,
		CreatedAt:                   now,
		UpdatedAt:                   now,
	}
	if err := s.Repo.SavePool(ctx, pool); err != nil {
		return entities.StakingPool{}, err
	}

	s.logger().InfoContext(ctx, "staking pool initialized",
		slog.String("event", "staking.pool_initialized"),
		slog.String("mint", mint),
	)
	return pool, nil
}

// Stake deposits principal into the pool's vault. The 1% fee is charged on
// top of the amount, so the full amount is credited to the staker. The first
// deposit must meet the pool minimum and fixes the lockup start.
func (s Service) Stake(ctx context.Context, cmd StakeCommand) (entities.StakerAccount, error) {
	staker := strings.TrimSpace(cmd.Staker)
	mint := strings.TrimSpace(cmd.Mint)
	if staker == "" || mint == "" || cmd.Amount == 0 {
		return entities.StakerAccount{}, domainerrors.ErrInvalidInput
	}

	pool, found, err := s.Repo.GetPool(ctx, mint)
	if err != nil {
		return entities.StakerAccount{}, err
	}
	if !found {
		return entities.StakerAccount{}, domainerrors.ErrPoolNotFound
	}

	now := s.Clock.Now().UTC()
	account, accountExists, err := s.Repo.GetStaker(ctx, staker, mint)
	if err != nil {
		return entities.StakerAccount{}, err
	}
	if !accountExists {
		if cmd.Amount < entities.MinStakeAmount {
			return entities.StakerAccount{}, domainerrors.ErrInsufficientStakingAmount
		}
		account = entities.StakerAccount{
			Staker:         staker,
			Mint:           mint,
			StakeStartTime: now,
			LastClaimTime:  now,
			CreatedAt:      now,
		}
	}

	breakdown, err := s.Fees.ChargeFee(ctx, staker, mint, cmd.Amount, cmd.FeeCollector)
	if err != nil {
		return entities.StakerAccount{}, err
	}
	if err := s.Ledger.Transfer(ctx, staker, entities.StakeVaultAddress(mint), staker, mint, cmd.Amount); err != nil {
		return entities.StakerAccount{}, err
	}

	account.StakedAmount, err = addChecked(account.StakedAmount, cmd.Amount)
	if err != nil {
		return entities.StakerAccount{}, err
	}
	pool.TotalStaked, err = addChecked(pool.TotalStaked, cmd.Amount)
	if err != nil {
		return entities.StakerAccount{}, err
	}
	// The fee's staking share landed in the rewards vault; it is claimable
	// right away.
	pool.RewardBalance, err = addChecked(pool.RewardBalance, breakdown.Staking)
	if err != nil {
		return entities.StakerAccount{}, err
	}
	account.UpdatedAt = now
	pool.UpdatedAt = now

	if err := s.Repo.SaveStaker(ctx, account); err != nil {
		return entities.StakerAccount{}, err
	}
	if err := s.Repo.SavePool(ctx, pool); err != nil {
		return entities.StakerAccount{}, err
	}

	s.logger().InfoContext(ctx, "tokens staked",
		slog.String("event", "staking.staked"),
		slog.String("mint", mint),
		slog.String("staker", staker),
		slog.Uint64("amount", cmd.Amount),
		slog.Uint64("staked_total", account.StakedAmount),
	)
	return account, nil
}

// Unstake withdraws principal after the lockup. Any pending pro-rata reward
// is resolved first: auto-compounding stakers receive it alongside the
// withdrawal without touching last_claim_time, others get a separate payout
// that records the claim.
func (s Service) Unstake(ctx context.Context, cmd UnstakeCommand) (entities.StakerAccount, error) {
	staker := strings.TrimSpace(cmd.Staker)
	mint := strings.TrimSpace(cmd.Mint)
	if staker == "" || mint == "" || cmd.Amount == 0 {
		return entities.StakerAccount{}, domainerrors.ErrInvalidInput
	}

	pool, found, err := s.Repo.GetPool(ctx, mint)
	if err != nil {
		return entities.StakerAccount{}, err
	}
	if !found {
		return entities.StakerAccount{}, domainerrors.ErrPoolNotFound
	}
	account, found, err := s.Repo.GetStaker(ctx, staker, mint)
	if err != nil {
		return entities.StakerAccount{}, err
	}
	if !found {
		return entities.StakerAccount{}, domainerrors.ErrStakerNotFound
	}
	if cmd.Amount > account.StakedAmount {
		return entities.StakerAccount{}, domainerrors.ErrInsufficientStakedTokens
	}

	now := s.Clock.Now().UTC()
	if now.Sub(account.StakeStartTime) < entities.MinStakingPeriod {
		return entities.StakerAccount{}, domainerrors.ErrMinimumStakingPeriodNotMet
	}

	reward, err := prorataShare(account.StakedAmount, pool.RewardBalance, pool.TotalStaked)
	if err != nil {
		return entities.StakerAccount{}, err
	}
	if reward > 0 {
		rewardsVault := entities.RewardsVaultAddress(mint)
		if err := s.Ledger.Transfer(ctx, rewardsVault, staker, entities.VaultAuthority(rewardsVault), mint, reward); err != nil {
			return entities.StakerAccount{}, err
		}
		pool.RewardBalance, err = subChecked(pool.RewardBalance, reward)
		if err != nil {
			return entities.StakerAccount{}, err
		}
		account.CumulativeRewards, err = addChecked(account.CumulativeRewards, reward)
		if err != nil {
			return entities.StakerAccount{}, err
		}
		if !account.AutoCompound {
			account.LastClaimTime = now
		}
	}

	stakeVault := entities.StakeVaultAddress(mint)
	if err := s.Ledger.Transfer(ctx, stakeVault, staker, entities.VaultAuthority(stakeVault), mint, cmd.Amount); err != nil {
		return entities.StakerAccount{}, err
	}
	account.StakedAmount, err = subChecked(account.StakedAmount, cmd.Amount)
	if err != nil {
		return entities.StakerAccount{}, err
	}
	pool.TotalStaked, err = subChecked(pool.TotalStaked, cmd.Amount)
	if err != nil {
		return entities.StakerAccount{}, err
	}
	account.UpdatedAt = now
	pool.UpdatedAt = now

	if err := s.Repo.SaveStaker(ctx, account); err != nil {
		return entities.StakerAccount{}, err
	}
	if err := s.Repo.SavePool(ctx, pool); err != nil {
		return entities.StakerAccount{}, err
	}

	s.logger().InfoContext(ctx, "tokens unstaked",
		slog.String("event", "staking.unstaked"),
		slog.String("mint", mint),
		slog.String("staker", staker),
		slog.Uint64("amount", cmd.Amount),
		slog.Uint64("reward", reward),
	)
	return account, nil
}

// ClaimRewards pays out the staker's pro-rata share of the pool's reward
// balance. With auto-compound enabled the share is folded into the staked
// position instead of being transferred out, and last_claim_time is left
// alone. A zero share is a successful no-op.
func (s Service) ClaimRewards(ctx context.Context, staker, mint string) (uint64, error) {
	staker = strings.TrimSpace(staker)
	mint = strings.TrimSpace(mint)
	if staker == "" || mint == "" {
		return 0, domainerrors.ErrInvalidInput
	}

	pool, found, err := s.Repo.GetPool(ctx, mint)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, domainerrors.ErrPoolNotFound
	}
	account, found, err := s.Repo.GetStaker(ctx, staker, mint)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, domainerrors.ErrStakerNotFound
	}

	share, err := prorataShare(account.StakedAmount, pool.RewardBalance, pool.TotalStaked)
	if err != nil {
		return 0, err
	}
	if share == 0 {
		return 0, nil
	}

	now := s.Clock.Now().UTC()
	rewardsVault := entities.RewardsVaultAddress(mint)
	pool.RewardBalance, err = subChecked(pool.RewardBalance, share)
	if err != nil {
		return 0, err
	}
	account.CumulativeRewards, err = addChecked(account.CumulativeRewards, share)
	if err != nil {
		return 0, err
	}

	if account.AutoCompound {
		// The share stays protocol-side: it moves from the rewards vault
		// into the stake vault and grows the staked position.
		if err := s.Ledger.Transfer(ctx, rewardsVault, entities.StakeVaultAddress(mint), entities.VaultAuthority(rewardsVault), mint, share); err != nil {
			return 0, err
		}
		account.StakedAmount, err = addChecked(account.StakedAmount, share)
		if err != nil {
			return 0, err
		}
		pool.TotalStaked, err = addChecked(pool.TotalStaked, share)
		if err != nil {
			return 0, err
		}
	} else {
		if err := s.Ledger.Transfer(ctx, rewardsVault, staker, entities.VaultAuthority(rewardsVault), mint, share); err != nil {
			return 0, err
		}
		account.LastClaimTime = now
	}
	account.UpdatedAt = now
	pool.UpdatedAt = now

	if err := s.Repo.SaveStaker(ctx, account); err != nil {
		return 0, err
	}
	if err := s.Repo.SavePool(ctx, pool); err != nil {
		return 0, err
	}

	s.logger().InfoContext(ctx, "rewards claimed",
		slog.String("event", "staking.rewards_claimed"),
		slog.String("mint", mint),
		slog.String("staker", staker),
		slog.Uint64("share", share),
		slog.Bool("auto_compound", account.AutoCompound),
	)
	return share, nil
}

// ToggleAutoCompound flips the staker's compounding preference. Only the
// account owner may change it.
func (s Service) ToggleAutoCompound(ctx context.Context, cmd ToggleAutoCompoundCommand) (entities.StakerAccount, error) {
	caller := strings.TrimSpace(cmd.Caller)
	staker := strings.TrimSpace(cmd.Staker)
	mint := strings.TrimSpace(cmd.Mint)
	if caller == "" || staker == "" || mint == "" {
		return entities.StakerAccount{}, domainerrors.ErrInvalidInput
	}
	if caller != staker {
		return entities.StakerAccount{}, domainerrors.ErrUnauthorized
	}

	account, found, err := s.Repo.GetStaker(ctx, staker, mint)
	if err != nil {
		return entities.StakerAccount{}, err
	}
	if !found {
		return entities.StakerAccount{}, domainerrors.ErrStakerNotFound
	}

	account.AutoCompound = cmd.Enable
	account.UpdatedAt = s.Clock.Now().UTC()
	if err := s.Repo.SaveStaker(ctx, account); err != nil {
		return entities.StakerAccount{}, err
	}
	return account, nil
}

// DistributeRewards moves tokens from the mint's token authority into the
// rewards vault and credits the pool's reward balance.
func (s Service) DistributeRewards(ctx context.Context, cmd DistributeRewardsCommand) (entities.StakingPool, error) {
	authority := strings.TrimSpace(cmd.Authority)
	mint := strings.TrimSpace(cmd.Mint)
	if authority == "" || mint == "" || cmd.Amount == 0 {
		return entities.StakingPool{}, domainerrors.ErrInvalidInput
	}

	tokenAuthority, err := s.Registry.TokenAuthority(ctx, mint)
	if err != nil {
		return entities.StakingPool{}, err
	}
	if authority != tokenAuthority {
		return entities.StakingPool{}, domainerrors.ErrUnauthorized
	}

	pool, found, err := s.Repo.GetPool(ctx, mint)
	if err != nil {
		return entities.StakingPool{}, err
	}
	if !found {
		return entities.StakingPool{}, domainerrors.ErrPoolNotFound
	}

	if err := s.Ledger.Transfer(ctx, authority, entities.RewardsVaultAddress(mint), authority, mint, cmd.Amount); err != nil {
		return entities.StakingPool{}, err
	}
	pool.RewardBalance, err = addChecked(pool.RewardBalance, cmd.Amount)
	if err != nil {
		return entities.StakingPool{}, err
	}
	now := s.Clock.Now().UTC()
	pool.LastDistributionTime = now
	pool.UpdatedAt = now
	if err := s.Repo.SavePool(ctx, pool); err != nil {
		return entities.StakingPool{}, err
	}

	s.logger().InfoContext(ctx, "rewards distributed",
		slog.String("event", "staking.rewards_distributed"),
		slog.String("mint", mint),
		slog.Uint64("amount", cmd.Amount),
		slog.Uint64("reward_balance", pool.RewardBalance),
	)
	return pool, nil
}

// AccrueFeeReward credits a fee's staking share that the fee engine has
// already transferred into the mint's rewards vault. Shares collected before
// the pool exists stay in the vault with no claimable balance.
func (s Service) AccrueFeeReward(ctx context.Context, mint string, amount uint64) error {
	mint = strings.TrimSpace(mint)
	if mint == "" {
		return domainerrors.ErrInvalidInput
	}
	if amount == 0 {
		return nil
	}

	pool, found, err := s.Repo.GetPool(ctx, mint)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	pool.RewardBalance, err = addChecked(pool.RewardBalance, amount)
	if err != nil {
		return err
	}
	pool.UpdatedAt = s.Clock.Now().UTC()
	if err := s.Repo.SavePool(ctx, pool); err != nil {
		return err
	}

	s.logger().InfoContext(ctx, "fee reward accrued",
		slog.String("event", "staking.fee_reward_accrued"),
		slog.String("mint", mint),
		slog.Uint64("amount", amount),
	)
	return nil
}

// AddRedirectedStake credits principal that a losing escrow settlement has
// already moved into the stake vault. The amount joins the pool total with
// no staker attribution.
func (s Service) AddRedirectedStake(ctx context.Context, mint string, amount uint64) error {
	mint = strings.TrimSpace(mint)
	if mint == "" {
		return domainerrors.ErrInvalidInput
	}
	if amount == 0 {
		return nil
	}

	pool, found, err := s.Repo.GetPool(ctx, mint)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrPoolNotFound
	}
	pool.TotalStaked, err = addChecked(pool.TotalStaked, amount)
	if err != nil {
		return err
	}
	pool.UpdatedAt = s.Clock.Now().UTC()
	if err := s.Repo.SavePool(ctx, pool); err != nil {
		return err
	}

	s.logger().InfoContext(ctx, "redirected stake added",
		slog.String("event", "staking.stake_redirected"),
		slog.String("mint", mint),
		slog.Uint64("amount", amount),
	)
	return nil
}

// StakedAmount reports a staker's position for voting power boosts.
func (s Service) StakedAmount(ctx context.Context, staker, mint string) (uint64, bool, error) {
	account, found, err := s.Repo.GetStaker(ctx, strings.TrimSpace(staker), strings.TrimSpace(mint))
	if err != nil || !found {
		return 0, false, err
	}
	return account.StakedAmount, true, nil
}

// GetPool exposes the pool record for queries and transports.
func (s Service) GetPool(ctx context.Context, mint string) (entities.StakingPool, error) {
	pool, found, err := s.Repo.GetPool(ctx, strings.TrimSpace(mint))
	if err != nil {
		return entities.StakingPool{}, err
	}
	if !found {
		return entities.StakingPool{}, domainerrors.ErrPoolNotFound
	}
	return pool, nil
}

// GetStaker exposes a staker account for queries and transports.
func (s Service) GetStaker(ctx context.Context, staker, mint string) (entities.StakerAccount, error) {
	account, found, err := s.Repo.GetStaker(ctx, strings.TrimSpace(staker), strings.TrimSpace(mint))
	if err != nil {
		return entities.StakerAccount{}, err
	}
	if !found {
		return entities.StakerAccount{}, domainerrors.ErrStakerNotFound
	}
	return account, nil
}

func (s Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// prorataShare computes staked*rewardBalance/totalStaked through 256-bit
// intermediates so the product cannot wrap.
func prorataShare(staked, rewardBalance, totalStaked uint64) (uint64, error) {
	if staked == 0 || rewardBalance == 0 || totalStaked == 0 {
		return 0, nil
	}
	share := new(uint256.Int).Mul(uint256.NewInt(staked), uint256.NewInt(rewardBalance))
	share.Div(share, uint256.NewInt(totalStaked))
	if !share.IsUint64() {
		return 0, domainerrors.ErrCalculationError
	}
	return share.Uint64(), nil
}

func addChecked(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, domainerrors.ErrCalculationError
	}
	return a + b, nil
}

func subChecked(a, b uint64) (uint64, error) {
	if b > a {
		return 0, domainerrors.ErrCalculationError
	}
	return a - b, nil
}
