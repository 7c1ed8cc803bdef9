package entities

import "time"

const (
	// MinStakeAmount is required on a staker's first deposit only.
	MinStakeAmount = 100

	// MinStakingPeriod is the withdrawal lockup measured from the first
	// deposit. Later top-ups never refresh it.
	MinStakingPeriod = 24 * time.Hour
)

// StakingPool aggregates a mint's staked principal and reward balance.
// TotalStaked tracks staker accounts plus principal redirected from losing
// escrows, which carries no staker attribution.
type StakingPool struct {
	Mint                        string
	RewardBalance               uint64
	TotalStaked                 uint64
	LastDistributionTime        time.Time
	DistributionIntervalSeconds int64
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// StakerAccount is one staker's position in a mint's pool. StakeStartTime
// is fixed at the first deposit.
type StakerAccount struct {
	Staker            string
	Mint              string
	StakedAmount      uint64
	StakeStartTime    time.Time
	LastClaimTime     time.Time
	CumulativeRewards uint64
	AutoCompound      bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// StakeVaultAddress is the ledger account holding a mint's pooled
// principal.
func StakeVaultAddress(mint string) string {
	return "stake_vault:" + mint
}

// RewardsVaultAddress is the ledger account holding a mint's undistributed
// rewards, funded by staking fee shares and authority distributions.
func RewardsVaultAddress(mint string) string {
	return "rewards_vault:" + mint
}

// VaultAuthority names the protocol-side authority for a vault's debits.
func VaultAuthority(vault string) string {
	return vault + ":authority"
}
