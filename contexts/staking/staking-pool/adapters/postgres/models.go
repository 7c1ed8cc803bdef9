package postgresadapter

import (
	"time"

	"launchpad/contexts/staking/staking-pool/domain/entities"
)

type stakingPoolModel struct {
	Mint                        string    `gorm:"column:mint;primaryKey"`
	RewardBalance               uint64    `gorm:"column:reward_balance;not null"`
	TotalStaked                 uint64    `gorm:"column:total_staked;not null"`
	LastDistributionTime        time.Time `gorm:"column:last_distribution_time"`
	DistributionIntervalSeconds int64     `gorm:"column:distribution_interval_seconds;not null"`
	CreatedAt                   time.Time `gorm:"column:created_at"`
	UpdatedAt                   time.Time `gorm:"column:updated_at"`
}

func (stakingPoolModel) TableName() string {
	return "staking_pools"
}

type stakerAccountModel struct {
	Staker            string    `gorm:"column:staker;primaryKey"`
	Mint              string    `gorm:"column:mint;primaryKey"`
	StakedAmount      uint64    `gorm:"column:staked_amount;not null"`
	StakeStartTime    time.Time `gorm:"column:stake_start_time"`
	LastClaimTime     time.Time `gorm:"column:last_claim_time"`
	CumulativeRewards uint64    `gorm:"column:cumulative_rewards;not null"`
	AutoCompound      bool      `gorm:"column:auto_compound;not null"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (stakerAccountModel) TableName() string {
	return "staker_accounts"
}

func poolModelFromEntity(pool entities.StakingPool) stakingPoolModel {
	return stakingPoolModel{
		Mint:                        pool.Mint,
		RewardBalance:               pool.RewardBalance,
		TotalStaked:                 pool.TotalStaked,
		LastDistributionTime:        pool.LastDistributionTime,
		DistributionIntervalSeconds: pool.DistributionIntervalSeconds,
		CreatedAt:                   pool.CreatedAt,
		UpdatedAt:                   pool.UpdatedAt,
	}
}

func (m stakingPoolModel) toEntity() entities.StakingPool {
	return entities.StakingPool{
		Mint:                        m.Mint,
		RewardBalance:               m.RewardBalance,
		TotalStaked:                 m.TotalStaked,
		LastDistributionTime:        m.LastDistributionTime,
		DistributionIntervalSeconds: m.DistributionIntervalSeconds,
		CreatedAt:                   m.CreatedAt,
		UpdatedAt:                   m.UpdatedAt,
	}
}

func stakerModelFromEntity(account entities.StakerAccount) stakerAccountModel {
	return stakerAccountModel{
		Staker:            account.Staker,
		Mint:              account.Mint,
		StakedAmount:      account.StakedAmount,
		StakeStartTime:    account.StakeStartTime,
		LastClaimTime:     account.LastClaimTime,
		CumulativeRewards: account.CumulativeRewards,
		AutoCompound:      account.AutoCompound,
		CreatedAt:         account.CreatedAt,
		UpdatedAt:         account.UpdatedAt,
	}
}

func (m stakerAccountModel) toEntity() entities.StakerAccount {
	return entities.StakerAccount{
		Staker:            m.Staker,
		Mint:              m.Mint,
		StakedAmount:      m.StakedAmount,
		StakeStartTime:    m.StakeStartTime,
		LastClaimTime:     m.LastClaimTime,
		CumulativeRewards: m.CumulativeRewards,
		AutoCompound:      m.AutoCompound,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
