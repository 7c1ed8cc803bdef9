package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type InitializePoolRequest struct {
	Mint                        string `json:"mint"`
	DistributionIntervalSeconds int64  `json:"distribution_interval_seconds"`
}

type StakeRequest struct {
	Mint         string `json:"mint"`
	Amount       uint64 `json:"amount"`
	FeeCollector string `json:"fee_collector"`
}

type UnstakeRequest struct {
	Mint   string `json:"mint"`
	Amount uint64 `json:"amount"`
}

type ToggleAutoCompoundRequest struct {
	Mint   string `json:"mint"`
	Enable bool   `json:"enable"`
}

type DistributeRewardsRequest struct {
	Mint   string `json:"mint"`
	Amount uint64 `json:"amount"`
}

type PoolResponse struct {
	Mint                        string `json:"mint"`
	RewardBalance               uint64 `json:"reward_balance"`
	TotalStaked                 uint64 `json:"total_staked"`
	LastDistributionTime        string `json:"last_distribution_time,omitempty"`
	DistributionIntervalSeconds int64  `json:"distribution_interval_seconds"`
}

type StakerResponse struct {
	Staker            string `json:"staker"`
	Mint              string `json:"mint"`
	StakedAmount      uint64 `json:"staked_amount"`
	StakeStartTime    string `json:"stake_start_time"`
	LastClaimTime     string `json:"last_claim_time"`
	CumulativeRewards uint64 `json:"cumulative_rewards"`
	AutoCompound      bool   `json:"auto_compound"`
}

type ClaimResponse struct {
	Staker string `json:"staker"`
	Mint   string `json:"mint"`
	Reward uint64 `json:"reward"`
}
