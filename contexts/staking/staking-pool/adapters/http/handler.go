package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"launchpad/contexts/staking/staking-pool/application"
	"launchpad/contexts/staking/staking-pool/domain/entities"
	httptransport "launchpad/contexts/staking/staking-pool/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) InitializePoolHandler(
	ctx context.Context,
	authorityID string,
	req httptransport.InitializePoolRequest,
) (httptransport.PoolResponse, error) {
	pool, err := h.Service.InitializePool(ctx, application.InitializePoolCommand{
		Authority:                   authorityID,
		Mint:                        req.Mint,
		DistributionIntervalSeconds: req.DistributionIntervalSeconds,
	})
	if err != nil {
		return httptransport.PoolResponse{}, err
	}
	return poolResponse(pool), nil
}

func (h Handler) StakeHandler(
	ctx context.Context,
	stakerID string,
	req httptransport.StakeRequest,
) (httptransport.StakerResponse, error) {
	account, err := h.Service.Stake(ctx, application.StakeCommand{
		Staker:       stakerID,
		Mint:         req.Mint,
		Amount:       req.Amount,
		FeeCollector: req.FeeCollector,
	})
	if err != nil {
		return httptransport.StakerResponse{}, err
	}
	return stakerResponse(account), nil
}

func (h Handler) UnstakeHandler(
	ctx context.Context,
	stakerID string,
	req httptransport.UnstakeRequest,
) (httptransport.StakerResponse, error) {
	account, err := h.Service.Unstake(ctx, application.UnstakeCommand{
		Staker: stakerID,
		Mint:   req.Mint,
		Amount: req.Amount,
	})
	if err != nil {
		return httptransport.StakerResponse{}, err
	}
	return stakerResponse(account), nil
}

func (h Handler) ClaimRewardsHandler(ctx context.Context, stakerID, mint string) (httptransport.ClaimResponse, error) {
	reward, err := h.Service.ClaimRewards(ctx, stakerID, mint)
	if err != nil {
		return httptransport.ClaimResponse{}, err
	}
	return httptransport.ClaimResponse{
		Staker: stakerID,
		Mint:   mint,
		Reward: reward,
	}, nil
}

func (h Handler) ToggleAutoCompoundHandler(
	ctx context.Context,
	stakerID string,
	req httptransport.ToggleAutoCompoundRequest,
) (httptransport.StakerResponse, error) {
	account, err := h.Service.ToggleAutoCompound(ctx, application.ToggleAutoCompoundCommand{
		Caller: stakerID,
		Staker: stakerID,
		Mint:   req.Mint,
		Enable: req.Enable,
	})
	if err != nil {
		return httptransport.StakerResponse{}, err
	}
	return stakerResponse(account), nil
}

func (h Handler) DistributeRewardsHandler(
	ctx context.Context,
	authorityID string,
	req httptransport.DistributeRewardsRequest,
) (httptransport.PoolResponse, error) {
	pool, err := h.Service.DistributeRewards(ctx, application.DistributeRewardsCommand{
		Authority: authorityID,
		Mint:      req.Mint,
		Amount:    req.Amount,
	})
	if err != nil {
		return httptransport.PoolResponse{}, err
	}
	return poolResponse(pool), nil
}

func (h Handler) GetPoolHandler(ctx context.Context, mint string) (httptransport.PoolResponse, error) {
	pool, err := h.Service.GetPool(ctx, mint)
	if err != nil {
		return httptransport.PoolResponse{}, err
	}
	return poolResponse(pool), nil
}

func (h Handler) GetStakerHandler(ctx context.Context, stakerID, mint string) (httptransport.StakerResponse, error) {
	account, err := h.Service.GetStaker(ctx, stakerID, mint)
	if err != nil {
		return httptransport.StakerResponse{}, err
	}
	return stakerResponse(account), nil
}

func poolResponse(pool entities.StakingPool) httptransport.PoolResponse {
	resp := httptransport.PoolResponse{
		Mint:                        pool.Mint,
		RewardBalance:               pool.RewardBalance,
		TotalStaked:                 pool.TotalStaked,
		DistributionIntervalSeconds: pool.DistributionIntervalSeconds,
	}
	if !pool.LastDistributionTime.IsZero() {
		resp.LastDistributionTime = pool.LastDistributionTime.UTC().Format(time.RFC3339)
	}
	return resp
}

func stakerResponse(account entities.StakerAccount) httptransport.StakerResponse {
	return httptransport.StakerResponse{
		Staker:            account.Staker,
		Mint:              account.Mint,
		StakedAmount:      account.StakedAmount,
		StakeStartTime:    account.StakeStartTime.UTC().Format(time.RFC3339),
		LastClaimTime:     account.LastClaimTime.UTC().Format(time.RFC3339),
		CumulativeRewards: account.CumulativeRewards,
		AutoCompound:      account.AutoCompound,
	}
}
