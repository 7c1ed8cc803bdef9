package ports

import (
	"context"
	"time"

	"launchpad/contexts/governance/proposal-engine/domain/entities"
	"launchpad/internal/shared/feesplit"
)

type Repository interface {
	SaveTokenRegistry(ctx context.Context, registry entities.TokenRegistry) error
	GetTokenRegistry(ctx context.Context, mint string) (entities.TokenRegistry, bool, error)
	SaveGovernance(ctx context.Context, governance entities.Governance) error
	GetGovernance(ctx context.Context, mint string) (entities.Governance, bool, error)
	SaveProposal(ctx context.Context, proposal entities.Proposal) error
	GetProposal(ctx context.Context, proposalID string) (entities.Proposal, error)
	ListProposalsByMint(ctx context.Context, mint string) ([]entities.Proposal, error)
}

// TokenReader exposes the two ledger queries threshold checks need.
type TokenReader interface {
	BalanceOf(ctx context.Context, account, mint string) (uint64, error)
	TotalSupply(ctx context.Context, mint string) (uint64, error)
}

// FeePolicy collects the governance proposal fee through the fee engine.
type FeePolicy interface {
	CollectFlatFee(ctx context.Context, payer, mint string, fee uint64, collector string) (feesplit.Breakdown, error)
}

// RewardAccrual credits the staking share of a collected fee to the mint's
// staking pool, making it claimable.
type RewardAccrual interface {
	AccrueReward(ctx context.Context, mint string, amount uint64) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
