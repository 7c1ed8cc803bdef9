package ports

import (
	"context"
	"time"

	"launchpad/contexts/governance/escrow-service/domain/entities"
	"launchpad/internal/shared/feesplit"
)

type Repository interface {
	SaveEscrow(ctx context.Context, escrow entities.ChoiceEscrow) error
	GetEscrow(ctx context.Context, proposalID string, choiceID uint8, voter string) (entities.ChoiceEscrow, bool, error)
	ListEscrowsByProposal(ctx context.Context, proposalID string) ([]entities.ChoiceEscrow, error)
}

// ProposalView is the slice of proposal state escrows act on.
type ProposalView struct {
	ProposalID    string
	Mint          string
	TokenCreator  string
	Active        bool
	Executed      bool
	ChoiceCount   uint8
	WinningChoice *uint8
}

// ProposalDirectory reads proposal state from the proposal engine and
// records the weighted vote a lock produces.
type ProposalDirectory interface {
	GetProposal(ctx context.Context, proposalID string) (ProposalView, error)
	RecordVote(ctx context.Context, proposalID string, choiceID uint8, weight uint64) error
}

// StakeDirectory reads the voter's staked position for the boost path.
type StakeDirectory interface {
	StakedAmount(ctx context.Context, staker, mint string) (uint64, bool, error)
}

// StakingDirectory receives the principal of losing escrows and the staking
// share of collected fees.
type StakingDirectory interface {
	StakeVault(mint string) string
	AddRedirectedStake(ctx context.Context, mint string, amount uint64) error
	AccrueReward(ctx context.Context, mint string, amount uint64) error
}

// FeePolicy charges the additive lock fee and skims settlement principal
// through the fee engine.
type FeePolicy interface {
	ChargeFee(ctx context.Context, payer, mint string, amount uint64, collector string) (feesplit.Breakdown, error)
	CollectFromPrincipal(ctx context.Context, vault, vaultAuthority, mint string, principal uint64, collector string, protocolOnly bool) (feesplit.Breakdown, uint64, error)
}

// Ledger is the subset of the external token ledger escrows move principal
// through.
type Ledger interface {
	Transfer(ctx context.Context, from, to, authority, mint string, amount uint64) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
