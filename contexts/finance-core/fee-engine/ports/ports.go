package ports

import (
	"context"
	"time"

	"launchpad/contexts/finance-core/fee-engine/domain/entities"
)

type Repository interface {
	GetConfig(ctx context.Context) (entities.ProgramConfig, bool, error)
	SaveConfig(ctx context.Context, config entities.ProgramConfig) error
}

// Ledger is the subset of the external token ledger the fee engine moves
// fee shares through.
type Ledger interface {
	Transfer(ctx context.Context, from, to, authority, mint string, amount uint64) error
}

// RewardsVaultLocator maps a token mint to its staking rewards vault
// address, the destination of every staking fee share.
type RewardsVaultLocator interface {
	RewardsVault(mint string) string
}

type Clock interface {
	Now() time.Time
}
