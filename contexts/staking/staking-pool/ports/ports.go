package ports

import (
	"context"
	"time"

	"launchpad/contexts/staking/staking-pool/domain/entities"
	"launchpad/internal/shared/feesplit"
)

type Repository interface {
	SavePool(ctx context.Context, pool entities.StakingPool) error
	GetPool(ctx context.Context, mint string) (entities.StakingPool, bool, error)
	SaveStaker(ctx context.Context, staker entities.StakerAccount) error
	GetStaker(ctx context.Context, staker, mint string) (entities.StakerAccount, bool, error)
	ListStakersByMint(ctx context.Context, mint string) ([]entities.StakerAccount, error)
}

// Ledger is the subset of the external token ledger the pool moves
// principal and rewards through.
type Ledger interface {
	Transfer(ctx context.Context, from, to, authority, mint string, amount uint64) error
}

// FeePolicy skims the additive staking fee through the fee engine.
type FeePolicy interface {
	ChargeFee(ctx context.Context, payer, mint string, amount uint64, collector string) (feesplit.Breakdown, error)
}

// RegistryDirectory resolves a mint's token authority, the only identity
// allowed to initialize pools and distribute rewards.
type RegistryDirectory interface {
	TokenAuthority(ctx context.Context, mint string) (string, error)
}

type Clock interface {
	Now() time.Time
}
