package escrowservice

import (
	"log/slog"

	httpadapter "launchpad/contexts/governance/escrow-service/adapters/http"
	"launchpad/contexts/governance/escrow-service/adapters/memory"
	"launchpad/contexts/governance/escrow-service/application/commands"
	"launchpad/contexts/governance/escrow-service/application/queries"
	"launchpad/contexts/governance/escrow-service/ports"
)

type Module struct {
	Escrows commands.EscrowUseCase
	Queries queries.EscrowQueries
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repo      ports.Repository
	Proposals ports.ProposalDirectory
	Stakes    ports.StakeDirectory
	Staking   ports.StakingDirectory
	Fees      ports.FeePolicy
	Ledger    ports.Ledger
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	escrowUseCase := commands.EscrowUseCase{
		Repo:      deps.Repo,
		Proposals: deps.Proposals,
		Stakes:    deps.Stakes,
		Staking:   deps.Staking,
		Fees:      deps.Fees,
		Ledger:    deps.Ledger,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		Logger:    deps.Logger,
	}
	escrowQueries := queries.EscrowQueries{
		Repo: deps.Repo,
	}
	return Module{
		Escrows: escrowUseCase,
		Queries: escrowQueries,
		Handler: httpadapter.Handler{
			Escrows: escrowUseCase,
			Queries: escrowQueries,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module against the in-process store. Proposal
// reads, stake lookups, fee collection, and the ledger cross context
// boundaries and still come from the caller.
func NewInMemoryModule(
	proposals ports.ProposalDirectory,
	stakes ports.StakeDirectory,
	staking ports.StakingDirectory,
	fees ports.FeePolicy,
	ledger ports.Ledger,
	logger *slog.Logger,
) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:      store,
		Proposals: proposals,
		Stakes:    stakes,
		Staking:   staking,
		Fees:      fees,
		Ledger:    ledger,
		Clock:     store,
		IDGen:     store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
