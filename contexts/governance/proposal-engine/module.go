package proposalengine

import (
	"log/slog"

	httpadapter "launchpad/contexts/governance/proposal-engine/adapters/http"
	"launchpad/contexts/governance/proposal-engine/adapters/memory"
	"launchpad/contexts/governance/proposal-engine/application/commands"
	"launchpad/contexts/governance/proposal-engine/application/queries"
	"launchpad/contexts/governance/proposal-engine/ports"
)

type Module struct {
	Registry  commands.RegistryUseCase
	Proposals commands.ProposalUseCase
	Queries   queries.ProposalQueries
	Handler   httpadapter.Handler
	Store     *memory.Store
}

type Dependencies struct {
	Repo    ports.Repository
	Tokens  ports.TokenReader
	Fees    ports.FeePolicy
	Rewards ports.RewardAccrual
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	registryUseCase := commands.RegistryUseCase{
		Repo:   deps.Repo,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}
	proposalUseCase := commands.ProposalUseCase{
		Repo:    deps.Repo,
		Tokens:  deps.Tokens,
		Fees:    deps.Fees,
		Rewards: deps.Rewards,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Logger:  deps.Logger,
	}
	proposalQueries := queries.ProposalQueries{
		Repo: deps.Repo,
	}
	return Module{
		Registry:  registryUseCase,
		Proposals: proposalUseCase,
		Queries:   proposalQueries,
		Handler: httpadapter.Handler{
			Registry:  registryUseCase,
			Proposals: proposalUseCase,
			Queries:   proposalQueries,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module against the in-process store. Token
// balance reads, fee collection, and reward accrual cross context boundaries
// and still come from the caller.
func NewInMemoryModule(tokens ports.TokenReader, fees ports.FeePolicy, rewards ports.RewardAccrual, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:    store,
		Tokens:  tokens,
		Fees:    fees,
		Rewards: rewards,
		Clock:   store,
		IDGen:   store,
		Logger:  logger,
	})
	module.Store = store
	return module
}
