package stakingpool

import (
	"log/slog"

	httpadapter "launchpad/contexts/staking/staking-pool/adapters/http"
	"launchpad/contexts/staking/staking-pool/adapters/memory"
	"launchpad/contexts/staking/staking-pool/application"
	"launchpad/contexts/staking/staking-pool/ports"
)

type Module struct {
	Service application.Service
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repo     ports.Repository
	Ledger   ports.Ledger
	Fees     ports.FeePolicy
	Registry ports.RegistryDirectory
	Clock    ports.Clock
	Logger   *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:     deps.Repo,
		Ledger:   deps.Ledger,
		Fees:     deps.Fees,
		Registry: deps.Registry,
		Clock:    deps.Clock,
		Logger:   deps.Logger,
	}
	return Module{
		Service: service,
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module against the in-process store. The
// ledger, fee engine, and registry lookups cross context boundaries and
// still come from the caller.
func NewInMemoryModule(ledger ports.Ledger, fees ports.FeePolicy, registry ports.RegistryDirectory, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:     store,
		Ledger:   ledger,
		Fees:     fees,
		Registry: registry,
		Clock:    store,
		Logger:   logger,
	})
	module.Store = store
	return module
}
