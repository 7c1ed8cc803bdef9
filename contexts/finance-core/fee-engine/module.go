package feeengine

import (
	"log/slog"

	httpadapter "launchpad/contexts/finance-core/fee-engine/adapters/http"
	"launchpad/contexts/finance-core/fee-engine/adapters/memory"
	"launchpad/contexts/finance-core/fee-engine/application"
	"launchpad/contexts/finance-core/fee-engine/ports"
)

type Module struct {
	Service application.Service
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repo         ports.Repository
	Ledger       ports.Ledger
	RewardsVault ports.RewardsVaultLocator
	Clock        ports.Clock
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:         deps.Repo,
		Ledger:       deps.Ledger,
		RewardsVault: deps.RewardsVault,
		Clock:        deps.Clock,
		Logger:       deps.Logger,
	}
	return Module{
		Service: service,
		Handler: httpadapter.Handler{
			Config: service,
			Logger: deps.Logger,
		},
	}
}

// NewInMemoryModule wires the module against the in-process store. The
// ledger and rewards-vault locator still come from the caller because fee
// movement always crosses context boundaries.
func NewInMemoryModule(ledger ports.Ledger, rewardsVault ports.RewardsVaultLocator, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repo:         store,
		Ledger:       ledger,
		RewardsVault: rewardsVault,
		Clock:        store,
		Logger:       logger,
	})
	module.Store = store
	return module
}
