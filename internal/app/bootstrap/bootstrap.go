package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	feeengine "launchpad/contexts/finance-core/fee-engine"
	feepostgres "launchpad/contexts/finance-core/fee-engine/adapters/postgres"
	escrowservice "launchpad/contexts/governance/escrow-service"
	escrowpostgres "launchpad/contexts/governance/escrow-service/adapters/postgres"
	escrowports "launchpad/contexts/governance/escrow-service/ports"
	proposalengine "launchpad/contexts/governance/proposal-engine"
	proposalmemory "launchpad/contexts/governance/proposal-engine/adapters/memory"
	proposalpostgres "launchpad/contexts/governance/proposal-engine/adapters/postgres"
	"launchpad/contexts/governance/proposal-engine/application/commands"
	proposalentities "launchpad/contexts/governance/proposal-engine/domain/entities"
	governanceerrors "launchpad/contexts/governance/proposal-engine/domain/errors"
	proposalports "launchpad/contexts/governance/proposal-engine/ports"
	stakingpool "launchpad/contexts/staking/staking-pool"
	stakingpostgres "launchpad/contexts/staking/staking-pool/adapters/postgres"
	stakingapp "launchpad/contexts/staking/staking-pool/application"
	stakingentities "launchpad/contexts/staking/staking-pool/domain/entities"
	"launchpad/internal/platform/config"
	"launchpad/internal/platform/db"
	"launchpad/internal/platform/httpserver"
	"launchpad/internal/shared/ledger"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

// Stack bundles every module wired against in-process stores, for tests
// and local development.
type Stack struct {
	Ledger     *ledger.MemoryLedger
	Fees       feeengine.Module
	Governance proposalengine.Module
	Escrows    escrowservice.Module
	Staking    stakingpool.Module
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	models := feepostgres.Models()
	models = append(models, proposalpostgres.Models()...)
	models = append(models, escrowpostgres.Models()...)
	models = append(models, stakingpostgres.Models()...)
	if err := pg.Migrate(models...); err != nil {
		_ = pg.Close()
		return nil, err
	}

	// Token movement runs through the in-process ledger; a chain-backed
	// adapter slots in here.
	tokenLedger := ledger.NewMemoryLedger()

	feeModule := feeengine.NewModule(feeengine.Dependencies{
		Repo:         feepostgres.NewRepository(pg.DB, logger),
		Ledger:       tokenLedger,
		RewardsVault: rewardsVaultLocator{},
		Clock:        feepostgres.SystemClock{},
		Logger:       logger,
	})

	proposalRepo := proposalpostgres.NewRepository(pg.DB, logger)
	stakingModule := stakingpool.NewModule(stakingpool.Dependencies{
		Repo:     stakingpostgres.NewRepository(pg.DB, logger),
		Ledger:   tokenLedger,
		Fees:     feeModule.Service,
		Registry: registryDirectory{repo: proposalRepo},
		Clock:    stakingpostgres.SystemClock{},
		Logger:   logger,
	})

	governanceModule := proposalengine.NewModule(proposalengine.Dependencies{
		Repo:    proposalRepo,
		Tokens:  tokenLedger,
		Fees:    feeModule.Service,
		Rewards: stakingGateway{service: stakingModule.Service},
		Clock:   proposalpostgres.SystemClock{},
		IDGen:   proposalpostgres.UUIDGenerator{},
		Logger:  logger,
	})

	escrowModule := escrowservice.NewModule(escrowservice.Dependencies{
		Repo:      escrowpostgres.NewRepository(pg.DB, logger),
		Proposals: proposalDirectory{repo: proposalRepo, votes: governanceModule.Proposals},
		Stakes:    stakingModule.Service,
		Staking:   stakingGateway{service: stakingModule.Service},
		Fees:      feeModule.Service,
		Ledger:    tokenLedger,
		Clock:     escrowpostgres.SystemClock{},
		IDGen:     escrowpostgres.UUIDGenerator{},
		Logger:    logger,
	})

	server := httpserver.New(feeModule, governanceModule, escrowModule, stakingModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

// BuildInMemoryStack wires every module against in-process stores sharing
// one token ledger.
func BuildInMemoryStack(logger *slog.Logger) Stack {
	if logger == nil {
		logger = slog.Default()
	}

	tokenLedger := ledger.NewMemoryLedger()
	feeModule := feeengine.NewInMemoryModule(tokenLedger, rewardsVaultLocator{}, logger)

	// The proposal store is shared by the governance module and the staking
	// module's registry lookups, so it is built ahead of both.
	proposalStore := proposalmemory.NewStore()
	stakingModule := stakingpool.NewInMemoryModule(
		tokenLedger,
		feeModule.Service,
		registryDirectory{repo: proposalStore},
		logger,
	)
	governanceModule := proposalengine.NewModule(proposalengine.Dependencies{
		Repo:    proposalStore,
		Tokens:  tokenLedger,
		Fees:    feeModule.Service,
		Rewards: stakingGateway{service: stakingModule.Service},
		Clock:   proposalStore,
		IDGen:   proposalStore,
		Logger:  logger,
	})
	governanceModule.Store = proposalStore
	escrowModule := escrowservice.NewInMemoryModule(
		proposalDirectory{repo: governanceModule.Store, votes: governanceModule.Proposals},
		stakingModule.Service,
		stakingGateway{service: stakingModule.Service},
		feeModule.Service,
		tokenLedger,
		logger,
	)

	return Stack{
		Ledger:     tokenLedger,
		Fees:       feeModule,
		Governance: governanceModule,
		Escrows:    escrowModule,
		Staking:    stakingModule,
	}
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

// rewardsVaultLocator points the fee engine's staking share at the pool's
// rewards vault.
type rewardsVaultLocator struct{}

func (rewardsVaultLocator) RewardsVault(mint string) string {
	return stakingentities.RewardsVaultAddress(mint)
}

// registryDirectory resolves a mint's token authority out of the proposal
// engine's registry records.
type registryDirectory struct {
	repo proposalports.Repository
}

func (d registryDirectory) TokenAuthority(ctx context.Context, mint string) (string, error) {
	registry, found, err := d.repo.GetTokenRegistry(ctx, mint)
	if err != nil {
		return "", err
	}
	if !found {
		return "", governanceerrors.ErrTokenRegistryNotFound
	}
	return registry.Authority, nil
}

// proposalDirectory projects proposal state into the escrow context and
// forwards the weighted votes locks produce.
type proposalDirectory struct {
	repo  proposalports.Repository
	votes commands.ProposalUseCase
}

func (d proposalDirectory) GetProposal(ctx context.Context, proposalID string) (escrowports.ProposalView, error) {
	proposal, err := d.repo.GetProposal(ctx, proposalID)
	if err != nil {
		return escrowports.ProposalView{}, err
	}
	return escrowports.ProposalView{
		ProposalID:    proposal.ProposalID,
		Mint:          proposal.Mint,
		TokenCreator:  proposal.TokenCreator,
		Active:        proposal.Status == proposalentities.ProposalStatusActive,
		Executed:      proposal.Status == proposalentities.ProposalStatusExecuted,
		ChoiceCount:   uint8(len(proposal.Choices)),
		WinningChoice: proposal.WinningChoice,
	}, nil
}

func (d proposalDirectory) RecordVote(ctx context.Context, proposalID string, choiceID uint8, weight uint64) error {
	return d.votes.RecordVote(ctx, proposalID, choiceID, weight)
}

// stakingGateway hands losing escrow principal and fee staking shares to the
// staking pool.
type stakingGateway struct {
	service stakingapp.Service
}

func (g stakingGateway) StakeVault(mint string) string {
	return stakingentities.StakeVaultAddress(mint)
}

func (g stakingGateway) AddRedirectedStake(ctx context.Context, mint string, amount uint64) error {
	return g.service.AddRedirectedStake(ctx, mint, amount)
}

func (g stakingGateway) AccrueReward(ctx context.Context, mint string, amount uint64) error {
	return g.service.AccrueFeeReward(ctx, mint, amount)
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
