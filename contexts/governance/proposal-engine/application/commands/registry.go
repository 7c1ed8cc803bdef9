package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"launchpad/contexts/governance/proposal-engine/application"
	"launchpad/contexts/governance/proposal-engine/domain/entities"
	domainerrors "launchpad/contexts/governance/proposal-engine/domain/errors"
	"launchpad/contexts/governance/proposal-engine/ports"
)

// InitializeTokenRegistryCommand launches a token under governance control.
type InitializeTokenRegistryCommand struct {
	Authority   string
	Mint        string
	TokenName   string
	TokenSymbol string
}

// InitializeGovernanceCommand enables governance for a registered token.
type InitializeGovernanceCommand struct {
	Authority                   string
	Mint                        string
	Name                        string
	VotingPeriodSeconds         int64
	MinVoteThreshold            uint64
	ProposalThreshold           uint64
	ProposalThresholdPercentage uint8
	ProposalFee                 uint64
}

// RegistryUseCase owns the once-per-mint registry and governance records.
type RegistryUseCase struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc RegistryUseCase) InitializeTokenRegistry(
	ctx context.Context,
	cmd InitializeTokenRegistryCommand,
) (entities.TokenRegistry, error) {
	authority := strings.TrimSpace(cmd.Authority)
	mint := strings.TrimSpace(cmd.Mint)
	name := strings.TrimSpace(cmd.TokenName)
	symbol := strings.TrimSpace(cmd.TokenSymbol)
	if authority == "" || mint == "" || name == "" || symbol == "" {
		return entities.TokenRegistry{}, domainerrors.ErrInvalidInput
	}
	if len(name) > entities.MaxNameLen || len(symbol) > entities.MaxSymbolLen {
		return entities.TokenRegistry{}, domainerrors.ErrInvalidInput
	}

	if _, found, err := uc.Repo.GetTokenRegistry(ctx, mint); err != nil {
		return entities.TokenRegistry{}, err
	} else if found {
		return entities.TokenRegistry{}, domainerrors.ErrTokenRegistryExists
	}

	now := uc.now()
	registry := entities.TokenRegistry{
		Mint:              mint,
		Authority:         authority,
		TokenName:         name,
		TokenSymbol:       symbol,
		LaunchedAt:        now,
		GovernanceEnabled: false,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.Repo.SaveTokenRegistry(ctx, registry); err != nil {
		return entities.TokenRegistry{}, err
	}
	application.ResolveLogger(uc.Logger).Info("token registry initialized",
		"event", "governance_registry_initialized",
		"module", "governance/proposal-engine",
		"layer", "application",
		"mint", mint,
		"token_name", name,
	)
	return registry, nil
}

func (uc RegistryUseCase) InitializeGovernance(
	ctx context.Context,
	cmd InitializeGovernanceCommand,
) (entities.Governance, error) {
	authority := strings.TrimSpace(cmd.Authority)
	mint := strings.TrimSpace(cmd.Mint)
	name := strings.TrimSpace(cmd.Name)
	if authority == "" || mint == "" || name == "" || len(name) > entities.MaxNameLen {
		return entities.Governance{}, domainerrors.ErrInvalidInput
	}
	if cmd.VotingPeriodSeconds < entities.MinVotingDurationSeconds {
		return entities.Governance{}, domainerrors.ErrVotingDurationTooShort
	}
	if cmd.ProposalThresholdPercentage > 100 {
		return entities.Governance{}, domainerrors.ErrInvalidInput
	}

	registry, found, err := uc.Repo.GetTokenRegistry(ctx, mint)
	if err != nil {
		return entities.Governance{}, err
	}
	if !found {
		return entities.Governance{}, domainerrors.ErrTokenRegistryNotFound
	}
	if registry.Authority != authority {
		return entities.Governance{}, domainerrors.ErrUnauthorized
	}
	if _, found, err := uc.Repo.GetGovernance(ctx, mint); err != nil {
		return entities.Governance{}, err
	} else if found {
		return entities.Governance{}, domainerrors.ErrGovernanceExists
	}

	now := uc.now()
	governance := entities.Governance{
		Mint:                        mint,
		Authority:                   authority,
		Name:                        name,
		ProposalCount:               0,
		VotingPeriodSeconds:         cmd.VotingPeriodSeconds,
		MinVoteThreshold:            cmd.MinVoteThreshold,
		ProposalThreshold:           cmd.ProposalThreshold,
		ProposalThresholdPercentage: cmd.ProposalThresholdPercentage,
		ProposalFee:                 cmd.ProposalFee,
		Active:                      true,
		CreatedAt:                   now,
		UpdatedAt:                   now,
	}
	if err := uc.Repo.SaveGovernance(ctx, governance); err != nil {
		return entities.Governance{}, err
	}

	registry.GovernanceEnabled = true
	registry.UpdatedAt = now
	if err := uc.Repo.SaveTokenRegistry(ctx, registry); err != nil {
		return entities.Governance{}, err
	}
	application.ResolveLogger(uc.Logger).Info("governance initialized",
		"event", "governance_initialized",
		"module", "governance/proposal-engine",
		"layer", "application",
		"mint", mint,
		"name", name,
		"voting_period_seconds", cmd.VotingPeriodSeconds,
	)
	return governance, nil
}

func (uc RegistryUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
