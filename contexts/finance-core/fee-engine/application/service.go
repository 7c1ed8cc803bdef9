package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"launchpad/contexts/finance-core/fee-engine/domain/entities"
	domainerrors "launchpad/contexts/finance-core/fee-engine/domain/errors"
	"launchpad/contexts/finance-core/fee-engine/ports"
	"launchpad/internal/shared/feesplit"
)

// Service owns the ProgramConfig record and executes every fee transfer in
// the protocol. Callers supply the fee collector they believe is active;
// a mismatch against the resolved collector rejects the whole operation.
type Service struct {
	Repo         ports.Repository
	Ledger       ports.Ledger
	RewardsVault ports.RewardsVaultLocator
	Clock        ports.Clock
	Logger       *slog.Logger
}

// InitializeConfig creates the singleton config record. An empty collector
// installs the fixed default.
func (s Service) InitializeConfig(ctx context.Context, admin, feeCollector string) (entities.ProgramConfig, error) {
	admin = strings.TrimSpace(admin)
	if admin == "" {
		return entities.ProgramConfig{}, domainerrors.ErrInvalidInput
	}
	if _, found, err := s.Repo.GetConfig(ctx); err != nil {
		return entities.ProgramConfig{}, err
	} else if found {
		return entities.ProgramConfig{}, domainerrors.ErrConfigExists
	}

	collector := strings.TrimSpace(feeCollector)
	if collector == "" {
		collector = entities.DefaultFeeCollector
	}
	now := s.now()
	config := entities.ProgramConfig{
		Admin:        admin,
		FeeCollector: collector,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.SaveConfig(ctx, config); err != nil {
		return entities.ProgramConfig{}, err
	}
	resolveLogger(s.Logger).Info("program config initialized",
		"event", "fee_config_initialized",
		"module", "finance-core/fee-engine",
		"layer", "application",
		"admin", admin,
		"fee_collector", collector,
	)
	return config, nil
}

// UpdateFeeCollector rotates the collector. Admin-gated by identity
// equality; every update bumps the config version.
func (s Service) UpdateFeeCollector(ctx context.Context, caller, newCollector string) (entities.ProgramConfig, error) {
	newCollector = strings.TrimSpace(newCollector)
	if newCollector == "" {
		return entities.ProgramConfig{}, domainerrors.ErrInvalidInput
	}
	config, found, err := s.Repo.GetConfig(ctx)
	if err != nil {
		return entities.ProgramConfig{}, err
	}
	if !found {
		return entities.ProgramConfig{}, domainerrors.ErrConfigNotFound
	}
	if strings.TrimSpace(caller) != config.Admin {
		return entities.ProgramConfig{}, domainerrors.ErrUnauthorized
	}

	config.FeeCollector = newCollector
	config.Version++
	config.UpdatedAt = s.now()
	if err := s.Repo.SaveConfig(ctx, config); err != nil {
		return entities.ProgramConfig{}, err
	}
	resolveLogger(s.Logger).Info("fee collector updated",
		"event", "fee_collector_updated",
		"module", "finance-core/fee-engine",
		"layer", "application",
		"fee_collector", newCollector,
		"version", config.Version,
	)
	return config, nil
}

// ResolveCollector returns the configured collector, or the fixed default
// when no config record exists yet.
func (s Service) ResolveCollector(ctx context.Context) (string, error) {
	config, found, err := s.Repo.GetConfig(ctx)
	if err != nil {
		return "", err
	}
	if !found {
		return entities.DefaultFeeCollector, nil
	}
	return config.FeeCollector, nil
}

// VerifyCollector checks a caller-supplied collector identity against the
// resolved one and returns the resolved address.
func (s Service) VerifyCollector(ctx context.Context, supplied string) (string, error) {
	resolved, err := s.ResolveCollector(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(supplied) != resolved {
		return "", domainerrors.ErrInvalidFeeCollector
	}
	return resolved, nil
}

// ChargeFee skims the additive 1% fee for a gross amount: the payer covers
// amount + fee, with the protocol share sent to the collector and the
// staking share to the mint's rewards vault. A zero fee moves nothing and
// still succeeds.
func (s Service) ChargeFee(ctx context.Context, payer, mint string, amount uint64, collector string) (feesplit.Breakdown, error) {
	resolved, err := s.VerifyCollector(ctx, collector)
	if err != nil {
		return feesplit.Breakdown{}, err
	}
	return s.collect(ctx, payer, payer, mint, resolved, feesplit.Split(amount), false)
}

// CollectFlatFee splits an already-determined fee amount (the governance
// proposal fee) and transfers both shares from the payer.
func (s Service) CollectFlatFee(ctx context.Context, payer, mint string, fee uint64, collector string) (feesplit.Breakdown, error) {
	resolved, err := s.VerifyCollector(ctx, collector)
	if err != nil {
		return feesplit.Breakdown{}, err
	}
	return s.collect(ctx, payer, payer, mint, resolved, feesplit.SplitFee(fee), false)
}

// CollectFromPrincipal deducts the fee from funds already locked in a vault
// during escrow settlement. With protocolOnly the staking share stays folded
// into the remainder (losing-escrow redirection); otherwise the full fee is
// deducted and both shares move. Returns the remainder left for the caller
// to transfer out of the vault.
func (s Service) CollectFromPrincipal(
	ctx context.Context,
	vault string,
	vaultAuthority string,
	mint string,
	principal uint64,
	collector string,
	protocolOnly bool,
) (feesplit.Breakdown, uint64, error) {
	resolved, err := s.VerifyCollector(ctx, collector)
	if err != nil {
		return feesplit.Breakdown{}, 0, err
	}
	breakdown, err := s.collect(ctx, vault, vaultAuthority, mint, resolved, feesplit.Split(principal), protocolOnly)
	if err != nil {
		return feesplit.Breakdown{}, 0, err
	}
	remainder := principal - breakdown.Fee
	if protocolOnly {
		remainder = principal - breakdown.Protocol
	}
	return breakdown, remainder, nil
}

func (s Service) collect(
	ctx context.Context,
	source string,
	authority string,
	mint string,
	resolvedCollector string,
	breakdown feesplit.Breakdown,
	protocolOnly bool,
) (feesplit.Breakdown, error) {
	if breakdown.Protocol > 0 {
		if err := s.Ledger.Transfer(ctx, source, resolvedCollector, authority, mint, breakdown.Protocol); err != nil {
			return feesplit.Breakdown{}, err
		}
	}
	if !protocolOnly && breakdown.Staking > 0 {
		if err := s.Ledger.Transfer(ctx, source, s.RewardsVault.RewardsVault(mint), authority, mint, breakdown.Staking); err != nil {
			return feesplit.Breakdown{}, err
		}
	}
	resolveLogger(s.Logger).Info("protocol fee collected",
		"event", "fee_collected",
		"module", "finance-core/fee-engine",
		"layer", "application",
		"source", source,
		"mint", mint,
		"fee", breakdown.Fee,
		"protocol_share", breakdown.Protocol,
		"staking_share", breakdown.Staking,
		"protocol_only", protocolOnly,
	)
	return breakdown, nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
