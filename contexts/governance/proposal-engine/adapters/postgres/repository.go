package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"launchpad/contexts/governance/proposal-engine/domain/entities"
	domainerrors "launchpad/contexts/governance/proposal-engine/domain/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// Models lists the gorm models this repository owns, for migration wiring.
func Models() []any {
	return []any{&tokenRegistryModel{}, &governanceModel{}, &proposalModel{}}
}

func (r *Repository) SaveTokenRegistry(ctx context.Context, registry entities.TokenRegistry) error {
	row := registryModelFromEntity(registry)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "mint"}},
		DoUpdates: clause.Assignments(map[string]any{
			"authority":          row.Authority,
			"token_name":         row.TokenName,
			"token_symbol":       row.TokenSymbol,
			"governance_enabled": row.GovernanceEnabled,
			"updated_at":         row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("governance_repo_save_registry_failed", err, "mint", registry.Mint)
	}
	return nil
}

func (r *Repository) GetTokenRegistry(ctx context.Context, mint string) (entities.TokenRegistry, bool, error) {
	var row tokenRegistryModel
	err := r.db.WithContext(ctx).
		Where("mint = ?", strings.TrimSpace(mint)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.TokenRegistry{}, false, nil
		}
		return entities.TokenRegistry{}, false, r.logError("governance_repo_get_registry_failed", err, "mint", mint)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) SaveGovernance(ctx context.Context, governance entities.Governance) error {
	row := governanceModelFromEntity(governance)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "mint"}},
		DoUpdates: clause.Assignments(map[string]any{
			"proposal_count":                row.ProposalCount,
			"voting_period_seconds":         row.VotingPeriodSeconds,
			"min_vote_threshold":            row.MinVoteThreshold,
			"proposal_threshold":            row.ProposalThreshold,
			"proposal_threshold_percentage": row.ProposalThresholdPercentage,
			"proposal_fee":                  row.ProposalFee,
			"active":                        row.Active,
			"updated_at":                    row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("governance_repo_save_governance_failed", err, "mint", governance.Mint)
	}
	return nil
}

func (r *Repository) GetGovernance(ctx context.Context, mint string) (entities.Governance, bool, error) {
	var row governanceModel
	err := r.db.WithContext(ctx).
		Where("mint = ?", strings.TrimSpace(mint)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Governance{}, false, nil
		}
		return entities.Governance{}, false, r.logError("governance_repo_get_governance_failed", err, "mint", mint)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) SaveProposal(ctx context.Context, proposal entities.Proposal) error {
	row, err := proposalModelFromEntity(proposal)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"vote_counts":    row.VoteCounts,
			"status":         row.Status,
			"winning_choice": row.WinningChoice,
			"updated_at":     row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return r.logError("governance_repo_save_proposal_failed", err, "proposal_id", proposal.ProposalID)
	}
	return nil
}

func (r *Repository) GetProposal(ctx context.Context, proposalID string) (entities.Proposal, error) {
	var row proposalModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(proposalID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Proposal{}, domainerrors.ErrProposalNotFound
		}
		return entities.Proposal{}, r.logError("governance_repo_get_proposal_failed", err, "proposal_id", proposalID)
	}
	return row.toEntity()
}

func (r *Repository) ListProposalsByMint(ctx context.Context, mint string) ([]entities.Proposal, error) {
	var rows []proposalModel
	err := r.db.WithContext(ctx).
		Where("mint = ?", strings.TrimSpace(mint)).
		Order("sequence ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("governance_repo_list_proposals_failed", err, "mint", mint)
	}
	items := make([]entities.Proposal, 0, len(rows))
	for _, row := range rows {
		proposal, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, proposal)
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "governance/proposal-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("proposal repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// SystemClock satisfies the Clock port for production wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator satisfies the IDGenerator port for production wiring.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
