package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"launchpad/contexts/governance/escrow-service/domain/entities"
	domainerrors "launchpad/contexts/governance/escrow-service/domain/errors"

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
	return []any{&choiceEscrowModel{}}
}

func (r *Repository) SaveEscrow(ctx context.Context, escrow entities.ChoiceEscrow) error {
	row := escrowModelFromEntity(escrow)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"locked_amount": row.LockedAmount,
			"vote_weight":   row.VoteWeight,
			"boosted":       row.Boosted,
			"updated_at":    row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrEscrowExists
		}
		r.logError("escrow_repo_save_failed", err, "proposal_id", escrow.ProposalID, "voter", escrow.Voter)
		return err
	}
	return nil
}

func (r *Repository) GetEscrow(ctx context.Context, proposalID string, choiceID uint8, voter string) (entities.ChoiceEscrow, bool, error) {
	var row choiceEscrowModel
	err := r.db.WithContext(ctx).
		Where("proposal_id = ? AND choice_id = ? AND voter = ?", proposalID, int16(choiceID), voter).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ChoiceEscrow{}, false, nil
		}
		r.logError("escrow_repo_get_failed", err, "proposal_id", proposalID, "voter", voter)
		return entities.ChoiceEscrow{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListEscrowsByProposal(ctx context.Context, proposalID string) ([]entities.ChoiceEscrow, error) {
	var rows []choiceEscrowModel
	err := r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Order("choice_id asc, voter asc").
		Find(&rows).
		Error
	if err != nil {
		r.logError("escrow_repo_list_failed", err, "proposal_id", proposalID)
		return nil, err
	}
	items := make([]entities.ChoiceEscrow, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) logError(event string, err error, args ...any) {
	fields := append([]any{
		"event", event,
		"module", "governance/escrow-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("escrow repository operation failed", fields...)
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
