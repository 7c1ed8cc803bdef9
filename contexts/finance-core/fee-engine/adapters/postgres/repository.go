package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"launchpad/contexts/finance-core/fee-engine/domain/entities"

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
	return []any{&programConfigModel{}}
}

func (r *Repository) GetConfig(ctx context.Context) (entities.ProgramConfig, bool, error) {
	var row programConfigModel
	err := r.db.WithContext(ctx).
		Where("id = ?", configRowID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.ProgramConfig{}, false, nil
		}
		r.logger.Error("fee config lookup failed",
			"event", "fee_repo_get_config_failed",
			"module", "finance-core/fee-engine",
			"layer", "adapter",
			"error", err.Error(),
		)
		return entities.ProgramConfig{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) SaveConfig(ctx context.Context, config entities.ProgramConfig) error {
	row := configModelFromEntity(config)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"admin":         row.Admin,
			"fee_collector": row.FeeCollector,
			"version":       row.Version,
			"updated_at":    row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		r.logger.Error("fee config save failed",
			"event", "fee_repo_save_config_failed",
			"module", "finance-core/fee-engine",
			"layer", "adapter",
			"error", err.Error(),
		)
		return err
	}
	return nil
}

// SystemClock satisfies the Clock port for production wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
