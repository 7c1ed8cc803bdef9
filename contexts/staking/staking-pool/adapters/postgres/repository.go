package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"launchpad/contexts/staking/staking-pool/domain/entities"

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
	return []any{&stakingPoolModel{}, &stakerAccountModel{}}
}

func (r *Repository) SavePool(ctx context.Context, pool entities.StakingPool) error {
	row := poolModelFromEntity(pool)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "mint"}},
		DoUpdates: clause.Assignments(map[string]any{
			"reward_balance":                row.RewardBalance,
			"total_staked":                  row.TotalStaked,
			"last_distribution_time":        row.LastDistributionTime,
			"distribution_interval_seconds": row.DistributionIntervalSeconds,
			"updated_at":                    row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		r.logError(ctx, "staking_repo_save_pool_failed", err)
		return err
	}
	return nil
}

func (r *Repository) GetPool(ctx context.Context, mint string) (entities.StakingPool, bool, error) {
	var row stakingPoolModel
	err := r.db.WithContext(ctx).
		Where("mint = ?", mint).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.StakingPool{}, false, nil
		}
		r.logError(ctx, "staking_repo_get_pool_failed", err)
		return entities.StakingPool{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) SaveStaker(ctx context.Context, account entities.StakerAccount) error {
	row := stakerModelFromEntity(account)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "staker"}, {Name: "mint"}},
		DoUpdates: clause.Assignments(map[string]any{
			"staked_amount":      row.StakedAmount,
			"stake_start_time":   row.StakeStartTime,
			"last_claim_time":    row.LastClaimTime,
			"cumulative_rewards": row.CumulativeRewards,
			"auto_compound":      row.AutoCompound,
			"updated_at":         row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		r.logError(ctx, "staking_repo_save_staker_failed", err)
		return err
	}
	return nil
}

func (r *Repository) GetStaker(ctx context.Context, staker, mint string) (entities.StakerAccount, bool, error) {
	var row stakerAccountModel
	err := r.db.WithContext(ctx).
		Where("staker = ? AND mint = ?", staker, mint).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.StakerAccount{}, false, nil
		}
		r.logError(ctx, "staking_repo_get_staker_failed", err)
		return entities.StakerAccount{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListStakersByMint(ctx context.Context, mint string) ([]entities.StakerAccount, error) {
	var rows []stakerAccountModel
	err := r.db.WithContext(ctx).
		Where("mint = ?", mint).
		Order("staker asc").
		Find(&rows).
		Error
	if err != nil {
		r.logError(ctx, "staking_repo_list_stakers_failed", err)
		return nil, err
	}
	items := make([]entities.StakerAccount, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) logError(ctx context.Context, event string, err error) {
	r.logger.ErrorContext(ctx, "staking repository operation failed",
		"event", event,
		"module", "staking/staking-pool",
		"layer", "adapter",
		"error", err.Error(),
	)
}

// SystemClock satisfies the Clock port for production wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
