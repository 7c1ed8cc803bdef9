package postgresadapter

import (
	"time"

	"launchpad/contexts/finance-core/fee-engine/domain/entities"
)

// The config table holds exactly one row keyed by a fixed id.
const configRowID = 1

type programConfigModel struct {
	ID           int       `gorm:"column:id;primaryKey"`
	Admin        string    `gorm:"column:admin;not null"`
	FeeCollector string    `gorm:"column:fee_collector;not null"`
	Version      int       `gorm:"column:version;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (programConfigModel) TableName() string {
	return "program_config"
}

func configModelFromEntity(config entities.ProgramConfig) programConfigModel {
	return programConfigModel{
		ID:           configRowID,
		Admin:        config.Admin,
		FeeCollector: config.FeeCollector,
		Version:      config.Version,
		CreatedAt:    config.CreatedAt,
		UpdatedAt:    config.UpdatedAt,
	}
}

func (m programConfigModel) toEntity() entities.ProgramConfig {
	return entities.ProgramConfig{
		Admin:        m.Admin,
		FeeCollector: m.FeeCollector,
		Version:      m.Version,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
