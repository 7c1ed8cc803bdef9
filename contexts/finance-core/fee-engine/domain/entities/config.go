package entities

import "time"

// DefaultFeeCollector receives protocol fees until an admin installs a
// ProgramConfig with an explicit collector.
const DefaultFeeCollector = "fee-collector:launchpad-default"

// ProgramConfig is the single versioned protocol configuration record.
// Only the stored admin may rotate the fee collector.
type ProgramConfig struct {
	Admin        string
	FeeCollector string
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
