package postgresadapter

import (
	"encoding/json"
	"time"

	"launchpad/contexts/governance/proposal-engine/domain/entities"
)

type tokenRegistryModel struct {
	Mint              string    `gorm:"column:mint;primaryKey"`
	Authority         string    `gorm:"column:authority;not null"`
	TokenName         string    `gorm:"column:token_name;not null"`
	TokenSymbol       string    `gorm:"column:token_symbol;not null"`
	LaunchedAt        time.Time `gorm:"column:launched_at"`
	GovernanceEnabled bool      `gorm:"column:governance_enabled;not null"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (tokenRegistryModel) TableName() string {
	return "token_registries"
}

type governanceModel struct {
	Mint                        string    `gorm:"column:mint;primaryKey"`
	Authority                   string    `gorm:"column:authority;not null"`
	Name                        string    `gorm:"column:name;not null"`
	ProposalCount               uint64    `gorm:"column:proposal_count;not null"`
	VotingPeriodSeconds         int64     `gorm:"column:voting_period_seconds;not null"`
	MinVoteThreshold            uint64    `gorm:"column:min_vote_threshold;not null"`
	ProposalThreshold           uint64    `gorm:"column:proposal_threshold;not null"`
	ProposalThresholdPercentage uint8     `gorm:"column:proposal_threshold_percentage;not null"`
	ProposalFee                 uint64    `gorm:"column:proposal_fee;not null"`
	Active                      bool      `gorm:"column:active;not null"`
	CreatedAt                   time.Time `gorm:"column:created_at"`
	UpdatedAt                   time.Time `gorm:"column:updated_at"`
}

func (governanceModel) TableName() string {
	return "governances"
}

type proposalModel struct {
	ID               string          `gorm:"column:id;primaryKey"`
	Sequence         uint64          `gorm:"column:sequence;not null;uniqueIndex:idx_proposals_mint_sequence,priority:2"`
	Mint             string          `gorm:"column:mint;not null;uniqueIndex:idx_proposals_mint_sequence,priority:1"`
	Proposer         string          `gorm:"column:proposer;not null"`
	TokenCreator     string          `gorm:"column:token_creator;not null"`
	Title            string          `gorm:"column:title;not null"`
	Description      string          `gorm:"column:description"`
	Choices          json.RawMessage `gorm:"column:choices;type:jsonb;not null"`
	VoteCounts       json.RawMessage `gorm:"column:vote_counts;type:jsonb;not null"`
	Status           string          `gorm:"column:status;not null"`
	ExecutionType    string          `gorm:"column:execution_type;not null"`
	ExecutionPayload json.RawMessage `gorm:"column:execution_payload;type:jsonb"`
	CreatedAt        time.Time       `gorm:"column:created_at"`
	EndsAt           time.Time       `gorm:"column:ends_at"`
	WinningChoice    *int16          `gorm:"column:winning_choice"`
	UpdatedAt        time.Time       `gorm:"column:updated_at"`
}

func (proposalModel) TableName() string {
	return "proposals"
}

func registryModelFromEntity(registry entities.TokenRegistry) tokenRegistryModel {
	return tokenRegistryModel{
		Mint:              registry.Mint,
		Authority:         registry.Authority,
		TokenName:         registry.TokenName,
		TokenSymbol:       registry.TokenSymbol,
		LaunchedAt:        registry.LaunchedAt,
		GovernanceEnabled: registry.GovernanceEnabled,
		CreatedAt:         registry.CreatedAt,
		UpdatedAt:         registry.UpdatedAt,
	}
}

func (m tokenRegistryModel) toEntity() entities.TokenRegistry {
	return entities.TokenRegistry{
		Mint:              m.Mint,
		Authority:         m.Authority,
		TokenName:         m.TokenName,
		TokenSymbol:       m.TokenSymbol,
		LaunchedAt:        m.LaunchedAt,
		GovernanceEnabled: m.GovernanceEnabled,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func governanceModelFromEntity(governance entities.Governance) governanceModel {
	return governanceModel{
		Mint:                        governance.Mint,
		Authority:                   governance.Authority,
		Name:                        governance.Name,
		ProposalCount:               governance.ProposalCount,
		VotingPeriodSeconds:         governance.VotingPeriodSeconds,
		MinVoteThreshold:            governance.MinVoteThreshold,
		ProposalThreshold:           governance.ProposalThreshold,
		ProposalThresholdPercentage: governance.ProposalThresholdPercentage,
		ProposalFee:                 governance.ProposalFee,
		Active:                      governance.Active,
		CreatedAt:                   governance.CreatedAt,
		UpdatedAt:                   governance.UpdatedAt,
	}
}

func (m governanceModel) toEntity() entities.Governance {
	return entities.Governance{
		Mint:                        m.Mint,
		Authority:                   m.Authority,
		Name:                        m.Name,
		ProposalCount:               m.ProposalCount,
		VotingPeriodSeconds:         m.VotingPeriodSeconds,
		MinVoteThreshold:            m.MinVoteThreshold,
		ProposalThreshold:           m.ProposalThreshold,
		ProposalThresholdPercentage: m.ProposalThresholdPercentage,
		ProposalFee:                 m.ProposalFee,
		Active:                      m.Active,
		CreatedAt:                   m.CreatedAt,
		UpdatedAt:                   m.UpdatedAt,
	}
}

func proposalModelFromEntity(proposal entities.Proposal) (proposalModel, error) {
	choices, err := json.Marshal(proposal.Choices)
	if err != nil {
		return proposalModel{}, err
	}
	counts, err := json.Marshal(proposal.VoteCounts)
	if err != nil {
		return proposalModel{}, err
	}
	var winning *int16
	if proposal.WinningChoice != nil {
		value := int16(*proposal.WinningChoice)
		winning = &value
	}
	return proposalModel{
		ID:               proposal.ProposalID,
		Sequence:         proposal.Sequence,
		Mint:             proposal.Mint,
		Proposer:         proposal.Proposer,
		TokenCreator:     proposal.TokenCreator,
		Title:            proposal.Title,
		Description:      proposal.Description,
		Choices:          choices,
		VoteCounts:       counts,
		Status:           string(proposal.Status),
		ExecutionType:    string(proposal.ExecutionType),
		ExecutionPayload: proposal.ExecutionPayload,
		CreatedAt:        proposal.CreatedAt,
		EndsAt:           proposal.EndsAt,
		WinningChoice:    winning,
		UpdatedAt:        proposal.UpdatedAt,
	}, nil
}

func (m proposalModel) toEntity() (entities.Proposal, error) {
	var choices []string
	if err := json.Unmarshal(m.Choices, &choices); err != nil {
		return entities.Proposal{}, err
	}
	var counts []uint64
	if err := json.Unmarshal(m.VoteCounts, &counts); err != nil {
		return entities.Proposal{}, err
	}
	var winning *uint8
	if m.WinningChoice != nil {
		value := uint8(*m.WinningChoice)
		winning = &value
	}
	return entities.Proposal{
		ProposalID:       m.ID,
		Sequence:         m.Sequence,
		Mint:             m.Mint,
		Proposer:         m.Proposer,
		TokenCreator:     m.TokenCreator,
		Title:            m.Title,
		Description:      m.Description,
		Choices:          choices,
		VoteCounts:       counts,
		Status:           entities.ProposalStatus(m.Status),
		ExecutionType:    entities.ExecutionType(m.ExecutionType),
		ExecutionPayload: m.ExecutionPayload,
		CreatedAt:        m.CreatedAt,
		EndsAt:           m.EndsAt,
		WinningChoice:    winning,
		UpdatedAt:        m.UpdatedAt,
	}, nil
}
