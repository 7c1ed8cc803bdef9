package postgresadapter

import (
	"time"

	"launchpad/contexts/governance/escrow-service/domain/entities"
)

type choiceEscrowModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	ProposalID   string    `gorm:"column:proposal_id;not null;uniqueIndex:idx_escrows_proposal_choice_voter,priority:1"`
	ChoiceID     int16     `gorm:"column:choice_id;not null;uniqueIndex:idx_escrows_proposal_choice_voter,priority:2"`
	Voter        string    `gorm:"column:voter;not null;uniqueIndex:idx_escrows_proposal_choice_voter,priority:3"`
	Mint         string    `gorm:"column:mint;not null"`
	LockedAmount uint64    `gorm:"column:locked_amount;not null"`
	VoteWeight   uint64    `gorm:"column:vote_weight;not null"`
	Boosted      bool      `gorm:"column:boosted;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (choiceEscrowModel) TableName() string {
	return "choice_escrows"
}

func escrowModelFromEntity(escrow entities.ChoiceEscrow) choiceEscrowModel {
	return choiceEscrowModel{
		ID:           escrow.EscrowID,
		ProposalID:   escrow.ProposalID,
		ChoiceID:     int16(escrow.ChoiceID),
		Voter:        escrow.Voter,
		Mint:         escrow.Mint,
		LockedAmount: escrow.LockedAmount,
		VoteWeight:   escrow.VoteWeight,
		Boosted:      escrow.Boosted,
		CreatedAt:    escrow.CreatedAt,
		UpdatedAt:    escrow.UpdatedAt,
	}
}

func (m choiceEscrowModel) toEntity() entities.ChoiceEscrow {
	return entities.ChoiceEscrow{
		EscrowID:     m.ID,
		ProposalID:   m.ProposalID,
		ChoiceID:     uint8(m.ChoiceID),
		Voter:        m.Voter,
		Mint:         m.Mint,
		LockedAmount: m.LockedAmount,
		VoteWeight:   m.VoteWeight,
		Boosted:      m.Boosted,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
