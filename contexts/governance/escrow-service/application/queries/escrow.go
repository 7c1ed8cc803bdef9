package queries

import (
	"context"
	"strings"

	"launchpad/contexts/governance/escrow-service/domain/entities"
	domainerrors "launchpad/contexts/governance/escrow-service/domain/errors"
	"launchpad/contexts/governance/escrow-service/ports"
)

type EscrowQueries struct {
	Repo ports.Repository
}

func (q EscrowQueries) GetEscrow(ctx context.Context, proposalID string, choiceID uint8, voter string) (entities.ChoiceEscrow, error) {
	escrow, found, err := q.Repo.GetEscrow(ctx, strings.TrimSpace(proposalID), choiceID, strings.TrimSpace(voter))
	if err != nil {
		return entities.ChoiceEscrow{}, err
	}
	if !found {
		return entities.ChoiceEscrow{}, domainerrors.ErrEscrowNotFound
	}
	return escrow, nil
}

func (q EscrowQueries) ListByProposal(ctx context.Context, proposalID string) ([]entities.ChoiceEscrow, error) {
	return q.Repo.ListEscrowsByProposal(ctx, strings.TrimSpace(proposalID))
}
