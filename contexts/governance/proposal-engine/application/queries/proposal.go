package queries

import (
	"context"
	"strings"

	"launchpad/contexts/governance/proposal-engine/domain/entities"
	"launchpad/contexts/governance/proposal-engine/ports"
)

// TallyView is the read model for a proposal's current standings.
type TallyView struct {
	ProposalID    string
	Sequence      uint64
	Status        entities.ProposalStatus
	Choices       []string
	VoteCounts    []uint64
	TotalVotes    uint64
	LeadingChoice uint8
	WinningChoice *uint8
}

type ProposalQueries struct {
	Repo ports.Repository
}

func (q ProposalQueries) GetProposal(ctx context.Context, proposalID string) (entities.Proposal, error) {
	return q.Repo.GetProposal(ctx, strings.TrimSpace(proposalID))
}

func (q ProposalQueries) ListByMint(ctx context.Context, mint string) ([]entities.Proposal, error) {
	return q.Repo.ListProposalsByMint(ctx, strings.TrimSpace(mint))
}

func (q ProposalQueries) Tally(ctx context.Context, proposalID string) (TallyView, error) {
	proposal, err := q.Repo.GetProposal(ctx, strings.TrimSpace(proposalID))
	if err != nil {
		return TallyView{}, err
	}
	var total uint64
	for _, votes := range proposal.VoteCounts {
		total += votes
	}
	return TallyView{
		ProposalID:    proposal.ProposalID,
		Sequence:      proposal.Sequence,
		Status:        proposal.Status,
		Choices:       proposal.Choices,
		VoteCounts:    proposal.VoteCounts,
		TotalVotes:    total,
		LeadingChoice: proposal.WinnerIndex(),
		WinningChoice: proposal.WinningChoice,
	}, nil
}
