package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"launchpad/contexts/governance/proposal-engine/application/commands"
	"launchpad/contexts/governance/proposal-engine/application/queries"
	"launchpad/contexts/governance/proposal-engine/domain/entities"
	httptransport "launchpad/contexts/governance/proposal-engine/transport/http"
)

type Handler struct {
	Registry  commands.RegistryUseCase
	Proposals commands.ProposalUseCase
	Queries   queries.ProposalQueries
	Logger    *slog.Logger
}

func (h Handler) InitializeRegistryHandler(
	ctx context.Context,
	authorityID string,
	req httptransport.InitializeRegistryRequest,
) (httptransport.RegistryResponse, error) {
	registry, err := h.Registry.InitializeTokenRegistry(ctx, commands.InitializeTokenRegistryCommand{
		Authority:   authorityID,
		Mint:        req.Mint,
		TokenName:   req.TokenName,
		TokenSymbol: req.TokenSymbol,
	})
	if err != nil {
		return httptransport.RegistryResponse{}, err
	}
	return httptransport.RegistryResponse{
		Mint:              registry.Mint,
		Authority:         registry.Authority,
		TokenName:         registry.TokenName,
		TokenSymbol:       registry.TokenSymbol,
		GovernanceEnabled: registry.GovernanceEnabled,
	}, nil
}

func (h Handler) InitializeGovernanceHandler(
	ctx context.Context,
	authorityID string,
	req httptransport.InitializeGovernanceRequest,
) (httptransport.GovernanceResponse, error) {
	governance, err := h.Registry.InitializeGovernance(ctx, commands.InitializeGovernanceCommand{
		Authority:                   authorityID,
		Mint:                        req.Mint,
		Name:                        req.Name,
		VotingPeriodSeconds:         req.VotingPeriodSeconds,
		MinVoteThreshold:            req.MinVoteThreshold,
		ProposalThreshold:           req.ProposalThreshold,
		ProposalThresholdPercentage: req.ProposalThresholdPercentage,
		ProposalFee:                 req.ProposalFee,
	})
	if err != nil {
		return httptransport.GovernanceResponse{}, err
	}
	return governanceResponse(governance), nil
}

func (h Handler) CreateProposalHandler(
	ctx context.Context,
	proposerID string,
	req httptransport.CreateProposalRequest,
) (httptransport.ProposalResponse, error) {
	proposal, err := h.Proposals.CreateProposal(ctx, commands.CreateProposalCommand{
		Proposer:              proposerID,
		Mint:                  req.Mint,
		Title:                 req.Title,
		Description:           req.Description,
		Choices:               req.Choices,
		VotingDurationSeconds: req.VotingDurationSeconds,
		ExecutionType:         entities.ExecutionType(req.ExecutionType),
		ExecutionPayload:      req.ExecutionPayload,
		FeeCollector:          req.FeeCollector,
	})
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return proposalResponse(proposal), nil
}

func (h Handler) ExecuteProposalHandler(
	ctx context.Context,
	executorID string,
	proposalID string,
) (httptransport.ProposalResponse, error) {
	proposal, err := h.Proposals.Execute(ctx, commands.ExecuteProposalCommand{
		Executor:   executorID,
		ProposalID: proposalID,
	})
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return proposalResponse(proposal), nil
}

func (h Handler) GetProposalHandler(ctx context.Context, proposalID string) (httptransport.ProposalResponse, error) {
	proposal, err := h.Queries.GetProposal(ctx, proposalID)
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return proposalResponse(proposal), nil
}

func (h Handler) ListProposalsHandler(ctx context.Context, mint string) (httptransport.ProposalListResponse, error) {
	proposals, err := h.Queries.ListByMint(ctx, mint)
	if err != nil {
		return httptransport.ProposalListResponse{}, err
	}
	items := make([]httptransport.ProposalResponse, 0, len(proposals))
	for _, proposal := range proposals {
		items = append(items, proposalResponse(proposal))
	}
	return httptransport.ProposalListResponse{Items: items}, nil
}

func (h Handler) TallyHandler(ctx context.Context, proposalID string) (httptransport.TallyResponse, error) {
	tally, err := h.Queries.Tally(ctx, proposalID)
	if err != nil {
		return httptransport.TallyResponse{}, err
	}
	return httptransport.TallyResponse{
		ProposalID:    tally.ProposalID,
		Sequence:      tally.Sequence,
		Status:        string(tally.Status),
		Choices:       tally.Choices,
		VoteCounts:    tally.VoteCounts,
		TotalVotes:    tally.TotalVotes,
		LeadingChoice: tally.LeadingChoice,
		WinningChoice: tally.WinningChoice,
	}, nil
}

func governanceResponse(governance entities.Governance) httptransport.GovernanceResponse {
	return httptransport.GovernanceResponse{
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
	}
}

func proposalResponse(proposal entities.Proposal) httptransport.ProposalResponse {
	return httptransport.ProposalResponse{
		ProposalID:    proposal.ProposalID,
		Sequence:      proposal.Sequence,
		Mint:          proposal.Mint,
		Proposer:      proposal.Proposer,
		Title:         proposal.Title,
		Description:   proposal.Description,
		Choices:       proposal.Choices,
		VoteCounts:    proposal.VoteCounts,
		Status:        string(proposal.Status),
		ExecutionType: string(proposal.ExecutionType),
		CreatedAt:     proposal.CreatedAt.UTC().Format(time.RFC3339),
		EndsAt:        proposal.EndsAt.UTC().Format(time.RFC3339),
		WinningChoice: proposal.WinningChoice,
	}
}
