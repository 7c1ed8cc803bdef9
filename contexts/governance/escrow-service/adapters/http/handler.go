package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"launchpad/contexts/governance/escrow-service/application/commands"
	"launchpad/contexts/governance/escrow-service/application/queries"
	"launchpad/contexts/governance/escrow-service/domain/entities"
	httptransport "launchpad/contexts/governance/escrow-service/transport/http"
)

type Handler struct {
	Escrows commands.EscrowUseCase
	Queries queries.EscrowQueries
	Logger  *slog.Logger
}

func (h Handler) LockHandler(
	ctx context.Context,
	voterID string,
	req httptransport.LockEscrowRequest,
) (httptransport.EscrowResponse, error) {
	escrow, err := h.Escrows.Lock(ctx, commands.LockCommand{
		Voter:        voterID,
		ProposalID:   req.ProposalID,
		ChoiceID:     req.ChoiceID,
		Amount:       req.Amount,
		UseBoost:     req.UseBoost,
		FeeCollector: req.FeeCollector,
	})
	if err != nil {
		return httptransport.EscrowResponse{}, err
	}
	return escrowResponse(escrow), nil
}

func (h Handler) SettleWinnerHandler(
	ctx context.Context,
	executorID string,
	req httptransport.SettleEscrowRequest,
) (httptransport.SettlementResponse, error) {
	released, err := h.Escrows.SettleWinner(ctx, commands.SettleCommand{
		Executor:     executorID,
		ProposalID:   req.ProposalID,
		ChoiceID:     req.ChoiceID,
		Voter:        req.Voter,
		FeeCollector: req.FeeCollector,
	})
	if err != nil {
		return httptransport.SettlementResponse{}, err
	}
	return httptransport.SettlementResponse{
		ProposalID: req.ProposalID,
		ChoiceID:   req.ChoiceID,
		Voter:      req.Voter,
		Released:   released,
	}, nil
}

func (h Handler) SettleLoserHandler(
	ctx context.Context,
	executorID string,
	req httptransport.SettleEscrowRequest,
) (httptransport.SettlementResponse, error) {
	released, err := h.Escrows.SettleLoser(ctx, commands.SettleCommand{
		Executor:     executorID,
		ProposalID:   req.ProposalID,
		ChoiceID:     req.ChoiceID,
		Voter:        req.Voter,
		FeeCollector: req.FeeCollector,
	})
	if err != nil {
		return httptransport.SettlementResponse{}, err
	}
	return httptransport.SettlementResponse{
		ProposalID: req.ProposalID,
		ChoiceID:   req.ChoiceID,
		Voter:      req.Voter,
		Released:   released,
	}, nil
}

func (h Handler) GetEscrowHandler(
	ctx context.Context,
	proposalID string,
	choiceID uint8,
	voter string,
) (httptransport.EscrowResponse, error) {
	escrow, err := h.Queries.GetEscrow(ctx, proposalID, choiceID, voter)
	if err != nil {
		return httptransport.EscrowResponse{}, err
	}
	return escrowResponse(escrow), nil
}

func (h Handler) ListEscrowsHandler(ctx context.Context, proposalID string) (httptransport.EscrowListResponse, error) {
	escrows, err := h.Queries.ListByProposal(ctx, proposalID)
	if err != nil {
		return httptransport.EscrowListResponse{}, err
	}
	items := make([]httptransport.EscrowResponse, 0, len(escrows))
	for _, escrow := range escrows {
		items = append(items, escrowResponse(escrow))
	}
	return httptransport.EscrowListResponse{Items: items}, nil
}

func escrowResponse(escrow entities.ChoiceEscrow) httptransport.EscrowResponse {
	return httptransport.EscrowResponse{
		EscrowID:     escrow.EscrowID,
		ProposalID:   escrow.ProposalID,
		ChoiceID:     escrow.ChoiceID,
		Voter:        escrow.Voter,
		Mint:         escrow.Mint,
		LockedAmount: escrow.LockedAmount,
		VoteWeight:   escrow.VoteWeight,
		Boosted:      escrow.Boosted,
		CreatedAt:    escrow.CreatedAt.UTC().Format(time.RFC3339),
	}
}
