package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strings"
	"time"

	"launchpad/contexts/governance/proposal-engine/application"
	"launchpad/contexts/governance/proposal-engine/domain/entities"
	domainerrors "launchpad/contexts/governance/proposal-engine/domain/errors"
	"launchpad/contexts/governance/proposal-engine/ports"

	"github.com/holiman/uint256"
)

// CreateProposalCommand is the write-model input for proposal submission.
type CreateProposalCommand struct {
	Proposer              string
	Mint                  string
	Title                 string
	Description           string
	Choices               []string
	VotingDurationSeconds *int64
	ExecutionType         entities.ExecutionType
	ExecutionPayload      json.RawMessage
	FeeCollector          string
}

// ExecuteProposalCommand requests the tally-and-execute transition.
type ExecuteProposalCommand struct {
	Executor   string
	ProposalID string
}

// ProposalUseCase orchestrates the proposal state machine. Proposals only
// move Active -> Executed; the Rejected status stays unreachable.
type ProposalUseCase struct {
	Repo    ports.Repository
	Tokens  ports.TokenReader
	Fees    ports.FeePolicy
	Rewards ports.RewardAccrual
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func (uc ProposalUseCase) CreateProposal(ctx context.Context, cmd CreateProposalCommand) (entities.Proposal, error) {
	proposer := strings.TrimSpace(cmd.Proposer)
	mint := strings.TrimSpace(cmd.Mint)
	title := strings.TrimSpace(cmd.Title)
	if proposer == "" || mint == "" || title == "" {
		return entities.Proposal{}, domainerrors.ErrInvalidInput
	}
	if len(title) > entities.MaxTitleLen || len(cmd.Description) > entities.MaxDescriptionLen {
		return entities.Proposal{}, domainerrors.ErrInvalidInput
	}
	if len(cmd.Choices) <= 1 {
		return entities.Proposal{}, domainerrors.ErrInvalidChoicesCount
	}
	if len(cmd.Choices) > entities.MaxChoices {
		return entities.Proposal{}, domainerrors.ErrTooManyChoices
	}
	choices := make([]string, 0, len(cmd.Choices))
	for _, choice := range cmd.Choices {
		choice = strings.TrimSpace(choice)
		if choice == "" || len(choice) > entities.MaxChoiceLen {
			return entities.Proposal{}, domainerrors.ErrInvalidInput
		}
		choices = append(choices, choice)
	}
	executionType := cmd.ExecutionType
	if executionType == "" {
		executionType = entities.ExecutionTypeNone
	}
	if executionType != entities.ExecutionTypeNone && executionType != entities.ExecutionTypeUpdateSettings {
		return entities.Proposal{}, domainerrors.ErrInvalidInput
	}

	governance, found, err := uc.Repo.GetGovernance(ctx, mint)
	if err != nil {
		return entities.Proposal{}, err
	}
	if !found {
		return entities.Proposal{}, domainerrors.ErrGovernanceNotFound
	}
	if !governance.Active {
		return entities.Proposal{}, domainerrors.ErrGovernanceInactive
	}
	registry, found, err := uc.Repo.GetTokenRegistry(ctx, mint)
	if err != nil {
		return entities.Proposal{}, err
	}
	if !found {
		return entities.Proposal{}, domainerrors.ErrTokenRegistryNotFound
	}

	balance, err := uc.Tokens.BalanceOf(ctx, proposer, mint)
	if err != nil {
		return entities.Proposal{}, err
	}
	if balance < governance.ProposalThreshold {
		return entities.Proposal{}, domainerrors.ErrProposalThresholdNotMet
	}
	if governance.ProposalThresholdPercentage > 0 {
		supply, err := uc.Tokens.TotalSupply(ctx, mint)
		if err != nil {
			return entities.Proposal{}, err
		}
		// supply * pct can exceed 64 bits, so the product is taken at
		// 256-bit width before dividing back down.
		required := new(uint256.Int).Mul(
			uint256.NewInt(supply),
			uint256.NewInt(uint64(governance.ProposalThresholdPercentage)),
		)
		required.Div(required, uint256.NewInt(100))
		if !required.IsUint64() || balance < required.Uint64() {
			return entities.Proposal{}, domainerrors.ErrPercentageThresholdNotMet
		}
	}

	duration := governance.VotingPeriodSeconds
	if cmd.VotingDurationSeconds != nil {
		if *cmd.VotingDurationSeconds < entities.MinVotingDurationSeconds {
			return entities.Proposal{}, domainerrors.ErrVotingDurationTooShort
		}
		duration = *cmd.VotingDurationSeconds
	}

	breakdown, err := uc.Fees.CollectFlatFee(ctx, proposer, mint, governance.ProposalFee, cmd.FeeCollector)
	if err != nil {
		return entities.Proposal{}, err
	}
	// The staking share just moved into the rewards vault; make it claimable.
	if err := uc.Rewards.AccrueReward(ctx, mint, breakdown.Staking); err != nil {
		return entities.Proposal{}, err
	}

	// The dense id is the pre-increment counter value.
	sequence := governance.ProposalCount
	governance.ProposalCount++
	governance.UpdatedAt = uc.now()
	if err := uc.Repo.SaveGovernance(ctx, governance); err != nil {
		return entities.Proposal{}, err
	}

	proposalID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Proposal{}, err
	}
	now := uc.now()
	proposal := entities.Proposal{
		ProposalID:       proposalID,
		Sequence:         sequence,
		Mint:             mint,
		Proposer:         proposer,
		TokenCreator:     registry.Authority,
		Title:            title,
		Description:      strings.TrimSpace(cmd.Description),
		Choices:          choices,
		VoteCounts:       make([]uint64, len(choices)),
		Status:           entities.ProposalStatusActive,
		ExecutionType:    executionType,
		ExecutionPayload: cmd.ExecutionPayload,
		CreatedAt:        now,
		EndsAt:           now.Add(time.Duration(duration) * time.Second),
		WinningChoice:    nil,
		UpdatedAt:        now,
	}
	if err := uc.Repo.SaveProposal(ctx, proposal); err != nil {
		return entities.Proposal{}, err
	}
	application.ResolveLogger(uc.Logger).Info("proposal created",
		"event", "governance_proposal_created",
		"module", "governance/proposal-engine",
		"layer", "application",
		"proposal_id", proposal.ProposalID,
		"sequence", proposal.Sequence,
		"mint", mint,
		"choices", len(choices),
		"ends_at", proposal.EndsAt,
	)
	return proposal, nil
}

// RecordVote credits weight to one choice's tally. Counter overflow is a
// fatal arithmetic error, never a silent wrap.
func (uc ProposalUseCase) RecordVote(ctx context.Context, proposalID string, choiceID uint8, weight uint64) error {
	proposal, err := uc.Repo.GetProposal(ctx, strings.TrimSpace(proposalID))
	if err != nil {
		return err
	}
	if int(choiceID) >= len(proposal.Choices) {
		return domainerrors.ErrInvalidChoiceID
	}
	if proposal.VoteCounts[choiceID] > math.MaxUint64-weight {
		return domainerrors.ErrCalculationOverflow
	}
	proposal.VoteCounts[choiceID] += weight
	proposal.UpdatedAt = uc.now()
	return uc.Repo.SaveProposal(ctx, proposal)
}

func (uc ProposalUseCase) Execute(ctx context.Context, cmd ExecuteProposalCommand) (entities.Proposal, error) {
	executor := strings.TrimSpace(cmd.Executor)
	if executor == "" {
		return entities.Proposal{}, domainerrors.ErrInvalidInput
	}
	proposal, err := uc.Repo.GetProposal(ctx, strings.TrimSpace(cmd.ProposalID))
	if err != nil {
		return entities.Proposal{}, err
	}
	governance, found, err := uc.Repo.GetGovernance(ctx, proposal.Mint)
	if err != nil {
		return entities.Proposal{}, err
	}
	if !found {
		return entities.Proposal{}, domainerrors.ErrGovernanceNotFound
	}
	registry, found, err := uc.Repo.GetTokenRegistry(ctx, proposal.Mint)
	if err != nil {
		return entities.Proposal{}, err
	}
	if !found {
		return entities.Proposal{}, domainerrors.ErrTokenRegistryNotFound
	}
	if executor != registry.Authority && executor != governance.Authority {
		return entities.Proposal{}, domainerrors.ErrUnauthorized
	}

	now := uc.now()
	if !now.After(proposal.EndsAt) {
		return entities.Proposal{}, domainerrors.ErrVotingNotEnded
	}
	if proposal.Status != entities.ProposalStatusActive {
		return entities.Proposal{}, domainerrors.ErrProposalNotActive
	}

	var totalVotes uint64
	for _, votes := range proposal.VoteCounts {
		if totalVotes > math.MaxUint64-votes {
			return entities.Proposal{}, domainerrors.ErrCalculationOverflow
		}
		totalVotes += votes
	}
	if totalVotes < governance.MinVoteThreshold {
		return entities.Proposal{}, domainerrors.ErrVoteThresholdNotMet
	}

	winner := proposal.WinnerIndex()

	if proposal.ExecutionType == entities.ExecutionTypeUpdateSettings {
		// Settings changes need the token authority specifically, not just
		// any governance signer.
		if executor != registry.Authority {
			return entities.Proposal{}, domainerrors.ErrUnauthorized
		}
		payload, err := decodeSettingsPayload(proposal.ExecutionPayload)
		if err != nil {
			return entities.Proposal{}, err
		}
		governance.VotingPeriodSeconds = payload.VotingPeriodSeconds
		governance.MinVoteThreshold = payload.MinVoteThreshold
		governance.ProposalThreshold = payload.ProposalThreshold
		governance.ProposalThresholdPercentage = payload.ProposalThresholdPercentage
		governance.UpdatedAt = now
		if err := uc.Repo.SaveGovernance(ctx, governance); err != nil {
			return entities.Proposal{}, err
		}
	}

	proposal.Status = entities.ProposalStatusExecuted
	proposal.WinningChoice = &winner
	proposal.UpdatedAt = now
	if err := uc.Repo.SaveProposal(ctx, proposal); err != nil {
		return entities.Proposal{}, err
	}
	application.ResolveLogger(uc.Logger).Info("proposal executed",
		"event", "governance_proposal_executed",
		"module", "governance/proposal-engine",
		"layer", "application",
		"proposal_id", proposal.ProposalID,
		"winning_choice", winner,
		"total_votes", totalVotes,
		"execution_type", string(proposal.ExecutionType),
	)
	return proposal, nil
}

func decodeSettingsPayload(raw json.RawMessage) (entities.GovernanceSettingsPayload, error) {
	var payload entities.GovernanceSettingsPayload
	if len(raw) == 0 {
		return payload, domainerrors.ErrInvalidPayload
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return payload, domainerrors.ErrInvalidPayload
	}
	if payload.VotingPeriodSeconds < entities.MinVotingDurationSeconds ||
		payload.MinVoteThreshold == 0 ||
		payload.ProposalThreshold == 0 ||
		payload.ProposalThresholdPercentage > 100 {
		return payload, domainerrors.ErrInvalidPayload
	}
	return payload, nil
}

func (uc ProposalUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
