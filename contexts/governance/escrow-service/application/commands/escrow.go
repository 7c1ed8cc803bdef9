package commands

import (
	"context"
	"log/slog"
	"strings"

	"launchpad/contexts/governance/escrow-service/domain/entities"
	domainerrors "launchpad/contexts/governance/escrow-service/domain/errors"
	"launchpad/contexts/governance/escrow-service/ports"
	"launchpad/internal/shared/votingpower"
)

// EscrowUseCase carries the lock and settlement commands.
type EscrowUseCase struct {
	Repo      ports.Repository
	Proposals ports.ProposalDirectory
	Stakes    ports.StakeDirectory
	Staking   ports.StakingDirectory
	Fees      ports.FeePolicy
	Ledger    ports.Ledger
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

type LockCommand struct {
	Voter        string
	ProposalID   string
	ChoiceID     uint8
	Amount       uint64
	UseBoost     bool
	FeeCollector string
}

type SettleCommand struct {
	Executor     string
	ProposalID   string
	ChoiceID     uint8
	Voter        string
	FeeCollector string
}

// Lock escrows tokens against one choice of an active proposal and records
// the resulting vote weight. With UseBoost the voter's staked position
// scales the weight logarithmically; the locked principal is always the raw
// amount. The 1% fee is charged on top.
func (uc EscrowUseCase) Lock(ctx context.Context, cmd LockCommand) (entities.ChoiceEscrow, error) {
	voter := strings.TrimSpace(cmd.Voter)
	proposalID := strings.TrimSpace(cmd.ProposalID)
	if voter == "" || proposalID == "" || cmd.Amount == 0 {
		return entities.ChoiceEscrow{}, domainerrors.ErrInvalidInput
	}

	proposal, err := uc.Proposals.GetProposal(ctx, proposalID)
	if err != nil {
		return entities.ChoiceEscrow{}, err
	}
	if !proposal.Active {
		return entities.ChoiceEscrow{}, domainerrors.ErrProposalNotActive
	}
	if cmd.ChoiceID >= proposal.ChoiceCount {
		return entities.ChoiceEscrow{}, domainerrors.ErrInvalidChoiceID
	}

	if _, found, err := uc.Repo.GetEscrow(ctx, proposalID, cmd.ChoiceID, voter); err != nil {
		return entities.ChoiceEscrow{}, err
	} else if found {
		return entities.ChoiceEscrow{}, domainerrors.ErrEscrowExists
	}

	weight := cmd.Amount
	if cmd.UseBoost {
		staked, found, err := uc.Stakes.StakedAmount(ctx, voter, proposal.Mint)
		if err != nil {
			return entities.ChoiceEscrow{}, err
		}
		if !found || staked == 0 {
			return entities.ChoiceEscrow{}, domainerrors.ErrNoStakedTokens
		}
		weight = votingpower.Boost(cmd.Amount, staked)
	}

	breakdown, err := uc.Fees.ChargeFee(ctx, voter, proposal.Mint, cmd.Amount, cmd.FeeCollector)
	if err != nil {
		return entities.ChoiceEscrow{}, err
	}
	if err := uc.Staking.AccrueReward(ctx, proposal.Mint, breakdown.Staking); err != nil {
		return entities.ChoiceEscrow{}, err
	}
	vault := entities.EscrowVaultAddress(proposalID, cmd.ChoiceID, voter)
	if err := uc.Ledger.Transfer(ctx, voter, vault, voter, proposal.Mint, cmd.Amount); err != nil {
		return entities.ChoiceEscrow{}, err
	}

	if err := uc.Proposals.RecordVote(ctx, proposalID, cmd.ChoiceID, weight); err != nil {
		return entities.ChoiceEscrow{}, err
	}

	escrowID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.ChoiceEscrow{}, err
	}
	now := uc.Clock.Now().UTC()
	escrow := entities.ChoiceEscrow{
		EscrowID:     escrowID,
		ProposalID:   proposalID,
		ChoiceID:     cmd.ChoiceID,
		Voter:        voter,
		Mint:         proposal.Mint,
		LockedAmount: cmd.Amount,
		VoteWeight:   weight,
		Boosted:      cmd.UseBoost,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.Repo.SaveEscrow(ctx, escrow); err != nil {
		return entities.ChoiceEscrow{}, err
	}

	uc.logger().InfoContext(ctx, "vote escrow locked",
		slog.String("event", "escrow.locked"),
		slog.String("proposal_id", proposalID),
		slog.Int("choice_id", int(cmd.ChoiceID)),
		slog.String("voter", voter),
		slog.Uint64("amount", cmd.Amount),
		slog.Uint64("weight", weight),
	)
	return escrow, nil
}

// SettleWinner releases a winning escrow's principal to the token creator,
// net of the full 1% fee. There is no settled flag: a repeat settlement
// fails when the fee transfer exceeds what is left in the vault.
func (uc EscrowUseCase) SettleWinner(ctx context.Context, cmd SettleCommand) (uint64, error) {
	escrow, proposal, err := uc.settlementTarget(ctx, cmd)
	if err != nil {
		return 0, err
	}
	winning := *proposal.WinningChoice
	if escrow.ChoiceID != winning {
		return 0, domainerrors.ErrNotWinningEscrow
	}

	vault := escrow.VaultAddress()
	breakdown, remainder, err := uc.Fees.CollectFromPrincipal(ctx, vault, entities.VaultAuthority(vault), escrow.Mint, escrow.LockedAmount, cmd.FeeCollector, false)
	if err != nil {
		return 0, err
	}
	if err := uc.Staking.AccrueReward(ctx, escrow.Mint, breakdown.Staking); err != nil {
		return 0, err
	}
	if remainder > 0 {
		if err := uc.Ledger.Transfer(ctx, vault, proposal.TokenCreator, entities.VaultAuthority(vault), escrow.Mint, remainder); err != nil {
			return 0, err
		}
	}

	uc.logger().InfoContext(ctx, "winning escrow settled",
		slog.String("event", "escrow.settled_winner"),
		slog.String("proposal_id", escrow.ProposalID),
		slog.Int("choice_id", int(escrow.ChoiceID)),
		slog.String("voter", escrow.Voter),
		slog.Uint64("released", remainder),
	)
	return remainder, nil
}

// SettleLoser redirects a losing escrow's principal into the staking pool,
// net of the protocol fee share only. The staking share of the fee stays
// with the pool along with the principal.
func (uc EscrowUseCase) SettleLoser(ctx context.Context, cmd SettleCommand) (uint64, error) {
	escrow, proposal, err := uc.settlementTarget(ctx, cmd)
	if err != nil {
		return 0, err
	}
	winning := *proposal.WinningChoice
	if escrow.ChoiceID == winning {
		return 0, domainerrors.ErrIsWinningEscrow
	}

	vault := escrow.VaultAddress()
	_, remainder, err := uc.Fees.CollectFromPrincipal(ctx, vault, entities.VaultAuthority(vault), escrow.Mint, escrow.LockedAmount, cmd.FeeCollector, true)
	if err != nil {
		return 0, err
	}
	if remainder > 0 {
		if err := uc.Ledger.Transfer(ctx, vault, uc.Staking.StakeVault(escrow.Mint), entities.VaultAuthority(vault), escrow.Mint, remainder); err != nil {
			return 0, err
		}
		if err := uc.Staking.AddRedirectedStake(ctx, escrow.Mint, remainder); err != nil {
			return 0, err
		}
	}

	uc.logger().InfoContext(ctx, "losing escrow settled",
		slog.String("event", "escrow.settled_loser"),
		slog.String("proposal_id", escrow.ProposalID),
		slog.Int("choice_id", int(escrow.ChoiceID)),
		slog.String("voter", escrow.Voter),
		slog.Uint64("redirected", remainder),
	)
	return remainder, nil
}

func (uc EscrowUseCase) settlementTarget(ctx context.Context, cmd SettleCommand) (entities.ChoiceEscrow, ports.ProposalView, error) {
	executor := strings.TrimSpace(cmd.Executor)
	proposalID := strings.TrimSpace(cmd.ProposalID)
	voter := strings.TrimSpace(cmd.Voter)
	if executor == "" || proposalID == "" || voter == "" {
		return entities.ChoiceEscrow{}, ports.ProposalView{}, domainerrors.ErrInvalidInput
	}

	escrow, found, err := uc.Repo.GetEscrow(ctx, proposalID, cmd.ChoiceID, voter)
	if err != nil {
		return entities.ChoiceEscrow{}, ports.ProposalView{}, err
	}
	if !found {
		return entities.ChoiceEscrow{}, ports.ProposalView{}, domainerrors.ErrEscrowNotFound
	}

	proposal, err := uc.Proposals.GetProposal(ctx, proposalID)
	if err != nil {
		return entities.ChoiceEscrow{}, ports.ProposalView{}, err
	}
	if !proposal.Executed {
		return entities.ChoiceEscrow{}, ports.ProposalView{}, domainerrors.ErrProposalNotExecuted
	}
	if proposal.WinningChoice == nil {
		return entities.ChoiceEscrow{}, ports.ProposalView{}, domainerrors.ErrNoWinningChoice
	}
	if executor != proposal.TokenCreator {
		return entities.ChoiceEscrow{}, ports.ProposalView{}, domainerrors.ErrUnauthorized
	}
	return escrow, proposal, nil
}

func (uc EscrowUseCase) logger() *slog.Logger {
	if uc.Logger != nil {
		return uc.Logger
	}
	return slog.Default()
}
