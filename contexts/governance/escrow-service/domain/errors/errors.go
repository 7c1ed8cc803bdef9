package errors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid escrow input")
	ErrUnauthorized        = errors.New("caller is not authorized for this action")
	ErrEscrowExists        = errors.New("escrow already exists for this proposal, choice, and voter")
	ErrEscrowNotFound      = errors.New("escrow not found")
	ErrInvalidChoiceID     = errors.New("choice id is out of range for the proposal")
	ErrProposalNotActive   = errors.New("proposal is not accepting votes")
	ErrProposalNotExecuted = errors.New("proposal has not been executed")
	ErrNoWinningChoice     = errors.New("proposal has no winning choice")
	ErrNotWinningEscrow    = errors.New("escrow is not on the winning choice")
	ErrIsWinningEscrow     = errors.New("escrow is on the winning choice")
	ErrNoStakedTokens      = errors.New("voter has no staked tokens to boost with")
)
