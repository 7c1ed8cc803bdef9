package errors

import "errors"

var (
	ErrInvalidInput              = errors.New("invalid governance input")
	ErrUnauthorized              = errors.New("caller is not authorized for this action")
	ErrConflict                  = errors.New("governance record conflict")
	ErrTokenRegistryExists       = errors.New("token registry already initialized")
	ErrTokenRegistryNotFound     = errors.New("token registry not found")
	ErrGovernanceExists          = errors.New("governance already initialized")
	ErrGovernanceNotFound        = errors.New("governance not found")
	ErrGovernanceInactive        = errors.New("governance is not active")
	ErrProposalNotFound          = errors.New("proposal not found")
	ErrInvalidChoicesCount       = errors.New("proposal needs at least two choices")
	ErrTooManyChoices            = errors.New("proposal exceeds the choice limit")
	ErrInvalidChoiceID           = errors.New("invalid choice id")
	ErrProposalThresholdNotMet   = errors.New("proposer balance below proposal threshold")
	ErrPercentageThresholdNotMet = errors.New("proposer balance below percentage threshold")
	ErrVotingDurationTooShort    = errors.New("voting duration must be at least 60 seconds")
	ErrVotingNotEnded            = errors.New("voting period has not ended yet")
	ErrProposalNotActive         = errors.New("proposal is not active")
	ErrVoteThresholdNotMet       = errors.New("total votes below minimum vote threshold")
	ErrInvalidPayload            = errors.New("invalid execution payload")
	ErrCalculationOverflow       = errors.New("vote arithmetic overflow")
)
