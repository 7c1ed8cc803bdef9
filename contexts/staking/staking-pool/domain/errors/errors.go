package errors

import "errors"

var (
	ErrInvalidInput               = errors.New("invalid staking input")
	ErrUnauthorized               = errors.New("caller is not authorized for this action")
	ErrPoolExists                 = errors.New("staking pool already initialized")
	ErrPoolNotFound               = errors.New("staking pool not found")
	ErrStakerNotFound             = errors.New("staker account not found")
	ErrInsufficientStakingAmount  = errors.New("first deposit below the minimum staking amount")
	ErrInsufficientStakedTokens   = errors.New("unstake amount exceeds staked balance")
	ErrMinimumStakingPeriodNotMet = errors.New("minimum staking period has not elapsed")
	ErrCalculationError           = errors.New("staking arithmetic overflow or underflow")
)
