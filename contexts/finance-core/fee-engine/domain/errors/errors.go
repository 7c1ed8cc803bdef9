package errors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid fee config input")
	ErrUnauthorized        = errors.New("caller is not the config admin")
	ErrConfigExists        = errors.New("program config already initialized")
	ErrConfigNotFound      = errors.New("program config not found")
	ErrInvalidFeeCollector = errors.New("fee collector does not match configured collector")
)
