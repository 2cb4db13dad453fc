package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound  = errors.New("loan account not found")
	ErrInvalidPrincipal = errors.New("principal must be positive")
	ErrInvalidRate      = errors.New("rate must be positive")

	// Transaction errors
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidAmount      = errors.New("amount must be positive")

	// Replay errors
	ErrReplayInProgress = errors.New("replay already in progress for account")

	// Yield deposit errors
	ErrDepositNotFound   = errors.New("yield deposit not found")
	ErrDepositNotActive  = errors.New("yield deposit is not active")
	ErrInsufficientFunds = errors.New("withdrawal exceeds allocatable principal")
	ErrInvalidStatus     = errors.New("invalid deposit status")
)
