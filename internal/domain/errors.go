package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrDuplicateIdentity   = errors.New("username or email already taken")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyProcessed    = errors.New("withdrawal already processed")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrEmptyReason         = errors.New("reason is required")
	ErrInvalidInput        = errors.New("invalid input")
)
