package domain

import "time"

// WithdrawalStatus enumerates the withdrawal workflow states.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// Terminal reports whether no further transitions are permitted.
func (s WithdrawalStatus) Terminal() bool {
	return s == WithdrawalApproved || s == WithdrawalRejected
}

// Contribution is an immutable ledger entry crediting a member's balance.
type Contribution struct {
	ID          string
	UserID      string
	AmountCents int64
	Description string
	CreatedAt   time.Time
}

// Withdrawal is a member's request to draw from their balance. Status moves
// from pending to exactly one of approved or rejected; ResolvedAt and
// ResolvedBy are set only once the request is resolved.
type Withdrawal struct {
	ID          string
	UserID      string
	AmountCents int64
	Status      WithdrawalStatus
	Reason      string
	Notes       string
	RequestedAt time.Time
	ResolvedAt  *time.Time
	ResolvedBy  *string
}
