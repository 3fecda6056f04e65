package domain

import (
	"context"
	"time"
)

// UserRepository defines access methods for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	Count(ctx context.Context) (int, error)
}

// ContributionRepository persists contribution entries. CreateAndCredit must
// insert the row and credit the owner's balance in one unit of work.
type ContributionRepository interface {
	CreateAndCredit(ctx context.Context, c *Contribution) error
	ListByUser(ctx context.Context, userID string) ([]Contribution, error)
	TotalCents(ctx context.Context) (int64, error)
}

// WithdrawalRepository persists withdrawal requests and resolves them.
// Approve must, in one unit of work, verify the request is still pending,
// debit the owner's balance only if it covers the amount, and mark the row
// approved; a debit that would overdraw leaves every row untouched and
// reports ErrInsufficientBalance. Reject flips a pending row to rejected
// without touching any balance. Both return ErrAlreadyProcessed for a row
// already in a terminal status.
type WithdrawalRepository interface {
	Create(ctx context.Context, w *Withdrawal) error
	GetByID(ctx context.Context, id string) (*Withdrawal, error)
	ListByUser(ctx context.Context, userID string) ([]Withdrawal, error)
	ListAll(ctx context.Context) ([]Withdrawal, error)
	CountPending(ctx context.Context) (int, error)
	Approve(ctx context.Context, id, adminID, notes string, at time.Time) (*Withdrawal, error)
	Reject(ctx context.Context, id, adminID, notes string, at time.Time) (*Withdrawal, error)
}
