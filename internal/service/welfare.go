// Package service holds the business rules of the welfare tracker: member
// registration and credential checks, contribution recording, withdrawal
// requests and the admin approval workflow. Handlers stay thin; every rule
// that matters lives here or in the repository transactions.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"welfare/internal/domain"
	"welfare/internal/money"
)

// Welfare wires the repositories behind the domain operations.
type Welfare struct {
	users         domain.UserRepository
	contributions domain.ContributionRepository
	withdrawals   domain.WithdrawalRepository
	logger        zerolog.Logger
	bcryptCost    int
	now           func() time.Time
}

// New constructs the service. bcryptCost comes from config so tests can use
// bcrypt.MinCost.
func New(users domain.UserRepository, contributions domain.ContributionRepository, withdrawals domain.WithdrawalRepository, logger zerolog.Logger, bcryptCost int) *Welfare {
	return &Welfare{
		users:         users,
		contributions: contributions,
		withdrawals:   withdrawals,
		logger:        logger,
		bcryptCost:    bcryptCost,
		now:           time.Now,
	}
}

// Register creates a member account. The password is stored only as a
// bcrypt hash.
func (s *Welfare) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		RegisteredAt: s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("username", username).Msg("member registered")
	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *Welfare) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// GetUser returns a user by ID.
func (s *Welfare) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// RecordContribution appends a contribution and credits the member's
// balance; both happen in one repository transaction.
func (s *Welfare) RecordContribution(ctx context.Context, userID string, amountCents int64, description string) (*domain.Contribution, error) {
	if amountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	c := &domain.Contribution{
		ID:          uuid.NewString(),
		UserID:      userID,
		AmountCents: amountCents,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.contributions.CreateAndCredit(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("amount", money.FormatKES(amountCents)).
		Msg("contribution recorded")
	return c, nil
}

// ListContributions returns the member's own contributions, newest first.
func (s *Welfare) ListContributions(ctx context.Context, userID string) ([]domain.Contribution, error) {
	return s.contributions.ListByUser(ctx, userID)
}

// RequestWithdrawal opens a pending withdrawal. The amount is checked
// against the member's balance at request time; approval re-checks it
// against the live balance (see ApproveWithdrawal).
func (s *Welfare) RequestWithdrawal(ctx context.Context, userID string, amountCents int64, reason string) (*domain.Withdrawal, error) {
	if amountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ErrEmptyReason
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if amountCents > user.BalanceCents {
		return nil, domain.ErrInsufficientBalance
	}

	w := &domain.Withdrawal{
		ID:          uuid.NewString(),
		UserID:      userID,
		AmountCents: amountCents,
		Status:      domain.WithdrawalPending,
		Reason:      reason,
		RequestedAt: s.now().UTC(),
	}
	if err := s.withdrawals.Create(ctx, w); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("withdrawal_id", w.ID).
		Str("amount", money.FormatKES(amountCents)).
		Msg("withdrawal requested")
	return w, nil
}

// ListWithdrawals returns the member's own withdrawals, newest first.
func (s *Welfare) ListWithdrawals(ctx context.Context, userID string) ([]domain.Withdrawal, error) {
	return s.withdrawals.ListByUser(ctx, userID)
}

// Dashboard bundles what a member sees after login.
type Dashboard struct {
	User          *domain.User
	Contributions []domain.Contribution
	Withdrawals   []domain.Withdrawal
}

// GetDashboard loads the member's balance and ledger history.
func (s *Welfare) GetDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	contributions, err := s.contributions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	withdrawals, err := s.withdrawals.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Dashboard{User: user, Contributions: contributions, Withdrawals: withdrawals}, nil
}

// requireAdmin resolves the caller and confirms the administrator flag
// before any other entity is read. The failure is a bare ErrUnauthorized so
// nothing about the target resource leaks.
func (s *Welfare) requireAdmin(ctx context.Context, callerID string) (*domain.User, error) {
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !caller.IsAdmin {
		return nil, domain.ErrUnauthorized
	}
	return caller, nil
}

// ApproveWithdrawal moves a pending withdrawal to approved and debits the
// owner's balance. The balance check runs against the live balance inside
// the repository transaction, not the balance at request time, because
// other approvals may have reduced it since the request.
func (s *Welfare) ApproveWithdrawal(ctx context.Context, adminID, withdrawalID, notes string) (*domain.Withdrawal, error) {
	admin, err := s.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	w, err := s.withdrawals.Approve(ctx, withdrawalID, admin.ID, strings.TrimSpace(notes), s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("withdrawal_id", w.ID).
		Str("user_id", w.UserID).
		Str("admin_id", admin.ID).
		Str("amount", money.FormatKES(w.AmountCents)).
		Msg("withdrawal approved")
	return w, nil
}

// RejectWithdrawal moves a pending withdrawal to rejected. No balance
// changes.
func (s *Welfare) RejectWithdrawal(ctx context.Context, adminID, withdrawalID, notes string) (*domain.Withdrawal, error) {
	admin, err := s.requireAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}

	w, err := s.withdrawals.Reject(ctx, withdrawalID, admin.ID, strings.TrimSpace(notes), s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("withdrawal_id", w.ID).
		Str("user_id", w.UserID).
		Str("admin_id", admin.ID).
		Msg("withdrawal rejected")
	return w, nil
}

// ListAllWithdrawals returns every withdrawal for the admin review screen.
func (s *Welfare) ListAllWithdrawals(ctx context.Context, adminID string) ([]domain.Withdrawal, error) {
	if _, err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.withdrawals.ListAll(ctx)
}

// Summary carries the admin dashboard aggregates.
type Summary struct {
	UserCount              int
	PendingWithdrawals     int
	TotalContributionCents int64
}

// GetSummary returns member count, pending request count and the total
// contribution volume.
func (s *Welfare) GetSummary(ctx context.Context, adminID string) (*Summary, error) {
	if _, err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.withdrawals.CountPending(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.contributions.TotalCents(ctx)
	if err != nil {
		return nil, err
	}
	return &Summary{
		UserCount:              userCount,
		PendingWithdrawals:     pending,
		TotalContributionCents: total,
	}, nil
}

// ListUsers returns every member for the admin user-management screen.
func (s *Welfare) ListUsers(ctx context.Context, adminID string) ([]domain.User, error) {
	if _, err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// UpdateUser lets an administrator edit a member's profile fields and
// administrator flag. Balance is not editable through this path.
func (s *Welfare) UpdateUser(ctx context.Context, adminID, userID, username, email string, isAdmin bool) (*domain.User, error) {
	if _, err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, fmt.Errorf("%w: username and email are required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Username = username
	user.Email = email
	user.IsAdmin = isAdmin
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
