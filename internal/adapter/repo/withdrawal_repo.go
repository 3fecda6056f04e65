package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"welfare/internal/domain"
)

// WithdrawalRepositoryPG implements domain.WithdrawalRepository using PostgreSQL.
type WithdrawalRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewWithdrawalRepository creates a new withdrawal repo.
func NewWithdrawalRepository(pool *pgxpool.Pool) *WithdrawalRepositoryPG {
	return &WithdrawalRepositoryPG{pool: pool}
}

const withdrawalColumns = `id, user_id, amount_cents, status, reason, notes, requested_at, resolved_at, resolved_by`

// Create inserts a new pending withdrawal request.
func (r *WithdrawalRepositoryPG) Create(ctx context.Context, w *domain.Withdrawal) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO withdrawals (id, user_id, amount_cents, status, reason, requested_at)
VALUES ($1, $2, $3, $4, $5, $6);
`, w.ID, w.UserID, w.AmountCents, string(w.Status), w.Reason, w.RequestedAt)
	return err
}

// GetByID fetches a withdrawal by UUID.
func (r *WithdrawalRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Withdrawal, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, id)
	return scanWithdrawal(row)
}

// ListByUser returns the user's withdrawals, newest first.
func (r *WithdrawalRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.Withdrawal, error) {
	return r.list(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE user_id = $1 ORDER BY requested_at DESC`, userID)
}

// ListAll returns every withdrawal, newest first.
func (r *WithdrawalRepositoryPG) ListAll(ctx context.Context) ([]domain.Withdrawal, error) {
	return r.list(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals ORDER BY requested_at DESC`)
}

// CountPending returns the number of unresolved requests.
func (r *WithdrawalRepositoryPG) CountPending(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM withdrawals WHERE status = 'pending'`).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Approve resolves a pending withdrawal in one transaction: the withdrawal
// row is locked first, then the owner's balance is debited with a
// conditional update so two approvals against the same user serialize on
// the user row and can never overdraw it.
func (r *WithdrawalRepositoryPG) Approve(ctx context.Context, id, adminID, notes string, at time.Time) (*domain.Withdrawal, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin approve tx: %w", err)
	}
	defer tx.Rollback(ctx)

	userID, amount, err := lockPending(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, `
UPDATE users SET balance_cents = balance_cents - $1
WHERE id = $2 AND balance_cents >= $1;
`, amount, userID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrInsufficientBalance
	}

	w, err := resolve(ctx, tx, id, domain.WithdrawalApproved, adminID, notes, at)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

// Reject resolves a pending withdrawal without touching any balance.
func (r *WithdrawalRepositoryPG) Reject(ctx context.Context, id, adminID, notes string, at time.Time) (*domain.Withdrawal, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reject tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, _, err := lockPending(ctx, tx, id); err != nil {
		return nil, err
	}

	w, err := resolve(ctx, tx, id, domain.WithdrawalRejected, adminID, notes, at)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

// lockPending locks the withdrawal row for the rest of the transaction and
// confirms it has not reached a terminal status yet.
func lockPending(ctx context.Context, tx pgx.Tx, id string) (userID string, amount int64, err error) {
	var status domain.WithdrawalStatus
	row := tx.QueryRow(ctx, `SELECT user_id, amount_cents, status FROM withdrawals WHERE id = $1 FOR UPDATE`, id)
	if err := row.Scan(&userID, &amount, &status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", 0, domain.ErrNotFound
		}
		return "", 0, err
	}
	if status.Terminal() {
		return "", 0, domain.ErrAlreadyProcessed
	}
	return userID, amount, nil
}

func resolve(ctx context.Context, tx pgx.Tx, id string, status domain.WithdrawalStatus, adminID, notes string, at time.Time) (*domain.Withdrawal, error) {
	row := tx.QueryRow(ctx, `
UPDATE withdrawals
SET status = $2, notes = $3, resolved_at = $4, resolved_by = $5
WHERE id = $1
RETURNING `+withdrawalColumns+`;
`, id, string(status), notes, at, adminID)
	return scanWithdrawal(row)
}

func (r *WithdrawalRepositoryPG) list(ctx context.Context, query string, args ...any) ([]domain.Withdrawal, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Withdrawal
	for rows.Next() {
		var w domain.Withdrawal
		if err := rows.Scan(&w.ID, &w.UserID, &w.AmountCents, &w.Status, &w.Reason, &w.Notes, &w.RequestedAt, &w.ResolvedAt, &w.ResolvedBy); err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanWithdrawal(row pgx.Row) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	if err := row.Scan(&w.ID, &w.UserID, &w.AmountCents, &w.Status, &w.Reason, &w.Notes, &w.RequestedAt, &w.ResolvedAt, &w.ResolvedBy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}
