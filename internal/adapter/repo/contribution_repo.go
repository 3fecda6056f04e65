package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"welfare/internal/domain"
)

// ContributionRepositoryPG implements domain.ContributionRepository using PostgreSQL.
type ContributionRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewContributionRepository creates a new contribution repo.
func NewContributionRepository(pool *pgxpool.Pool) *ContributionRepositoryPG {
	return &ContributionRepositoryPG{pool: pool}
}

// CreateAndCredit inserts the contribution row and credits the owner's
// balance inside one transaction, so neither is ever visible without the
// other.
func (r *ContributionRepositoryPG) CreateAndCredit(ctx context.Context, c *domain.Contribution) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin contribution tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
INSERT INTO contributions (id, user_id, amount_cents, description, created_at)
VALUES ($1, $2, $3, $4, $5);
`, c.ID, c.UserID, c.AmountCents, c.Description, c.CreatedAt)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
UPDATE users SET balance_cents = balance_cents + $1 WHERE id = $2;
`, c.AmountCents, c.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit(ctx)
}

// ListByUser returns the user's contributions, newest first.
func (r *ContributionRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.Contribution, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, amount_cents, description, created_at
FROM contributions
WHERE user_id = $1
ORDER BY created_at DESC;
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Contribution
	for rows.Next() {
		var c domain.Contribution
		if err := rows.Scan(&c.ID, &c.UserID, &c.AmountCents, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// TotalCents returns the sum of all recorded contributions.
func (r *ContributionRepositoryPG) TotalCents(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount_cents), 0) FROM contributions`).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
