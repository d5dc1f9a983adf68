package contributionrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/pg"
)

const contributionColumns = `id, circle_id, member_id, round_number, amount::text, reference, status,
        rejection_reason, reviewed_by, reviewed_at, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, c *domain.Contribution) error {
	query := `
        INSERT INTO contributions (id, circle_id, member_id, round_number, amount, reference, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.db.Exec(ctx, query,
		c.ID, c.CircleID, c.MemberID, c.RoundNumber, c.Amount.String(), c.Reference, string(c.Status), c.CreatedAt,
	)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return domain.ErrDuplicateSubmission
		}
		zap.L().Error("can't save contribution", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contribution, error) {
	query := `
        SELECT ` + contributionColumns + `
        FROM contributions
        WHERE id = $1
    `
	c, err := scanContribution(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't get contribution", zap.Error(err))
		return nil, err
	}
	return c, nil
}

// FindActive returns the member's non-rejected contribution for the round, if any.
func (r *Repository) FindActive(ctx context.Context, circleID, memberID uuid.UUID, round int) (*domain.Contribution, error) {
	query := `
        SELECT ` + contributionColumns + `
        FROM contributions
        WHERE circle_id = $1 AND member_id = $2 AND round_number = $3 AND status <> 'REJECTED'
    `
	c, err := scanContribution(r.db.QueryRow(ctx, query, circleID, memberID, round))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find active contribution", zap.Error(err))
		return nil, err
	}
	return c, nil
}

// UpdateReview settles a pending contribution. It never touches a settled one.
func (r *Repository) UpdateReview(ctx context.Context, c *domain.Contribution) error {
	query := `
        UPDATE contributions
        SET status = $1, rejection_reason = $2, reviewed_by = $3, reviewed_at = $4
        WHERE id = $5 AND status = 'PENDING'
    `
	tag, err := r.db.Exec(ctx, query, string(c.Status), c.RejectionReason, c.ReviewedBy, c.ReviewedAt, c.ID)
	if err != nil {
		zap.L().Error("can't update contribution", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotPending
	}
	return nil
}

// ListByCircle lists contributions of one round, or of every round when round is 0.
func (r *Repository) ListByCircle(ctx context.Context, circleID uuid.UUID, round int) ([]domain.Contribution, error) {
	query := `
        SELECT ` + contributionColumns + `
        FROM contributions
        WHERE circle_id = $1 AND ($2 = 0 OR round_number = $2)
        ORDER BY round_number, created_at, id
    `
	rows, err := r.db.Query(ctx, query, circleID, round)
	if err != nil {
		zap.L().Error("can't list contributions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var contributions []domain.Contribution
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			zap.L().Error("can't scan contribution row", zap.Error(err))
			return nil, err
		}
		contributions = append(contributions, *c)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate contributions", zap.Error(err))
		return nil, err
	}
	return contributions, nil
}

func (r *Repository) CountConfirmed(ctx context.Context, circleID uuid.UUID, round int) (int, error) {
	query := `
        SELECT count(*)
        FROM contributions
        WHERE circle_id = $1 AND round_number = $2 AND status = 'CONFIRMED'
    `
	var count int
	if err := r.db.QueryRow(ctx, query, circleID, round).Scan(&count); err != nil {
		zap.L().Error("can't count confirmed contributions", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func scanContribution(row pgx.Row) (*domain.Contribution, error) {
	var (
		c      domain.Contribution
		amount string
		status string
	)
	err := row.Scan(
		&c.ID, &c.CircleID, &c.MemberID, &c.RoundNumber, &amount, &c.Reference, &status,
		&c.RejectionReason, &c.ReviewedBy, &c.ReviewedAt, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse contribution amount: %w", err)
	}
	c.Status = domain.ContributionStatus(status)
	return &c, nil
}
