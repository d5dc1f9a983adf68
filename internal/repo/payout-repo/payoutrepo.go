package payoutrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/pg"
)

const payoutColumns = `id, circle_id, recipient_user_id, round_number, amount::text, status,
        scheduled_date, executed_at, executed_by`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, p *domain.Payout) error {
	query := `
        INSERT INTO payouts (id, circle_id, recipient_user_id, round_number, amount, status, scheduled_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err := r.db.Exec(ctx, query,
		p.ID, p.CircleID, p.RecipientUserID, p.RoundNumber, p.Amount.String(), string(p.Status), p.ScheduledDate,
	)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			zap.L().Error("payout slot already taken",
				zap.String("constraint", pg.ConstraintName(err)),
				zap.String("circle_id", p.CircleID.String()),
				zap.Int("round", p.RoundNumber),
			)
			return fmt.Errorf("payout for round %d: %w", p.RoundNumber, domain.ErrVersionConflict)
		}
		zap.L().Error("can't save payout", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) GetByRound(ctx context.Context, circleID uuid.UUID, round int) (*domain.Payout, error) {
	query := `
        SELECT ` + payoutColumns + `
        FROM payouts
        WHERE circle_id = $1 AND round_number = $2
    `
	p, err := scanPayout(r.db.QueryRow(ctx, query, circleID, round))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't get payout", zap.Error(err))
		return nil, err
	}
	return p, nil
}

// MarkExecuted flips a pending payout to executed. Losing a race returns domain.ErrAlreadyExecuted.
func (r *Repository) MarkExecuted(ctx context.Context, payoutID, executedBy uuid.UUID, executedAt time.Time) error {
	query := `
        UPDATE payouts
        SET status = 'EXECUTED', executed_at = $1, executed_by = $2
        WHERE id = $3 AND status = 'PENDING'
    `
	tag, err := r.db.Exec(ctx, query, executedAt, executedBy, payoutID)
	if err != nil {
		zap.L().Error("can't execute payout", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyExecuted
	}
	return nil
}

func (r *Repository) ListByCircle(ctx context.Context, circleID uuid.UUID) ([]domain.Payout, error) {
	query := `
        SELECT ` + payoutColumns + `
        FROM payouts
        WHERE circle_id = $1
        ORDER BY round_number
    `
	rows, err := r.db.Query(ctx, query, circleID)
	if err != nil {
		zap.L().Error("can't list payouts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payouts []domain.Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			zap.L().Error("can't scan payout row", zap.Error(err))
			return nil, err
		}
		payouts = append(payouts, *p)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate payouts", zap.Error(err))
		return nil, err
	}
	return payouts, nil
}

func scanPayout(row pgx.Row) (*domain.Payout, error) {
	var (
		p      domain.Payout
		amount string
		status string
	)
	err := row.Scan(
		&p.ID, &p.CircleID, &p.RecipientUserID, &p.RoundNumber, &amount, &status,
		&p.ScheduledDate, &p.ExecutedAt, &p.ExecutedBy,
	)
	if err != nil {
		return nil, err
	}
	p.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse payout amount: %w", err)
	}
	p.Status = domain.PayoutStatus(status)
	return &p, nil
}
