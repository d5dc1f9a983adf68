package circlerepo

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

const circleColumns = `id, name, contribution_amount::text, currency, cycle_length_days, total_rounds,
        current_round, payout_order_type, status, created_by_user_id, version, created_at, activated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, circle *domain.Circle) error {
	query := `
        INSERT INTO circles (id, name, contribution_amount, currency, cycle_length_days, total_rounds,
            current_round, payout_order_type, status, created_by_user_id, version, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    `
	_, err := r.db.Exec(ctx, query,
		circle.ID, circle.Name, circle.ContributionAmount.String(), circle.Currency, circle.CycleLengthDays,
		circle.TotalRounds, circle.CurrentRound, string(circle.PayoutOrderType), string(circle.Status),
		circle.CreatedByUserID, circle.Version, circle.CreatedAt,
	)
	if err != nil {
		zap.L().Error("can't save circle", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Circle, error) {
	query := `
        SELECT ` + circleColumns + `
        FROM circles
        WHERE id = $1
    `
	circle, err := scanCircle(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't get circle", zap.Error(err))
		return nil, err
	}
	return circle, nil
}

// GetForUpdate row-locks the circle until the surrounding transaction ends.
func (r *Repository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Circle, error) {
	query := `
        SELECT ` + circleColumns + `
        FROM circles
        WHERE id = $1
        FOR UPDATE
    `
	circle, err := scanCircle(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't lock circle", zap.Error(err))
		return nil, err
	}
	return circle, nil
}

func (r *Repository) List(ctx context.Context, status *domain.CircleStatus) ([]domain.Circle, error) {
	query := `
        SELECT ` + circleColumns + `
        FROM circles
        WHERE $1::text IS NULL OR status = $1
        ORDER BY created_at DESC
    `
	var filter *string
	if status != nil {
		s := string(*status)
		filter = &s
	}
	rows, err := r.db.Query(ctx, query, filter)
	if err != nil {
		zap.L().Error("can't list circles", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var circles []domain.Circle
	for rows.Next() {
		circle, err := scanCircle(rows)
		if err != nil {
			zap.L().Error("can't scan circle row", zap.Error(err))
			return nil, err
		}
		circles = append(circles, *circle)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate circles", zap.Error(err))
		return nil, err
	}
	return circles, nil
}

// Update writes status, current round and activation time if the stored version still matches,
// then bumps circle.Version.
func (r *Repository) Update(ctx context.Context, circle *domain.Circle) error {
	query := `
        UPDATE circles
        SET status = $1, current_round = $2, activated_at = $3, version = version + 1
        WHERE id = $4 AND version = $5
    `
	tag, err := r.db.Exec(ctx, query, string(circle.Status), circle.CurrentRound, circle.ActivatedAt, circle.ID, circle.Version)
	if err != nil {
		zap.L().Error("can't update circle", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}
	circle.Version++
	return nil
}

func scanCircle(row pgx.Row) (*domain.Circle, error) {
	var (
		circle    domain.Circle
		amount    string
		orderType string
		status    string
	)
	err := row.Scan(
		&circle.ID, &circle.Name, &amount, &circle.Currency, &circle.CycleLengthDays, &circle.TotalRounds,
		&circle.CurrentRound, &orderType, &status, &circle.CreatedByUserID, &circle.Version, &circle.CreatedAt,
		&circle.ActivatedAt,
	)
	if err != nil {
		return nil, err
	}
	circle.ContributionAmount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse contribution amount: %w", err)
	}
	circle.PayoutOrderType = domain.PayoutOrderType(orderType)
	circle.Status = domain.CircleStatus(status)
	return &circle, nil
}
