package membershiprepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/pg"
)

const membershipColumns = `id, circle_id, user_id, role, status, payout_position, joined_at, removed_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, m *domain.Membership) error {
	query := `
        INSERT INTO memberships (id, circle_id, user_id, role, status, joined_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.db.Exec(ctx, query, m.ID, m.CircleID, m.UserID, string(m.Role), string(m.Status), m.JoinedAt)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return domain.ErrDuplicateMember
		}
		zap.L().Error("can't save membership", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, circleID, userID uuid.UUID) (*domain.Membership, error) {
	query := `
        SELECT ` + membershipColumns + `
        FROM memberships
        WHERE circle_id = $1 AND user_id = $2
    `
	m, err := scanMembership(r.db.QueryRow(ctx, query, circleID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't get membership", zap.Error(err))
		return nil, err
	}
	return m, nil
}

func (r *Repository) GetByPosition(ctx context.Context, circleID uuid.UUID, position int) (*domain.Membership, error) {
	query := `
        SELECT ` + membershipColumns + `
        FROM memberships
        WHERE circle_id = $1 AND payout_position = $2 AND status = 'CONFIRMED'
    `
	m, err := scanMembership(r.db.QueryRow(ctx, query, circleID, position))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't get membership by position", zap.Error(err))
		return nil, err
	}
	return m, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, m *domain.Membership) error {
	query := `
        UPDATE memberships
        SET status = $1, joined_at = $2, removed_at = $3
        WHERE id = $4
    `
	_, err := r.db.Exec(ctx, query, string(m.Status), m.JoinedAt, m.RemovedAt, m.ID)
	if err != nil {
		zap.L().Error("can't update membership", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) SetPayoutPosition(ctx context.Context, membershipID uuid.UUID, position int) error {
	query := `
        UPDATE memberships
        SET payout_position = $1
        WHERE id = $2
    `
	_, err := r.db.Exec(ctx, query, position, membershipID)
	if err != nil {
		zap.L().Error("can't set payout position", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) CountConfirmed(ctx context.Context, circleID uuid.UUID) (int, error) {
	query := `
        SELECT count(*)
        FROM memberships
        WHERE circle_id = $1 AND status = 'CONFIRMED'
    `
	var count int
	if err := r.db.QueryRow(ctx, query, circleID).Scan(&count); err != nil {
		zap.L().Error("can't count confirmed members", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *Repository) ListByCircle(ctx context.Context, circleID uuid.UUID) ([]domain.Membership, error) {
	query := `
        SELECT ` + membershipColumns + `
        FROM memberships
        WHERE circle_id = $1
        ORDER BY payout_position NULLS LAST, joined_at, id
    `
	rows, err := r.db.Query(ctx, query, circleID)
	if err != nil {
		zap.L().Error("can't list memberships", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			zap.L().Error("can't scan membership row", zap.Error(err))
			return nil, err
		}
		memberships = append(memberships, *m)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate memberships", zap.Error(err))
		return nil, err
	}
	return memberships, nil
}

func scanMembership(row pgx.Row) (*domain.Membership, error) {
	var (
		m      domain.Membership
		role   string
		status string
	)
	err := row.Scan(&m.ID, &m.CircleID, &m.UserID, &role, &status, &m.PayoutPosition, &m.JoinedAt, &m.RemovedAt)
	if err != nil {
		return nil, err
	}
	m.Role = domain.MembershipRole(role)
	m.Status = domain.MembershipStatus(status)
	return &m, nil
}
