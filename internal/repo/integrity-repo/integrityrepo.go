package integrityrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/pg"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) ListCircleIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM circles ORDER BY created_at, id`)
	if err != nil {
		zap.L().Error("can't list circle ids", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			zap.L().Error("can't scan circle id", zap.Error(err))
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate circle ids", zap.Error(err))
		return nil, err
	}
	return ids, nil
}

// LoadLedger reads one circle's ledger from a single read-only snapshot so that
// concurrent mutations can't produce a torn view.
func (r *Repository) LoadLedger(ctx context.Context, circleID uuid.UUID) (*domain.LedgerSnapshot, error) {
	snapshot := &domain.LedgerSnapshot{ConfirmedByRound: make(map[int]decimal.Decimal)}

	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := r.db.Exec(ctx, `SET TRANSACTION ISOLATION LEVEL REPEATABLE READ, READ ONLY`); err != nil {
			return fmt.Errorf("set snapshot isolation: %w", err)
		}
		if err := r.loadCircle(ctx, circleID, snapshot); err != nil {
			return err
		}
		if err := r.loadPayouts(ctx, circleID, snapshot); err != nil {
			return err
		}
		return r.loadContributions(ctx, circleID, snapshot)
	})
	if err != nil {
		zap.L().Error("can't load ledger", zap.String("circle_id", circleID.String()), zap.Error(err))
		return nil, err
	}
	return snapshot, nil
}

func (r *Repository) loadCircle(ctx context.Context, circleID uuid.UUID, snapshot *domain.LedgerSnapshot) error {
	query := `
        SELECT c.id, c.contribution_amount::text, c.currency, c.total_rounds, c.current_round, c.status,
            (SELECT count(*) FROM memberships m WHERE m.circle_id = c.id AND m.status = 'CONFIRMED')
        FROM circles c
        WHERE c.id = $1
    `
	var amount, status string
	circle := &snapshot.Circle
	err := r.db.QueryRow(ctx, query, circleID).Scan(
		&circle.ID, &amount, &circle.Currency, &circle.TotalRounds, &circle.CurrentRound, &status,
		&snapshot.ConfirmedMemberCount,
	)
	if err != nil {
		return fmt.Errorf("load circle: %w", err)
	}
	circle.ContributionAmount, err = decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("parse contribution amount: %w", err)
	}
	circle.Status = domain.CircleStatus(status)
	return nil
}

func (r *Repository) loadPayouts(ctx context.Context, circleID uuid.UUID, snapshot *domain.LedgerSnapshot) error {
	query := `
        SELECT id, recipient_user_id, round_number, amount::text, status
        FROM payouts
        WHERE circle_id = $1
        ORDER BY round_number
    `
	rows, err := r.db.Query(ctx, query, circleID)
	if err != nil {
		return fmt.Errorf("load payouts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			p              = domain.Payout{CircleID: circleID}
			amount, status string
		)
		if err := rows.Scan(&p.ID, &p.RecipientUserID, &p.RoundNumber, &amount, &status); err != nil {
			return fmt.Errorf("scan payout: %w", err)
		}
		if p.Amount, err = decimal.NewFromString(amount); err != nil {
			return fmt.Errorf("parse payout amount: %w", err)
		}
		p.Status = domain.PayoutStatus(status)
		snapshot.Payouts = append(snapshot.Payouts, p)
	}
	return rows.Err()
}

func (r *Repository) loadContributions(ctx context.Context, circleID uuid.UUID, snapshot *domain.LedgerSnapshot) error {
	query := `
        SELECT round_number, sum(amount)::text
        FROM contributions
        WHERE circle_id = $1 AND status = 'CONFIRMED'
        GROUP BY round_number
    `
	rows, err := r.db.Query(ctx, query, circleID)
	if err != nil {
		return fmt.Errorf("load contribution sums: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			round int
			sum   string
		)
		if err := rows.Scan(&round, &sum); err != nil {
			return fmt.Errorf("scan contribution sum: %w", err)
		}
		if snapshot.ConfirmedByRound[round], err = decimal.NewFromString(sum); err != nil {
			return fmt.Errorf("parse contribution sum: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	offAmount := `
        SELECT count(*)
        FROM contributions c
        JOIN circles ci ON ci.id = c.circle_id
        WHERE c.circle_id = $1 AND c.status = 'CONFIRMED' AND c.amount <> ci.contribution_amount
    `
	if err := r.db.QueryRow(ctx, offAmount, circleID).Scan(&snapshot.OffAmountContributions); err != nil {
		return fmt.Errorf("count off-amount contributions: %w", err)
	}
	return nil
}

func (r *Repository) SaveReport(ctx context.Context, report *domain.IntegrityReport) error {
	query := `
        INSERT INTO integrity_reports (id, is_degraded, violations, checked_at, checked_by)
        VALUES ($1, $2, $3, $4, $5)
    `
	violations := report.Violations
	if violations == nil {
		violations = []string{}
	}
	_, err := r.db.Exec(ctx, query, report.ID, report.IsDegraded, violations, report.Timestamp, report.CheckedBy)
	if err != nil {
		zap.L().Error("can't save integrity report", zap.Error(err))
		return err
	}
	return nil
}
