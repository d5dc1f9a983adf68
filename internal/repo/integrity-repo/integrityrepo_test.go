package integrityrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/pg"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func TestRepository_ListCircleIDs(t *testing.T) {
	repo, mock, _ := NewMock(t)
	first, second := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM circles ORDER BY created_at, id")).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(first).AddRow(second))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM circles ORDER BY created_at, id")).
		WillReturnError(errors.New("database error"))

	ids, err := repo.ListCircleIDs(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first, second}, ids)

	ids, err = repo.ListCircleIDs(context.Background())
	assert.Error(t, err)
	assert.Nil(t, ids)
}

func TestRepository_LoadLedger(t *testing.T) {
	circleID, recipient := uuid.New(), uuid.New()
	payoutID := uuid.New()

	expectSnapshot := func(mock pgxmock.PgxPoolIface) {
		mock.ExpectExec(regexp.QuoteMeta("SET TRANSACTION ISOLATION LEVEL REPEATABLE READ, READ ONLY")).
			WillReturnResult(pgxmock.NewResult("SET", 0))
		mock.ExpectQuery(regexp.QuoteMeta("FROM circles c")).
			WithArgs(circleID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "contribution_amount", "currency", "total_rounds", "current_round", "status", "count"}).
				AddRow(circleID, "100.00", "ETB", 3, 2, "ACTIVE", 3))
	}

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr bool
		check     func(t *testing.T, s *domain.LedgerSnapshot)
	}{
		{
			name: "Ledger loaded",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				expectSnapshot(mock)
				mock.ExpectQuery(regexp.QuoteMeta("FROM payouts")).
					WithArgs(circleID).
					WillReturnRows(pgxmock.NewRows([]string{"id", "recipient_user_id", "round_number", "amount", "status"}).
						AddRow(payoutID, recipient, 1, "300.00", "EXECUTED"))
				mock.ExpectQuery(regexp.QuoteMeta("GROUP BY round_number")).
					WithArgs(circleID).
					WillReturnRows(pgxmock.NewRows([]string{"round_number", "sum"}).
						AddRow(1, "300.00").
						AddRow(2, "100.00"))
				mock.ExpectQuery(regexp.QuoteMeta("c.amount <> ci.contribution_amount")).
					WithArgs(circleID).
					WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
			},
			check: func(t *testing.T, s *domain.LedgerSnapshot) {
				assert.Equal(t, circleID, s.Circle.ID)
				assert.Equal(t, domain.CircleActive, s.Circle.Status)
				assert.True(t, s.Circle.ContributionAmount.Equal(decimal.NewFromInt(100)))
				assert.Equal(t, 3, s.ConfirmedMemberCount)
				assert.Equal(t, 1, s.OffAmountContributions)
				require.Len(t, s.Payouts, 1)
				assert.Equal(t, recipient, s.Payouts[0].RecipientUserID)
				assert.Equal(t, circleID, s.Payouts[0].CircleID)
				assert.Equal(t, domain.PayoutExecuted, s.Payouts[0].Status)
				assert.True(t, s.ConfirmedByRound[1].Equal(decimal.NewFromInt(300)))
				assert.True(t, s.ConfirmedByRound[2].Equal(decimal.NewFromInt(100)))
			},
		},
		{
			name: "Circle missing",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta("SET TRANSACTION")).
					WillReturnResult(pgxmock.NewResult("SET", 0))
				mock.ExpectQuery(regexp.QuoteMeta("FROM circles c")).
					WithArgs(circleID).
					WillReturnError(errors.New("no rows in result set"))
			},
			expectErr: true,
		},
		{
			name: "Corrupt payout amount",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				expectSnapshot(mock)
				mock.ExpectQuery(regexp.QuoteMeta("FROM payouts")).
					WithArgs(circleID).
					WillReturnRows(pgxmock.NewRows([]string{"id", "recipient_user_id", "round_number", "amount", "status"}).
						AddRow(payoutID, recipient, 1, "three hundred", "EXECUTED"))
			},
			expectErr: true,
		},
		{
			name: "Isolation refused",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(regexp.QuoteMeta("SET TRANSACTION")).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, txManager := NewMock(t)
			txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
				func(ctx context.Context, fn func(ctx context.Context) error) error {
					return fn(ctx)
				},
			)
			tt.mockSetup(mock)

			snapshot, err := repo.LoadLedger(context.Background(), circleID)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, snapshot)
			} else {
				require.NoError(t, err)
				tt.check(t, snapshot)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_SaveReport(t *testing.T) {
	repo, mock, _ := NewMock(t)
	report := &domain.IntegrityReport{
		ID:        uuid.New(),
		Timestamp: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		CheckedBy: uuid.New(),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO integrity_reports")).
		WithArgs(report.ID, false, []string{}, report.Timestamp, report.CheckedBy).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	assert.NoError(t, repo.SaveReport(context.Background(), report))

	report.IsDegraded, report.Violations = true, []string{"circle x: current round 9 outside 1..4"}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO integrity_reports")).
		WithArgs(report.ID, true, report.Violations, report.Timestamp, report.CheckedBy).
		WillReturnError(errors.New("database error"))
	assert.Error(t, repo.SaveReport(context.Background(), report))

	assert.NoError(t, mock.ExpectationsWereMet())
}
