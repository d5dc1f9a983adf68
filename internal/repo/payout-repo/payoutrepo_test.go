package payoutrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/equb/internal/domain"
)

var payoutRowColumns = []string{
	"id", "circle_id", "recipient_user_id", "round_number", "amount", "status",
	"scheduled_date", "executed_at", "executed_by",
}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func testPayout() *domain.Payout {
	return &domain.Payout{
		ID:              uuid.New(),
		CircleID:        uuid.New(),
		RecipientUserID: uuid.New(),
		RoundNumber:     1,
		Amount:          decimal.NewFromInt(1500),
		Status:          domain.PayoutPending,
		ScheduledDate:   time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC),
	}
}

func payoutRow(p *domain.Payout) []any {
	return []any{
		p.ID, p.CircleID, p.RecipientUserID, p.RoundNumber, p.Amount.String(), string(p.Status),
		p.ScheduledDate, p.ExecutedAt, p.ExecutedBy,
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	p := testPayout()
	args := []any{p.ID, p.CircleID, p.RecipientUserID, 1, "1500", "PENDING", p.ScheduledDate}

	tests := []struct {
		name        string
		mockSetup   func()
		expectedErr error
	}{
		{
			name: "Payout scheduled",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payouts")).
					WithArgs(args...).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "Round already has a payout",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payouts")).
					WithArgs(args...).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "payouts_circle_id_round_number_key"})
			},
			expectedErr: domain.ErrVersionConflict,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO payouts")).
					WithArgs(args...).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Create(context.Background(), p)
			switch {
			case errors.Is(tt.expectedErr, domain.ErrVersionConflict):
				assert.ErrorIs(t, err, domain.ErrVersionConflict)
			case tt.expectedErr != nil:
				assert.EqualError(t, err, tt.expectedErr.Error())
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_GetByRound(t *testing.T) {
	repo, mock := NewMock(t)
	executor := uuid.New()
	executed := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)
	p := testPayout()
	p.Status, p.ExecutedAt, p.ExecutedBy = domain.PayoutExecuted, &executed, &executor

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Payout
	}{
		{
			name: "Payout exists",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE circle_id = $1 AND round_number = $2")).
					WithArgs(p.CircleID, 1).
					WillReturnRows(pgxmock.NewRows(payoutRowColumns).AddRow(payoutRow(p)...))
			},
			result: p,
		},
		{
			name: "Payout does not exist",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE circle_id = $1 AND round_number = $2")).
					WithArgs(p.CircleID, 1).
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE circle_id = $1 AND round_number = $2")).
					WithArgs(p.CircleID, 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetByRound(context.Background(), p.CircleID, 1)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_MarkExecuted(t *testing.T) {
	repo, mock := NewMock(t)
	payoutID, executor := uuid.New(), uuid.New()
	executedAt := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		mockSetup   func()
		expectedErr error
	}{
		{
			name: "Pending payout executed",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("SET status = 'EXECUTED'")).
					WithArgs(executedAt, executor, payoutID).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "Lost the race",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("SET status = 'EXECUTED'")).
					WithArgs(executedAt, executor, payoutID).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectedErr: domain.ErrAlreadyExecuted,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("SET status = 'EXECUTED'")).
					WithArgs(executedAt, executor, payoutID).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.MarkExecuted(context.Background(), payoutID, executor, executedAt)
			if tt.expectedErr != nil {
				assert.EqualError(t, err, tt.expectedErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_ListByCircle(t *testing.T) {
	repo, mock := NewMock(t)
	first, second := testPayout(), testPayout()
	second.RoundNumber = 2

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY round_number")).
		WithArgs(first.CircleID).
		WillReturnRows(pgxmock.NewRows(payoutRowColumns).
			AddRow(payoutRow(first)...).
			AddRow(payoutRow(second)...))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY round_number")).
		WithArgs(first.CircleID).
		WillReturnError(errors.New("database error"))

	result, err := repo.ListByCircle(context.Background(), first.CircleID)
	assert.NoError(t, err)
	assert.Equal(t, []domain.Payout{*first, *second}, result)

	result, err = repo.ListByCircle(context.Background(), first.CircleID)
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}
