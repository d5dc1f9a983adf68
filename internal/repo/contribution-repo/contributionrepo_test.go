package contributionrepo

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

var contributionRowColumns = []string{
	"id", "circle_id", "member_id", "round_number", "amount", "reference", "status",
	"rejection_reason", "reviewed_by", "reviewed_at", "created_at",
}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func testContribution() *domain.Contribution {
	return &domain.Contribution{
		ID:          uuid.New(),
		CircleID:    uuid.New(),
		MemberID:    uuid.New(),
		RoundNumber: 2,
		Amount:      decimal.NewFromInt(500),
		Reference:   "79927398713",
		Status:      domain.ContributionPending,
		CreatedAt:   time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC),
	}
}

func contributionRow(c *domain.Contribution) []any {
	return []any{
		c.ID, c.CircleID, c.MemberID, c.RoundNumber, c.Amount.String(), c.Reference, string(c.Status),
		c.RejectionReason, c.ReviewedBy, c.ReviewedAt, c.CreatedAt,
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	c := testContribution()
	args := []any{c.ID, c.CircleID, c.MemberID, 2, "500", "79927398713", "PENDING", c.CreatedAt}

	tests := []struct {
		name        string
		mockSetup   func()
		expectedErr error
	}{
		{
			name: "Contribution saved",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contributions")).
					WithArgs(args...).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "Active contribution already exists",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contributions")).
					WithArgs(args...).
					WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "contributions_active_per_round"})
			},
			expectedErr: domain.ErrDuplicateSubmission,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contributions")).
					WithArgs(args...).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Create(context.Background(), c)
			if tt.expectedErr != nil {
				assert.EqualError(t, err, tt.expectedErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := NewMock(t)
	reviewer := uuid.New()
	reviewed := time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC)
	c := testContribution()
	c.Status, c.RejectionReason, c.ReviewedBy, c.ReviewedAt = domain.ContributionRejected, "wrong bank", &reviewer, &reviewed

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Contribution
	}{
		{
			name: "Contribution exists",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
					WithArgs(c.ID).
					WillReturnRows(pgxmock.NewRows(contributionRowColumns).AddRow(contributionRow(c)...))
			},
			result: c,
		},
		{
			name: "Contribution does not exist",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
					WithArgs(c.ID).
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
					WithArgs(c.ID).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetByID(context.Background(), c.ID)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
}

func TestRepository_FindActive(t *testing.T) {
	repo, mock := NewMock(t)
	c := testContribution()

	mock.ExpectQuery(regexp.QuoteMeta("status <> 'REJECTED'")).
		WithArgs(c.CircleID, c.MemberID, 2).
		WillReturnRows(pgxmock.NewRows(contributionRowColumns).AddRow(contributionRow(c)...))
	mock.ExpectQuery(regexp.QuoteMeta("status <> 'REJECTED'")).
		WithArgs(c.CircleID, c.MemberID, 3).
		WillReturnError(pgx.ErrNoRows)

	result, err := repo.FindActive(context.Background(), c.CircleID, c.MemberID, 2)
	assert.NoError(t, err)
	assert.Equal(t, c, result)

	result, err = repo.FindActive(context.Background(), c.CircleID, c.MemberID, 3)
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateReview(t *testing.T) {
	repo, mock := NewMock(t)
	reviewer := uuid.New()
	reviewed := time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC)
	c := testContribution()
	c.Status, c.ReviewedBy, c.ReviewedAt = domain.ContributionConfirmed, &reviewer, &reviewed

	tests := []struct {
		name        string
		mockSetup   func()
		expectedErr error
	}{
		{
			name: "Pending contribution settled",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("WHERE id = $5 AND status = 'PENDING'")).
					WithArgs("CONFIRMED", "", &reviewer, &reviewed, c.ID).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "Already settled",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("WHERE id = $5 AND status = 'PENDING'")).
					WithArgs("CONFIRMED", "", &reviewer, &reviewed, c.ID).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectedErr: domain.ErrNotPending,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("WHERE id = $5 AND status = 'PENDING'")).
					WithArgs("CONFIRMED", "", &reviewer, &reviewed, c.ID).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.UpdateReview(context.Background(), c)
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
	first, second := testContribution(), testContribution()

	tests := []struct {
		name      string
		round     int
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name:  "Every round",
			round: 0,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("($2 = 0 OR round_number = $2)")).
					WithArgs(first.CircleID, 0).
					WillReturnRows(pgxmock.NewRows(contributionRowColumns).
						AddRow(contributionRow(first)...).
						AddRow(contributionRow(second)...))
			},
			count: 2,
		},
		{
			name:  "One round",
			round: 2,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("($2 = 0 OR round_number = $2)")).
					WithArgs(first.CircleID, 2).
					WillReturnRows(pgxmock.NewRows(contributionRowColumns).AddRow(contributionRow(first)...))
			},
			count: 1,
		},
		{
			name:  "Corrupt amount",
			round: 0,
			mockSetup: func() {
				row := contributionRow(first)
				row[4] = "not a number"
				mock.ExpectQuery(regexp.QuoteMeta("($2 = 0 OR round_number = $2)")).
					WithArgs(first.CircleID, 0).
					WillReturnRows(pgxmock.NewRows(contributionRowColumns).AddRow(row...))
			},
			expectErr: true,
		},
		{
			name:  "Database error",
			round: 0,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("($2 = 0 OR round_number = $2)")).
					WithArgs(first.CircleID, 0).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.ListByCircle(context.Background(), first.CircleID, tt.round)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, result, tt.count)
		})
	}
}

func TestRepository_CountConfirmed(t *testing.T) {
	repo, mock := NewMock(t)
	circleID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("round_number = $2 AND status = 'CONFIRMED'")).
		WithArgs(circleID, 1).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountConfirmed(context.Background(), circleID, 1)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
