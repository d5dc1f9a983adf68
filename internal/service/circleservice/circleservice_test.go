package circleservice

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/pg"
	"github.com/GlebRadaev/equb/internal/service/auditservice"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *auditservice.MockAppender) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
		return fn(ctx)
	}).AnyTimes()
	auditor := auditservice.NewMockAppender(ctrl)
	service := New(repo, txManager, auditor)
	service.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	defer ctrl.Finish()
	return service, repo, auditor
}

var (
	admin     = domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
	collector = domain.Actor{UserID: uuid.New(), Role: domain.RoleCollector}
	member    = domain.Actor{UserID: uuid.New(), Role: domain.RoleMember}
)

func validParams() CreateParams {
	return CreateParams{
		Name:               "  Office equb ",
		ContributionAmount: decimal.RequireFromString("100.00"),
		Currency:           "ETB",
		CycleLengthDays:    30,
		TotalRounds:        3,
	}
}

func TestCreate(t *testing.T) {
	service, repo, auditor := NewMock(t)

	tests := []struct {
		name          string
		actor         domain.Actor
		modify        func(p *CreateParams)
		prepareMock   func()
		expectedError error
	}{
		{
			name:   "Created as draft",
			actor:  collector,
			modify: func(*CreateParams) {},
			prepareMock: func() {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				auditor.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.AuditEvent) error {
					assert.Equal(t, domain.ActionEqubCreated, e.ActionType)
					assert.Equal(t, domain.EntityCircle, e.EntityType)
					var payload map[string]any
					require.NoError(t, json.Unmarshal(e.Payload, &payload))
					assert.Equal(t, "100", payload["contributionAmount"])
					assert.Equal(t, "FIXED", payload["payoutOrderType"])
					return nil
				})
			},
		},
		{name: "Member may not create", actor: member, modify: func(*CreateParams) {}, expectedError: domain.ErrForbidden},
		{name: "Blank name", actor: admin, modify: func(p *CreateParams) { p.Name = "   " }, expectedError: domain.ErrInvalidCircle},
		{name: "Name too long", actor: admin, modify: func(p *CreateParams) { p.Name = strings.Repeat("ä", 121) }, expectedError: domain.ErrInvalidCircle},
		{name: "Zero amount", actor: admin, modify: func(p *CreateParams) { p.ContributionAmount = decimal.Zero }, expectedError: domain.ErrInvalidCircle},
		{name: "Sub-cent amount", actor: admin, modify: func(p *CreateParams) { p.ContributionAmount = decimal.RequireFromString("10.005") }, expectedError: domain.ErrInvalidCircle},
		{name: "Lowercase currency", actor: admin, modify: func(p *CreateParams) { p.Currency = "etb" }, expectedError: domain.ErrInvalidCircle},
		{name: "Single round", actor: admin, modify: func(p *CreateParams) { p.TotalRounds = 1 }, expectedError: domain.ErrInvalidCircle},
		{name: "Zero cycle length", actor: admin, modify: func(p *CreateParams) { p.CycleLengthDays = 0 }, expectedError: domain.ErrInvalidCircle},
		{name: "Unknown order type", actor: admin, modify: func(p *CreateParams) { p.PayoutOrderType = "LOTTERY" }, expectedError: domain.ErrInvalidCircle},
		{name: "Too many rounds", actor: admin, modify: func(p *CreateParams) { p.TotalRounds = 1001 }, expectedError: domain.ErrInvalidCircle},
		{name: "Cycle longer than a year", actor: admin, modify: func(p *CreateParams) { p.CycleLengthDays = 367 }, expectedError: domain.ErrInvalidCircle},
		{name: "Amount beyond storage", actor: admin, modify: func(p *CreateParams) { p.ContributionAmount = decimal.RequireFromString("100000000000000000") }, expectedError: domain.ErrInvalidCircle},
		{
			name:  "Pot beyond storage",
			actor: admin,
			modify: func(p *CreateParams) {
				p.ContributionAmount = decimal.RequireFromString("9000000000000000")
				p.TotalRounds = 2
			},
			expectedError: domain.ErrInvalidCircle,
		},
		{
			name:   "Audit failure rolls back",
			actor:  admin,
			modify: func(*CreateParams) {},
			prepareMock: func() {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				auditor.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("audit unavailable"))
			},
			expectedError: errors.New("audit unavailable"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}
			params := validParams()
			tt.modify(&params)

			circle, err := service.Create(context.Background(), tt.actor, params)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, circle)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Office equb", circle.Name)
			assert.Equal(t, domain.CircleDraft, circle.Status)
			assert.Equal(t, domain.PayoutOrderFixed, circle.PayoutOrderType)
			assert.Equal(t, 0, circle.CurrentRound)
			assert.Equal(t, tt.actor.UserID, circle.CreatedByUserID)
			assert.Nil(t, circle.ActivatedAt)
		})
	}
}

func TestGet(t *testing.T) {
	service, repo, _ := NewMock(t)
	id := uuid.New()

	repo.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)
	_, err := service.Get(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrCircleNotFound)

	repo.EXPECT().GetByID(gomock.Any(), id).Return(&domain.Circle{ID: id}, nil)
	circle, err := service.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, circle.ID)
}

func TestTransitions(t *testing.T) {
	service, repo, auditor := NewMock(t)
	id := uuid.New()

	type op func(context.Context, domain.Actor, uuid.UUID) (*domain.Circle, error)
	tests := []struct {
		name           string
		op             op
		actor          domain.Actor
		from           domain.CircleStatus
		missing        bool
		expectedStatus domain.CircleStatus
		expectedAction string
		expectedError  error
	}{
		{name: "Hold active", op: service.Hold, actor: admin, from: domain.CircleActive, expectedStatus: domain.CircleOnHold, expectedAction: domain.ActionEqubOnHold},
		{name: "Hold draft", op: service.Hold, actor: admin, from: domain.CircleDraft, expectedError: domain.ErrCircleNotActive},
		{name: "Hold by collector", op: service.Hold, actor: collector, from: domain.CircleActive, expectedError: domain.ErrForbidden},
		{name: "Resume on hold", op: service.Resume, actor: admin, from: domain.CircleOnHold, expectedStatus: domain.CircleActive, expectedAction: domain.ActionEqubResumed},
		{name: "Resume active", op: service.Resume, actor: admin, from: domain.CircleActive, expectedError: domain.ErrCircleNotOnHold},
		{name: "Resume completed", op: service.Resume, actor: admin, from: domain.CircleCompleted, expectedError: domain.ErrCircleNotActive},
		{name: "Terminate active", op: service.Terminate, actor: admin, from: domain.CircleActive, expectedStatus: domain.CircleTerminated, expectedAction: domain.ActionEqubTerminated},
		{name: "Terminate draft", op: service.Terminate, actor: admin, from: domain.CircleDraft, expectedStatus: domain.CircleTerminated, expectedAction: domain.ActionEqubTerminated},
		{name: "Terminate terminated", op: service.Terminate, actor: admin, from: domain.CircleTerminated, expectedError: domain.ErrCircleNotActive},
		{name: "Unknown circle", op: service.Terminate, actor: admin, missing: true, expectedError: domain.ErrCircleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actor.IsAdmin() {
				if tt.missing {
					repo.EXPECT().GetForUpdate(gomock.Any(), id).Return(nil, nil)
				} else {
					repo.EXPECT().GetForUpdate(gomock.Any(), id).Return(&domain.Circle{ID: id, Status: tt.from, Version: 4}, nil)
				}
			}
			if tt.expectedError == nil {
				repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Circle) error {
					assert.Equal(t, tt.expectedStatus, c.Status)
					return nil
				})
				auditor.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.AuditEvent) error {
					assert.Equal(t, tt.expectedAction, e.ActionType)
					assert.JSONEq(t, `{"from":"`+string(tt.from)+`","to":"`+string(tt.expectedStatus)+`"}`, string(e.Payload))
					return nil
				})
			}

			circle, err := tt.op(context.Background(), tt.actor, id)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, circle)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, circle.Status)
		})
	}
}

func TestTransitionVersionConflict(t *testing.T) {
	service, repo, _ := NewMock(t)
	id := uuid.New()

	repo.EXPECT().GetForUpdate(gomock.Any(), id).Return(&domain.Circle{ID: id, Status: domain.CircleActive}, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(domain.ErrVersionConflict)

	_, err := service.Hold(context.Background(), admin, id)
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
}
