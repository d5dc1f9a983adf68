package auditservice

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/equb/internal/domain"
)

func NewMock(t *testing.T, pageSize int) (*Service, *MockRepo, *MockCircleRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	circles := NewMockCircleRepo(ctrl)
	service := New(repo, circles, pageSize)
	service.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("EAT", 3*3600)) }
	defer ctrl.Finish()
	return service, repo, circles
}

func events(circleID uuid.UUID, from, n int) []domain.AuditEvent {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	out := make([]domain.AuditEvent, 0, n)
	for i := from; i < from+n; i++ {
		out = append(out, domain.AuditEvent{
			ID:         uuid.New(),
			Seq:        int64(i),
			OccurredAt: base.Add(time.Duration(i) * time.Millisecond),
			CircleID:   &circleID,
		})
	}
	return out
}

func TestNewEvent(t *testing.T) {
	actor := domain.Actor{UserID: uuid.New(), Role: domain.RoleCollector}
	circleID := uuid.New()

	tests := []struct {
		name            string
		payload         map[string]any
		expectedPayload string
	}{
		{
			name:            "Payload marshalled",
			payload:         map[string]any{"round": 2},
			expectedPayload: `{"round":2}`,
		},
		{
			name:            "Nil payload",
			payload:         nil,
			expectedPayload: `{}`,
		},
		{
			name:            "Unmarshallable payload",
			payload:         map[string]any{"fn": func() {}},
			expectedPayload: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := NewEvent(actor, domain.ActionRoundAdvanced, domain.EntityCircle, circleID, &circleID, tt.payload)

			assert.Equal(t, actor.UserID, event.ActorUserID)
			assert.Equal(t, domain.RoleCollector, event.ActorRole)
			assert.Equal(t, domain.ActionRoundAdvanced, event.ActionType)
			assert.Equal(t, &circleID, event.CircleID)
			assert.JSONEq(t, tt.expectedPayload, string(event.Payload))
		})
	}
}

func TestAppend(t *testing.T) {
	service, repo, _ := NewMock(t, 10)

	t.Run("Assigns id and UTC time", func(t *testing.T) {
		event := &domain.AuditEvent{ActionType: domain.ActionEqubCreated, Payload: json.RawMessage(`{}`)}
		repo.EXPECT().Append(gomock.Any(), event).Return(nil)

		require.NoError(t, service.Append(context.Background(), event))
		assert.NotEqual(t, uuid.Nil, event.ID)
		assert.Equal(t, time.UTC, event.OccurredAt.Location())
		assert.Equal(t, 7, event.OccurredAt.Hour())
	})

	t.Run("Storage error is returned", func(t *testing.T) {
		event := &domain.AuditEvent{ID: uuid.New(), OccurredAt: time.Now()}
		repo.EXPECT().Append(gomock.Any(), event).Return(errors.New("disk full"))

		assert.EqualError(t, service.Append(context.Background(), event), "disk full")
	})
}

func TestTimeline(t *testing.T) {
	circleID := uuid.New()

	t.Run("Pages are chained by cursor", func(t *testing.T) {
		service, repo, circles := NewMock(t, 2)
		circles.EXPECT().GetByID(gomock.Any(), circleID).Return(&domain.Circle{ID: circleID}, nil)
		first, second := events(circleID, 1, 2), events(circleID, 3, 1)
		gomock.InOrder(
			repo.EXPECT().ListPage(gomock.Any(), circleID, domain.AuditFilter{}, (*domain.AuditCursor)(nil), 2).Return(first, nil),
			repo.EXPECT().ListPage(gomock.Any(), circleID, domain.AuditFilter{}, &domain.AuditCursor{OccurredAt: first[1].OccurredAt, Seq: 2}, 2).Return(second, nil),
		)

		var seqs []int64
		for event, err := range service.Timeline(context.Background(), circleID, domain.AuditFilter{}) {
			require.NoError(t, err)
			seqs = append(seqs, event.Seq)
		}
		assert.Equal(t, []int64{1, 2, 3}, seqs)
	})

	t.Run("Limit caps the page size", func(t *testing.T) {
		service, repo, circles := NewMock(t, 2)
		circles.EXPECT().GetByID(gomock.Any(), circleID).Return(&domain.Circle{ID: circleID}, nil)
		filter := domain.AuditFilter{Limit: 3}
		first := events(circleID, 1, 2)
		gomock.InOrder(
			repo.EXPECT().ListPage(gomock.Any(), circleID, filter, (*domain.AuditCursor)(nil), 2).Return(first, nil),
			repo.EXPECT().ListPage(gomock.Any(), circleID, filter, gomock.Any(), 1).Return(events(circleID, 3, 1), nil),
		)

		var n int
		for _, err := range service.Timeline(context.Background(), circleID, filter) {
			require.NoError(t, err)
			n++
		}
		assert.Equal(t, 3, n)
	})

	t.Run("Early break stops fetching", func(t *testing.T) {
		service, repo, circles := NewMock(t, 2)
		circles.EXPECT().GetByID(gomock.Any(), circleID).Return(&domain.Circle{ID: circleID}, nil)
		repo.EXPECT().ListPage(gomock.Any(), circleID, gomock.Any(), gomock.Any(), 2).Return(events(circleID, 1, 2), nil).Times(1)

		for range service.Timeline(context.Background(), circleID, domain.AuditFilter{}) {
			break
		}
	})

	t.Run("Unknown circle", func(t *testing.T) {
		service, _, circles := NewMock(t, 2)
		circles.EXPECT().GetByID(gomock.Any(), circleID).Return(nil, nil)

		var errs []error
		for _, err := range service.Timeline(context.Background(), circleID, domain.AuditFilter{}) {
			errs = append(errs, err)
		}
		require.Len(t, errs, 1)
		assert.ErrorIs(t, errs[0], domain.ErrCircleNotFound)
	})

	t.Run("Circle lookup failure", func(t *testing.T) {
		service, _, circles := NewMock(t, 2)
		circles.EXPECT().GetByID(gomock.Any(), circleID).Return(nil, errors.New("connection refused"))

		for _, err := range service.Timeline(context.Background(), circleID, domain.AuditFilter{}) {
			assert.EqualError(t, err, "connection refused")
		}
	})

	t.Run("Error ends the sequence", func(t *testing.T) {
		service, repo, circles := NewMock(t, 2)
		circles.EXPECT().GetByID(gomock.Any(), circleID).Return(&domain.Circle{ID: circleID}, nil)
		gomock.InOrder(
			repo.EXPECT().ListPage(gomock.Any(), circleID, gomock.Any(), gomock.Any(), 2).Return(events(circleID, 1, 2), nil),
			repo.EXPECT().ListPage(gomock.Any(), circleID, gomock.Any(), gomock.Any(), 2).Return(nil, errors.New("connection lost")),
		)

		var (
			n       int
			lastErr error
		)
		for _, err := range service.Timeline(context.Background(), circleID, domain.AuditFilter{}) {
			if err != nil {
				lastErr = err
				continue
			}
			n++
		}
		assert.Equal(t, 2, n)
		assert.EqualError(t, lastErr, "connection lost")
	})
}
