package audit

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/dto"
)

func NewMock(t *testing.T) (*AuditHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

var circleID = uuid.MustParse("5b4d4a4e-8f53-4c3a-9a53-0b4b0a7f4a11")

func request(query string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/circles/"+circleID.String()+"/audit"+query, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("circleID", circleID.String())
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func seq(events []domain.AuditEvent, failAfter int, err error) iter.Seq2[domain.AuditEvent, error] {
	return func(yield func(domain.AuditEvent, error) bool) {
		for i, e := range events {
			if err != nil && i == failAfter {
				yield(domain.AuditEvent{}, err)
				return
			}
			if !yield(e, nil) {
				return
			}
		}
		if err != nil && failAfter >= len(events) {
			yield(domain.AuditEvent{}, err)
		}
	}
}

func testEvents(n int) []domain.AuditEvent {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	events := make([]domain.AuditEvent, 0, n)
	for i := range n {
		events = append(events, domain.AuditEvent{
			ID:         uuid.New(),
			Seq:        int64(i + 1),
			OccurredAt: base.Add(time.Duration(i) * time.Second),
			ActorRole:  domain.RoleCollector,
			ActionType: "CONTRIBUTION_SUBMITTED",
			EntityType: "CONTRIBUTION",
			CircleID:   &circleID,
			Payload:    json.RawMessage(`{}`),
		})
	}
	return events
}

func TestTimeline(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		events       []domain.AuditEvent
		failAfter    int
		err          error
		expectedCode int
		expectedLen  int
	}{
		{
			name:         "Streams every event",
			events:       testEvents(3),
			expectedCode: http.StatusOK,
			expectedLen:  3,
		},
		{
			name:         "Empty timeline",
			events:       nil,
			expectedCode: http.StatusOK,
			expectedLen:  0,
		},
		{
			name:         "Unknown circle",
			events:       nil,
			err:          domain.ErrCircleNotFound,
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service.EXPECT().Timeline(gomock.Any(), circleID, domain.AuditFilter{}).Return(seq(tt.events, tt.failAfter, tt.err))

			w := httptest.NewRecorder()
			handler.Timeline(w, request(""))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var resp []dto.AuditEventResponseDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Len(t, resp, tt.expectedLen)
				for i, e := range resp {
					assert.Equal(t, int64(i+1), e.Seq)
				}
			}
		})
	}
}

func TestTimelineInterrupted(t *testing.T) {
	handler, service := NewMock(t)
	service.EXPECT().Timeline(gomock.Any(), circleID, gomock.Any()).
		Return(seq(testEvents(2), 1, errors.New("connection lost")))

	w := httptest.NewRecorder()
	handler.Timeline(w, request(""))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "["))
	assert.False(t, strings.HasSuffix(strings.TrimSpace(body), "]"))
	var resp []dto.AuditEventResponseDTO
	assert.Error(t, json.Unmarshal([]byte(body), &resp))
}

func TestTimelineFilter(t *testing.T) {
	handler, service := NewMock(t)
	actorID := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		query         string
		expected      *domain.AuditFilter
		expectedError string
	}{
		{
			name:  "All filters",
			query: "?action=PAYOUT_EXECUTED,%20ROUND_ADVANCED&entityType=PAYOUT&actorId=" + actorID.String() + "&from=2024-03-01T00:00:00Z&to=2024-04-01T00:00:00Z&limit=10",
			expected: &domain.AuditFilter{
				ActionTypes: []string{"PAYOUT_EXECUTED", "ROUND_ADVANCED"},
				EntityType:  "PAYOUT",
				ActorUserID: &actorID,
				From:        &from,
				To:          &to,
				Limit:       10,
			},
		},
		{name: "Bad actor", query: "?actorId=nope", expectedError: "Invalid actorId"},
		{name: "Bad from", query: "?from=yesterday", expectedError: "Invalid from"},
		{name: "Bad to", query: "?to=2024-13-01", expectedError: "Invalid to"},
		{name: "Zero limit", query: "?limit=0", expectedError: "Invalid limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.expected != nil {
				service.EXPECT().Timeline(gomock.Any(), circleID, *tt.expected).Return(seq(nil, 0, nil))
			}

			w := httptest.NewRecorder()
			handler.Timeline(w, request(tt.query))

			if tt.expectedError != "" {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, w.Body.String(), tt.expectedError)
				return
			}
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}
