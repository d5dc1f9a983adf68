package contributions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/dto"
	"github.com/GlebRadaev/equb/internal/service/contributionservice"
	"github.com/GlebRadaev/equb/pkg/auth"
)

func NewMock(t *testing.T) (*ContributionHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

var (
	circleID       = uuid.MustParse("5b4d4a4e-8f53-4c3a-9a53-0b4b0a7f4a11")
	contributionID = uuid.MustParse("9c1a2b3c-4d5e-6f70-8192-a3b4c5d6e7f8")
	member         = domain.Actor{UserID: uuid.MustParse("11111111-2222-3333-4444-555555555555"), Role: domain.RoleMember}
	collector      = domain.Actor{UserID: uuid.MustParse("66666666-7777-8888-9999-aaaaaaaaaaaa"), Role: domain.RoleCollector}
)

func request(method, target, body string, actor domain.Actor, params map[string]string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(auth.WithActor(r.Context(), actor), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

func testContribution(status domain.ContributionStatus) *domain.Contribution {
	return &domain.Contribution{
		ID:          contributionID,
		CircleID:    circleID,
		MemberID:    member.UserID,
		RoundNumber: 1,
		Amount:      decimal.RequireFromString("100.00"),
		Reference:   "4561261212345467",
		Status:      status,
		CreatedAt:   time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
	}
}

func TestSubmit(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		actor         domain.Actor
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name:  "Member submits for themselves",
			actor: member,
			body:  `{"roundNumber":1,"amount":"100.00","reference":"4561261212345467"}`,
			prepareMock: func() {
				service.EXPECT().Submit(gomock.Any(), member, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ domain.Actor, req contributionservice.SubmitRequest) (*domain.Contribution, error) {
						assert.Equal(t, circleID, req.CircleID)
						assert.Equal(t, member.UserID, req.MemberID)
						assert.Equal(t, 1, req.RoundNumber)
						assert.True(t, decimal.RequireFromString("100").Equal(req.Amount))
						return testContribution(domain.ContributionPending), nil
					})
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:  "Collector submits on behalf of a member",
			actor: collector,
			body:  `{"memberId":"` + member.UserID.String() + `","roundNumber":1,"amount":"100.00"}`,
			prepareMock: func() {
				service.EXPECT().Submit(gomock.Any(), collector, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ domain.Actor, req contributionservice.SubmitRequest) (*domain.Contribution, error) {
						assert.Equal(t, member.UserID, req.MemberID)
						return testContribution(domain.ContributionPending), nil
					})
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:          "Malformed body",
			actor:         member,
			body:          `[]`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:  "Invalid reference",
			actor: member,
			body:  `{"roundNumber":1,"amount":"100.00","reference":"1234"}`,
			prepareMock: func() {
				service.EXPECT().Submit(gomock.Any(), member, gomock.Any()).Return(nil, domain.ErrInvalidReference)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:  "Duplicate submission",
			actor: member,
			body:  `{"roundNumber":1,"amount":"100.00"}`,
			prepareMock: func() {
				service.EXPECT().Submit(gomock.Any(), member, gomock.Any()).Return(nil, domain.ErrDuplicateSubmission)
			},
			expectedCode:  http.StatusConflict,
			expectedError: domain.ErrDuplicateSubmission.Error(),
		},
		{
			name:  "Storage failure",
			actor: member,
			body:  `{"roundNumber":1,"amount":"100.00"}`,
			prepareMock: func() {
				service.EXPECT().Submit(gomock.Any(), member, gomock.Any()).Return(nil, errors.New("deadlock detected"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			w := httptest.NewRecorder()
			handler.Submit(w, request(http.MethodPost, "/", tt.body, tt.actor, map[string]string{"circleID": circleID.String()}))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			assert.NotContains(t, w.Body.String(), "deadlock")
		})
	}
}

func TestConfirm(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		id           string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Confirmed",
			id:   contributionID.String(),
			prepareMock: func() {
				c := testContribution(domain.ContributionConfirmed)
				c.ReviewedBy = &collector.UserID
				service.EXPECT().Confirm(gomock.Any(), collector, contributionID).Return(c, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Malformed id",
			id:           "42",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Not pending",
			id:   contributionID.String(),
			prepareMock: func() {
				service.EXPECT().Confirm(gomock.Any(), collector, contributionID).Return(nil, domain.ErrNotPending)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Unknown contribution",
			id:   contributionID.String(),
			prepareMock: func() {
				service.EXPECT().Confirm(gomock.Any(), collector, contributionID).Return(nil, domain.ErrContributionNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			w := httptest.NewRecorder()
			handler.Confirm(w, request(http.MethodPost, "/", "", collector, map[string]string{"contributionID": tt.id}))

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestReject(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Rejected",
			body: `{"reason":"wrong amount"}`,
			prepareMock: func() {
				c := testContribution(domain.ContributionRejected)
				c.RejectionReason = "wrong amount"
				service.EXPECT().Reject(gomock.Any(), collector, contributionID, "wrong amount").Return(c, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Reason too short",
			body: `{"reason":"no"}`,
			prepareMock: func() {
				service.EXPECT().Reject(gomock.Any(), collector, contributionID, "no").Return(nil, domain.ErrInvalidReason)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Malformed body",
			body:         `{"reason":`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			w := httptest.NewRecorder()
			handler.Reject(w, request(http.MethodPost, "/", tt.body, collector, map[string]string{"contributionID": contributionID.String()}))

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestList(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		query        string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:  "Every round",
			query: "",
			prepareMock: func() {
				service.EXPECT().List(gomock.Any(), circleID, 0).Return([]domain.Contribution{*testContribution(domain.ContributionPending)}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:  "Single round",
			query: "?round=2",
			prepareMock: func() {
				service.EXPECT().List(gomock.Any(), circleID, 2).Return(nil, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid round",
			query:        "?round=0",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			w := httptest.NewRecorder()
			handler.List(w, request(http.MethodGet, "/"+tt.query, "", member, map[string]string{"circleID": circleID.String()}))

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var resp []dto.ContributionResponseDTO
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.NotNil(t, resp)
			}
		})
	}
}
