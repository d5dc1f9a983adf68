package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/handlers/audit"
	"github.com/GlebRadaev/equb/internal/handlers/circles"
	"github.com/GlebRadaev/equb/internal/handlers/contributions"
	"github.com/GlebRadaev/equb/internal/handlers/integrity"
	"github.com/GlebRadaev/equb/internal/handlers/members"
	"github.com/GlebRadaev/equb/internal/handlers/payouts"
	"github.com/GlebRadaev/equb/internal/metrics"
	"github.com/GlebRadaev/equb/internal/service"
	"github.com/GlebRadaev/equb/pkg/auth"
)

const secret = "test-secret"

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		CircleService:       circles.NewMockService(ctrl),
		MembershipService:   members.NewMockService(ctrl),
		ContributionService: contributions.NewMockService(ctrl),
		PayoutService:       payouts.NewMockService(ctrl),
		AuditService:        audit.NewMockService(ctrl),
		IntegrityService:    integrity.NewMockService(ctrl),
	}

	h := New(services, auth.NewJWTService(secret), nil, nil)
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.CircleHandler)
	assert.NotNil(t, h.IntegrityHandler)
}

func newRouter(ctrl *gomock.Controller) chi.Router {
	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

	circleHandler := NewMockCircleHandler(ctrl)
	circleHandler.EXPECT().Create(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	circleHandler.EXPECT().List(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	circleHandler.EXPECT().Get(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	circleHandler.EXPECT().Hold(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	circleHandler.EXPECT().Resume(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	circleHandler.EXPECT().Terminate(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()

	memberHandler := NewMockMemberHandler(ctrl)
	memberHandler.EXPECT().Join(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	memberHandler.EXPECT().Add(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	memberHandler.EXPECT().Remove(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	memberHandler.EXPECT().List(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	memberHandler.EXPECT().Activate(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()

	contributionHandler := NewMockContributionHandler(ctrl)
	contributionHandler.EXPECT().Submit(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	contributionHandler.EXPECT().List(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	contributionHandler.EXPECT().Confirm(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	contributionHandler.EXPECT().Reject(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()

	payoutHandler := NewMockPayoutHandler(ctrl)
	payoutHandler.EXPECT().Eligibility(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	payoutHandler.EXPECT().Execute(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	payoutHandler.EXPECT().AdvanceRound(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	payoutHandler.EXPECT().Complete(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	payoutHandler.EXPECT().List(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()

	auditHandler := NewMockAuditHandler(ctrl)
	auditHandler.EXPECT().Timeline(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()

	integrityHandler := NewMockIntegrityHandler(ctrl)
	integrityHandler.EXPECT().State(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	integrityHandler.EXPECT().RunCheck(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()

	registry := prometheus.NewRegistry()
	h := &Handlers{
		CircleHandler:       circleHandler,
		MemberHandler:       memberHandler,
		ContributionHandler: contributionHandler,
		PayoutHandler:       payoutHandler,
		AuditHandler:        auditHandler,
		IntegrityHandler:    integrityHandler,
		jwtService:          auth.NewJWTService(secret),
		metrics:             metrics.NewMetrics(registry),
		metricsHandler:      metrics.Handler(registry),
	}

	router := chi.NewRouter()
	h.InitRoutes(router)
	return router
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := newRouter(ctrl)

	token, err := auth.NewJWTService(secret).GenerateJWT(
		domain.Actor{UserID: uuid.New(), Role: domain.RoleCollector},
		time.Now().Add(time.Hour),
	)
	require.NoError(t, err)

	circle := "/api/circles/" + uuid.NewString()
	contribution := "/api/contributions/" + uuid.NewString()

	tests := []struct {
		method string
		url    string
	}{
		{http.MethodPost, "/api/circles"},
		{http.MethodGet, "/api/circles"},
		{http.MethodGet, circle},
		{http.MethodPost, circle + "/hold"},
		{http.MethodPost, circle + "/resume"},
		{http.MethodPost, circle + "/terminate"},
		{http.MethodPost, circle + "/join"},
		{http.MethodGet, circle + "/members"},
		{http.MethodPost, circle + "/members"},
		{http.MethodDelete, circle + "/members/" + uuid.NewString()},
		{http.MethodPost, circle + "/activate"},
		{http.MethodPost, circle + "/contributions"},
		{http.MethodGet, circle + "/contributions"},
		{http.MethodGet, circle + "/payouts"},
		{http.MethodGet, circle + "/payouts/eligibility"},
		{http.MethodPost, circle + "/payouts/execute"},
		{http.MethodPost, circle + "/rounds/advance"},
		{http.MethodPost, circle + "/complete"},
		{http.MethodGet, circle + "/audit"},
		{http.MethodPost, contribution + "/confirm"},
		{http.MethodPost, contribution + "/reject"},
		{http.MethodGet, "/api/integrity"},
		{http.MethodPost, "/api/integrity/check"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			req = httptest.NewRequest(tt.method, tt.url, nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec = httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := newRouter(ctrl)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/integrity", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "http_requests_total"))
}
