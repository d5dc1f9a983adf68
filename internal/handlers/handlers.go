package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/equb/docs"
	audithandlers "github.com/GlebRadaev/equb/internal/handlers/audit"
	circlehandlers "github.com/GlebRadaev/equb/internal/handlers/circles"
	contributionhandlers "github.com/GlebRadaev/equb/internal/handlers/contributions"
	integrityhandlers "github.com/GlebRadaev/equb/internal/handlers/integrity"
	memberhandlers "github.com/GlebRadaev/equb/internal/handlers/members"
	payouthandlers "github.com/GlebRadaev/equb/internal/handlers/payouts"
	"github.com/GlebRadaev/equb/internal/metrics"
	"github.com/GlebRadaev/equb/internal/service"
	"github.com/GlebRadaev/equb/pkg/auth"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type CircleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Hold(w http.ResponseWriter, r *http.Request)
	Resume(w http.ResponseWriter, r *http.Request)
	Terminate(w http.ResponseWriter, r *http.Request)
}

type MemberHandler interface {
	Join(w http.ResponseWriter, r *http.Request)
	Add(w http.ResponseWriter, r *http.Request)
	Remove(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
}

type ContributionHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type PayoutHandler interface {
	Eligibility(w http.ResponseWriter, r *http.Request)
	Execute(w http.ResponseWriter, r *http.Request)
	AdvanceRound(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type AuditHandler interface {
	Timeline(w http.ResponseWriter, r *http.Request)
}

type IntegrityHandler interface {
	State(w http.ResponseWriter, r *http.Request)
	RunCheck(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	CircleHandler       CircleHandler
	MemberHandler       MemberHandler
	ContributionHandler ContributionHandler
	PayoutHandler       PayoutHandler
	AuditHandler        AuditHandler
	IntegrityHandler    IntegrityHandler

	jwtService     auth.JWTServiceInterface
	metrics        *metrics.Metrics
	metricsHandler http.Handler
}

func New(s *service.Services, jwtService auth.JWTServiceInterface, m *metrics.Metrics, metricsHandler http.Handler) *Handlers {
	return &Handlers{
		CircleHandler:       circlehandlers.New(s.CircleService),
		MemberHandler:       memberhandlers.New(s.MembershipService),
		ContributionHandler: contributionhandlers.New(s.ContributionService),
		PayoutHandler:       payouthandlers.New(s.PayoutService),
		AuditHandler:        audithandlers.New(s.AuditService),
		IntegrityHandler:    integrityhandlers.New(s.IntegrityService),
		jwtService:          jwtService,
		metrics:             m,
		metricsHandler:      metricsHandler,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		h.metrics.Middleware,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	if h.metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", h.metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.AuthMiddleware(h.jwtService))

		r.Route("/circles", func(r chi.Router) {
			r.Post("/", h.CircleHandler.Create)
			r.Get("/", h.CircleHandler.List)
			r.Route("/{circleID}", func(r chi.Router) {
				r.Get("/", h.CircleHandler.Get)
				r.Post("/hold", h.CircleHandler.Hold)
				r.Post("/resume", h.CircleHandler.Resume)
				r.Post("/terminate", h.CircleHandler.Terminate)

				r.Post("/join", h.MemberHandler.Join)
				r.Get("/members", h.MemberHandler.List)
				r.Post("/members", h.MemberHandler.Add)
				r.Delete("/members/{userID}", h.MemberHandler.Remove)
				r.Post("/activate", h.MemberHandler.Activate)

				r.Post("/contributions", h.ContributionHandler.Submit)
				r.Get("/contributions", h.ContributionHandler.List)

				r.Get("/payouts", h.PayoutHandler.List)
				r.Get("/payouts/eligibility", h.PayoutHandler.Eligibility)
				r.Post("/payouts/execute", h.PayoutHandler.Execute)
				r.Post("/rounds/advance", h.PayoutHandler.AdvanceRound)
				r.Post("/complete", h.PayoutHandler.Complete)

				r.Get("/audit", h.AuditHandler.Timeline)
			})
		})
		r.Route("/contributions/{contributionID}", func(r chi.Router) {
			r.Post("/confirm", h.ContributionHandler.Confirm)
			r.Post("/reject", h.ContributionHandler.Reject)
		})
		r.Route("/integrity", func(r chi.Router) {
			r.Get("/", h.IntegrityHandler.State)
			r.Post("/check", h.IntegrityHandler.RunCheck)
		})
	})

	return r
}
