package service

import (
	"github.com/GlebRadaev/equb/internal/config"
	"github.com/GlebRadaev/equb/internal/handlers/audit"
	"github.com/GlebRadaev/equb/internal/handlers/circles"
	"github.com/GlebRadaev/equb/internal/handlers/contributions"
	"github.com/GlebRadaev/equb/internal/handlers/integrity"
	"github.com/GlebRadaev/equb/internal/handlers/members"
	"github.com/GlebRadaev/equb/internal/handlers/payouts"
	"github.com/GlebRadaev/equb/internal/metrics"
	"github.com/GlebRadaev/equb/internal/pg"
	"github.com/GlebRadaev/equb/internal/repo"
	"github.com/GlebRadaev/equb/internal/service/auditservice"
	"github.com/GlebRadaev/equb/internal/service/circleservice"
	"github.com/GlebRadaev/equb/internal/service/contributionservice"
	"github.com/GlebRadaev/equb/internal/service/integrityservice"
	"github.com/GlebRadaev/equb/internal/service/membershipservice"
	"github.com/GlebRadaev/equb/internal/service/payoutservice"
)

type Services struct {
	CircleService       circles.Service
	MembershipService   members.Service
	ContributionService contributions.Service
	PayoutService       payouts.Service
	AuditService        audit.Service
	IntegrityService    integrity.Service
}

// New wires every ledger service around one shared integrity state.
func New(repo *repo.Repositories, txManager pg.TXManager, state *integrityservice.State, m *metrics.Metrics, cfg *config.Config) *Services {
	auditService := auditservice.New(repo.AuditRepo, repo.CircleRepo, cfg.AuditPageSize)
	verifier := integrityservice.NewVerifier(repo.IntegrityRepo, auditService, state, m, cfg.IntegrityWorkers)

	return &Services{
		CircleService: circleservice.New(repo.CircleRepo, txManager, auditService),
		MembershipService: membershipservice.New(
			repo.CircleRepo, repo.MembershipRepo, repo.PayoutRepo, txManager, auditService, state, m,
		),
		ContributionService: contributionservice.New(
			repo.CircleRepo, repo.MembershipRepo, repo.ContributionRepo, txManager, auditService, state, m,
		),
		PayoutService: payoutservice.New(
			repo.CircleRepo, repo.MembershipRepo, repo.ContributionRepo, repo.PayoutRepo, txManager, auditService, state, m,
		),
		AuditService:     auditService,
		IntegrityService: verifier,
	}
}
