package repo

import (
	"github.com/GlebRadaev/equb/internal/pg"
	auditrepo "github.com/GlebRadaev/equb/internal/repo/audit-repo"
	circlerepo "github.com/GlebRadaev/equb/internal/repo/circle-repo"
	contributionrepo "github.com/GlebRadaev/equb/internal/repo/contribution-repo"
	integrityrepo "github.com/GlebRadaev/equb/internal/repo/integrity-repo"
	membershiprepo "github.com/GlebRadaev/equb/internal/repo/membership-repo"
	payoutrepo "github.com/GlebRadaev/equb/internal/repo/payout-repo"
	"github.com/GlebRadaev/equb/internal/service/auditservice"
	"github.com/GlebRadaev/equb/internal/service/circleservice"
	"github.com/GlebRadaev/equb/internal/service/contributionservice"
	"github.com/GlebRadaev/equb/internal/service/integrityservice"
	"github.com/GlebRadaev/equb/internal/service/membershipservice"
	"github.com/GlebRadaev/equb/internal/service/payoutservice"
)

// MembershipRepo is read by the registry, the contribution workflow and payouts.
type MembershipRepo interface {
	membershipservice.Repo
	contributionservice.MembershipRepo
	payoutservice.MembershipRepo
}

type ContributionRepo interface {
	contributionservice.Repo
	payoutservice.ContributionRepo
}

type Repositories struct {
	CircleRepo       circleservice.Repo
	MembershipRepo   MembershipRepo
	ContributionRepo ContributionRepo
	PayoutRepo       payoutservice.Repo
	AuditRepo        auditservice.Repo
	IntegrityRepo    integrityservice.Repo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		CircleRepo:       circlerepo.New(conn),
		MembershipRepo:   membershiprepo.New(conn),
		ContributionRepo: contributionrepo.New(conn),
		PayoutRepo:       payoutrepo.New(conn),
		AuditRepo:        auditrepo.New(conn),
		IntegrityRepo:    integrityrepo.New(conn, txManager),
	}
}
