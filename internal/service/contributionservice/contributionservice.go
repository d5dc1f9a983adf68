package contributionservice

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/metrics"
	"github.com/GlebRadaev/equb/internal/pg"
	"github.com/GlebRadaev/equb/internal/service/auditservice"
	"github.com/GlebRadaev/equb/internal/service/integrityservice"
	"github.com/GlebRadaev/equb/pkg/validate"
)

//go:generate mockgen -source=contributionservice.go -destination=mock_contributionservice.go -package=contributionservice

type CircleRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Circle, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Circle, error)
}

type MembershipRepo interface {
	Get(ctx context.Context, circleID, userID uuid.UUID) (*domain.Membership, error)
}

type Repo interface {
	Create(ctx context.Context, c *domain.Contribution) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contribution, error)
	FindActive(ctx context.Context, circleID, memberID uuid.UUID, round int) (*domain.Contribution, error)
	UpdateReview(ctx context.Context, c *domain.Contribution) error
	ListByCircle(ctx context.Context, circleID uuid.UUID, round int) ([]domain.Contribution, error)
}

// SubmitRequest describes one member's payment for one round.
type SubmitRequest struct {
	CircleID    uuid.UUID
	MemberID    uuid.UUID
	RoundNumber int
	Amount      decimal.Decimal
	Reference   string
}

const minReasonLength = 5

type Service struct {
	circles     CircleRepo
	memberships MembershipRepo
	repo        Repo
	txManager   pg.TXManager
	auditor     auditservice.Appender
	guard       integrityservice.Guard
	metrics     *metrics.Metrics
	now         func() time.Time
}

func New(
	circles CircleRepo,
	memberships MembershipRepo,
	repo Repo,
	txManager pg.TXManager,
	auditor auditservice.Appender,
	guard integrityservice.Guard,
	m *metrics.Metrics,
) *Service {
	return &Service{
		circles:     circles,
		memberships: memberships,
		repo:        repo,
		txManager:   txManager,
		auditor:     auditor,
		guard:       guard,
		metrics:     m,
		now:         time.Now,
	}
}

func (s *Service) refused(operation string, err error) {
	if !domain.IsRefusal(err) {
		return
	}
	s.metrics.IncRejected(operation, domain.Reason(err))
	zap.L().Info("contribution mutation refused", zap.String("operation", operation), zap.Error(err))
}

// Submit records a pending contribution for the current round.
func (s *Service) Submit(ctx context.Context, actor domain.Actor, req SubmitRequest) (contribution *domain.Contribution, err error) {
	defer func() {
		if err != nil {
			s.refused("submit", err)
		}
	}()

	if s.guard.IsDegraded() {
		return nil, domain.ErrSystemDegraded
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		circle, err := s.circles.GetForUpdate(ctx, req.CircleID)
		if err != nil {
			return err
		}
		if circle == nil {
			return domain.ErrCircleNotFound
		}
		if circle.Status != domain.CircleActive {
			return domain.ErrCircleNotActive
		}
		membership, err := s.memberships.Get(ctx, req.CircleID, req.MemberID)
		if err != nil {
			return err
		}
		if membership == nil || membership.Status != domain.MembershipConfirmed {
			return domain.ErrNotMember
		}
		if !actor.IsManager() && actor.UserID != req.MemberID {
			return domain.ErrForbidden
		}
		if req.RoundNumber != circle.CurrentRound {
			return domain.ErrRoundMismatch
		}
		if !req.Amount.Equal(circle.ContributionAmount) {
			return domain.ErrAmountMismatch
		}
		req.Reference = strings.TrimSpace(req.Reference)
		if req.Reference != "" && !validate.IsPaymentReference(req.Reference) {
			return domain.ErrInvalidReference
		}
		active, err := s.repo.FindActive(ctx, req.CircleID, req.MemberID, req.RoundNumber)
		if err != nil {
			return err
		}
		if active != nil {
			return domain.ErrDuplicateSubmission
		}

		contribution = &domain.Contribution{
			ID:          uuid.New(),
			CircleID:    req.CircleID,
			MemberID:    req.MemberID,
			RoundNumber: req.RoundNumber,
			Amount:      circle.ContributionAmount,
			Reference:   req.Reference,
			Status:      domain.ContributionPending,
			CreatedAt:   s.now().UTC(),
		}
		if err := s.repo.Create(ctx, contribution); err != nil {
			return err
		}
		return s.auditor.Append(ctx, auditservice.NewEvent(actor, domain.ActionContributionSubmitted, domain.EntityContribution, contribution.ID, &req.CircleID, map[string]any{
			"memberId":  req.MemberID,
			"round":     req.RoundNumber,
			"amount":    contribution.Amount.String(),
			"reference": contribution.Reference,
		}))
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncContribution(string(domain.ContributionPending))
	return contribution, nil
}

func (s *Service) Confirm(ctx context.Context, actor domain.Actor, contributionID uuid.UUID) (contribution *domain.Contribution, err error) {
	defer func() {
		if err != nil {
			s.refused("confirm", err)
		}
	}()
	return s.review(ctx, actor, contributionID, domain.ContributionConfirmed, "")
}

// Reject closes a pending contribution; the member may then submit again for the round.
func (s *Service) Reject(ctx context.Context, actor domain.Actor, contributionID uuid.UUID, reason string) (contribution *domain.Contribution, err error) {
	defer func() {
		if err != nil {
			s.refused("reject", err)
		}
	}()
	return s.review(ctx, actor, contributionID, domain.ContributionRejected, strings.TrimSpace(reason))
}

func (s *Service) review(ctx context.Context, actor domain.Actor, contributionID uuid.UUID, to domain.ContributionStatus, reason string) (*domain.Contribution, error) {
	if s.guard.IsDegraded() {
		return nil, domain.ErrSystemDegraded
	}
	if !actor.IsManager() {
		return nil, domain.ErrForbidden
	}
	if to == domain.ContributionRejected && utf8.RuneCountInString(reason) < minReasonLength {
		return nil, domain.ErrInvalidReason
	}

	var contribution *domain.Contribution
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		contribution, err = s.repo.GetByID(ctx, contributionID)
		if err != nil {
			return err
		}
		if contribution == nil {
			return domain.ErrContributionNotFound
		}
		circle, err := s.circles.GetForUpdate(ctx, contribution.CircleID)
		if err != nil {
			return err
		}
		if circle == nil || circle.Status != domain.CircleActive {
			return domain.ErrCircleNotActive
		}
		if contribution.Status != domain.ContributionPending {
			return domain.ErrNotPending
		}

		now := s.now().UTC()
		contribution.Status = to
		contribution.ReviewedBy = &actor.UserID
		contribution.ReviewedAt = &now
		contribution.RejectionReason = reason
		if err := s.repo.UpdateReview(ctx, contribution); err != nil {
			return err
		}

		action, payload := domain.ActionContributionConfirmed, map[string]any{
			"memberId": contribution.MemberID,
			"round":    contribution.RoundNumber,
			"amount":   contribution.Amount.String(),
		}
		if to == domain.ContributionRejected {
			action = domain.ActionContributionRejected
			payload["reason"] = reason
		}
		return s.auditor.Append(ctx, auditservice.NewEvent(actor, action, domain.EntityContribution, contribution.ID, &contribution.CircleID, payload))
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncContribution(string(to))
	return contribution, nil
}

// List returns the circle's contributions, for one round or all rounds when round is 0.
func (s *Service) List(ctx context.Context, circleID uuid.UUID, round int) ([]domain.Contribution, error) {
	circle, err := s.circles.GetByID(ctx, circleID)
	if err != nil {
		return nil, err
	}
	if circle == nil {
		return nil, domain.ErrCircleNotFound
	}
	return s.repo.ListByCircle(ctx, circleID, round)
}
