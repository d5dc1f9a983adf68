package payoutservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/metrics"
	"github.com/GlebRadaev/equb/internal/pg"
	"github.com/GlebRadaev/equb/internal/service/auditservice"
	"github.com/GlebRadaev/equb/internal/service/integrityservice"
)

//go:generate mockgen -source=payoutservice.go -destination=mock_payoutservice.go -package=payoutservice

type CircleRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Circle, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Circle, error)
	Update(ctx context.Context, circle *domain.Circle) error
}

type MembershipRepo interface {
	GetByPosition(ctx context.Context, circleID uuid.UUID, position int) (*domain.Membership, error)
	CountConfirmed(ctx context.Context, circleID uuid.UUID) (int, error)
}

type ContributionRepo interface {
	CountConfirmed(ctx context.Context, circleID uuid.UUID, round int) (int, error)
}

type Repo interface {
	Create(ctx context.Context, p *domain.Payout) error
	GetByRound(ctx context.Context, circleID uuid.UUID, round int) (*domain.Payout, error)
	MarkExecuted(ctx context.Context, payoutID, executedBy uuid.UUID, executedAt time.Time) error
	ListByCircle(ctx context.Context, circleID uuid.UUID) ([]domain.Payout, error)
}

type Service struct {
	circles       CircleRepo
	memberships   MembershipRepo
	contributions ContributionRepo
	repo          Repo
	txManager     pg.TXManager
	auditor       auditservice.Appender
	guard         integrityservice.Guard
	metrics       *metrics.Metrics
	now           func() time.Time
}

func New(
	circles CircleRepo,
	memberships MembershipRepo,
	contributions ContributionRepo,
	repo Repo,
	txManager pg.TXManager,
	auditor auditservice.Appender,
	guard integrityservice.Guard,
	m *metrics.Metrics,
) *Service {
	return &Service{
		circles:       circles,
		memberships:   memberships,
		contributions: contributions,
		repo:          repo,
		txManager:     txManager,
		auditor:       auditor,
		guard:         guard,
		metrics:       m,
		now:           time.Now,
	}
}

func (s *Service) refused(operation string, circleID uuid.UUID, err error) {
	if !domain.IsRefusal(err) {
		return
	}
	s.metrics.IncRejected(operation, domain.Reason(err))
	zap.L().Info("payout mutation refused",
		zap.String("operation", operation),
		zap.String("circle_id", circleID.String()),
		zap.Error(err),
	)
}

// Eligibility reports whether the current round can be paid out. It takes no locks.
func (s *Service) Eligibility(ctx context.Context, circleID uuid.UUID) (*domain.Eligibility, error) {
	circle, err := s.circles.GetByID(ctx, circleID)
	if err != nil {
		return nil, err
	}
	if circle == nil {
		return nil, domain.ErrCircleNotFound
	}
	memberCount, err := s.memberships.CountConfirmed(ctx, circleID)
	if err != nil {
		return nil, err
	}

	result := &domain.Eligibility{
		Summary: domain.EligibilitySummary{
			Round:          circle.CurrentRound,
			ExpectedAmount: circle.PotAmount(memberCount),
			MemberCount:    memberCount,
		},
	}
	var payout *domain.Payout
	if circle.CurrentRound > 0 {
		if result.Summary.ConfirmedCount, err = s.contributions.CountConfirmed(ctx, circleID, circle.CurrentRound); err != nil {
			return nil, err
		}
		if payout, err = s.repo.GetByRound(ctx, circleID, circle.CurrentRound); err != nil {
			return nil, err
		}
	}
	if payout != nil {
		result.Summary.NextRecipient = &payout.RecipientUserID
	}

	var (
		reasons   []string
		blocked   bool
		confirmed = result.Summary.ConfirmedCount
	)
	if s.guard.IsDegraded() {
		blocked, reasons = true, append(reasons, domain.ErrSystemDegraded.Error())
	}
	if circle.Status != domain.CircleActive {
		blocked, reasons = true, append(reasons, domain.ErrCircleNotActive.Error())
	}
	if payout != nil && payout.Status == domain.PayoutExecuted {
		blocked, reasons = true, append(reasons, domain.ErrAlreadyExecuted.Error())
	}
	if confirmed < memberCount {
		reasons = append(reasons, domain.ErrInsufficientFunding.Error())
		if confirmed == 0 {
			blocked = true
		}
	}

	switch {
	case blocked:
		result.Status = domain.EligibilityBlocked
	case confirmed < memberCount:
		result.Status = domain.EligibilityWarning
	default:
		result.Status = domain.EligibilityReady
		result.CanExecute = true
	}
	result.Reasons = reasons
	return result, nil
}

// Execute pays out the current round exactly once. round pins the request to a
// specific round; 0 means whatever round is current.
func (s *Service) Execute(ctx context.Context, actor domain.Actor, circleID uuid.UUID, round int, acknowledged bool) (payout *domain.Payout, err error) {
	defer func() {
		if err != nil {
			s.refused("execute", circleID, err)
		}
	}()

	if !acknowledged {
		return nil, domain.ErrNotAcknowledged
	}
	if !actor.IsManager() {
		return nil, domain.ErrForbidden
	}
	if s.guard.IsDegraded() {
		return nil, domain.ErrSystemDegraded
	}

	var circle *domain.Circle
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		circle, err = s.lockActive(ctx, circleID)
		if err != nil {
			return err
		}
		if round != 0 && round != circle.CurrentRound {
			return s.staleRound(ctx, circle, round)
		}

		payout, err = s.repo.GetByRound(ctx, circleID, circle.CurrentRound)
		if err != nil {
			return err
		}
		if payout == nil {
			return domain.ErrPayoutNotFound
		}
		if payout.Status == domain.PayoutExecuted {
			return domain.ErrAlreadyExecuted
		}
		memberCount, err := s.memberships.CountConfirmed(ctx, circleID)
		if err != nil {
			return err
		}
		confirmed, err := s.contributions.CountConfirmed(ctx, circleID, circle.CurrentRound)
		if err != nil {
			return err
		}
		if memberCount == 0 || confirmed != memberCount {
			return domain.ErrInsufficientFunding
		}

		now := s.now().UTC()
		if err := s.repo.MarkExecuted(ctx, payout.ID, actor.UserID, now); err != nil {
			return err
		}
		payout.Status = domain.PayoutExecuted
		payout.ExecutedAt = &now
		payout.ExecutedBy = &actor.UserID
		return s.auditor.Append(ctx, auditservice.NewEvent(actor, domain.ActionPayoutExecuted, domain.EntityPayout, payout.ID, &circleID, map[string]any{
			"round":     payout.RoundNumber,
			"recipient": payout.RecipientUserID,
			"amount":    payout.Amount.String(),
			"currency":  circle.Currency,
		}))
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObservePayout(circle.Currency, payout.Amount.InexactFloat64())
	zap.L().Info("payout executed",
		zap.String("circle_id", circleID.String()),
		zap.Int("round", payout.RoundNumber),
		zap.String("amount", payout.Amount.String()),
	)
	return payout, nil
}

// staleRound explains why a pinned round is not the current one: a retry of an
// already paid round is a conflict, anything else is a mismatch.
func (s *Service) staleRound(ctx context.Context, circle *domain.Circle, round int) error {
	if round < 1 || round > circle.CurrentRound {
		return domain.ErrRoundMismatch
	}
	paid, err := s.repo.GetByRound(ctx, circle.ID, round)
	if err != nil {
		return err
	}
	if paid != nil && paid.Status == domain.PayoutExecuted {
		return domain.ErrAlreadyExecuted
	}
	return domain.ErrRoundMismatch
}

// AdvanceRound moves a circle whose current round is paid to the next round and opens its payout.
func (s *Service) AdvanceRound(ctx context.Context, actor domain.Actor, circleID uuid.UUID) (circle *domain.Circle, err error) {
	defer func() {
		if err != nil {
			s.refused("advance_round", circleID, err)
		}
	}()

	if !actor.IsManager() {
		return nil, domain.ErrForbidden
	}
	if s.guard.IsDegraded() {
		return nil, domain.ErrSystemDegraded
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		circle, err = s.lockActive(ctx, circleID)
		if err != nil {
			return err
		}
		if err := s.requireExecuted(ctx, circle); err != nil {
			return err
		}
		if circle.CurrentRound >= circle.TotalRounds {
			return domain.ErrAlreadyLastRound
		}

		next := circle.CurrentRound + 1
		recipient, err := s.memberships.GetByPosition(ctx, circleID, next)
		if err != nil {
			return err
		}
		if recipient == nil {
			return domain.ErrMemberNotFound
		}
		memberCount, err := s.memberships.CountConfirmed(ctx, circleID)
		if err != nil {
			return err
		}
		payout := &domain.Payout{
			ID:              uuid.New(),
			CircleID:        circleID,
			RecipientUserID: recipient.UserID,
			RoundNumber:     next,
			Amount:          circle.PotAmount(memberCount),
			Status:          domain.PayoutPending,
			ScheduledDate:   circle.ScheduledDate(next),
		}
		if err := s.repo.Create(ctx, payout); err != nil {
			return err
		}
		circle.CurrentRound = next
		if err := s.circles.Update(ctx, circle); err != nil {
			return err
		}
		return s.auditor.Append(ctx, auditservice.NewEvent(actor, domain.ActionRoundAdvanced, domain.EntityCircle, circleID, &circleID, map[string]any{
			"from":      next - 1,
			"to":        next,
			"recipient": recipient.UserID,
		}))
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncRoundAdvanced()
	zap.L().Info("round advanced", zap.String("circle_id", circleID.String()), zap.Int("round", circle.CurrentRound))
	return circle, nil
}

// Complete closes a circle once its final round is paid. COMPLETED is terminal.
func (s *Service) Complete(ctx context.Context, actor domain.Actor, circleID uuid.UUID) (circle *domain.Circle, err error) {
	defer func() {
		if err != nil {
			s.refused("complete", circleID, err)
		}
	}()

	if !actor.IsManager() {
		return nil, domain.ErrForbidden
	}
	if s.guard.IsDegraded() {
		return nil, domain.ErrSystemDegraded
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		circle, err = s.lockActive(ctx, circleID)
		if err != nil {
			return err
		}
		if circle.CurrentRound != circle.TotalRounds {
			return domain.ErrNotFinalRound
		}
		if err := s.requireExecuted(ctx, circle); err != nil {
			return err
		}
		circle.Status = domain.CircleCompleted
		if err := s.circles.Update(ctx, circle); err != nil {
			return err
		}
		return s.auditor.Append(ctx, auditservice.NewEvent(actor, domain.ActionEqubCompleted, domain.EntityCircle, circleID, &circleID, map[string]any{
			"rounds": circle.TotalRounds,
		}))
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("circle completed", zap.String("circle_id", circleID.String()))
	return circle, nil
}

func (s *Service) ListPayouts(ctx context.Context, circleID uuid.UUID) ([]domain.Payout, error) {
	circle, err := s.circles.GetByID(ctx, circleID)
	if err != nil {
		return nil, err
	}
	if circle == nil {
		return nil, domain.ErrCircleNotFound
	}
	return s.repo.ListByCircle(ctx, circleID)
}

func (s *Service) lockActive(ctx context.Context, circleID uuid.UUID) (*domain.Circle, error) {
	circle, err := s.circles.GetForUpdate(ctx, circleID)
	if err != nil {
		return nil, err
	}
	if circle == nil {
		return nil, domain.ErrCircleNotFound
	}
	if circle.Status != domain.CircleActive {
		return nil, domain.ErrCircleNotActive
	}
	return circle, nil
}

func (s *Service) requireExecuted(ctx context.Context, circle *domain.Circle) error {
	payout, err := s.repo.GetByRound(ctx, circle.ID, circle.CurrentRound)
	if err != nil {
		return err
	}
	if payout == nil || payout.Status != domain.PayoutExecuted {
		return domain.ErrPayoutNotExecuted
	}
	return nil
}
