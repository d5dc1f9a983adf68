package membershipservice

import (
	"context"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/metrics"
	"github.com/GlebRadaev/equb/internal/pg"
	"github.com/GlebRadaev/equb/internal/service/auditservice"
	"github.com/GlebRadaev/equb/internal/service/integrityservice"
)

//go:generate mockgen -source=membershipservice.go -destination=mock_membershipservice.go -package=membershipservice

type CircleRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Circle, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Circle, error)
	Update(ctx context.Context, circle *domain.Circle) error
}

type Repo interface {
	Create(ctx context.Context, m *domain.Membership) error
	Get(ctx context.Context, circleID, userID uuid.UUID) (*domain.Membership, error)
	UpdateStatus(ctx context.Context, m *domain.Membership) error
	SetPayoutPosition(ctx context.Context, membershipID uuid.UUID, position int) error
	CountConfirmed(ctx context.Context, circleID uuid.UUID) (int, error)
	ListByCircle(ctx context.Context, circleID uuid.UUID) ([]domain.Membership, error)
}

type PayoutRepo interface {
	Create(ctx context.Context, p *domain.Payout) error
}

type Service struct {
	circles   CircleRepo
	repo      Repo
	payouts   PayoutRepo
	txManager pg.TXManager
	auditor   auditservice.Appender
	guard     integrityservice.Guard
	metrics   *metrics.Metrics
	now       func() time.Time
	shuffle   func(n int, swap func(i, j int))
}

func New(
	circles CircleRepo,
	repo Repo,
	payouts PayoutRepo,
	txManager pg.TXManager,
	auditor auditservice.Appender,
	guard integrityservice.Guard,
	m *metrics.Metrics,
) *Service {
	return &Service{
		circles:   circles,
		repo:      repo,
		payouts:   payouts,
		txManager: txManager,
		auditor:   auditor,
		guard:     guard,
		metrics:   m,
		now:       time.Now,
		shuffle:   rand.Shuffle,
	}
}

// lockDraft locks the circle row and checks that its roster can still change.
func (s *Service) lockDraft(ctx context.Context, circleID uuid.UUID) (*domain.Circle, error) {
	circle, err := s.circles.GetForUpdate(ctx, circleID)
	if err != nil {
		return nil, err
	}
	switch {
	case circle == nil:
		return nil, domain.ErrCircleNotFound
	case circle.Status.Closed():
		return nil, domain.ErrCircleNotActive
	case circle.Status != domain.CircleDraft:
		return nil, domain.ErrCircleNotDraft
	}
	return circle, nil
}

// RequestJoin files a pending membership for the actor. A removed member may ask again.
func (s *Service) RequestJoin(ctx context.Context, actor domain.Actor, circleID uuid.UUID) (*domain.Membership, error) {
	var membership *domain.Membership
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.lockDraft(ctx, circleID); err != nil {
			return err
		}
		existing, err := s.repo.Get(ctx, circleID, actor.UserID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		switch {
		case existing == nil:
			membership = &domain.Membership{
				ID:       uuid.New(),
				CircleID: circleID,
				UserID:   actor.UserID,
				Role:     domain.MembershipMember,
				Status:   domain.MembershipPending,
				JoinedAt: now,
			}
			err = s.repo.Create(ctx, membership)
		case existing.Status == domain.MembershipRemoved:
			membership = existing
			membership.Status = domain.MembershipPending
			membership.JoinedAt = now
			membership.RemovedAt = nil
			err = s.repo.UpdateStatus(ctx, membership)
		default:
			return domain.ErrDuplicateMember
		}
		if err != nil {
			return err
		}
		return s.auditor.Append(ctx, auditservice.NewEvent(actor, domain.ActionMemberJoinRequested, domain.EntityMembership, membership.ID, &circleID, map[string]any{
			"userId": actor.UserID,
		}))
	})
	if err != nil {
		zap.L().Info("join request refused", zap.String("circle_id", circleID.String()), zap.Error(err))
		return nil, err
	}
	return membership, nil
}

// AddMember confirms userID into the circle, accepting a pending request if there is one.
func (s *Service) AddMember(ctx context.Context, actor domain.Actor, circleID, userID uuid.UUID) (*domain.Membership, error) {
	if !actor.IsManager() {
		return nil, domain.ErrForbidden
	}

	var membership *domain.Membership
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		circle, err := s.lockDraft(ctx, circleID)
		if err != nil {
			return err
		}
		confirmed, err := s.repo.CountConfirmed(ctx, circleID)
		if err != nil {
			return err
		}
		if confirmed >= circle.TotalRounds {
			return domain.ErrCapacityExceeded
		}
		existing, err := s.repo.Get(ctx, circleID, userID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		switch {
		case existing == nil:
			membership = &domain.Membership{
				ID:       uuid.New(),
				CircleID: circleID,
				UserID:   userID,
				Role:     domain.MembershipMember,
				Status:   domain.MembershipConfirmed,
				JoinedAt: now,
			}
			err = s.repo.Create(ctx, membership)
		case existing.Status == domain.MembershipConfirmed:
			return domain.ErrDuplicateMember
		default:
			membership = existing
			if membership.Status == domain.MembershipRemoved {
				membership.JoinedAt = now
			}
			membership.Status = domain.MembershipConfirmed
			membership.RemovedAt = nil
			err = s.repo.UpdateStatus(ctx, membership)
		}
		if err != nil {
			return err
		}
		return s.auditor.Append(ctx, auditservice.NewEvent(actor, domain.ActionMemberAdded, domain.EntityMembership, membership.ID, &circleID, map[string]any{
			"userId":         userID,
			"confirmedCount": confirmed + 1,
		}))
	})
	if err != nil {
		zap.L().Info("add member refused", zap.String("circle_id", circleID.String()), zap.Error(err))
		return nil, err
	}
	return membership, nil
}

func (s *Service) RemoveMember(ctx context.Context, actor domain.Actor, circleID, userID uuid.UUID) (*domain.Membership, error) {
	if !actor.IsManager() {
		return nil, domain.ErrForbidden
	}

	var membership *domain.Membership
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.lockDraft(ctx, circleID); err != nil {
			return err
		}
		var err error
		membership, err = s.repo.Get(ctx, circleID, userID)
		if err != nil {
			return err
		}
		if membership == nil || membership.Status == domain.MembershipRemoved {
			return domain.ErrMemberNotFound
		}

		from := membership.Status
		now := s.now().UTC()
		membership.Status = domain.MembershipRemoved
		membership.RemovedAt = &now
		if err := s.repo.UpdateStatus(ctx, membership); err != nil {
			return err
		}
		return s.auditor.Append(ctx, auditservice.NewEvent(actor, domain.ActionMemberRemoved, domain.EntityMembership, membership.ID, &circleID, map[string]any{
			"userId": userID,
			"from":   from,
		}))
	})
	if err != nil {
		zap.L().Info("remove member refused", zap.String("circle_id", circleID.String()), zap.Error(err))
		return nil, err
	}
	return membership, nil
}

func (s *Service) ListMembers(ctx context.Context, circleID uuid.UUID) ([]domain.Membership, error) {
	circle, err := s.circles.GetByID(ctx, circleID)
	if err != nil {
		return nil, err
	}
	if circle == nil {
		return nil, domain.ErrCircleNotFound
	}
	return s.repo.ListByCircle(ctx, circleID)
}

// Activate freezes the roster, fixes the payout order and opens round 1. It cannot be undone.
func (s *Service) Activate(ctx context.Context, actor domain.Actor, circleID uuid.UUID) (circle *domain.Circle, err error) {
	defer func() {
		if err != nil {
			s.metrics.IncRejected("activate", domain.Reason(err))
			zap.L().Info("activation refused", zap.String("circle_id", circleID.String()), zap.Error(err))
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
		circle, err = s.lockDraft(ctx, circleID)
		if err != nil {
			return err
		}
		members, err := s.confirmedMembers(ctx, circleID)
		if err != nil {
			return err
		}
		if len(members) != circle.TotalRounds {
			return domain.ErrIncompleteRoster
		}

		if circle.PayoutOrderType == domain.PayoutOrderRandom {
			s.shuffle(len(members), func(i, j int) { members[i], members[j] = members[j], members[i] })
		}
		order := make([]uuid.UUID, len(members))
		for i, m := range members {
			if err := s.repo.SetPayoutPosition(ctx, m.ID, i+1); err != nil {
				return err
			}
			order[i] = m.UserID
		}

		now := s.now().UTC()
		circle.Status = domain.CircleActive
		circle.CurrentRound = 1
		circle.ActivatedAt = &now
		payout := &domain.Payout{
			ID:              uuid.New(),
			CircleID:        circle.ID,
			RecipientUserID: order[0],
			RoundNumber:     1,
			Amount:          circle.PotAmount(len(members)),
			Status:          domain.PayoutPending,
			ScheduledDate:   circle.ScheduledDate(1),
		}
		if err := s.payouts.Create(ctx, payout); err != nil {
			return err
		}
		if err := s.circles.Update(ctx, circle); err != nil {
			return err
		}
		return s.auditor.Append(ctx, auditservice.NewEvent(actor, domain.ActionEqubActivated, domain.EntityCircle, circle.ID, &circle.ID, map[string]any{
			"payoutOrderType": circle.PayoutOrderType,
			"payoutOrder":     order,
			"round":           1,
			"recipient":       order[0],
		}))
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("circle activated", zap.String("circle_id", circleID.String()), zap.Int("members", circle.TotalRounds))
	return circle, nil
}

// confirmedMembers returns confirmed memberships in join order.
func (s *Service) confirmedMembers(ctx context.Context, circleID uuid.UUID) ([]domain.Membership, error) {
	all, err := s.repo.ListByCircle(ctx, circleID)
	if err != nil {
		return nil, err
	}
	members := make([]domain.Membership, 0, len(all))
	for _, m := range all {
		if m.Status == domain.MembershipConfirmed {
			members = append(members, m)
		}
	}
	slices.SortStableFunc(members, func(a, b domain.Membership) int {
		return a.JoinedAt.Compare(b.JoinedAt)
	})
	return members, nil
}
