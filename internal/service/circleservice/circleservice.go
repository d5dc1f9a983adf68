package circleservice

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/pg"
	"github.com/GlebRadaev/equb/internal/service/auditservice"
)

//go:generate mockgen -source=circleservice.go -destination=mock_circleservice.go -package=circleservice

type Repo interface {
	Create(ctx context.Context, circle *domain.Circle) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Circle, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Circle, error)
	List(ctx context.Context, status *domain.CircleStatus) ([]domain.Circle, error)
	Update(ctx context.Context, circle *domain.Circle) error
}

type CreateParams struct {
	Name               string
	ContributionAmount decimal.Decimal
	Currency           string
	CycleLengthDays    int
	TotalRounds        int
	PayoutOrderType    domain.PayoutOrderType
}

const (
	maxNameLength = 120
	maxRounds     = 1000
	maxCycleDays  = 366
)

// Amounts are stored as NUMERIC(18,2), so a round's pot must stay below 10^16.
var maxPot = decimal.New(1, 16)

type Service struct {
	repo      Repo
	txManager pg.TXManager
	auditor   auditservice.Appender
	now       func() time.Time
}

func New(repo Repo, txManager pg.TXManager, auditor auditservice.Appender) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		auditor:   auditor,
		now:       time.Now,
	}
}

func (p *CreateParams) validate() bool {
	p.Name = strings.TrimSpace(p.Name)
	if p.PayoutOrderType == "" {
		p.PayoutOrderType = domain.PayoutOrderFixed
	}
	switch {
	case p.Name == "" || utf8.RuneCountInString(p.Name) > maxNameLength:
		return false
	case !p.ContributionAmount.IsPositive() || !p.ContributionAmount.Equal(p.ContributionAmount.Round(2)):
		return false
	case !isCurrencyCode(p.Currency):
		return false
	case p.CycleLengthDays < 1 || p.CycleLengthDays > maxCycleDays:
		return false
	case p.TotalRounds < 2 || p.TotalRounds > maxRounds:
		return false
	case p.ContributionAmount.Mul(decimal.NewFromInt(int64(p.TotalRounds))).GreaterThanOrEqual(maxPot):
		return false
	case p.PayoutOrderType != domain.PayoutOrderFixed && p.PayoutOrderType != domain.PayoutOrderRandom:
		return false
	}
	return true
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func (s *Service) Create(ctx context.Context, actor domain.Actor, params CreateParams) (*domain.Circle, error) {
	if !actor.IsManager() {
		return nil, domain.ErrForbidden
	}
	if !params.validate() {
		zap.L().Info("invalid circle parameters", zap.String("name", params.Name))
		return nil, domain.ErrInvalidCircle
	}

	circle := &domain.Circle{
		ID:                 uuid.New(),
		Name:               params.Name,
		ContributionAmount: params.ContributionAmount,
		Currency:           params.Currency,
		CycleLengthDays:    params.CycleLengthDays,
		TotalRounds:        params.TotalRounds,
		PayoutOrderType:    params.PayoutOrderType,
		Status:             domain.CircleDraft,
		CreatedByUserID:    actor.UserID,
		CreatedAt:          s.now().UTC(),
	}
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, circle); err != nil {
			return err
		}
		return s.auditor.Append(ctx, auditservice.NewEvent(actor, domain.ActionEqubCreated, domain.EntityCircle, circle.ID, &circle.ID, map[string]any{
			"name":               circle.Name,
			"contributionAmount": circle.ContributionAmount.String(),
			"currency":           circle.Currency,
			"totalRounds":        circle.TotalRounds,
			"payoutOrderType":    circle.PayoutOrderType,
		}))
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("circle created", zap.String("circle_id", circle.ID.String()))
	return circle, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Circle, error) {
	circle, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if circle == nil {
		return nil, domain.ErrCircleNotFound
	}
	return circle, nil
}

func (s *Service) List(ctx context.Context, status *domain.CircleStatus) ([]domain.Circle, error) {
	return s.repo.List(ctx, status)
}

// Hold pauses an active circle. Pending contributions stay as they are.
func (s *Service) Hold(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Circle, error) {
	return s.transition(ctx, actor, id, domain.CircleOnHold, domain.ActionEqubOnHold, func(c *domain.Circle) error {
		if c.Status != domain.CircleActive {
			return domain.ErrCircleNotActive
		}
		return nil
	})
}

func (s *Service) Resume(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Circle, error) {
	return s.transition(ctx, actor, id, domain.CircleActive, domain.ActionEqubResumed, func(c *domain.Circle) error {
		if c.Status.Closed() {
			return domain.ErrCircleNotActive
		}
		if c.Status != domain.CircleOnHold {
			return domain.ErrCircleNotOnHold
		}
		return nil
	})
}

// Terminate ends a circle that has not completed. It is terminal.
func (s *Service) Terminate(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Circle, error) {
	return s.transition(ctx, actor, id, domain.CircleTerminated, domain.ActionEqubTerminated, func(c *domain.Circle) error {
		if c.Status.Closed() {
			return domain.ErrCircleNotActive
		}
		return nil
	})
}

func (s *Service) transition(ctx context.Context, actor domain.Actor, id uuid.UUID, to domain.CircleStatus, action string, allowed func(*domain.Circle) error) (*domain.Circle, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	var circle *domain.Circle
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		circle, err = s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if circle == nil {
			return domain.ErrCircleNotFound
		}
		if err := allowed(circle); err != nil {
			return err
		}

		from := circle.Status
		circle.Status = to
		if err := s.repo.Update(ctx, circle); err != nil {
			return err
		}
		return s.auditor.Append(ctx, auditservice.NewEvent(actor, action, domain.EntityCircle, circle.ID, &circle.ID, map[string]any{
			"from": from,
			"to":   to,
		}))
	})
	if err != nil {
		zap.L().Info("circle transition refused", zap.String("circle_id", id.String()), zap.String("to", string(to)), zap.Error(err))
		return nil, err
	}
	return circle, nil
}
