package auditservice

import (
	"context"
	"encoding/json"
	"iter"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/equb/internal/domain"
)

//go:generate mockgen -source=auditservice.go -destination=mock_auditservice.go -package=auditservice

type Repo interface {
	Append(ctx context.Context, event *domain.AuditEvent) error
	ListPage(ctx context.Context, circleID uuid.UUID, filter domain.AuditFilter, after *domain.AuditCursor, limit int) ([]domain.AuditEvent, error)
}

type CircleRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Circle, error)
}

// Appender is the write-once capability handed to ledger services.
type Appender interface {
	Append(ctx context.Context, event *domain.AuditEvent) error
}

type Service struct {
	repo     Repo
	circles  CircleRepo
	pageSize int
	now      func() time.Time
}

func New(repo Repo, circles CircleRepo, pageSize int) *Service {
	return &Service{
		repo:     repo,
		circles:  circles,
		pageSize: pageSize,
		now:      time.Now,
	}
}

// NewEvent builds an event for the actor. The payload is marshalled to JSON.
func NewEvent(actor domain.Actor, action, entityType string, entityID uuid.UUID, circleID *uuid.UUID, payload map[string]any) *domain.AuditEvent {
	raw, err := json.Marshal(payload)
	if err != nil || payload == nil {
		if err != nil {
			zap.L().Error("can't marshal audit payload", zap.String("action", action), zap.Error(err))
		}
		raw = json.RawMessage(`{}`)
	}
	return &domain.AuditEvent{
		ActorUserID: actor.UserID,
		ActorRole:   actor.Role,
		ActionType:  action,
		EntityType:  entityType,
		EntityID:    entityID,
		CircleID:    circleID,
		Payload:     raw,
	}
}

// Append stores the event. Storage errors are returned as-is; nothing is dropped silently.
func (s *Service) Append(ctx context.Context, event *domain.AuditEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	return s.repo.Append(ctx, event)
}

// Timeline yields the circle's events in (timestamp, insertion) order. Pages are fetched lazily;
// ranging over the sequence again restarts from the first event. The first error ends the sequence,
// and an unknown circle fails before any page is read.
func (s *Service) Timeline(ctx context.Context, circleID uuid.UUID, filter domain.AuditFilter) iter.Seq2[domain.AuditEvent, error] {
	return func(yield func(domain.AuditEvent, error) bool) {
		circle, err := s.circles.GetByID(ctx, circleID)
		if err == nil && circle == nil {
			err = domain.ErrCircleNotFound
		}
		if err != nil {
			yield(domain.AuditEvent{}, err)
			return
		}

		var (
			cursor  *domain.AuditCursor
			emitted int
		)
		for {
			limit := s.pageSize
			if filter.Limit > 0 && filter.Limit-emitted < limit {
				limit = filter.Limit - emitted
			}
			if limit <= 0 {
				return
			}

			page, err := s.repo.ListPage(ctx, circleID, filter, cursor, limit)
			if err != nil {
				zap.L().Error("can't read audit timeline", zap.String("circle_id", circleID.String()), zap.Error(err))
				yield(domain.AuditEvent{}, err)
				return
			}
			for _, event := range page {
				if !yield(event, nil) {
					return
				}
				emitted++
			}
			if len(page) < limit {
				return
			}
			last := page[len(page)-1]
			cursor = &domain.AuditCursor{OccurredAt: last.OccurredAt, Seq: last.Seq}
		}
	}
}
