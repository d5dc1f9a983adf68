package auditrepo

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/pg"
)

// Repository is insert-only: audit events are never updated or deleted.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Append(ctx context.Context, event *domain.AuditEvent) error {
	query := `
        INSERT INTO audit_events (id, occurred_at, actor_user_id, actor_role, action_type, entity_type, entity_id, circle_id, payload)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING seq
    `
	payload := event.Payload
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}
	err := r.db.QueryRow(ctx, query,
		event.ID, event.OccurredAt, event.ActorUserID, string(event.ActorRole), event.ActionType,
		event.EntityType, event.EntityID, event.CircleID, []byte(payload),
	).Scan(&event.Seq)
	if err != nil {
		zap.L().Error("can't append audit event", zap.String("action", event.ActionType), zap.Error(err))
		return err
	}
	return nil
}

// ListPage returns up to limit events of the circle strictly after the cursor,
// ordered by occurrence time then insertion sequence.
func (r *Repository) ListPage(ctx context.Context, circleID uuid.UUID, filter domain.AuditFilter, after *domain.AuditCursor, limit int) ([]domain.AuditEvent, error) {
	var (
		where = []string{"circle_id = $1"}
		args  = []any{circleID}
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if len(filter.ActionTypes) > 0 {
		where = append(where, "action_type = ANY("+arg(filter.ActionTypes)+")")
	}
	if filter.EntityType != "" {
		where = append(where, "entity_type = "+arg(filter.EntityType))
	}
	if filter.ActorUserID != nil {
		where = append(where, "actor_user_id = "+arg(*filter.ActorUserID))
	}
	if filter.From != nil {
		where = append(where, "occurred_at >= "+arg(*filter.From))
	}
	if filter.To != nil {
		where = append(where, "occurred_at < "+arg(*filter.To))
	}
	if after != nil {
		where = append(where, "(occurred_at, seq) > ("+arg(after.OccurredAt)+", "+arg(after.Seq)+")")
	}

	query := `
        SELECT seq, id, occurred_at, actor_user_id, actor_role, action_type, entity_type, entity_id, circle_id, payload
        FROM audit_events
        WHERE ` + strings.Join(where, " AND ") + `
        ORDER BY occurred_at, seq
        LIMIT ` + arg(limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't list audit events", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var events []domain.AuditEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			zap.L().Error("can't scan audit event row", zap.Error(err))
			return nil, err
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("can't iterate audit events", zap.Error(err))
		return nil, err
	}
	return events, nil
}

func scanEvent(row pgx.Row) (*domain.AuditEvent, error) {
	var (
		event   domain.AuditEvent
		role    string
		payload []byte
	)
	err := row.Scan(
		&event.Seq, &event.ID, &event.OccurredAt, &event.ActorUserID, &role, &event.ActionType,
		&event.EntityType, &event.EntityID, &event.CircleID, &payload,
	)
	if err != nil {
		return nil, err
	}
	event.ActorRole = domain.Role(role)
	event.Payload = json.RawMessage(payload)
	return &event, nil
}
