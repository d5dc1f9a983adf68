package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/GlebRadaev/equb/internal/domain"
)

type AuditEventResponseDTO struct {
	ID          uuid.UUID       `json:"id" swaggertype:"string"`
	Seq         int64           `json:"seq" example:"42"`
	OccurredAt  string          `json:"occurredAt" example:"2024-03-01T10:00:00.123456789Z"`
	ActorUserID uuid.UUID       `json:"actorUserId" swaggertype:"string"`
	ActorRole   string          `json:"actorRole" example:"COLLECTOR"`
	ActionType  string          `json:"actionType" example:"PAYOUT_EXECUTED"`
	EntityType  string          `json:"entityType" example:"PAYOUT"`
	EntityID    uuid.UUID       `json:"entityId" swaggertype:"string"`
	CircleID    *uuid.UUID      `json:"circleId,omitempty" swaggertype:"string"`
	Payload     json.RawMessage `json:"payload" swaggertype:"object"`
}

func NewAuditEventResponse(e *domain.AuditEvent) AuditEventResponseDTO {
	return AuditEventResponseDTO{
		ID:          e.ID,
		Seq:         e.Seq,
		OccurredAt:  e.OccurredAt.Format(time.RFC3339Nano),
		ActorUserID: e.ActorUserID,
		ActorRole:   string(e.ActorRole),
		ActionType:  e.ActionType,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		CircleID:    e.CircleID,
		Payload:     e.Payload,
	}
}
