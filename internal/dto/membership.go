package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/GlebRadaev/equb/internal/domain"
)

type AddMemberRequestDTO struct {
	UserID uuid.UUID `json:"userId" swaggertype:"string" example:"0f8fad5b-d9cb-469f-a165-70867728950e"`
}

type MembershipResponseDTO struct {
	ID             uuid.UUID `json:"id" swaggertype:"string"`
	CircleID       uuid.UUID `json:"circleId" swaggertype:"string"`
	UserID         uuid.UUID `json:"userId" swaggertype:"string"`
	Role           string    `json:"role" example:"MEMBER"`
	Status         string    `json:"status" example:"CONFIRMED"`
	PayoutPosition *int      `json:"payoutPosition,omitempty" example:"1"`
	JoinedAt       string    `json:"joinedAt" example:"2024-03-01T10:00:00Z"`
	RemovedAt      string    `json:"removedAt,omitempty"`
}

func NewMembershipResponse(m *domain.Membership) MembershipResponseDTO {
	return MembershipResponseDTO{
		ID:             m.ID,
		CircleID:       m.CircleID,
		UserID:         m.UserID,
		Role:           string(m.Role),
		Status:         string(m.Status),
		PayoutPosition: m.PayoutPosition,
		JoinedAt:       m.JoinedAt.Format(time.RFC3339),
		RemovedAt:      formatTime(m.RemovedAt),
	}
}
