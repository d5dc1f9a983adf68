package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/equb/internal/domain"
)

// SubmitContributionRequestDTO submits for the caller unless memberId names another member.
type SubmitContributionRequestDTO struct {
	MemberID    *uuid.UUID      `json:"memberId,omitempty" swaggertype:"string"`
	RoundNumber int             `json:"roundNumber" example:"1"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"100.00"`
	Reference   string          `json:"reference,omitempty" example:"79927398713"`
}

type RejectContributionRequestDTO struct {
	Reason string `json:"reason" example:"receipt does not match"`
}

type ContributionResponseDTO struct {
	ID              uuid.UUID       `json:"id" swaggertype:"string"`
	CircleID        uuid.UUID       `json:"circleId" swaggertype:"string"`
	MemberID        uuid.UUID       `json:"memberId" swaggertype:"string"`
	RoundNumber     int             `json:"roundNumber" example:"1"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string" example:"100.00"`
	Reference       string          `json:"reference,omitempty" example:"79927398713"`
	Status          string          `json:"status" example:"PENDING"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	ReviewedBy      *uuid.UUID      `json:"reviewedBy,omitempty" swaggertype:"string"`
	ReviewedAt      string          `json:"reviewedAt,omitempty"`
	CreatedAt       string          `json:"createdAt" example:"2024-03-01T10:00:00Z"`
}

func NewContributionResponse(c *domain.Contribution) ContributionResponseDTO {
	return ContributionResponseDTO{
		ID:              c.ID,
		CircleID:        c.CircleID,
		MemberID:        c.MemberID,
		RoundNumber:     c.RoundNumber,
		Amount:          c.Amount,
		Reference:       c.Reference,
		Status:          string(c.Status),
		RejectionReason: c.RejectionReason,
		ReviewedBy:      c.ReviewedBy,
		ReviewedAt:      formatTime(c.ReviewedAt),
		CreatedAt:       c.CreatedAt.Format(time.RFC3339),
	}
}
