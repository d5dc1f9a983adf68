package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/equb/internal/domain"
)

type CreateCircleRequestDTO struct {
	Name               string          `json:"name" example:"Office equb"`
	ContributionAmount decimal.Decimal `json:"contributionAmount" swaggertype:"string" example:"100.00"`
	Currency           string          `json:"currency" example:"ETB"`
	CycleLengthDays    int             `json:"cycleLengthDays" example:"30"`
	TotalRounds        int             `json:"totalRounds" example:"3"`
	PayoutOrderType    string          `json:"payoutOrderType" example:"FIXED"`
}

type CircleResponseDTO struct {
	ID                 uuid.UUID       `json:"id" swaggertype:"string" example:"5b4d4a4e-8f53-4c3a-9a53-0b4b0a7f4a11"`
	Name               string          `json:"name" example:"Office equb"`
	ContributionAmount decimal.Decimal `json:"contributionAmount" swaggertype:"string" example:"100.00"`
	Currency           string          `json:"currency" example:"ETB"`
	CycleLengthDays    int             `json:"cycleLengthDays" example:"30"`
	TotalRounds        int             `json:"totalRounds" example:"3"`
	CurrentRound       int             `json:"currentRound" example:"1"`
	PayoutOrderType    string          `json:"payoutOrderType" example:"FIXED"`
	Status             string          `json:"status" example:"ACTIVE"`
	CreatedByUserID    uuid.UUID       `json:"createdByUserId" swaggertype:"string"`
	Version            int             `json:"version" example:"2"`
	CreatedAt          string          `json:"createdAt" example:"2024-03-01T10:00:00Z"`
	ActivatedAt        string          `json:"activatedAt,omitempty" example:"2024-03-02T10:00:00Z"`
}

func NewCircleResponse(c *domain.Circle) CircleResponseDTO {
	return CircleResponseDTO{
		ID:                 c.ID,
		Name:               c.Name,
		ContributionAmount: c.ContributionAmount,
		Currency:           c.Currency,
		CycleLengthDays:    c.CycleLengthDays,
		TotalRounds:        c.TotalRounds,
		CurrentRound:       c.CurrentRound,
		PayoutOrderType:    string(c.PayoutOrderType),
		Status:             string(c.Status),
		CreatedByUserID:    c.CreatedByUserID,
		Version:            c.Version,
		CreatedAt:          c.CreatedAt.Format(time.RFC3339),
		ActivatedAt:        formatTime(c.ActivatedAt),
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
