package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GlebRadaev/equb/internal/domain"
)

type ExecutePayoutRequestDTO struct {
	Round        int  `json:"round,omitempty" example:"1"`
	Acknowledged bool `json:"acknowledged" example:"true"`
}

type PayoutResponseDTO struct {
	ID              uuid.UUID       `json:"id" swaggertype:"string"`
	CircleID        uuid.UUID       `json:"circleId" swaggertype:"string"`
	RecipientUserID uuid.UUID       `json:"recipientUserId" swaggertype:"string"`
	RoundNumber     int             `json:"roundNumber" example:"1"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string" example:"300.00"`
	Status          string          `json:"status" example:"EXECUTED"`
	ScheduledDate   string          `json:"scheduledDate" example:"2024-04-01T10:00:00Z"`
	ExecutedAt      string          `json:"executedAt,omitempty"`
	ExecutedBy      *uuid.UUID      `json:"executedBy,omitempty" swaggertype:"string"`
}

func NewPayoutResponse(p *domain.Payout) PayoutResponseDTO {
	return PayoutResponseDTO{
		ID:              p.ID,
		CircleID:        p.CircleID,
		RecipientUserID: p.RecipientUserID,
		RoundNumber:     p.RoundNumber,
		Amount:          p.Amount,
		Status:          string(p.Status),
		ScheduledDate:   p.ScheduledDate.Format(time.RFC3339),
		ExecutedAt:      formatTime(p.ExecutedAt),
		ExecutedBy:      p.ExecutedBy,
	}
}

type EligibilitySummaryDTO struct {
	Round          int             `json:"round" example:"1"`
	ExpectedAmount decimal.Decimal `json:"expectedAmount" swaggertype:"string" example:"300.00"`
	MemberCount    int             `json:"memberCount" example:"3"`
	ConfirmedCount int             `json:"confirmedCount" example:"3"`
	NextRecipient  *uuid.UUID      `json:"nextRecipient,omitempty" swaggertype:"string"`
}

type EligibilityResponseDTO struct {
	CanExecute bool                  `json:"canExecute" example:"true"`
	Status     string                `json:"status" example:"READY"`
	Reasons    []string              `json:"reasons"`
	Summary    EligibilitySummaryDTO `json:"summary"`
}

func NewEligibilityResponse(e *domain.Eligibility) EligibilityResponseDTO {
	reasons := e.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return EligibilityResponseDTO{
		CanExecute: e.CanExecute,
		Status:     string(e.Status),
		Reasons:    reasons,
		Summary: EligibilitySummaryDTO{
			Round:          e.Summary.Round,
			ExpectedAmount: e.Summary.ExpectedAmount,
			MemberCount:    e.Summary.MemberCount,
			ConfirmedCount: e.Summary.ConfirmedCount,
			NextRecipient:  e.Summary.NextRecipient,
		},
	}
}
