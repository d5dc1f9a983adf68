package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/GlebRadaev/equb/internal/domain"
)

type IntegrityReportResponseDTO struct {
	ID         uuid.UUID `json:"id" swaggertype:"string"`
	IsDegraded bool      `json:"isDegraded" example:"false"`
	Violations []string  `json:"violations"`
	Timestamp  string    `json:"timestamp" example:"2024-03-01T10:00:00Z"`
	CheckedBy  uuid.UUID `json:"checkedBy" swaggertype:"string"`
}

func NewIntegrityReportResponse(r *domain.IntegrityReport) IntegrityReportResponseDTO {
	return IntegrityReportResponseDTO{
		ID:         r.ID,
		IsDegraded: r.IsDegraded,
		Violations: nonNil(r.Violations),
		Timestamp:  r.Timestamp.Format(time.RFC3339),
		CheckedBy:  r.CheckedBy,
	}
}

type IntegrityStateResponseDTO struct {
	IsDegraded         bool     `json:"isDegraded" example:"false"`
	LastCheckTimestamp string   `json:"lastCheckTimestamp,omitempty" example:"2024-03-01T10:00:00Z"`
	Violations         []string `json:"violations"`
}

func NewIntegrityStateResponse(s domain.IntegrityState) IntegrityStateResponseDTO {
	return IntegrityStateResponseDTO{
		IsDegraded:         s.IsDegraded,
		LastCheckTimestamp: formatTime(s.LastCheckTimestamp),
		Violations:         nonNil(s.Violations),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
