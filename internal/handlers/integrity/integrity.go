package integrity

import (
	"context"
	"net/http"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/dto"
	"github.com/GlebRadaev/equb/internal/handlers/httperr"
	"github.com/GlebRadaev/equb/pkg/utils"
)

//go:generate mockgen -source=integrity.go -destination=mock_integrity.go -package=integrity

type Service interface {
	RunCheck(ctx context.Context, actor domain.Actor) (*domain.IntegrityReport, error)
	State() domain.IntegrityState
}

type IntegrityHandler struct {
	integrityService Service
}

func New(integrityService Service) *IntegrityHandler {
	return &IntegrityHandler{
		integrityService: integrityService,
	}
}

// State godoc
//
//	@Summary	Current integrity state
//	@Tags		Integrity
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.IntegrityStateResponseDTO
//	@Router		/api/integrity [get]
func (h *IntegrityHandler) State(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, dto.NewIntegrityStateResponse(h.integrityService.State()))
}

// RunCheck godoc
//
//	@Summary		Run an integrity check
//	@Description	Recompute every ledger invariant. Violations put the system in degraded mode; a clean run clears it. Requires ADMIN.
//	@Tags			Integrity
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	dto.IntegrityReportResponseDTO
//	@Failure		403	{object}	utils.Response	"Requires ADMIN"
//	@Failure		409	{object}	utils.Response	"A check is already running"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/integrity/check [post]
func (h *IntegrityHandler) RunCheck(w http.ResponseWriter, r *http.Request) {
	actor, ok := httperr.Actor(w, r)
	if !ok {
		return
	}
	report, err := h.integrityService.RunCheck(r.Context(), actor)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewIntegrityReportResponse(report))
}
