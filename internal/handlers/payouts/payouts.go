package payouts

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/dto"
	"github.com/GlebRadaev/equb/internal/handlers/httperr"
	"github.com/GlebRadaev/equb/pkg/utils"
)

//go:generate mockgen -source=payouts.go -destination=mock_payouts.go -package=payouts

type Service interface {
	Eligibility(ctx context.Context, circleID uuid.UUID) (*domain.Eligibility, error)
	Execute(ctx context.Context, actor domain.Actor, circleID uuid.UUID, round int, acknowledged bool) (*domain.Payout, error)
	AdvanceRound(ctx context.Context, actor domain.Actor, circleID uuid.UUID) (*domain.Circle, error)
	Complete(ctx context.Context, actor domain.Actor, circleID uuid.UUID) (*domain.Circle, error)
	ListPayouts(ctx context.Context, circleID uuid.UUID) ([]domain.Payout, error)
}

type PayoutHandler struct {
	payoutService Service
}

func New(payoutService Service) *PayoutHandler {
	return &PayoutHandler{
		payoutService: payoutService,
	}
}

// Eligibility godoc
//
//	@Summary		Payout readiness of the current round
//	@Description	READY when every member's contribution is confirmed, WARNING on partial funding, BLOCKED otherwise.
//	@Tags			Payouts
//	@Produce		json
//	@Param			circleID	path	string	true	"Circle id"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.EligibilityResponseDTO
//	@Failure		404	{object}	utils.Response	"Circle not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/circles/{circleID}/payouts/eligibility [get]
func (h *PayoutHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	circleID, ok := httperr.PathID(w, r, "circleID")
	if !ok {
		return
	}
	eligibility, err := h.payoutService.Eligibility(r.Context(), circleID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewEligibilityResponse(eligibility))
}

// Execute godoc
//
//	@Summary		Execute the current round's payout
//	@Description	Pays the pot to the round's recipient exactly once. The request must be acknowledged.
//	@Tags			Payouts
//	@Accept			json
//	@Produce		json
//	@Param			circleID	path	string						true	"Circle id"
//	@Param			execution	body	dto.ExecutePayoutRequestDTO	true	"Explicit acknowledgement, optional round pin"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.PayoutResponseDTO
//	@Failure		400	{object}	utils.Response	"Not acknowledged"
//	@Failure		403	{object}	utils.Response	"Role not allowed or system degraded"
//	@Failure		404	{object}	utils.Response	"Circle not found"
//	@Failure		409	{object}	utils.Response	"Already executed, insufficient funding or round mismatch"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/circles/{circleID}/payouts/execute [post]
func (h *PayoutHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, ok := httperr.Actor(w, r)
	if !ok {
		return
	}
	circleID, ok := httperr.PathID(w, r, "circleID")
	if !ok {
		return
	}
	var req dto.ExecutePayoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Round < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	payout, err := h.payoutService.Execute(r.Context(), actor, circleID, req.Round, req.Acknowledged)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewPayoutResponse(payout))
}

// AdvanceRound godoc
//
//	@Summary	Advance to the next round
//	@Tags		Payouts
//	@Produce	json
//	@Param		circleID	path	string	true	"Circle id"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.CircleResponseDTO
//	@Failure	403	{object}	utils.Response	"Role not allowed or system degraded"
//	@Failure	409	{object}	utils.Response	"Payout not executed or already the last round"
//	@Router		/api/circles/{circleID}/rounds/advance [post]
func (h *PayoutHandler) AdvanceRound(w http.ResponseWriter, r *http.Request) {
	h.circleMutation(w, r, h.payoutService.AdvanceRound)
}

// Complete godoc
//
//	@Summary	Complete a circle after its final payout
//	@Tags		Payouts
//	@Produce	json
//	@Param		circleID	path	string	true	"Circle id"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.CircleResponseDTO
//	@Failure	403	{object}	utils.Response	"Role not allowed or system degraded"
//	@Failure	409	{object}	utils.Response	"Not the final round or payout not executed"
//	@Router		/api/circles/{circleID}/complete [post]
func (h *PayoutHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.circleMutation(w, r, h.payoutService.Complete)
}

// List godoc
//
//	@Summary	List payouts of a circle
//	@Tags		Payouts
//	@Produce	json
//	@Param		circleID	path	string	true	"Circle id"
//	@Security	BearerAuth
//	@Success	200	{array}		dto.PayoutResponseDTO
//	@Failure	404	{object}	utils.Response	"Circle not found"
//	@Router		/api/circles/{circleID}/payouts [get]
func (h *PayoutHandler) List(w http.ResponseWriter, r *http.Request) {
	circleID, ok := httperr.PathID(w, r, "circleID")
	if !ok {
		return
	}
	payouts, err := h.payoutService.ListPayouts(r.Context(), circleID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	response := make([]dto.PayoutResponseDTO, 0, len(payouts))
	for i := range payouts {
		response = append(response, dto.NewPayoutResponse(&payouts[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (h *PayoutHandler) circleMutation(w http.ResponseWriter, r *http.Request, fn func(context.Context, domain.Actor, uuid.UUID) (*domain.Circle, error)) {
	actor, ok := httperr.Actor(w, r)
	if !ok {
		return
	}
	circleID, ok := httperr.PathID(w, r, "circleID")
	if !ok {
		return
	}
	circle, err := fn(r.Context(), actor, circleID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewCircleResponse(circle))
}
