package contributions

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/dto"
	"github.com/GlebRadaev/equb/internal/handlers/httperr"
	"github.com/GlebRadaev/equb/internal/service/contributionservice"
	"github.com/GlebRadaev/equb/pkg/utils"
)

//go:generate mockgen -source=contributions.go -destination=mock_contributions.go -package=contributions

type Service interface {
	Submit(ctx context.Context, actor domain.Actor, req contributionservice.SubmitRequest) (*domain.Contribution, error)
	Confirm(ctx context.Context, actor domain.Actor, contributionID uuid.UUID) (*domain.Contribution, error)
	Reject(ctx context.Context, actor domain.Actor, contributionID uuid.UUID, reason string) (*domain.Contribution, error)
	List(ctx context.Context, circleID uuid.UUID, round int) ([]domain.Contribution, error)
}

type ContributionHandler struct {
	contributionService Service
}

func New(contributionService Service) *ContributionHandler {
	return &ContributionHandler{
		contributionService: contributionService,
	}
}

// Submit godoc
//
//	@Summary		Submit a contribution
//	@Description	Record a PENDING contribution for the current round. Members submit for themselves; managers may submit for any member.
//	@Tags			Contributions
//	@Accept			json
//	@Produce		json
//	@Param			circleID		path	string								true	"Circle id"
//	@Param			contribution	body	dto.SubmitContributionRequestDTO	true	"Contribution"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.ContributionResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		403	{object}	utils.Response	"Not allowed or system degraded"
//	@Failure		409	{object}	utils.Response	"Round or amount mismatch, duplicate submission, circle not active"
//	@Failure		422	{object}	utils.Response	"Invalid payment reference"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/circles/{circleID}/contributions [post]
func (h *ContributionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	actor, ok := httperr.Actor(w, r)
	if !ok {
		return
	}
	circleID, ok := httperr.PathID(w, r, "circleID")
	if !ok {
		return
	}
	var req dto.SubmitContributionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	memberID := actor.UserID
	if req.MemberID != nil {
		memberID = *req.MemberID
	}

	contribution, err := h.contributionService.Submit(r.Context(), actor, contributionservice.SubmitRequest{
		CircleID:    circleID,
		MemberID:    memberID,
		RoundNumber: req.RoundNumber,
		Amount:      req.Amount,
		Reference:   req.Reference,
	})
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewContributionResponse(contribution))
}

// Confirm godoc
//
//	@Summary	Confirm a pending contribution
//	@Tags		Contributions
//	@Produce	json
//	@Param		contributionID	path	string	true	"Contribution id"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.ContributionResponseDTO
//	@Failure	403	{object}	utils.Response	"Role not allowed or system degraded"
//	@Failure	404	{object}	utils.Response	"Contribution not found"
//	@Failure	409	{object}	utils.Response	"Contribution is not pending"
//	@Router		/api/contributions/{contributionID}/confirm [post]
func (h *ContributionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	actor, ok := httperr.Actor(w, r)
	if !ok {
		return
	}
	id, ok := httperr.PathID(w, r, "contributionID")
	if !ok {
		return
	}
	contribution, err := h.contributionService.Confirm(r.Context(), actor, id)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewContributionResponse(contribution))
}

// Reject godoc
//
//	@Summary	Reject a pending contribution
//	@Tags		Contributions
//	@Accept		json
//	@Produce	json
//	@Param		contributionID	path	string								true	"Contribution id"
//	@Param		rejection		body	dto.RejectContributionRequestDTO	true	"Reason, at least 5 characters"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.ContributionResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid reason"
//	@Failure	403	{object}	utils.Response	"Role not allowed or system degraded"
//	@Failure	404	{object}	utils.Response	"Contribution not found"
//	@Failure	409	{object}	utils.Response	"Contribution is not pending"
//	@Router		/api/contributions/{contributionID}/reject [post]
func (h *ContributionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, ok := httperr.Actor(w, r)
	if !ok {
		return
	}
	id, ok := httperr.PathID(w, r, "contributionID")
	if !ok {
		return
	}
	var req dto.RejectContributionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	contribution, err := h.contributionService.Reject(r.Context(), actor, id, req.Reason)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewContributionResponse(contribution))
}

// List godoc
//
//	@Summary	List contributions of a circle
//	@Tags		Contributions
//	@Produce	json
//	@Param		circleID	path	string	true	"Circle id"
//	@Param		round		query	int		false	"Only this round"
//	@Security	BearerAuth
//	@Success	200	{array}		dto.ContributionResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid round"
//	@Failure	404	{object}	utils.Response	"Circle not found"
//	@Router		/api/circles/{circleID}/contributions [get]
func (h *ContributionHandler) List(w http.ResponseWriter, r *http.Request) {
	circleID, ok := httperr.PathID(w, r, "circleID")
	if !ok {
		return
	}
	var round int
	if raw := r.URL.Query().Get("round"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid round")
			return
		}
		round = n
	}

	contributions, err := h.contributionService.List(r.Context(), circleID, round)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	response := make([]dto.ContributionResponseDTO, 0, len(contributions))
	for i := range contributions {
		response = append(response, dto.NewContributionResponse(&contributions[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
