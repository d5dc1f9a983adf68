package circles

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/dto"
	"github.com/GlebRadaev/equb/internal/handlers/httperr"
	"github.com/GlebRadaev/equb/internal/service/circleservice"
	"github.com/GlebRadaev/equb/pkg/utils"
)

//go:generate mockgen -source=circles.go -destination=mock_circles.go -package=circles

type Service interface {
	Create(ctx context.Context, actor domain.Actor, params circleservice.CreateParams) (*domain.Circle, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Circle, error)
	List(ctx context.Context, status *domain.CircleStatus) ([]domain.Circle, error)
	Hold(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Circle, error)
	Resume(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Circle, error)
	Terminate(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Circle, error)
}

type CircleHandler struct {
	circleService Service
}

func New(circleService Service) *CircleHandler {
	return &CircleHandler{
		circleService: circleService,
	}
}

// Create godoc
//
//	@Summary		Create a circle
//	@Description	Create a DRAFT circle. Requires the COLLECTOR or ADMIN role.
//	@Tags			Circles
//	@Accept			json
//	@Produce		json
//	@Param			circle	body	dto.CreateCircleRequestDTO	true	"Circle parameters"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.CircleResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid circle parameters"
//	@Failure		401	{object}	utils.Response	"Unauthorized"
//	@Failure		403	{object}	utils.Response	"Role not allowed"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/circles [post]
func (h *CircleHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := httperr.Actor(w, r)
	if !ok {
		return
	}

	var req dto.CreateCircleRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	circle, err := h.circleService.Create(r.Context(), actor, circleservice.CreateParams{
		Name:               req.Name,
		ContributionAmount: req.ContributionAmount,
		Currency:           req.Currency,
		CycleLengthDays:    req.CycleLengthDays,
		TotalRounds:        req.TotalRounds,
		PayoutOrderType:    domain.PayoutOrderType(req.PayoutOrderType),
	})
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewCircleResponse(circle))
}

// Get godoc
//
//	@Summary	Get a circle
//	@Tags		Circles
//	@Produce	json
//	@Param		circleID	path	string	true	"Circle id"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.CircleResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid circle id"
//	@Failure	404	{object}	utils.Response	"Circle not found"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/circles/{circleID} [get]
func (h *CircleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httperr.PathID(w, r, "circleID")
	if !ok {
		return
	}
	circle, err := h.circleService.Get(r.Context(), id)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewCircleResponse(circle))
}

// List godoc
//
//	@Summary	List circles
//	@Tags		Circles
//	@Produce	json
//	@Param		status	query	string	false	"Only circles in this status"	Enums(DRAFT, ACTIVE, ON_HOLD, COMPLETED, TERMINATED)
//	@Security	BearerAuth
//	@Success	200	{array}		dto.CircleResponseDTO
//	@Failure	400	{object}	utils.Response	"Invalid status"
//	@Failure	500	{object}	utils.Response	"Internal server error"
//	@Router		/api/circles [get]
func (h *CircleHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.CircleStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.CircleStatus(raw)
		switch s {
		case domain.CircleDraft, domain.CircleActive, domain.CircleOnHold, domain.CircleCompleted, domain.CircleTerminated:
			status = &s
		default:
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
	}

	circles, err := h.circleService.List(r.Context(), status)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	response := make([]dto.CircleResponseDTO, 0, len(circles))
	for i := range circles {
		response = append(response, dto.NewCircleResponse(&circles[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Hold godoc
//
//	@Summary	Put an active circle on hold
//	@Tags		Circles
//	@Produce	json
//	@Param		circleID	path	string	true	"Circle id"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.CircleResponseDTO
//	@Failure	403	{object}	utils.Response	"Requires ADMIN"
//	@Failure	404	{object}	utils.Response	"Circle not found"
//	@Failure	409	{object}	utils.Response	"Circle is not active"
//	@Router		/api/circles/{circleID}/hold [post]
func (h *CircleHandler) Hold(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.circleService.Hold)
}

// Resume godoc
//
//	@Summary	Resume a circle that is on hold
//	@Tags		Circles
//	@Produce	json
//	@Param		circleID	path	string	true	"Circle id"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.CircleResponseDTO
//	@Failure	403	{object}	utils.Response	"Requires ADMIN"
//	@Failure	404	{object}	utils.Response	"Circle not found"
//	@Failure	409	{object}	utils.Response	"Circle is not on hold"
//	@Router		/api/circles/{circleID}/resume [post]
func (h *CircleHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.circleService.Resume)
}

// Terminate godoc
//
//	@Summary	Terminate a circle
//	@Tags		Circles
//	@Produce	json
//	@Param		circleID	path	string	true	"Circle id"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.CircleResponseDTO
//	@Failure	403	{object}	utils.Response	"Requires ADMIN"
//	@Failure	404	{object}	utils.Response	"Circle not found"
//	@Failure	409	{object}	utils.Response	"Circle already closed"
//	@Router		/api/circles/{circleID}/terminate [post]
func (h *CircleHandler) Terminate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.circleService.Terminate)
}

func (h *CircleHandler) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context, domain.Actor, uuid.UUID) (*domain.Circle, error)) {
	actor, ok := httperr.Actor(w, r)
	if !ok {
		return
	}
	id, ok := httperr.PathID(w, r, "circleID")
	if !ok {
		return
	}
	circle, err := fn(r.Context(), actor, id)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewCircleResponse(circle))
}
