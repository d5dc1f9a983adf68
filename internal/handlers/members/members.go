package members

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

//go:generate mockgen -source=members.go -destination=mock_members.go -package=members

type Service interface {
	RequestJoin(ctx context.Context, actor domain.Actor, circleID uuid.UUID) (*domain.Membership, error)
	AddMember(ctx context.Context, actor domain.Actor, circleID, userID uuid.UUID) (*domain.Membership, error)
	RemoveMember(ctx context.Context, actor domain.Actor, circleID, userID uuid.UUID) (*domain.Membership, error)
	ListMembers(ctx context.Context, circleID uuid.UUID) ([]domain.Membership, error)
	Activate(ctx context.Context, actor domain.Actor, circleID uuid.UUID) (*domain.Circle, error)
}

type MemberHandler struct {
	membershipService Service
}

func New(membershipService Service) *MemberHandler {
	return &MemberHandler{
		membershipService: membershipService,
	}
}

// Join godoc
//
//	@Summary		Ask to join a circle
//	@Description	File a PENDING membership for the caller. The circle must be in DRAFT.
//	@Tags			Members
//	@Produce		json
//	@Param			circleID	path	string	true	"Circle id"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.MembershipResponseDTO
//	@Failure		404	{object}	utils.Response	"Circle not found"
//	@Failure		409	{object}	utils.Response	"Circle is not in draft or already a member"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/circles/{circleID}/join [post]
func (h *MemberHandler) Join(w http.ResponseWriter, r *http.Request) {
	actor, ok := httperr.Actor(w, r)
	if !ok {
		return
	}
	circleID, ok := httperr.PathID(w, r, "circleID")
	if !ok {
		return
	}
	membership, err := h.membershipService.RequestJoin(r.Context(), actor, circleID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewMembershipResponse(membership))
}

// Add godoc
//
//	@Summary		Add a confirmed member
//	@Description	Confirm a user into a DRAFT circle. Requires the COLLECTOR or ADMIN role.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			circleID	path	string					true	"Circle id"
//	@Param			member		body	dto.AddMemberRequestDTO	true	"User to add"
//	@Security		BearerAuth
//	@Success		201	{object}	dto.MembershipResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid request body"
//	@Failure		403	{object}	utils.Response	"Role not allowed"
//	@Failure		409	{object}	utils.Response	"Capacity exceeded, duplicate member or circle not in draft"
//	@Router			/api/circles/{circleID}/members [post]
func (h *MemberHandler) Add(w http.ResponseWriter, r *http.Request) {
	actor, ok := httperr.Actor(w, r)
	if !ok {
		return
	}
	circleID, ok := httperr.PathID(w, r, "circleID")
	if !ok {
		return
	}
	var req dto.AddMemberRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == uuid.Nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	membership, err := h.membershipService.AddMember(r.Context(), actor, circleID, req.UserID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.NewMembershipResponse(membership))
}

// Remove godoc
//
//	@Summary	Remove a member from a DRAFT circle
//	@Tags		Members
//	@Produce	json
//	@Param		circleID	path	string	true	"Circle id"
//	@Param		userID		path	string	true	"User id"
//	@Security	BearerAuth
//	@Success	200	{object}	dto.MembershipResponseDTO
//	@Failure	403	{object}	utils.Response	"Role not allowed"
//	@Failure	404	{object}	utils.Response	"Member not found"
//	@Failure	409	{object}	utils.Response	"Circle is not in draft"
//	@Router		/api/circles/{circleID}/members/{userID} [delete]
func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	actor, ok := httperr.Actor(w, r)
	if !ok {
		return
	}
	circleID, ok := httperr.PathID(w, r, "circleID")
	if !ok {
		return
	}
	userID, ok := httperr.PathID(w, r, "userID")
	if !ok {
		return
	}
	membership, err := h.membershipService.RemoveMember(r.Context(), actor, circleID, userID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewMembershipResponse(membership))
}

// List godoc
//
//	@Summary	List circle members
//	@Tags		Members
//	@Produce	json
//	@Param		circleID	path	string	true	"Circle id"
//	@Security	BearerAuth
//	@Success	200	{array}		dto.MembershipResponseDTO
//	@Failure	404	{object}	utils.Response	"Circle not found"
//	@Router		/api/circles/{circleID}/members [get]
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	circleID, ok := httperr.PathID(w, r, "circleID")
	if !ok {
		return
	}
	members, err := h.membershipService.ListMembers(r.Context(), circleID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	response := make([]dto.MembershipResponseDTO, 0, len(members))
	for i := range members {
		response = append(response, dto.NewMembershipResponse(&members[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Activate godoc
//
//	@Summary		Activate a circle
//	@Description	Freeze the roster, fix the payout order and open round 1. Irreversible.
//	@Tags			Members
//	@Produce		json
//	@Param			circleID	path	string	true	"Circle id"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.CircleResponseDTO
//	@Failure		403	{object}	utils.Response	"Role not allowed or system degraded"
//	@Failure		404	{object}	utils.Response	"Circle not found"
//	@Failure		409	{object}	utils.Response	"Incomplete roster or circle not in draft"
//	@Router			/api/circles/{circleID}/activate [post]
func (h *MemberHandler) Activate(w http.ResponseWriter, r *http.Request) {
	actor, ok := httperr.Actor(w, r)
	if !ok {
		return
	}
	circleID, ok := httperr.PathID(w, r, "circleID")
	if !ok {
		return
	}
	circle, err := h.membershipService.Activate(r.Context(), actor, circleID)
	if err != nil {
		httperr.Respond(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewCircleResponse(circle))
}
