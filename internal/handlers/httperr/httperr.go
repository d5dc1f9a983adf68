package httperr

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/pkg/auth"
	"github.com/GlebRadaev/equb/pkg/utils"
)

// Status maps a ledger error to its HTTP status. Unknown errors are storage failures.
func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidCircle),
		errors.Is(err, domain.ErrNotAcknowledged),
		errors.Is(err, domain.ErrInvalidReason):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrSystemDegraded):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrCircleNotFound),
		errors.Is(err, domain.ErrContributionNotFound),
		errors.Is(err, domain.ErrPayoutNotFound),
		errors.Is(err, domain.ErrMemberNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCircleNotActive),
		errors.Is(err, domain.ErrCircleNotDraft),
		errors.Is(err, domain.ErrCircleNotOnHold),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrDuplicateMember),
		errors.Is(err, domain.ErrIncompleteRoster),
		errors.Is(err, domain.ErrNotMember),
		errors.Is(err, domain.ErrRoundMismatch),
		errors.Is(err, domain.ErrAmountMismatch),
		errors.Is(err, domain.ErrDuplicateSubmission),
		errors.Is(err, domain.ErrNotPending),
		errors.Is(err, domain.ErrInsufficientFunding),
		errors.Is(err, domain.ErrPayoutNotExecuted),
		errors.Is(err, domain.ErrAlreadyLastRound),
		errors.Is(err, domain.ErrNotFinalRound),
		errors.Is(err, domain.ErrAlreadyExecuted),
		errors.Is(err, domain.ErrVersionConflict),
		errors.Is(err, domain.ErrCheckInProgress):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Respond writes err as an error body. Storage details never reach the client.
func Respond(w http.ResponseWriter, err error) {
	code := Status(err)
	if code == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
		utils.RespondWithError(w, code, "Internal server error")
		return
	}
	utils.RespondWithError(w, code, err.Error())
}

// PathID parses a uuid path parameter, answering 400 when it is malformed.
func PathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// Actor returns the authenticated caller, answering 401 when the request carries none.
func Actor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
	}
	return actor, ok
}
