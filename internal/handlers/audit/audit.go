package audit

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/dto"
	"github.com/GlebRadaev/equb/internal/handlers/httperr"
	"github.com/GlebRadaev/equb/pkg/utils"
)

//go:generate mockgen -source=audit.go -destination=mock_audit.go -package=audit

type Service interface {
	Timeline(ctx context.Context, circleID uuid.UUID, filter domain.AuditFilter) iter.Seq2[domain.AuditEvent, error]
}

type AuditHandler struct {
	auditService Service
}

func New(auditService Service) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

// Timeline godoc
//
//	@Summary		Audit timeline of a circle
//	@Description	Events ordered by time, ties broken by insertion order. The array is streamed.
//	@Tags			Audit
//	@Produce		json
//	@Param			circleID	path	string	true	"Circle id"
//	@Param			action		query	string	false	"Comma separated action types"
//	@Param			entityType	query	string	false	"Entity type"
//	@Param			actorId		query	string	false	"Actor user id"
//	@Param			from		query	string	false	"RFC3339 lower bound, inclusive"
//	@Param			to			query	string	false	"RFC3339 upper bound, exclusive"
//	@Param			limit		query	int		false	"Maximum number of events"
//	@Security		BearerAuth
//	@Success		200	{array}		dto.AuditEventResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid filter"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/circles/{circleID}/audit [get]
func (h *AuditHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	circleID, ok := httperr.PathID(w, r, "circleID")
	if !ok {
		return
	}
	filter, err := parseFilter(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		started bool
		enc     = json.NewEncoder(w)
	)
	for event, err := range h.auditService.Timeline(r.Context(), circleID, filter) {
		if err != nil {
			if !started {
				httperr.Respond(w, err)
				return
			}
			// Headers are gone; leave the array unterminated so the client sees a broken body.
			zap.L().Error("audit timeline interrupted", zap.String("circle_id", circleID.String()), zap.Error(err))
			return
		}
		if !started {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("["))
			started = true
		} else {
			w.Write([]byte(","))
		}
		if err := enc.Encode(dto.NewAuditEventResponse(&event)); err != nil {
			zap.L().Error("can't encode audit event", zap.Error(err))
			return
		}
	}
	if !started {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("["))
	}
	w.Write([]byte("]\n"))
}

func parseFilter(r *http.Request) (domain.AuditFilter, error) {
	var (
		q      = r.URL.Query()
		filter domain.AuditFilter
	)
	if raw := q.Get("action"); raw != "" {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				filter.ActionTypes = append(filter.ActionTypes, a)
			}
		}
	}
	filter.EntityType = q.Get("entityType")
	if raw := q.Get("actorId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, errors.New("Invalid actorId")
		}
		filter.ActorUserID = &id
	}
	bounds := []struct {
		name string
		dst  **time.Time
	}{
		{"from", &filter.From},
		{"to", &filter.To},
	}
	for _, b := range bounds {
		if raw := q.Get(b.name); raw != "" {
			ts, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return filter, errors.New("Invalid " + b.name)
			}
			*b.dst = &ts
		}
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return filter, errors.New("Invalid limit")
		}
		filter.Limit = n
	}
	return filter, nil
}
