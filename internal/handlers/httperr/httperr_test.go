package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/pkg/auth"
	"github.com/GlebRadaev/equb/pkg/utils"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{domain.ErrInvalidCircle, http.StatusBadRequest},
		{domain.ErrNotAcknowledged, http.StatusBadRequest},
		{domain.ErrInvalidReason, http.StatusBadRequest},
		{domain.ErrInvalidReference, http.StatusUnprocessableEntity},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrSystemDegraded, http.StatusForbidden},
		{domain.ErrCircleNotFound, http.StatusNotFound},
		{domain.ErrContributionNotFound, http.StatusNotFound},
		{domain.ErrRoundMismatch, http.StatusConflict},
		{domain.ErrAlreadyExecuted, http.StatusConflict},
		{fmt.Errorf("payout for round 2: %w", domain.ErrVersionConflict), http.StatusConflict},
		{domain.ErrCheckInProgress, http.StatusConflict},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.expected, Status(tt.err))
		})
	}
}

func TestRespond(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedCode    int
		expectedMessage string
	}{
		{
			name:            "business error keeps its message",
			err:             domain.ErrAmountMismatch,
			expectedCode:    http.StatusConflict,
			expectedMessage: domain.ErrAmountMismatch.Error(),
		},
		{
			name:            "storage error is hidden",
			err:             errors.New("pq: relation does not exist"),
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			Respond(w, tt.err)

			assert.Equal(t, tt.expectedCode, w.Code)
			var resp utils.Response
			assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.expectedMessage, resp.Message)
		})
	}
}

func TestPathID(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name   string
		value  string
		wantOK bool
	}{
		{name: "valid", value: id.String(), wantOK: true},
		{name: "malformed", value: "not-a-uuid", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("circleID", tt.value)
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
			w := httptest.NewRecorder()

			got, ok := PathID(w, r, "circleID")
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, id, got)
			} else {
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestActor(t *testing.T) {
	t.Run("authenticated", func(t *testing.T) {
		actor := domain.Actor{UserID: uuid.New(), Role: domain.RoleCollector}
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r = r.WithContext(auth.WithActor(r.Context(), actor))
		w := httptest.NewRecorder()

		got, ok := Actor(w, r)
		assert.True(t, ok)
		assert.Equal(t, actor, got)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		w := httptest.NewRecorder()

		_, ok := Actor(w, r)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
