package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/store"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/workflow"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/apperrors"
)

type ApiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Health represents the health check response
type Health struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// healthCheckHandler handles the health check endpoint
func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	health := Health{
		Status:    "ok",
		Version:   "0.1.0",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    health,
	})
}

// respondWithError sends a JSON response with an error message
func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.respondWithJSON(w, code, ApiResponse{
		Success: false,
		Error:   message,
	})
}

// respondWithJSON sends a JSON response
func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)

	if err != nil {
		s.logger.Error("Failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithWorkflowError maps workflow and backend failures onto
// gateway status codes, preserving server-provided messages
func (s *Server) respondWithWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflow.ErrDeclined), errors.Is(err, store.ErrDeclined):
		s.respondWithError(w, http.StatusBadRequest, "confirmation declined, no changes made")
	case errors.Is(err, workflow.ErrAlreadyProcessing),
		errors.Is(err, workflow.ErrNotPending),
		errors.Is(err, workflow.ErrNoInvoice),
		errors.Is(err, workflow.ErrAlreadyPaid),
		errors.Is(err, workflow.ErrPickupCompleted):
		s.respondWithError(w, http.StatusConflict, err.Error())
	case apperrors.IsAuthExpired(err):
		s.respondWithError(w, http.StatusUnauthorized, apperrors.UserMessage(err))
	case apperrors.IsRemote(err):
		code := apperrors.StatusCode(err)

		if code == 0 {
			code = http.StatusBadGateway
		}

		s.respondWithError(w, code, apperrors.UserMessage(err))
	default:
		s.respondWithError(w, http.StatusBadGateway, apperrors.UserMessage(err))
	}
}

// confirmedRequest is the shape shared by all mutating requests that
// carry the user's confirmation
type confirmedRequest struct {
	Confirm bool `json:"confirm"`
}

// confirmer turns the request's confirm flag into the workflow's
// confirmation gate
func confirmer(confirmed bool) workflow.ConfirmerFunc {
	return func(prompt string) bool {
		return confirmed
	}
}
