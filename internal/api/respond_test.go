package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/workflow"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/apperrors"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/logger"
)

func newResponderServer() *Server {
	return &Server{logger: logger.NopLogger()}
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) ApiResponse {
	t.Helper()

	var resp ApiResponse

	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return resp
}

func TestRespondWithWorkflowError(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
	}{
		{
			name:        "declined confirmation",
			err:         workflow.ErrDeclined,
			wantCode:    http.StatusBadRequest,
			wantMessage: "confirmation declined, no changes made",
		},
		{
			name:     "order already processing",
			err:      workflow.ErrAlreadyProcessing,
			wantCode: http.StatusConflict,
		},
		{
			name:     "order not pending",
			err:      workflow.ErrNotPending,
			wantCode: http.StatusConflict,
		},
		{
			name:     "payment without invoice",
			err:      workflow.ErrNoInvoice,
			wantCode: http.StatusConflict,
		},
		{
			name:     "session expired",
			err:      apperrors.NewAuthExpiredError("session expired"),
			wantCode: http.StatusUnauthorized,
		},
		{
			name:        "backend error keeps its status and message",
			err:         apperrors.NewRemoteError("Order not found", http.StatusNotFound),
			wantCode:    http.StatusNotFound,
			wantMessage: "Order not found",
		},
		{
			name:        "transport failure masks the detail",
			err:         apperrors.NewTransportError("dial tcp: connection refused"),
			wantCode:    http.StatusBadGateway,
			wantMessage: apperrors.GenericMessage,
		},
	}

	s := newResponderServer()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			s.respondWithWorkflowError(rec, tc.err)

			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}

			resp := decodeResponse(t, rec)

			if resp.Success {
				t.Fatalf("error response marked successful")
			}

			if tc.wantMessage != "" && resp.Error != tc.wantMessage {
				t.Fatalf("error = %q, want %q", resp.Error, tc.wantMessage)
			}
		})
	}
}

func TestHealthCheckHandler(t *testing.T) {
	s := newResponderServer()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)

	s.healthCheckHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	resp := decodeResponse(t, rec)

	if !resp.Success {
		t.Fatalf("health response not successful")
	}
}
