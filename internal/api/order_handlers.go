package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/models"
)

func (s *Server) getOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := s.backend.GetAllOrders(r.Context())

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: orders})
}

func (s *Server) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	order, err := s.backend.GetOrder(r.Context(), id)

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: order})
}

// lineEdit carries one raw quantity edit from the order screen. The
// quantity arrives as typed, so coercion happens on this side.
type lineEdit struct {
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
}

type saveLinesRequest struct {
	Edits []lineEdit `json:"edits"`
}

// saveOrderLinesHandler applies quantity edits to the order's lines,
// recomputes each edited line's cost and persists the result
func (s *Server) saveOrderLinesHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req saveLinesRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	order, err := s.backend.GetOrder(r.Context(), id)

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	lines := order.Products

	for _, edit := range req.Edits {
		for i := range lines {
			if lines[i].ProductID == edit.ProductID {
				lines[i].SetQuantity(edit.Quantity)
			}
		}
	}

	if err := s.engine.SaveLines(r.Context(), id, lines); err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: lines})
}

// approveOrderHandler starts the four-stage approval sequence and
// returns the run id to poll for progress
func (s *Server) approveOrderHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req confirmedRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	order, err := s.backend.GetOrder(r.Context(), id)

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	run, err := s.engine.Approve(order, confirmer(req.Confirm))

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusAccepted, ApiResponse{
		Success: true,
		Data:    map[string]string{"runId": run.ID},
	})
}

// approvalProgress is the stage-indexed status report for one run
type approvalProgress struct {
	RunID   string `json:"runId"`
	OrderID string `json:"orderId"`
	State   string `json:"state"`
	Steps   []struct {
		Label  string `json:"label"`
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	} `json:"steps"`
}

func (s *Server) approvalProgressHandler(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["runId"]

	run, ok := s.engine.GetRun(runID)

	if !ok {
		s.respondWithError(w, http.StatusNotFound, "approval run not found")
		return
	}

	steps, state := run.Snapshot()

	progress := approvalProgress{
		RunID:   run.ID,
		OrderID: run.OrderID,
		State:   string(state),
	}

	for _, step := range steps {
		progress.Steps = append(progress.Steps, struct {
			Label  string `json:"label"`
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}{Label: step.Label, Status: string(step.Status), Error: step.Error})
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: progress})
}

func (s *Server) rejectOrderHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req confirmedRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	order, err := s.backend.GetOrder(r.Context(), id)

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	if err := s.engine.Reject(r.Context(), order, confirmer(req.Confirm)); err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    map[string]string{"redirect": "/orders"},
	})
}

type statusChangeRequest struct {
	Confirm bool   `json:"confirm"`
	Status  string `json:"status"`
}

func (s *Server) updatePaymentHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req statusChangeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	order, err := s.backend.GetOrder(r.Context(), id)

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	newStatus := models.PaymentStatus(req.Status)

	if err := s.engine.UpdatePaymentStatus(r.Context(), order, newStatus, confirmer(req.Confirm)); err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: order})
}

func (s *Server) updatePickupHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req statusChangeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	order, err := s.backend.GetOrder(r.Context(), id)

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	newStatus := models.PickupStatus(req.Status)

	if err := s.engine.UpdatePickupStatus(r.Context(), order, newStatus, confirmer(req.Confirm)); err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: order})
}

func (s *Server) pendingCountHandler(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    map[string]int{"count": s.pendingPoller.Count()},
	})
}

func (s *Server) invoicePDFHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    map[string]string{"url": s.backend.InvoicePDFURL(id)},
	})
}
