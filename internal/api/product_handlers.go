package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/models"
)

func (s *Server) getProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.Products(r.Context())

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: products})
}

func (s *Server) getProductHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	product, err := s.products.GetByID(r.Context(), id)

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: product})
}

func (s *Server) addProductHandler(w http.ResponseWriter, r *http.Request) {
	var product models.Product

	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	created, err := s.products.Add(r.Context(), &product)

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: created})
}

func (s *Server) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var product models.Product

	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	updated, err := s.products.Update(r.Context(), id, &product)

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: updated})
}

func (s *Server) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req confirmedRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := s.products.Delete(r.Context(), id, confirmer(req.Confirm)); err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true})
}

func (s *Server) issueProductHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var issue models.IssueRequest

	if err := json.NewDecoder(r.Body).Decode(&issue); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	updated, err := s.products.Issue(r.Context(), id, &issue)

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: updated})
}

func (s *Server) restockProductHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var stock models.RestockRequest

	if err := json.NewDecoder(r.Body).Decode(&stock); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	updated, err := s.products.Restock(r.Context(), id, &stock)

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: updated})
}
