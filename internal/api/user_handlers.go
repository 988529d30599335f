package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/auth"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/models"
)

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	resp, err := s.backend.Login(r.Context(), &req)

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: resp.User})
}

func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.Logout(r.Context()); err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true})
}

func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	user, err := s.backend.Signup(r.Context(), &req)

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: user})
}

func (s *Server) resetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := s.backend.ResetPassword(r.Context(), &req); err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true})
}

// sessionHandler reports the logged-in session as read from the current
// access token
func (s *Server) sessionHandler(w http.ResponseWriter, r *http.Request) {
	token := s.backend.AccessToken()

	if token == "" {
		s.respondWithError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	session, err := auth.SessionFromToken(token)

	if err != nil {
		s.respondWithError(w, http.StatusUnauthorized, "invalid session token")
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data: map[string]interface{}{
			"userId":        session.UserID,
			"email":         session.Email,
			"adminVerified": session.AdminVerified,
			"expiresAt":     session.ExpiresAt,
			"expired":       session.Expired(time.Now()),
		},
	})
}

func (s *Server) profileHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.backend.GetProfile(r.Context())

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: user})
}

func (s *Server) getUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.backend.GetAllUsers(r.Context())

	if err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: users})
}

func (s *Server) verifyUserHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.backend.VerifyUser(r.Context(), id); err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true})
}

// deleteUserHandler removes an account, gated by the same confirmation
// rule as every destructive action
func (s *Server) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req confirmedRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if !req.Confirm {
		s.respondWithError(w, http.StatusBadRequest, "confirmation declined, no changes made")
		return
	}

	if err := s.backend.DeleteUser(r.Context(), id); err != nil {
		s.respondWithWorkflowError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true})
}
