package api

import (
	"encoding/json"
	"net/http"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/prefs"
)

func (s *Server) rateHandler(w http.ResponseWriter, r *http.Request) {
	snapshot := s.ratePoller.Snapshot()

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: snapshot})
}

func (s *Server) getPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: s.prefs.Get()})
}

func (s *Server) setPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	var p prefs.Preferences

	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := s.prefs.Set(p); err != nil {
		s.respondWithError(w, http.StatusInternalServerError, "failed to persist preferences")
		return
	}

	s.respondWithJSON(w, http.StatusOK, ApiResponse{Success: true, Data: s.prefs.Get()})
}

func (s *Server) notificationsHandler(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data:    s.notifications.Recent(),
	})
}
