package server

import (
	"net/http"
	"strings"
)

// SessionRequest is the request body for POST /api/session.
type SessionRequest struct {
	LearnerName string `json:"learnerName"`
}

// SessionResponse carries the Bearer token used on all learner routes.
type SessionResponse struct {
	LearnerID string `json:"learnerId"`
	Name      string `json:"name"`
	Token     string `json:"token"`
}

func handleSession(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SessionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.LearnerName = strings.TrimSpace(req.LearnerName)
		if req.LearnerName == "" {
			writeError(w, http.StatusBadRequest, "learnerName is required")
			return
		}

		id, token, err := store.CreateLearner(r.Context(), req.LearnerName)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, SessionResponse{
			LearnerID: id,
			Name:      req.LearnerName,
			Token:     token,
		})
	}
}
