package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chronoquest/journeys/internal/journey"
)

// VisitRequest is the request body for POST /api/attempts/{attemptID}/visit.
type VisitRequest struct {
	ChapterNumber    int `json:"chapterNumber"`
	TimeSpentSeconds int `json:"timeSpentSeconds"`
}

func handleVisit(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := learnerFromRequest(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var req VisitRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.TimeSpentSeconds < 0 {
			writeError(w, http.StatusBadRequest, "timeSpentSeconds must not be negative")
			return
		}

		_, err = store.MutateAttempt(r.Context(), chi.URLParam(r, "attemptID"),
			func(def *journey.Definition, a *journey.Attempt) error {
				if a.LearnerID != sess.LearnerID {
					return errNotOwner
				}
				return journey.Visit(def, a, req.ChapterNumber, req.TimeSpentSeconds, time.Now().UTC())
			})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
