package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/chronoquest/journeys/internal/journey"
)

// AttemptResponse wraps an attempt with the explicit resume flag: clients
// show the introduction when hasStarted is false and jump straight to
// currentChapter when true.
type AttemptResponse struct {
	journey.Attempt
	HasStarted bool `json:"hasStarted"`
}

func attemptResponse(a *journey.Attempt) AttemptResponse {
	return AttemptResponse{Attempt: *a, HasStarted: a.HasStarted()}
}

func handleStart(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := learnerFromRequest(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		def, err := store.GetJourney(r.Context(), chi.URLParam(r, "journeyID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if err := def.Validate(); err != nil {
			writeError(w, http.StatusInternalServerError, "journey definition is invalid")
			return
		}

		a := journey.NewAttempt(def, uuid.NewString(), sess.LearnerID, time.Now().UTC())
		if err := store.CreateAttempt(r.Context(), a); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, attemptResponse(a))
	}
}
