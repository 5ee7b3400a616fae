package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chronoquest/journeys/internal/journey"
)

// DecisionRequest is the request body for POST /api/attempts/{attemptID}/decision.
type DecisionRequest struct {
	ChapterNumber    int `json:"chapterNumber"`
	DecisionIndex    int `json:"decisionIndex"`
	OptionIndex      int `json:"optionIndex"`
	TimeSpentSeconds int `json:"timeSpentSeconds"`
}

func handleDecision(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := learnerFromRequest(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var req DecisionRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		attemptID := chi.URLParam(r, "attemptID")
		var outcome journey.DecisionOutcome
		a, err := store.MutateAttempt(r.Context(), attemptID,
			func(def *journey.Definition, a *journey.Attempt) error {
				if a.LearnerID != sess.LearnerID {
					return errNotOwner
				}
				outcome, err = journey.Decide(def, a,
					req.ChapterNumber, req.DecisionIndex, req.OptionIndex,
					req.TimeSpentSeconds, time.Now().UTC())
				return err
			})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		broker.Publish(attemptID, ProgressEvent{
			Type:          eventDecisionRecorded,
			ChapterNumber: req.ChapterNumber,
			PointsAwarded: outcome.PointsAwarded,
			TotalPoints:   a.TotalPoints,
		})

		writeJSON(w, http.StatusOK, outcome)
	}
}
