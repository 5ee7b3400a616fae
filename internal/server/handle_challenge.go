package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chronoquest/journeys/internal/journey"
)

// ChallengeRequest is the request body for POST /api/attempts/{attemptID}/challenge.
// The raw submission is evaluated server-side; success is never taken from
// the client.
type ChallengeRequest struct {
	ChapterNumber    int                `json:"chapterNumber"`
	ChallengeIndex   int                `json:"challengeIndex"`
	Submission       journey.Submission `json:"submission"`
	TimeSpentSeconds int                `json:"timeSpentSeconds"`
	AttemptsCount    int                `json:"attemptsCount"`
}

func handleChallenge(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := learnerFromRequest(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var req ChallengeRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		attemptID := chi.URLParam(r, "attemptID")
		var outcome journey.ChallengeOutcome
		a, err := store.MutateAttempt(r.Context(), attemptID,
			func(def *journey.Definition, a *journey.Attempt) error {
				if a.LearnerID != sess.LearnerID {
					return errNotOwner
				}
				outcome, err = journey.RecordChallenge(def, a,
					req.ChapterNumber, req.ChallengeIndex, req.Submission,
					req.TimeSpentSeconds, req.AttemptsCount, time.Now().UTC())
				return err
			})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		broker.Publish(attemptID, ProgressEvent{
			Type:          eventChallengeResult,
			ChapterNumber: req.ChapterNumber,
			Success:       outcome.Success,
			PointsAwarded: outcome.PointsEarned,
			TotalPoints:   a.TotalPoints,
		})

		writeJSON(w, http.StatusOK, outcome)
	}
}
