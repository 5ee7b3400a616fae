package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chronoquest/journeys/internal/journey"
	"github.com/chronoquest/journeys/internal/rewards"
)

// CompleteResponse is the scored attempt. RewardsPending is true when the
// reward ledger was unreachable: the attempt is still completed with its
// locally computed score, and gamificationRewards is absent.
type CompleteResponse struct {
	journey.Attempt
	HasStarted     bool `json:"hasStarted"`
	RewardsPending bool `json:"rewardsPending"`
}

func handleComplete(logger *slog.Logger, store Store, broker *Broker, ledger rewards.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := learnerFromRequest(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		attemptID := chi.URLParam(r, "attemptID")
		a, err := store.MutateAttempt(r.Context(), attemptID,
			func(def *journey.Definition, a *journey.Attempt) error {
				if a.LearnerID != sess.LearnerID {
					return errNotOwner
				}
				return journey.Complete(def, a, time.Now().UTC())
			})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		// The ledger call happens after the completion is committed: a down
		// ledger must never cost the learner their progression record.
		rewardsPending := false
		rw, err := ledger.ApplyJourneyCompletion(r.Context(), a.LearnerID, a.TotalPoints)
		if err != nil {
			logger.Warn("reward ledger unavailable, completing without rewards",
				"attempt_id", a.ID, "learner_id", a.LearnerID, "error", err)
			rewardsPending = true
		} else {
			a.Result.Rewards = &rw
			if err := store.SaveAttempt(r.Context(), a); err != nil {
				logger.Error("persisting gamification rewards", "attempt_id", a.ID, "error", err)
			}
		}

		broker.Publish(attemptID, ProgressEvent{
			Type:        eventJourneyCompleted,
			TotalPoints: a.TotalPoints,
		})

		writeJSON(w, http.StatusOK, CompleteResponse{
			Attempt:        *a,
			HasStarted:     a.HasStarted(),
			RewardsPending: rewardsPending,
		})
	}
}
