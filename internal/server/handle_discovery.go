package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chronoquest/journeys/internal/journey"
)

// DiscoveryRequest is the request body for POST /api/attempts/{attemptID}/discovery.
type DiscoveryRequest struct {
	ChapterNumber  int `json:"chapterNumber"`
	DiscoveryIndex int `json:"discoveryIndex"`
}

func handleDiscovery(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := learnerFromRequest(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		var req DiscoveryRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		attemptID := chi.URLParam(r, "attemptID")
		var found journey.Discovery
		_, err = store.MutateAttempt(r.Context(), attemptID,
			func(def *journey.Definition, a *journey.Attempt) error {
				if a.LearnerID != sess.LearnerID {
					return errNotOwner
				}
				found, err = journey.CollectDiscovery(def, a, req.ChapterNumber, req.DiscoveryIndex, time.Now().UTC())
				return err
			})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		broker.Publish(attemptID, ProgressEvent{
			Type:          eventDiscoveryCollected,
			ChapterNumber: req.ChapterNumber,
		})

		writeJSON(w, http.StatusOK, found)
	}
}
