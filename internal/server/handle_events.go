package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func handleEvents(store Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// EventSource cannot set headers, so the token rides a query param.
		token := r.URL.Query().Get("token")
		if token == "" {
			writeError(w, http.StatusUnauthorized, "token query parameter required")
			return
		}
		sess, err := store.LearnerFromToken(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid session token")
			return
		}

		attemptID := chi.URLParam(r, "attemptID")
		a, err := store.GetAttempt(r.Context(), attemptID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if a.LearnerID != sess.LearnerID {
			writeDomainError(w, errNotOwner)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		flusher.Flush()

		ch := broker.Subscribe(attemptID)
		defer broker.Unsubscribe(attemptID, ch)

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data := <-ch:
				fmt.Fprintf(w, "event: progress\ndata: %s\n\n", data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
