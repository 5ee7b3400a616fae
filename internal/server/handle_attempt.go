package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func handleGetAttempt(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := learnerFromRequest(r, store)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		a, err := store.GetAttempt(r.Context(), chi.URLParam(r, "attemptID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if a.LearnerID != sess.LearnerID {
			writeDomainError(w, errNotOwner)
			return
		}

		writeJSON(w, http.StatusOK, attemptResponse(a))
	}
}
