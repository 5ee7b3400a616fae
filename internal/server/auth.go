package server

import (
	"errors"
	"net/http"
	"strings"
)

var errNoSession = errors.New("no valid session")

func learnerFromRequest(r *http.Request, store Store) (learnerSession, error) {
	auth := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		return learnerSession{}, errNoSession
	}
	return store.LearnerFromToken(r.Context(), token)
}
