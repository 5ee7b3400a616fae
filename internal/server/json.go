package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chronoquest/journeys/internal/journey"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// errNotOwner is returned by mutation closures when the attempt belongs to
// a different learner than the session.
var errNotOwner = errors.New("attempt belongs to a different learner")

// writeDomainError maps the domain's sentinel errors to HTTP status codes.
// Structural errors are the client's mistake; state errors are conflicts;
// an unsupported challenge type is a published-content bug.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errNotOwner):
		writeError(w, http.StatusForbidden, errNotOwner.Error())
	case errors.Is(err, journey.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, journey.ErrInvalidState),
		errors.Is(err, journey.ErrStaleOperation):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, journey.ErrInvalidChapter),
		errors.Is(err, journey.ErrInvalidOption),
		errors.Is(err, journey.ErrInvalidDiscoveryIndex),
		errors.Is(err, journey.ErrInvalidChallengeIndex):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, journey.ErrUnsupportedChallengeType):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
