package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chronoquest/journeys/internal/journey"
)

func handleGetJourney(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := learnerFromRequest(r, store); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		}

		def, err := store.GetJourney(r.Context(), chi.URLParam(r, "journeyID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, redactDefinition(def))
	}
}

// redactDefinition strips everything that would let a client cheat: decoded
// messages, correct-answer indexes, correct-location flags, and the
// period-accurate markers on decision options.
func redactDefinition(def *journey.Definition) journey.Definition {
	out := *def
	out.Chapters = make([]journey.Chapter, len(def.Chapters))
	for i, ch := range def.Chapters {
		c := ch

		c.Challenges = make([]journey.Challenge, len(ch.Challenges))
		for j, challenge := range ch.Challenges {
			redacted := challenge
			redacted.Interactive.DecodedMessage = ""
			redacted.Interactive.CorrectAnswer = 0
			redacted.Interactive.Locations = make([]journey.MapLocation, len(challenge.Interactive.Locations))
			for k, loc := range challenge.Interactive.Locations {
				redacted.Interactive.Locations[k] = journey.MapLocation{Name: loc.Name}
			}
			c.Challenges[j] = redacted
		}

		c.Decisions = make([]journey.Decision, len(ch.Decisions))
		for j, dec := range ch.Decisions {
			redacted := dec
			redacted.Options = make([]journey.Option, len(dec.Options))
			for k, opt := range dec.Options {
				opt.HistoricallyAccurate = false
				redacted.Options[k] = opt
			}
			c.Decisions[j] = redacted
		}

		out.Chapters[i] = c
	}
	return out
}
