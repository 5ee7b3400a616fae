package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/chronoquest/journeys/internal/journey"
)

func handleAdminListJourneys(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		journeys, err := store.ListJourneys(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, journeys)
	}
}

func handleAdminCreateJourney(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var def journey.Definition
		if err := readJSON(r, &def); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		def.Title = strings.TrimSpace(def.Title)
		if def.Title == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}

		// Publishing is the last gate before learners can start attempts;
		// a dangling chapter graph is rejected here, not at runtime.
		if err := def.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if def.ID == "" {
			def.ID = uuid.NewString()
		}

		if err := store.CreateJourney(r.Context(), &def); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusCreated, def)
	}
}

func handleAdminGetJourney(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		def, err := store.GetJourney(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, def)
	}
}
