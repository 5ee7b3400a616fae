package server

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/swaggest/swgui/v5emb"

	"github.com/chronoquest/journeys/internal/rewards"
)

func addRoutes(r chi.Router, logger *slog.Logger, store Store, db *sql.DB, rdb *redis.Client, ledger rewards.Ledger) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("ChronoQuest Journeys API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db, rdb))

	// Learner routes — Bearer session token, ownership enforced per attempt.
	r.Post("/api/session", handleSession(store))
	r.Get("/api/journeys/{journeyID}", handleGetJourney(store))
	r.Post("/api/journeys/{journeyID}/attempts", handleStart(store))
	r.Get("/api/attempts/{attemptID}", handleGetAttempt(store))
	r.Post("/api/attempts/{attemptID}/visit", handleVisit(store))
	r.Post("/api/attempts/{attemptID}/discovery", handleDiscovery(store, broker))
	r.Post("/api/attempts/{attemptID}/decision", handleDecision(store, broker))
	r.Post("/api/attempts/{attemptID}/challenge", handleChallenge(store, broker))
	r.Post("/api/attempts/{attemptID}/complete", handleComplete(logger, store, broker, ledger))
	r.Get("/api/attempts/{attemptID}/events", handleEvents(store, broker))

	// Admin publishing surface — cookie session.
	r.Post("/api/admin/login", handleAdminLogin(store))
	r.Post("/api/admin/logout", handleAdminLogout(store))
	r.Get("/api/admin/me", handleAdminMe(store))
	r.Route("/api/admin/journeys", func(r chi.Router) {
		r.Use(adminAuthMiddleware(store))
		r.Get("/", handleAdminListJourneys(store))
		r.Post("/", handleAdminCreateJourney(store))
		r.Get("/{id}", handleAdminGetJourney(store))
	})
}
