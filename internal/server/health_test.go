package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/chronoquest/journeys/internal/database"
)

func TestHealthDegradesWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { rdb.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handleHealth(logger, db, rdb)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}

	var checks map[string]HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&checks); err != nil {
		t.Fatal(err)
	}
	if checks["sqlite"].Status != "ok" {
		t.Errorf("sqlite = %q, want ok", checks["sqlite"].Status)
	}
	if checks["redis"].Status != "error" {
		t.Errorf("redis = %q, want error", checks["redis"].Status)
	}
}
