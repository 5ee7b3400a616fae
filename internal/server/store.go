package server

import (
	"context"

	"github.com/chronoquest/journeys/internal/journey"
)

type learnerSession struct {
	LearnerID string
	Name      string
}

type adminSession struct {
	AdminID string
	Email   string
}

// JourneySummary is the admin list row; the full chapter graph stays out
// of list responses.
type JourneySummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Era          string `json:"era"`
	ChapterCount int    `json:"chapterCount"`
	PublishedAt  string `json:"publishedAt"`
}

type Store interface {
	CreateLearner(ctx context.Context, name string) (id, token string, err error)
	LearnerFromToken(ctx context.Context, token string) (learnerSession, error)

	GetJourney(ctx context.Context, id string) (*journey.Definition, error)
	ListJourneys(ctx context.Context) ([]JourneySummary, error)
	CreateJourney(ctx context.Context, def *journey.Definition) error

	CreateAttempt(ctx context.Context, a *journey.Attempt) error
	GetAttempt(ctx context.Context, id string) (*journey.Attempt, error)
	SaveAttempt(ctx context.Context, a *journey.Attempt) error

	// MutateAttempt loads the attempt and its journey definition inside one
	// transaction, applies fn, and persists the attempt only when fn
	// returns nil. A failed fn leaves the stored attempt untouched.
	MutateAttempt(ctx context.Context, id string, fn func(def *journey.Definition, a *journey.Attempt) error) (*journey.Attempt, error)

	AdminByEmail(ctx context.Context, email string) (adminID, passwordHash string, err error)
	AdminFromSession(ctx context.Context, sessionID string) (adminSession, error)
	CreateAdminSession(ctx context.Context, adminID string) (string, error)
	DeleteAdminSession(ctx context.Context, sessionID string) error
}
