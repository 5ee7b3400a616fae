package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chronoquest/journeys/internal/journey"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) CreateLearner(ctx context.Context, name string) (string, string, error) {
	id := uuid.NewString()
	token := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO learners (id, name, session_token)
		VALUES (?, ?, ?)
	`, id, name, token)
	if err != nil {
		return "", "", fmt.Errorf("inserting learner: %w", err)
	}
	return id, token, nil
}

func (s *SQLiteStore) LearnerFromToken(ctx context.Context, token string) (learnerSession, error) {
	var sess learnerSession
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name FROM learners WHERE session_token = ?
	`, token).Scan(&sess.LearnerID, &sess.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return sess, errNoSession
	}
	return sess, err
}

func (s *SQLiteStore) GetJourney(ctx context.Context, id string) (*journey.Definition, error) {
	return getJourney(ctx, s.db, id)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getJourney(ctx context.Context, q querier, id string) (*journey.Definition, error) {
	var def journey.Definition
	var chaptersJSON string
	err := q.QueryRowContext(ctx, `
		SELECT id, title, era, estimated_minutes, chapters
		FROM journeys WHERE id = ?
	`, id).Scan(&def.ID, &def.Title, &def.Era, &def.EstimatedMinutes, &chaptersJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, journey.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(chaptersJSON), &def.Chapters); err != nil {
		return nil, fmt.Errorf("decoding chapters for journey %s: %w", id, err)
	}
	return &def, nil
}

func (s *SQLiteStore) ListJourneys(ctx context.Context) ([]JourneySummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, era, chapters, published_at
		FROM journeys
		ORDER BY published_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	journeys := []JourneySummary{}
	for rows.Next() {
		var j JourneySummary
		var chaptersJSON string
		if err := rows.Scan(&j.ID, &j.Title, &j.Era, &chaptersJSON, &j.PublishedAt); err != nil {
			return nil, err
		}
		var chapters []json.RawMessage
		json.Unmarshal([]byte(chaptersJSON), &chapters)
		j.ChapterCount = len(chapters)
		journeys = append(journeys, j)
	}
	return journeys, rows.Err()
}

func (s *SQLiteStore) CreateJourney(ctx context.Context, def *journey.Definition) error {
	chaptersJSON, err := json.Marshal(def.Chapters)
	if err != nil {
		return fmt.Errorf("encoding chapters: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO journeys (id, title, era, estimated_minutes, chapters)
		VALUES (?, ?, ?, ?, ?)
	`, def.ID, def.Title, def.Era, def.EstimatedMinutes, string(chaptersJSON))
	if err != nil {
		return fmt.Errorf("inserting journey: %w", err)
	}
	return nil
}

func (s *SQLiteStore) CreateAttempt(ctx context.Context, a *journey.Attempt) error {
	state, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encoding attempt: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO attempts (id, journey_id, learner_id, status, current_chapter, total_points, state, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.JourneyID, a.LearnerID, string(a.Status), a.CurrentChapter, a.TotalPoints,
		string(state), a.StartedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting attempt: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetAttempt(ctx context.Context, id string) (*journey.Attempt, error) {
	return getAttempt(ctx, s.db, id)
}

func getAttempt(ctx context.Context, q querier, id string) (*journey.Attempt, error) {
	var state string
	err := q.QueryRowContext(ctx, `SELECT state FROM attempts WHERE id = ?`, id).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, journey.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var a journey.Attempt
	if err := json.Unmarshal([]byte(state), &a); err != nil {
		return nil, fmt.Errorf("decoding attempt %s: %w", id, err)
	}
	return &a, nil
}

func (s *SQLiteStore) SaveAttempt(ctx context.Context, a *journey.Attempt) error {
	return saveAttempt(ctx, s.db, a)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveAttempt(ctx context.Context, e execer, a *journey.Attempt) error {
	state, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encoding attempt: %w", err)
	}
	var completedAt any
	if a.CompletedAt != nil {
		completedAt = a.CompletedAt.UTC().Format(time.RFC3339Nano)
	}
	res, err := e.ExecContext(ctx, `
		UPDATE attempts
		SET status = ?, current_chapter = ?, total_points = ?, state = ?, completed_at = ?
		WHERE id = ?
	`, string(a.Status), a.CurrentChapter, a.TotalPoints, string(state), completedAt, a.ID)
	if err != nil {
		return fmt.Errorf("updating attempt: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return journey.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) MutateAttempt(ctx context.Context, id string, fn func(def *journey.Definition, a *journey.Attempt) error) (*journey.Attempt, error) {
	// SQLite's single writer plus the busy_timeout pragma serializes rapid
	// retries on the same attempt; the transaction makes the read-apply-
	// write atomic so a failed transition persists nothing.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	a, err := getAttempt(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	def, err := getJourney(ctx, tx, a.JourneyID)
	if err != nil {
		return nil, err
	}

	if err := fn(def, a); err != nil {
		return nil, err
	}

	if err := saveAttempt(ctx, tx, a); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing attempt mutation: %w", err)
	}
	return a, nil
}

func (s *SQLiteStore) AdminByEmail(ctx context.Context, email string) (string, string, error) {
	var adminID, passwordHash string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, password_hash FROM admins WHERE email = ?
	`, email).Scan(&adminID, &passwordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", journey.ErrNotFound
	}
	return adminID, passwordHash, err
}

func (s *SQLiteStore) AdminFromSession(ctx context.Context, sessionID string) (adminSession, error) {
	var sess adminSession
	err := s.db.QueryRowContext(ctx, `
		SELECT a.id, a.email
		FROM admin_sessions s
		JOIN admins a ON a.id = s.admin_id
		WHERE s.id = ?
	`, sessionID).Scan(&sess.AdminID, &sess.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return adminSession{}, errNoAdminSession
	}
	return sess, err
}

func (s *SQLiteStore) CreateAdminSession(ctx context.Context, adminID string) (string, error) {
	var sessionID string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO admin_sessions (admin_id)
		VALUES (?)
		RETURNING id
	`, adminID).Scan(&sessionID)
	return sessionID, err
}

func (s *SQLiteStore) DeleteAdminSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, sessionID)
	return err
}
