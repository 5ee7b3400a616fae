package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/chronoquest/journeys/internal/journey"
)

const (
	demoAdminEmail    = "demo@chronoquest.local"
	demoAdminPassword = "chrono-demo"
	demoLearnerToken  = "demo-learner-token"
	demoJourneyID     = "philadelphia-1776"
)

// SeedDemo creates a demo admin, learner, and journey if no journeys exist.
// Idempotent: does nothing when a journey is already published.
func SeedDemo(ctx context.Context, logger *slog.Logger, db *sql.DB, store *SQLiteStore) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journeys`).Scan(&count); err != nil {
		return fmt.Errorf("counting journeys: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}
	if _, err := db.ExecContext(ctx, `
		INSERT INTO admins (id, email, password_hash)
		VALUES (lower(hex(randomblob(16))), ?, ?)
	`, demoAdminEmail, string(hash)); err != nil {
		return fmt.Errorf("inserting demo admin: %w", err)
	}

	if _, err := db.ExecContext(ctx, `
		INSERT INTO learners (id, name, session_token)
		VALUES (lower(hex(randomblob(16))), 'Demo Learner', ?)
	`, demoLearnerToken); err != nil {
		return fmt.Errorf("inserting demo learner: %w", err)
	}

	def := DemoJourney()
	if err := store.CreateJourney(ctx, def); err != nil {
		return fmt.Errorf("inserting demo journey: %w", err)
	}

	logger.Info("demo admin, learner, and journey seeded", "journey_id", def.ID)
	return nil
}

// DemoJourney is a three-chapter branching journey exercising every
// discovery, challenge, and decision shape. Shared with the handler tests.
func DemoJourney() *journey.Definition {
	next := func(n int) *int { return &n }

	return &journey.Definition{
		ID:               demoJourneyID,
		Title:            "Philadelphia, Summer of 1776",
		Era:              "American Revolution",
		EstimatedMinutes: 15,
		Chapters: []journey.Chapter{
			{
				ChapterNumber: 1,
				Narrative:     "You arrive at the Pennsylvania State House as delegates argue behind closed doors.",
				Scene: journey.Scene{
					Location:   "Pennsylvania State House",
					TimeOfDay:  "morning",
					Atmosphere: "tense",
				},
				Characters: []string{"Benjamin Franklin", "John Adams"},
				Discoveries: []journey.Discovery{
					{
						Type:         journey.DiscoveryLetter,
						Name:         "Abigail's Letter",
						Content:      "Remember the ladies...",
						Significance: "Written to John Adams in March 1776.",
						Year:         1776,
					},
					{
						Type:    journey.DiscoveryDocument,
						Name:    "Draft Resolution",
						Content: "Resolved, that these United Colonies are, and of right ought to be, free...",
						Year:    1776,
					},
				},
				Challenges: []journey.Challenge{
					{
						Type:        journey.ChallengeDecodeMessage,
						Description: "Decode the courier's cipher.",
						Interactive: journey.Interactive{DecodedMessage: "LIBERTY"},
						RewardPoints: 20,
					},
				},
				Decisions: []journey.Decision{
					{
						Prompt: "Franklin asks whether you will carry word to the printers tonight.",
						Options: []journey.Option{
							{
								Text:                 "Carry the broadside to the printers",
								Consequence:          "You slip into the night with the text of the declaration.",
								PointsAwarded:        10,
								NextChapter:          next(2),
								HistoricallyAccurate: true,
							},
							{
								Text:          "Wait for the formal vote",
								Consequence:   "You linger in the hall as the debate drags on.",
								PointsAwarded: 5,
								NextChapter:   next(3),
							},
						},
					},
				},
			},
			{
				ChapterNumber: 2,
				Narrative:     "The print shop smells of ink. Dunlap sets type by candlelight.",
				Scene: journey.Scene{
					Location:   "Dunlap's print shop",
					TimeOfDay:  "night",
					Atmosphere: "hurried",
				},
				Characters: []string{"John Dunlap"},
				Discoveries: []journey.Discovery{
					{
						Type:    journey.DiscoveryArtifact,
						Name:    "Composing Stick",
						Content: "A typesetter's composing stick, still warm from use.",
					},
				},
				Challenges: []journey.Challenge{
					{
						Type:        journey.ChallengeTimelineOrder,
						Description: "Which came first?",
						Interactive: journey.Interactive{
							Options: []string{
								"Lee Resolution introduced",
								"Declaration signed on parchment",
								"Dunlap broadsides printed",
							},
							CorrectAnswer: 0,
						},
						RewardPoints: 15,
					},
					{
						Type:        journey.ChallengeMapNavigate,
						Description: "Find the fastest route to the wharf before dawn.",
						Interactive: journey.Interactive{
							Locations: []journey.MapLocation{
								{Name: "Market Street"},
								{Name: "Chestnut Street alley", IsCorrect: true},
								{Name: "High Street commons"},
							},
						},
						RewardPoints: 15,
					},
				},
				Decisions: []journey.Decision{
					{
						Prompt: "Dunlap offers you the first broadside off the press.",
						Options: []journey.Option{
							{
								Text:                 "Ride for New York with the broadside",
								Consequence:          "Washington will read it to the troops within the week.",
								PointsAwarded:        15,
								NextChapter:          nil,
								HistoricallyAccurate: true,
							},
							{
								Text:          "Keep it as a souvenir",
								Consequence:   "The courier leaves without you.",
								PointsAwarded: 0,
								NextChapter:   nil,
							},
						},
					},
				},
			},
			{
				ChapterNumber: 3,
				Narrative:     "You wait through the sweltering afternoon until the bell rings out.",
				Scene: journey.Scene{
					Location:   "State House yard",
					TimeOfDay:  "afternoon",
					Atmosphere: "expectant",
				},
				Discoveries: []journey.Discovery{
					{
						Type:    journey.DiscoveryScroll,
						Name:    "Order of Business",
						Content: "The day's agenda, heavily amended.",
					},
				},
				Challenges: []journey.Challenge{
					{
						Type:        journey.ChallengeArtifactIdentify,
						Description: "Which object hangs in the State House tower?",
						Interactive: journey.Interactive{
							Options:       []string{"A ship's bell", "The State House bell", "A church carillon"},
							CorrectAnswer: 1,
						},
						RewardPoints: 10,
					},
				},
				Decisions: []journey.Decision{
					{
						Prompt: "The reading ends. The crowd turns to you.",
						Options: []journey.Option{
							{
								Text:                 "Join the celebration in the yard",
								Consequence:          "The king's arms come down from the courtroom wall that night.",
								PointsAwarded:        10,
								NextChapter:          nil,
								HistoricallyAccurate: true,
							},
						},
					},
				},
			},
		},
	}
}
