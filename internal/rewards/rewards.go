// Package rewards is the boundary to the cross-activity reward ledger:
// cumulative points, level, streaks, and badges shared by journeys,
// quizzes, and games. The journey engine never computes level or streak
// itself; it passes the ledger's response through.
package rewards

import (
	"context"

	"github.com/chronoquest/journeys/internal/journey"
)

// Ledger applies a finished journey's points to the learner's cumulative
// record and returns the updated summary.
type Ledger interface {
	ApplyJourneyCompletion(ctx context.Context, learnerID string, points int) (journey.GamificationRewards, error)
}

// Points required to advance one level.
const pointsPerLevel = 500

func levelFor(totalPoints int) int {
	return totalPoints/pointsPerLevel + 1
}

// badgeThresholds maps cumulative point totals to badge names. A badge is
// reported once, on the completion that crosses its threshold.
var badgeThresholds = []struct {
	points int
	name   string
}{
	{100, "apprentice-historian"},
	{500, "time-traveler"},
	{1500, "keeper-of-records"},
	{5000, "master-chronicler"},
}

func badgesCrossed(before, after int) []string {
	var crossed []string
	for _, b := range badgeThresholds {
		if before < b.points && after >= b.points {
			crossed = append(crossed, b.name)
		}
	}
	return crossed
}
