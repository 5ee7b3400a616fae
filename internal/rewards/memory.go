package rewards

import (
	"context"
	"sync"
	"time"

	"github.com/chronoquest/journeys/internal/journey"
)

// MemoryLedger is an in-process ledger for tests and local development.
// It applies the same level, streak, and badge rules as the Redis adapter.
type MemoryLedger struct {
	mu  sync.Mutex
	Now func() time.Time

	points  map[string]int
	streak  map[string]int
	longest map[string]int
	lastDay map[string]string
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		Now:     time.Now,
		points:  make(map[string]int),
		streak:  make(map[string]int),
		longest: make(map[string]int),
		lastDay: make(map[string]string),
	}
}

func (l *MemoryLedger) ApplyJourneyCompletion(_ context.Context, learnerID string, points int) (journey.GamificationRewards, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	before := l.points[learnerID]
	total := before + points
	l.points[learnerID] = total

	today := l.Now().UTC().Format(time.DateOnly)
	streak := 1
	if last := l.lastDay[learnerID]; last != "" {
		streak = nextStreak(last, today, l.streak[learnerID])
	}
	l.streak[learnerID] = streak
	l.lastDay[learnerID] = today
	if streak > l.longest[learnerID] {
		l.longest[learnerID] = streak
	}

	return journey.GamificationRewards{
		TotalPoints:   total,
		Level:         levelFor(total),
		CurrentStreak: streak,
		LongestStreak: l.longest[learnerID],
		NewBadges:     badgesCrossed(before, total),
	}, nil
}
