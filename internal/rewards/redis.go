package rewards

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chronoquest/journeys/internal/journey"
)

// RedisLedger is the production ledger adapter. Keys are shared with the
// quiz and game services, which apply the same streak and level rules.
type RedisLedger struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedisLedger(rdb *redis.Client) *RedisLedger {
	return &RedisLedger{rdb: rdb, now: time.Now}
}

func pointsKey(learnerID string) string  { return "ledger:points:" + learnerID }
func streakKey(learnerID string) string  { return "ledger:streak:" + learnerID }
func longestKey(learnerID string) string { return "ledger:streak:longest:" + learnerID }
func lastDayKey(learnerID string) string { return "ledger:streak:last:" + learnerID }

func (l *RedisLedger) ApplyJourneyCompletion(ctx context.Context, learnerID string, points int) (journey.GamificationRewards, error) {
	total, err := l.rdb.IncrBy(ctx, pointsKey(learnerID), int64(points)).Result()
	if err != nil {
		return journey.GamificationRewards{}, fmt.Errorf("incrementing points: %w", err)
	}
	before := int(total) - points

	today := l.now().UTC().Format(time.DateOnly)
	lastDay, err := l.rdb.Get(ctx, lastDayKey(learnerID)).Result()
	if err != nil && err != redis.Nil {
		return journey.GamificationRewards{}, fmt.Errorf("reading streak day: %w", err)
	}

	streak := 1
	if lastDay != "" {
		cur, err := l.rdb.Get(ctx, streakKey(learnerID)).Int()
		if err != nil && err != redis.Nil {
			return journey.GamificationRewards{}, fmt.Errorf("reading streak: %w", err)
		}
		streak = nextStreak(lastDay, today, cur)
	}

	pipe := l.rdb.Pipeline()
	pipe.Set(ctx, streakKey(learnerID), streak, 0)
	pipe.Set(ctx, lastDayKey(learnerID), today, 0)
	longestCmd := pipe.Get(ctx, longestKey(learnerID))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return journey.GamificationRewards{}, fmt.Errorf("updating streak: %w", err)
	}

	longest, _ := longestCmd.Int()
	if streak > longest {
		longest = streak
		if err := l.rdb.Set(ctx, longestKey(learnerID), longest, 0).Err(); err != nil {
			return journey.GamificationRewards{}, fmt.Errorf("updating longest streak: %w", err)
		}
	}

	return journey.GamificationRewards{
		TotalPoints:   int(total),
		Level:         levelFor(int(total)),
		CurrentStreak: streak,
		LongestStreak: longest,
		NewBadges:     badgesCrossed(before, int(total)),
	}, nil
}

// nextStreak applies the consecutive-day rule: same day keeps the streak,
// the day after extends it, any gap resets to 1.
func nextStreak(lastDay, today string, current int) int {
	if current < 1 {
		current = 1
	}
	if lastDay == today {
		return current
	}
	last, err := time.Parse(time.DateOnly, lastDay)
	if err != nil {
		return 1
	}
	if last.AddDate(0, 0, 1).Format(time.DateOnly) == today {
		return current + 1
	}
	return 1
}
