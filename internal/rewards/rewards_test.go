package rewards

import (
	"context"
	"testing"
	"time"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{0, 1},
		{499, 1},
		{500, 2},
		{1499, 3},
		{5000, 11},
	}
	for _, tt := range tests {
		if got := levelFor(tt.points); got != tt.want {
			t.Errorf("levelFor(%d) = %d, want %d", tt.points, got, tt.want)
		}
	}
}

func TestBadgesCrossed(t *testing.T) {
	got := badgesCrossed(80, 600)
	want := []string{"apprentice-historian", "time-traveler"}
	if len(got) != len(want) {
		t.Fatalf("badgesCrossed(80, 600) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("badgesCrossed(80, 600) = %v, want %v", got, want)
		}
	}

	if got := badgesCrossed(600, 700); got != nil {
		t.Errorf("already-held badges reported again: %v", got)
	}
}

func TestNextStreak(t *testing.T) {
	tests := []struct {
		last, today string
		current     int
		want        int
	}{
		{"2026-03-01", "2026-03-01", 3, 3}, // same day keeps streak
		{"2026-03-01", "2026-03-02", 3, 4}, // next day extends
		{"2026-03-01", "2026-03-05", 7, 1}, // gap resets
		{"2026-02-28", "2026-03-01", 2, 3}, // month boundary
		{"garbage", "2026-03-01", 5, 1},
	}
	for _, tt := range tests {
		if got := nextStreak(tt.last, tt.today, tt.current); got != tt.want {
			t.Errorf("nextStreak(%q, %q, %d) = %d, want %d", tt.last, tt.today, tt.current, got, tt.want)
		}
	}
}

func TestMemoryLedgerAccumulates(t *testing.T) {
	l := NewMemoryLedger()
	day := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	l.Now = func() time.Time { return day }

	first, err := l.ApplyJourneyCompletion(context.Background(), "l1", 120)
	if err != nil {
		t.Fatal(err)
	}
	if first.TotalPoints != 120 || first.Level != 1 || first.CurrentStreak != 1 {
		t.Fatalf("first completion: %+v", first)
	}
	if len(first.NewBadges) != 1 || first.NewBadges[0] != "apprentice-historian" {
		t.Fatalf("newBadges = %v", first.NewBadges)
	}

	day = day.AddDate(0, 0, 1)
	second, err := l.ApplyJourneyCompletion(context.Background(), "l1", 400)
	if err != nil {
		t.Fatal(err)
	}
	if second.TotalPoints != 520 || second.Level != 2 {
		t.Fatalf("second completion: %+v", second)
	}
	if second.CurrentStreak != 2 || second.LongestStreak != 2 {
		t.Fatalf("streaks: %+v", second)
	}
	if len(second.NewBadges) != 1 || second.NewBadges[0] != "time-traveler" {
		t.Fatalf("newBadges = %v", second.NewBadges)
	}

	// Learners are independent.
	other, err := l.ApplyJourneyCompletion(context.Background(), "l2", 10)
	if err != nil {
		t.Fatal(err)
	}
	if other.TotalPoints != 10 {
		t.Fatalf("cross-learner leakage: %+v", other)
	}
}
