package journey

import (
	"testing"
	"time"
)

func TestScoreScenarioAccurateBranch(t *testing.T) {
	def, a := newTestAttempt(t)
	Visit(def, a, 1, 30, t0)
	if _, err := Decide(def, a, 1, 0, 0, 10, t0); err != nil {
		t.Fatal(err)
	}

	if err := Complete(def, a, t0.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}
	if a.Result.HistoricalAccuracy != 100 {
		t.Errorf("accuracy = %v, want 100", a.Result.HistoricalAccuracy)
	}
	if a.Result.Breakdown.DecisionPoints != 10 {
		t.Errorf("decisionPoints = %d, want 10", a.Result.Breakdown.DecisionPoints)
	}
	if a.Result.Breakdown.AccuracyBonus != AccuracyBonus {
		t.Errorf("accuracyBonus = %d, want %d", a.Result.Breakdown.AccuracyBonus, AccuracyBonus)
	}
}

func TestScoreZeroDecisionsAccuracyIsZero(t *testing.T) {
	def, a := newTestAttempt(t)
	Visit(def, a, 1, 30, t0)
	if err := Complete(def, a, t0); err != nil {
		t.Fatal(err)
	}

	if a.Result.HistoricalAccuracy != 0 {
		t.Errorf("accuracy with no decisions = %v, want exactly 0", a.Result.HistoricalAccuracy)
	}
	if a.Result.Breakdown.AccuracyBonus != 0 {
		t.Error("no decisions must not earn the accuracy bonus")
	}
}

func TestScoreFirstSuccessOnlyPays(t *testing.T) {
	def, a := newTestAttempt(t)
	Visit(def, a, 1, 30, t0)
	RecordChallenge(def, a, 1, 0, Submission{Answer: "liberty"}, 10, 1, t0)
	RecordChallenge(def, a, 1, 0, Submission{Answer: "liberty"}, 5, 2, t0)

	if err := Complete(def, a, t0); err != nil {
		t.Fatal(err)
	}
	if a.Result.Breakdown.ChallengePoints != 20 {
		t.Errorf("challengePoints = %d, want 20 (single pay)", a.Result.Breakdown.ChallengePoints)
	}
}

func TestScoreCompletionBonusViaTerminalDecision(t *testing.T) {
	def, a := newTestAttempt(t)
	Visit(def, a, 1, 30, t0)
	Decide(def, a, 1, 0, 0, 0, t0)
	Visit(def, a, 2, 30, t0)
	Decide(def, a, 2, 0, 0, 0, t0) // terminal option

	if err := Complete(def, a, t0); err != nil {
		t.Fatal(err)
	}
	if a.Result.Breakdown.CompletionBonus != CompletionBonus {
		t.Errorf("completionBonus = %d, want %d", a.Result.Breakdown.CompletionBonus, CompletionBonus)
	}
}

func TestScoreCompletionBonusViaDeadEnd(t *testing.T) {
	def, a := newTestAttempt(t)
	Visit(def, a, 1, 30, t0)
	Decide(def, a, 1, 0, 1, 0, t0) // routes to chapter 3, which has no decisions
	Visit(def, a, 3, 30, t0)

	if err := Complete(def, a, t0); err != nil {
		t.Fatal(err)
	}
	if a.Result.Breakdown.CompletionBonus != CompletionBonus {
		t.Errorf("dead-end finish should earn the bonus, got %d", a.Result.Breakdown.CompletionBonus)
	}
}

func TestScoreNoBonusWhenAbandoned(t *testing.T) {
	def, a := newTestAttempt(t)
	Visit(def, a, 1, 30, t0)
	Decide(def, a, 1, 0, 0, 0, t0) // moved to chapter 2 but never finished it

	if err := Complete(def, a, t0); err != nil {
		t.Fatal(err)
	}
	if a.Result.Breakdown.CompletionBonus != 0 {
		t.Errorf("abandoned journey earned completion bonus %d", a.Result.Breakdown.CompletionBonus)
	}
}

func TestScoreTotalPointsIsBreakdownSum(t *testing.T) {
	def, a := newTestAttempt(t)
	Visit(def, a, 1, 30, t0)
	RecordChallenge(def, a, 1, 0, Submission{Answer: "liberty"}, 10, 1, t0)
	Decide(def, a, 1, 0, 0, 0, t0)
	Visit(def, a, 2, 30, t0)
	Decide(def, a, 2, 0, 0, 0, t0)

	if err := Complete(def, a, t0); err != nil {
		t.Fatal(err)
	}
	b := a.Result.Breakdown
	want := b.DecisionPoints + b.ChallengePoints + b.CompletionBonus + b.AccuracyBonus
	if a.TotalPoints != want {
		t.Errorf("totalPoints = %d, want breakdown sum %d", a.TotalPoints, want)
	}
}

func TestEngagementFullTraversalIsMax(t *testing.T) {
	def, a := newTestAttempt(t)
	def.EstimatedMinutes = 2

	// Visit everything, collect everything, attempt every challenge,
	// and spend at least the estimated duration.
	Visit(def, a, 1, 60, t0)
	CollectDiscovery(def, a, 1, 0, t0)
	RecordChallenge(def, a, 1, 0, Submission{Answer: "liberty"}, 10, 1, t0)
	Decide(def, a, 1, 0, 0, 0, t0)
	Visit(def, a, 2, 60, t0)
	RecordChallenge(def, a, 2, 0, Submission{SelectedIndex: intp(1)}, 10, 1, t0)
	Decide(def, a, 2, 0, 0, 0, t0)

	if err := Complete(def, a, t0); err != nil {
		t.Fatal(err)
	}
	if a.Result.EngagementScore != 100 {
		t.Errorf("engagementScore = %d, want 100", a.Result.EngagementScore)
	}
}

func TestEngagementMonotonicInDiscoveries(t *testing.T) {
	run := func(collect bool) int {
		def, a := newTestAttempt(t)
		Visit(def, a, 1, 30, t0)
		if collect {
			CollectDiscovery(def, a, 1, 0, t0)
		}
		if err := Complete(def, a, t0); err != nil {
			t.Fatal(err)
		}
		return a.Result.EngagementScore
	}

	without := run(false)
	with := run(true)
	if with < without {
		t.Errorf("collecting a discovery lowered engagement: %d < %d", with, without)
	}
}

func TestEngagementWeightsShiftWhenNothingToCollect(t *testing.T) {
	def := &Definition{
		ID:               "bare",
		Title:            "Bare",
		EstimatedMinutes: 1,
		Chapters:         []Chapter{{ChapterNumber: 1, Narrative: "only"}},
	}
	a := NewAttempt(def, "a1", "l1", t0)
	Visit(def, a, 1, 60, t0)

	if err := Complete(def, a, t0); err != nil {
		t.Fatal(err)
	}
	// No discoveries or challenges exist, so a full time factor alone
	// reaches the maximum.
	if a.Result.EngagementScore != 100 {
		t.Errorf("engagementScore = %d, want 100", a.Result.EngagementScore)
	}
}

func TestNarrativePathDedupes(t *testing.T) {
	def, a := newTestAttempt(t)
	Visit(def, a, 1, 10, t0)
	Decide(def, a, 1, 0, 0, 0, t0)
	Visit(def, a, 2, 10, t0)
	Visit(def, a, 1, 5, t0) // backtrack re-visit
	Decide(def, a, 2, 0, 0, 0, t0)

	if err := Complete(def, a, t0); err != nil {
		t.Fatal(err)
	}
	got := a.Result.NarrativePath
	want := []int{1, 2}
	if len(got) != len(want) {
		t.Fatalf("narrativePath = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("narrativePath = %v, want %v", got, want)
		}
	}
}
