package journey

import (
	"fmt"
	"time"
)

// The engine is a set of pure transitions over (definition, attempt). Every
// operation validates fully before touching the attempt, so a failed call
// leaves the record untouched. Callers are responsible for persisting the
// mutated attempt and for serializing calls on one attempt.

// NewAttempt creates a fresh in-progress attempt positioned at the
// journey's first chapter.
func NewAttempt(def *Definition, id, learnerID string, now time.Time) *Attempt {
	return &Attempt{
		ID:                   id,
		JourneyID:            def.ID,
		LearnerID:            learnerID,
		Status:               StatusInProgress,
		CurrentChapter:       def.FirstChapter(),
		ChaptersVisited:      []ChapterVisit{},
		DiscoveriesCollected: []DiscoveryRecord{},
		Decisions:            []DecisionRecord{},
		ChallengeResults:     []ChallengeRecord{},
		StartedAt:            now,
	}
}

// Visit appends a chapter visit. Re-visits append again; the visit log
// feeds both the resume heuristic and engagement time.
func Visit(def *Definition, a *Attempt, chapterNumber, timeSpentSeconds int, now time.Time) error {
	if err := a.ensureInProgress(); err != nil {
		return err
	}
	if _, ok := def.ChapterByNumber(chapterNumber); !ok {
		return fmt.Errorf("%w: %d", ErrInvalidChapter, chapterNumber)
	}

	a.ChaptersVisited = append(a.ChaptersVisited, ChapterVisit{
		ChapterNumber:    chapterNumber,
		TimeSpentSeconds: timeSpentSeconds,
		VisitedAt:        now,
	})
	return nil
}

// CollectDiscovery records a discovery and returns its payload for display.
// Collecting the same discovery twice is a no-op that returns the existing
// payload, so client retries cannot double-count.
func CollectDiscovery(def *Definition, a *Attempt, chapterNumber, discoveryIndex int, now time.Time) (Discovery, error) {
	if err := a.ensureInProgress(); err != nil {
		return Discovery{}, err
	}
	ch, ok := def.ChapterByNumber(chapterNumber)
	if !ok {
		return Discovery{}, fmt.Errorf("%w: %d", ErrInvalidChapter, chapterNumber)
	}
	if discoveryIndex < 0 || discoveryIndex >= len(ch.Discoveries) {
		return Discovery{}, fmt.Errorf("%w: chapter %d index %d", ErrInvalidDiscoveryIndex, chapterNumber, discoveryIndex)
	}

	if !a.discoveryCollected(chapterNumber, discoveryIndex) {
		a.DiscoveriesCollected = append(a.DiscoveriesCollected, DiscoveryRecord{
			ChapterNumber:  chapterNumber,
			DiscoveryIndex: discoveryIndex,
			CollectedAt:    now,
		})
	}
	return ch.Discoveries[discoveryIndex], nil
}

// DecisionOutcome is what the client needs to render the consequence
// screen. NextChapter nil means the journey ends; the client is expected
// to call Complete next.
type DecisionOutcome struct {
	Consequence   string `json:"consequence"`
	PointsAwarded int    `json:"pointsAwarded"`
	NextChapter   *int   `json:"nextChapter"`
	JourneyEnded  bool   `json:"journeyEnded"`
}

// Decide records a decision, awards its points, and routes the attempt to
// the chosen option's next chapter. Decisions are only valid for the
// chapter the attempt is currently positioned at; anything else is a stale
// retry of a step already taken.
func Decide(def *Definition, a *Attempt, chapterNumber, decisionIndex, optionIndex, timeSpentSeconds int, now time.Time) (DecisionOutcome, error) {
	if err := a.ensureInProgress(); err != nil {
		return DecisionOutcome{}, err
	}
	ch, ok := def.ChapterByNumber(chapterNumber)
	if !ok {
		return DecisionOutcome{}, fmt.Errorf("%w: %d", ErrInvalidChapter, chapterNumber)
	}
	if chapterNumber != a.CurrentChapter {
		return DecisionOutcome{}, fmt.Errorf("%w: attempt is at chapter %d, decision targets %d",
			ErrStaleOperation, a.CurrentChapter, chapterNumber)
	}
	if decisionIndex < 0 || decisionIndex >= len(ch.Decisions) {
		return DecisionOutcome{}, fmt.Errorf("%w: chapter %d decision %d", ErrInvalidOption, chapterNumber, decisionIndex)
	}
	dec := ch.Decisions[decisionIndex]
	if optionIndex < 0 || optionIndex >= len(dec.Options) {
		return DecisionOutcome{}, fmt.Errorf("%w: chapter %d decision %d option %d",
			ErrInvalidOption, chapterNumber, decisionIndex, optionIndex)
	}
	opt := dec.Options[optionIndex]
	if opt.NextChapter != nil {
		if _, ok := def.ChapterByNumber(*opt.NextChapter); !ok {
			// Dangling target slipped past publish validation; fail fast
			// rather than stranding the attempt on a chapter that does not
			// exist.
			return DecisionOutcome{}, fmt.Errorf("%w: option routes to missing chapter %d",
				ErrInvalidChapter, *opt.NextChapter)
		}
	}

	a.Decisions = append(a.Decisions, DecisionRecord{
		ChapterNumber:           chapterNumber,
		DecisionIndex:           decisionIndex,
		OptionChosen:            optionIndex,
		PointsAwarded:           opt.PointsAwarded,
		WasHistoricallyAccurate: opt.HistoricallyAccurate,
		TimeSpentSeconds:        timeSpentSeconds,
		Timestamp:               now,
	})
	a.TotalPoints += opt.PointsAwarded

	if opt.NextChapter != nil {
		a.CurrentChapter = *opt.NextChapter
	}

	return DecisionOutcome{
		Consequence:   opt.Consequence,
		PointsAwarded: opt.PointsAwarded,
		NextChapter:   opt.NextChapter,
		JourneyEnded:  opt.NextChapter == nil,
	}, nil
}

// ChallengeOutcome reports a single challenge submission.
type ChallengeOutcome struct {
	Success      bool `json:"success"`
	PointsEarned int  `json:"pointsEarned"`
}

// RecordChallenge evaluates a submission and appends the result. Retries
// after failure are a supported path so every submission is logged, but
// only the first success per (chapter, challenge) pays points: a repeated
// success is a re-confirmation, not a second win.
func RecordChallenge(def *Definition, a *Attempt, chapterNumber, challengeIndex int, sub Submission, timeSpentSeconds, attempts int, now time.Time) (ChallengeOutcome, error) {
	if err := a.ensureInProgress(); err != nil {
		return ChallengeOutcome{}, err
	}
	ch, ok := def.ChapterByNumber(chapterNumber)
	if !ok {
		return ChallengeOutcome{}, fmt.Errorf("%w: %d", ErrInvalidChapter, chapterNumber)
	}
	if challengeIndex < 0 || challengeIndex >= len(ch.Challenges) {
		return ChallengeOutcome{}, fmt.Errorf("%w: chapter %d index %d", ErrInvalidChallengeIndex, chapterNumber, challengeIndex)
	}
	c := ch.Challenges[challengeIndex]

	success, err := Evaluate(c, sub)
	if err != nil {
		return ChallengeOutcome{}, err
	}

	points := 0
	if success && !a.challengeSucceeded(chapterNumber, challengeIndex) {
		points = c.RewardPoints
	}

	a.ChallengeResults = append(a.ChallengeResults, ChallengeRecord{
		ChapterNumber:    chapterNumber,
		ChallengeIndex:   challengeIndex,
		Success:          success,
		TimeSpentSeconds: timeSpentSeconds,
		Attempts:         attempts,
		PointsAwarded:    points,
		RecordedAt:       now,
	})
	a.TotalPoints += points

	return ChallengeOutcome{Success: success, PointsEarned: points}, nil
}

// Complete transitions the attempt to completed and populates its Result
// from the scoring aggregator. Gamification rewards are attached separately
// by the caller because the ledger call may fail without undoing the
// completion. Calling Complete on a completed attempt fails with
// ErrInvalidState.
func Complete(def *Definition, a *Attempt, now time.Time) error {
	if err := a.ensureInProgress(); err != nil {
		return err
	}

	result := Score(def, a)

	a.Status = StatusCompleted
	a.CompletedAt = &now
	a.Result = &result
	a.TotalPoints = result.Breakdown.DecisionPoints +
		result.Breakdown.ChallengePoints +
		result.Breakdown.CompletionBonus +
		result.Breakdown.AccuracyBonus
	return nil
}
