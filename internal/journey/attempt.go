package journey

import "time"

type AttemptStatus string

const (
	StatusInProgress AttemptStatus = "in_progress"
	StatusCompleted  AttemptStatus = "completed"
)

// Attempt is one learner's stateful traversal of one journey. All history
// slices are append-only; the Result block is populated exactly once at
// completion, after which the attempt is immutable.
type Attempt struct {
	ID             string        `json:"id"`
	JourneyID      string        `json:"journeyId"`
	LearnerID      string        `json:"learnerId"`
	Status         AttemptStatus `json:"status"`
	CurrentChapter int           `json:"currentChapter"`

	ChaptersVisited      []ChapterVisit    `json:"chaptersVisited"`
	DiscoveriesCollected []DiscoveryRecord `json:"discoveriesCollected"`
	Decisions            []DecisionRecord  `json:"decisionsRecord"`
	ChallengeResults     []ChallengeRecord `json:"challengeResults"`

	TotalPoints int        `json:"totalPoints"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Result      *Result    `json:"result,omitempty"`
}

type ChapterVisit struct {
	ChapterNumber    int       `json:"chapterNumber"`
	TimeSpentSeconds int       `json:"timeSpentSeconds"`
	VisitedAt        time.Time `json:"visitedAt"`
}

type DiscoveryRecord struct {
	ChapterNumber  int       `json:"chapterNumber"`
	DiscoveryIndex int       `json:"discoveryIndex"`
	CollectedAt    time.Time `json:"collectedAt"`
}

type DecisionRecord struct {
	ChapterNumber           int       `json:"chapterNumber"`
	DecisionIndex           int       `json:"decisionIndex"`
	OptionChosen            int       `json:"optionChosen"`
	PointsAwarded           int       `json:"pointsAwarded"`
	WasHistoricallyAccurate bool      `json:"wasHistoricallyAccurate"`
	TimeSpentSeconds        int       `json:"timeSpentSeconds"`
	Timestamp               time.Time `json:"timestamp"`
}

type ChallengeRecord struct {
	ChapterNumber    int       `json:"chapterNumber"`
	ChallengeIndex   int       `json:"challengeIndex"`
	Success          bool      `json:"success"`
	TimeSpentSeconds int       `json:"timeSpentSeconds"`
	Attempts         int       `json:"attempts"`
	PointsAwarded    int       `json:"pointsAwarded"`
	RecordedAt       time.Time `json:"recordedAt"`
}

// Result holds the fields computed exactly once at completion.
type Result struct {
	TotalTimeTakenSeconds int                  `json:"totalTimeTakenSeconds"`
	EngagementScore       int                  `json:"engagementScore"`
	HistoricalAccuracy    float64              `json:"historicalAccuracyRate"`
	Breakdown             Breakdown            `json:"breakdown"`
	NarrativePath         []int                `json:"narrativePath"`
	Rewards               *GamificationRewards `json:"gamificationRewards,omitempty"`
}

type Breakdown struct {
	DecisionPoints  int `json:"decisionPoints"`
	ChallengePoints int `json:"challengePoints"`
	CompletionBonus int `json:"completionBonus"`
	AccuracyBonus   int `json:"accuracyBonus"`
}

// GamificationRewards is the reward ledger's response, passed through
// verbatim: the ledger is authoritative for cross-journey level, streaks,
// and badges.
type GamificationRewards struct {
	TotalPoints   int      `json:"totalPoints"`
	Level         int      `json:"level"`
	CurrentStreak int      `json:"currentStreak"`
	LongestStreak int      `json:"longestStreak"`
	NewBadges     []string `json:"newBadges"`
}

// HasStarted reports whether the learner has entered the first chapter.
// Clients show the introduction when false and resume into CurrentChapter
// when true.
func (a *Attempt) HasStarted() bool {
	return len(a.ChaptersVisited) > 0
}

func (a *Attempt) ensureInProgress() error {
	if a.Status != StatusInProgress {
		return ErrInvalidState
	}
	return nil
}

// discoveryCollected reports whether the (chapter, index) discovery is
// already in the record.
func (a *Attempt) discoveryCollected(chapter, index int) bool {
	for _, d := range a.DiscoveriesCollected {
		if d.ChapterNumber == chapter && d.DiscoveryIndex == index {
			return true
		}
	}
	return false
}

// challengeSucceeded reports whether the (chapter, index) challenge already
// has a successful result. Only the first success pays points.
func (a *Attempt) challengeSucceeded(chapter, index int) bool {
	for _, c := range a.ChallengeResults {
		if c.ChapterNumber == chapter && c.ChallengeIndex == index && c.Success {
			return true
		}
	}
	return false
}
