package journey

// Fixed awards applied at completion.
const (
	CompletionBonus   = 50
	AccuracyBonus     = 25
	accuracyThreshold = 80.0

	// Fallback when a definition carries no estimated duration.
	defaultMinutesPerChapter = 5
)

// Score derives the terminal result block from a finished traversal. It is
// deterministic given the definition and the attempt: no clock reads, no
// randomness. Gamification rewards are not filled in here; the caller
// attaches the ledger's response.
func Score(def *Definition, a *Attempt) Result {
	var b Breakdown
	for _, d := range a.Decisions {
		b.DecisionPoints += d.PointsAwarded
	}

	// Pay each challenge's first success only, even if replays were logged.
	paid := make(map[[2]int]bool)
	for _, c := range a.ChallengeResults {
		key := [2]int{c.ChapterNumber, c.ChallengeIndex}
		if c.Success && !paid[key] {
			chapter, ok := def.ChapterByNumber(c.ChapterNumber)
			if ok && c.ChallengeIndex < len(chapter.Challenges) {
				b.ChallengePoints += chapter.Challenges[c.ChallengeIndex].RewardPoints
			}
			paid[key] = true
		}
	}

	if reachedEnd(def, a) {
		b.CompletionBonus = CompletionBonus
	}

	accuracy := historicalAccuracy(a)
	if len(a.Decisions) > 0 && accuracy >= accuracyThreshold {
		b.AccuracyBonus = AccuracyBonus
	}

	totalTime := 0
	for _, v := range a.ChaptersVisited {
		totalTime += v.TimeSpentSeconds
	}

	return Result{
		TotalTimeTakenSeconds: totalTime,
		EngagementScore:       engagementScore(def, a, totalTime),
		HistoricalAccuracy:    accuracy,
		Breakdown:             b,
		NarrativePath:         narrativePath(a),
	}
}

// historicalAccuracy is the percentage of decisions matching the
// definition-marked period-accurate option, 0 when there were none.
func historicalAccuracy(a *Attempt) float64 {
	if len(a.Decisions) == 0 {
		return 0
	}
	accurate := 0
	for _, d := range a.Decisions {
		if d.WasHistoricallyAccurate {
			accurate++
		}
	}
	return float64(accurate) / float64(len(a.Decisions)) * 100
}

// engagementScore is a 0-100 composite of discovery coverage, challenge
// coverage, and a capped time factor. Weights start at 40/40/20; when a
// journey offers no discoveries or no challenges, that weight shifts to the
// time factor so the maximum stays reachable. Collecting more discoveries
// or attempting more challenges never lowers the score.
func engagementScore(def *Definition, a *Attempt, totalTimeSeconds int) int {
	wDiscovery, wChallenge, wTime := 40.0, 40.0, 20.0

	totalDiscoveries := def.TotalDiscoveries()
	if totalDiscoveries == 0 {
		wTime += wDiscovery
		wDiscovery = 0
	}
	totalChallenges := def.TotalChallenges()
	if totalChallenges == 0 {
		wTime += wChallenge
		wChallenge = 0
	}

	score := 0.0
	if totalDiscoveries > 0 {
		score += wDiscovery * float64(len(a.DiscoveriesCollected)) / float64(totalDiscoveries)
	}
	if totalChallenges > 0 {
		attempted := make(map[[2]int]bool)
		for _, c := range a.ChallengeResults {
			attempted[[2]int{c.ChapterNumber, c.ChallengeIndex}] = true
		}
		score += wChallenge * float64(len(attempted)) / float64(totalChallenges)
	}

	estMinutes := def.EstimatedMinutes
	if estMinutes == 0 {
		estMinutes = defaultMinutesPerChapter * len(def.Chapters)
	}
	timeFactor := float64(totalTimeSeconds) / float64(estMinutes*60)
	if timeFactor > 1 {
		timeFactor = 1
	}
	score += wTime * timeFactor

	return int(score + 0.5)
}

// reachedEnd reports whether the learner finished the path they took
// rather than abandoning mid-journey: either a chosen option ended the
// journey, or the attempt sits on a visited dead-end chapter with no
// decisions left.
func reachedEnd(def *Definition, a *Attempt) bool {
	for _, rec := range a.Decisions {
		ch, ok := def.ChapterByNumber(rec.ChapterNumber)
		if !ok || rec.DecisionIndex >= len(ch.Decisions) {
			continue
		}
		dec := ch.Decisions[rec.DecisionIndex]
		if rec.OptionChosen < len(dec.Options) && dec.Options[rec.OptionChosen].NextChapter == nil {
			return true
		}
	}

	current, ok := def.ChapterByNumber(a.CurrentChapter)
	if !ok || len(current.Decisions) > 0 {
		return false
	}
	for _, v := range a.ChaptersVisited {
		if v.ChapterNumber == a.CurrentChapter {
			return true
		}
	}
	return false
}

// narrativePath is the sequence of distinct chapters in first-visit order.
func narrativePath(a *Attempt) []int {
	seen := make(map[int]bool)
	path := []int{}
	for _, v := range a.ChaptersVisited {
		if !seen[v.ChapterNumber] {
			seen[v.ChapterNumber] = true
			path = append(path, v.ChapterNumber)
		}
	}
	return path
}
