package journey

import (
	"strings"
	"testing"
)

func intp(n int) *int { return &n }

func validDefinition() *Definition {
	return &Definition{
		ID:    "j1",
		Title: "Test Journey",
		Chapters: []Chapter{
			{
				ChapterNumber: 1,
				Narrative:     "start",
				Discoveries: []Discovery{
					{Type: DiscoveryLetter, Name: "A Letter", Content: "..."},
				},
				Challenges: []Challenge{
					{
						Type:         ChallengeDecodeMessage,
						Description:  "decode",
						Interactive:  Interactive{DecodedMessage: "LIBERTY"},
						RewardPoints: 20,
					},
				},
				Decisions: []Decision{
					{
						Prompt: "choose",
						Options: []Option{
							{Text: "a", Consequence: "to two", PointsAwarded: 10, NextChapter: intp(2), HistoricallyAccurate: true},
							{Text: "b", Consequence: "to three", PointsAwarded: 5, NextChapter: intp(3)},
						},
					},
				},
			},
			{
				ChapterNumber: 2,
				Narrative:     "branch a",
				Challenges: []Challenge{
					{
						Type:        ChallengeMapNavigate,
						Description: "navigate",
						Interactive: Interactive{
							Locations: []MapLocation{{Name: "wrong"}, {Name: "right", IsCorrect: true}},
						},
						RewardPoints: 15,
					},
				},
				Decisions: []Decision{
					{
						Prompt: "end?",
						Options: []Option{
							{Text: "end", Consequence: "done", PointsAwarded: 15, NextChapter: nil, HistoricallyAccurate: true},
						},
					},
				},
			},
			{
				ChapterNumber: 3,
				Narrative:     "branch b, dead end",
			},
		},
	}
}

func TestValidate(t *testing.T) {
	if err := validDefinition().Validate(); err != nil {
		t.Fatalf("valid definition rejected: %v", err)
	}
}

func TestValidateNoChapters(t *testing.T) {
	def := &Definition{ID: "empty"}
	if err := def.Validate(); err == nil {
		t.Fatal("expected error for journey with no chapters")
	}
}

func TestValidateDuplicateChapterNumbers(t *testing.T) {
	def := validDefinition()
	def.Chapters[2].ChapterNumber = 2
	err := def.Validate()
	if err == nil || !strings.Contains(err.Error(), "duplicate chapter number") {
		t.Fatalf("expected duplicate chapter error, got %v", err)
	}
}

func TestValidateDanglingNextChapter(t *testing.T) {
	def := validDefinition()
	def.Chapters[0].Decisions[0].Options[0].NextChapter = intp(99)
	err := def.Validate()
	if err == nil || !strings.Contains(err.Error(), "missing chapter 99") {
		t.Fatalf("expected dangling chapter error, got %v", err)
	}
}

func TestValidateUnknownChallengeType(t *testing.T) {
	def := validDefinition()
	def.Chapters[0].Challenges[0].Type = "riddle"
	err := def.Validate()
	if err == nil {
		t.Fatal("expected error for unknown challenge type")
	}
}

func TestValidateMapNavigateNeedsOneCorrectLocation(t *testing.T) {
	def := validDefinition()
	def.Chapters[1].Challenges[0].Interactive.Locations[1].IsCorrect = false
	if err := def.Validate(); err == nil {
		t.Fatal("expected error for map-navigate with no correct location")
	}
}

func TestValidateCorrectAnswerOutOfRange(t *testing.T) {
	def := validDefinition()
	def.Chapters[0].Challenges[0] = Challenge{
		Type:        ChallengeTimelineOrder,
		Interactive: Interactive{Options: []string{"a", "b"}, CorrectAnswer: 5},
	}
	if err := def.Validate(); err == nil {
		t.Fatal("expected error for correct answer out of range")
	}
}

func TestChapterByNumber(t *testing.T) {
	def := validDefinition()
	ch, ok := def.ChapterByNumber(2)
	if !ok || ch.ChapterNumber != 2 {
		t.Fatalf("ChapterByNumber(2) = %v, %v", ch, ok)
	}
	if _, ok := def.ChapterByNumber(42); ok {
		t.Fatal("ChapterByNumber(42) should not exist")
	}
}

func TestTotals(t *testing.T) {
	def := validDefinition()
	if got := def.TotalDiscoveries(); got != 1 {
		t.Errorf("TotalDiscoveries = %d, want 1", got)
	}
	if got := def.TotalChallenges(); got != 2 {
		t.Errorf("TotalChallenges = %d, want 2", got)
	}
}
