// Package journey defines the core domain: immutable journey definitions,
// the mutable attempt record, the progression engine, the challenge
// evaluator, and completion scoring. Everything here is pure Go with no
// external dependencies.
package journey

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the engine and evaluator. The HTTP layer maps
// these to status codes with errors.Is.
var (
	ErrNotFound                 = errors.New("not found")
	ErrInvalidChapter           = errors.New("chapter does not exist in this journey")
	ErrInvalidOption            = errors.New("decision or option does not exist")
	ErrInvalidDiscoveryIndex    = errors.New("discovery does not exist on this chapter")
	ErrInvalidChallengeIndex    = errors.New("challenge does not exist on this chapter")
	ErrInvalidState             = errors.New("attempt is already completed")
	ErrStaleOperation           = errors.New("operation no longer matches the attempt's position")
	ErrUnsupportedChallengeType = errors.New("unsupported challenge type")
)

type DiscoveryType string

const (
	DiscoveryArtifact   DiscoveryType = "artifact"
	DiscoveryLetter     DiscoveryType = "letter"
	DiscoveryScroll     DiscoveryType = "scroll"
	DiscoveryDocument   DiscoveryType = "document"
	DiscoveryPhotograph DiscoveryType = "photograph"
)

type ChallengeType string

const (
	ChallengeTimelineOrder    ChallengeType = "timeline-order"
	ChallengeArtifactIdentify ChallengeType = "artifact-identify"
	ChallengeMapNavigate      ChallengeType = "map-navigate"
	ChallengeDecodeMessage    ChallengeType = "decode-message"
)

// Definition is the immutable chapter graph a learner traverses. It is
// published once by the content service and never mutated afterwards.
type Definition struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Era              string    `json:"era,omitempty"`
	EstimatedMinutes int       `json:"estimatedMinutes,omitempty"`
	Chapters         []Chapter `json:"chapters"`
}

type Chapter struct {
	ChapterNumber int         `json:"chapterNumber"`
	Narrative     string      `json:"narrative"`
	Scene         Scene       `json:"scene"`
	Characters    []string    `json:"characters,omitempty"`
	Discoveries   []Discovery `json:"discoveries,omitempty"`
	Challenges    []Challenge `json:"challenges,omitempty"`
	Decisions     []Decision  `json:"decisions,omitempty"`
}

type Scene struct {
	Location   string `json:"location"`
	TimeOfDay  string `json:"timeOfDay"`
	Atmosphere string `json:"atmosphere"`
}

type Discovery struct {
	Type         DiscoveryType `json:"type"`
	Name         string        `json:"name"`
	Content      string        `json:"content"`
	Significance string        `json:"significance,omitempty"`
	Year         int           `json:"year,omitempty"`
}

type Challenge struct {
	Type         ChallengeType `json:"type"`
	Description  string        `json:"description"`
	Interactive  Interactive   `json:"interactiveElement"`
	RewardPoints int           `json:"rewardPoints"`
}

// Interactive is the per-type payload of a challenge, discriminated by
// Challenge.Type: decode-message uses DecodedMessage, map-navigate uses
// Locations, timeline-order and artifact-identify use Options plus
// CorrectAnswer.
type Interactive struct {
	DecodedMessage string        `json:"decodedMessage,omitempty"`
	Locations      []MapLocation `json:"locations,omitempty"`
	Options        []string      `json:"options,omitempty"`
	CorrectAnswer  int           `json:"correctAnswer,omitempty"`
}

type MapLocation struct {
	Name      string `json:"name"`
	IsCorrect bool   `json:"isCorrect"`
}

type Decision struct {
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// Option is one branch of a decision. NextChapter nil means the journey
// ends after this choice.
type Option struct {
	Text                 string `json:"text"`
	Consequence          string `json:"consequence"`
	PointsAwarded        int    `json:"pointsAwarded"`
	NextChapter          *int   `json:"nextChapter"`
	HistoricallyAccurate bool   `json:"historicallyAccurate,omitempty"`
}

// ChapterByNumber returns the chapter with the given number, or false if it
// does not exist.
func (d *Definition) ChapterByNumber(n int) (*Chapter, bool) {
	for i := range d.Chapters {
		if d.Chapters[i].ChapterNumber == n {
			return &d.Chapters[i], true
		}
	}
	return nil, false
}

// FirstChapter returns the chapter a fresh attempt starts at.
func (d *Definition) FirstChapter() int {
	return d.Chapters[0].ChapterNumber
}

// Validate checks the structural invariants of a definition: at least one
// chapter, unique chapter numbers, no dangling nextChapter targets, known
// challenge types with a coherent interactive element. Dangling targets are
// an authoring error, caught here at publish time rather than mid-journey.
func (d *Definition) Validate() error {
	if len(d.Chapters) == 0 {
		return errors.New("journey has no chapters")
	}

	numbers := make(map[int]bool, len(d.Chapters))
	for _, ch := range d.Chapters {
		if numbers[ch.ChapterNumber] {
			return fmt.Errorf("duplicate chapter number %d", ch.ChapterNumber)
		}
		numbers[ch.ChapterNumber] = true
	}

	for _, ch := range d.Chapters {
		for di, dec := range ch.Decisions {
			if len(dec.Options) == 0 {
				return fmt.Errorf("chapter %d decision %d has no options", ch.ChapterNumber, di)
			}
			for oi, opt := range dec.Options {
				if opt.NextChapter != nil && !numbers[*opt.NextChapter] {
					return fmt.Errorf("chapter %d decision %d option %d points at missing chapter %d",
						ch.ChapterNumber, di, oi, *opt.NextChapter)
				}
			}
		}
		for ci, c := range ch.Challenges {
			if err := validateChallenge(c); err != nil {
				return fmt.Errorf("chapter %d challenge %d: %w", ch.ChapterNumber, ci, err)
			}
		}
	}
	return nil
}

func validateChallenge(c Challenge) error {
	switch c.Type {
	case ChallengeDecodeMessage:
		if c.Interactive.DecodedMessage == "" {
			return errors.New("decode-message challenge has no decoded message")
		}
	case ChallengeMapNavigate:
		correct := 0
		for _, loc := range c.Interactive.Locations {
			if loc.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("map-navigate challenge must have exactly one correct location, has %d", correct)
		}
	case ChallengeTimelineOrder, ChallengeArtifactIdentify:
		if c.Interactive.CorrectAnswer < 0 || c.Interactive.CorrectAnswer >= len(c.Interactive.Options) {
			return errors.New("correct answer is out of range of the options")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedChallengeType, c.Type)
	}
	return nil
}

// TotalDiscoveries counts the discoveries available across all chapters.
func (d *Definition) TotalDiscoveries() int {
	n := 0
	for _, ch := range d.Chapters {
		n += len(ch.Discoveries)
	}
	return n
}

// TotalChallenges counts the challenges available across all chapters.
func (d *Definition) TotalChallenges() int {
	n := 0
	for _, ch := range d.Chapters {
		n += len(ch.Challenges)
	}
	return n
}
