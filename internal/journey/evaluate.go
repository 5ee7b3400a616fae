package journey

import (
	"fmt"
	"strings"
)

// Submission is a learner's answer to a challenge. Answer carries the text
// for decode-message; SelectedIndex carries the chosen index for the other
// types.
type Submission struct {
	Answer        string `json:"answer,omitempty"`
	SelectedIndex *int   `json:"selectedIndex,omitempty"`
}

// Evaluate maps a challenge and a submission to success or failure. It is
// stateless; RecordChallenge is the only place its result is persisted.
// An unknown challenge type is an error, never a silent pass or fail.
func Evaluate(c Challenge, sub Submission) (bool, error) {
	switch c.Type {
	case ChallengeDecodeMessage:
		return strings.EqualFold(
			strings.TrimSpace(sub.Answer),
			strings.TrimSpace(c.Interactive.DecodedMessage),
		), nil

	case ChallengeMapNavigate:
		if sub.SelectedIndex == nil {
			return false, nil
		}
		i := *sub.SelectedIndex
		if i < 0 || i >= len(c.Interactive.Locations) {
			return false, nil
		}
		return c.Interactive.Locations[i].IsCorrect, nil

	case ChallengeTimelineOrder, ChallengeArtifactIdentify:
		if sub.SelectedIndex == nil {
			return false, nil
		}
		return *sub.SelectedIndex == c.Interactive.CorrectAnswer, nil

	default:
		return false, fmt.Errorf("%w: %q", ErrUnsupportedChallengeType, c.Type)
	}
}
