package journey

import (
	"errors"
	"testing"
)

func TestEvaluateDecodeMessage(t *testing.T) {
	c := Challenge{
		Type:        ChallengeDecodeMessage,
		Interactive: Interactive{DecodedMessage: "LIBERTY"},
	}

	tests := []struct {
		answer string
		want   bool
	}{
		{"LIBERTY", true},
		{"liberty ", true}, // trailing space and case folded
		{"  Liberty", true},
		{"Liberty!", false},
		{"", false},
	}
	for _, tt := range tests {
		got, err := Evaluate(c, Submission{Answer: tt.answer})
		if err != nil {
			t.Fatalf("Evaluate(%q): %v", tt.answer, err)
		}
		if got != tt.want {
			t.Errorf("Evaluate(%q) = %v, want %v", tt.answer, got, tt.want)
		}
	}
}

func TestEvaluateMapNavigate(t *testing.T) {
	c := Challenge{
		Type: ChallengeMapNavigate,
		Interactive: Interactive{
			Locations: []MapLocation{{Name: "wrong"}, {Name: "right", IsCorrect: true}},
		},
	}

	if got, _ := Evaluate(c, Submission{SelectedIndex: intp(1)}); !got {
		t.Error("correct location should succeed")
	}
	if got, _ := Evaluate(c, Submission{SelectedIndex: intp(0)}); got {
		t.Error("wrong location should fail")
	}
	if got, _ := Evaluate(c, Submission{SelectedIndex: intp(9)}); got {
		t.Error("out-of-range selection should fail, not panic")
	}
	if got, _ := Evaluate(c, Submission{}); got {
		t.Error("missing selection should fail")
	}
}

func TestEvaluateIndexChallenges(t *testing.T) {
	for _, typ := range []ChallengeType{ChallengeTimelineOrder, ChallengeArtifactIdentify} {
		c := Challenge{
			Type:        typ,
			Interactive: Interactive{Options: []string{"a", "b", "c"}, CorrectAnswer: 2},
		}
		if got, _ := Evaluate(c, Submission{SelectedIndex: intp(2)}); !got {
			t.Errorf("%s: correct index should succeed", typ)
		}
		if got, _ := Evaluate(c, Submission{SelectedIndex: intp(0)}); got {
			t.Errorf("%s: wrong index should fail", typ)
		}
	}
}

func TestEvaluateUnknownType(t *testing.T) {
	_, err := Evaluate(Challenge{Type: "riddle"}, Submission{Answer: "x"})
	if !errors.Is(err, ErrUnsupportedChallengeType) {
		t.Fatalf("expected ErrUnsupportedChallengeType, got %v", err)
	}
}
