package domain

import (
	"errors"
	"testing"
)

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		o    Outcome
		want string
	}{
		{OutcomeNotMatched, "not_matched"},
		{OutcomeMatched, "matched"},
		{OutcomeInvalid, "invalid"},
		{Outcome(9), "Outcome(9)"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.o, got, tt.want)
		}
	}
}

func TestClassification_Accessors(t *testing.T) {
	matched := Classification{LineNum: 1, Line: "a@x.com\n", Domain: "x.com", Outcome: OutcomeMatched}
	if !matched.IsMatched() || matched.IsInvalid() || matched.Err() != nil {
		t.Fatalf("matched accessors unexpected: %+v", matched)
	}

	invalid := Classification{LineNum: 7, Line: "noatsign\n", Outcome: OutcomeInvalid}
	if invalid.IsMatched() || !invalid.IsInvalid() {
		t.Fatalf("invalid accessors unexpected: %+v", invalid)
	}
	if err := invalid.Err(); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("invalid.Err() = %v, want ErrInvalidAddress", err)
	}

	other := Classification{LineNum: 2, Line: "b@example.com\n", Domain: "example.com"}
	if other.IsMatched() || other.IsInvalid() || other.Err() != nil {
		t.Fatalf("not-matched accessors unexpected: %+v", other)
	}
}
