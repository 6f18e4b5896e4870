package domain

import "fmt"

// Outcome is the result of classifying one address line.
type Outcome uint8

const (
	// OutcomeNotMatched means the line has a domain that is not disposable.
	OutcomeNotMatched Outcome = iota
	// OutcomeMatched means the line's domain is in the disposable set.
	OutcomeMatched
	// OutcomeInvalid means the line has no '@' separator.
	OutcomeInvalid
)

// String returns a stable string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNotMatched:
		return "not_matched"
	case OutcomeMatched:
		return "matched"
	case OutcomeInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("Outcome(%d)", o)
	}
}

// Classification is the per-line record produced by the filter.
//
// Line holds the original text including its line terminator, exactly as read.
// Domain is empty for invalid lines.
type Classification struct {
	LineNum int
	Line    string
	Domain  string
	Outcome Outcome
}

// IsMatched is a convenience accessor.
func (c Classification) IsMatched() bool { return c.Outcome == OutcomeMatched }

// IsInvalid is a convenience accessor.
func (c Classification) IsInvalid() bool { return c.Outcome == OutcomeInvalid }

// Err returns ErrInvalidAddress for invalid lines and nil otherwise.
func (c Classification) Err() error {
	if c.Outcome == OutcomeInvalid {
		return fmt.Errorf("%w: line %d", ErrInvalidAddress, c.LineNum)
	}
	return nil
}
