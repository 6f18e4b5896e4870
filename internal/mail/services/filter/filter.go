// Package filter streams address lines and keeps those whose domain is a
// known disposable domain.
package filter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	logpkg "github.com/haukened/dispofilter/internal/mail/common/log"
	"github.com/haukened/dispofilter/internal/mail/domain"
)

// DomainSet is the membership test the filter runs against.
type DomainSet interface {
	Contains(name string) bool
}

// Observer receives every classification in input order. It may be nil.
type Observer func(c domain.Classification)

// Result tallies one run. Matched is the match count written to the output.
type Result struct {
	Lines      int
	Matched    int
	NotMatched int
	Invalid    int
}

// Filter classifies address lines against a DomainSet.
type Filter struct {
	set    DomainSet
	logger logpkg.Logger
}

// New returns a Filter for set.
func New(set DomainSet, logger logpkg.Logger) *Filter {
	if logger == nil {
		logger = logpkg.NewNoopLogger()
	}
	return &Filter{set: set, logger: logger}
}

// Classify decides the outcome for a single line. The domain is everything
// after the first '@', trimmed, and must equal a set entry exactly.
func (f *Filter) Classify(line string, lineNum int) domain.Classification {
	c := domain.Classification{LineNum: lineNum, Line: line}

	candidate, ok := domain.SplitAddress(line)
	if !ok {
		c.Outcome = domain.OutcomeInvalid
		return c
	}
	c.Domain = candidate
	if f.set.Contains(candidate) {
		c.Outcome = domain.OutcomeMatched
	} else {
		c.Outcome = domain.OutcomeNotMatched
	}
	return c
}

// Run reads in line by line, writes every matched line to out unmodified
// (line terminator included) and returns the tallies. Invalid lines are
// logged and skipped; they never abort the run. Read failures yield
// domain.ErrInputUnavailable and write failures domain.ErrStoreWrite.
// The context is checked between lines.
func (f *Filter) Run(ctx context.Context, in io.Reader, out io.Writer, observe Observer) (Result, error) {
	var res Result
	r := bufio.NewReader(in)
	w := bufio.NewWriter(out)

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		line, readErr := r.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return res, fmt.Errorf("%w: read line %d: %w", domain.ErrInputUnavailable, res.Lines+1, readErr)
		}
		if line == "" {
			break
		}

		res.Lines++
		c := f.Classify(line, res.Lines)
		switch c.Outcome {
		case domain.OutcomeMatched:
			if _, err := w.WriteString(line); err != nil {
				return res, fmt.Errorf("%w: output line %d: %w", domain.ErrStoreWrite, res.Lines, err)
			}
			res.Matched++
		case domain.OutcomeInvalid:
			res.Invalid++
			f.logger.Warn(map[string]any{
				"line": c.LineNum,
				"text": domain.TrimLineBreak(line),
			}, "Invalid email address")
		default:
			res.NotMatched++
		}
		if observe != nil {
			observe(c)
		}

		if errors.Is(readErr, io.EOF) {
			break
		}
	}

	if err := w.Flush(); err != nil {
		return res, fmt.Errorf("%w: flush output: %w", domain.ErrStoreWrite, err)
	}

	f.logger.Debug(map[string]any{
		"lines":       res.Lines,
		"matched":     res.Matched,
		"not_matched": res.NotMatched,
		"invalid":     res.Invalid,
	}, "filter_done")
	return res, nil
}
