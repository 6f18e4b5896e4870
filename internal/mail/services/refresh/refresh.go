// Package refresh replaces the local domain list with the current remote list.
package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/haukened/dispofilter/internal/mail/common/clock"
	logpkg "github.com/haukened/dispofilter/internal/mail/common/log"
	"github.com/haukened/dispofilter/internal/mail/domain"
)

// Fetcher returns the complete current list of disposable domains.
type Fetcher interface {
	Fetch(ctx context.Context) ([]string, error)
}

// Replacer overwrites the local domain list.
type Replacer interface {
	Replace(domains []string) error
}

// Options wires a Refresher.
type Options struct {
	Source Fetcher
	Store  Replacer
	Clock  clock.Clock
	Logger logpkg.Logger
}

// Result summarises a successful refresh.
type Result struct {
	Domains     int
	RefreshedAt time.Time
	Elapsed     time.Duration
}

// Refresher performs a full fetch, then a full store replace.
type Refresher struct {
	source Fetcher
	store  Replacer
	clock  clock.Clock
	logger logpkg.Logger
}

// New builds a Refresher. A nil Clock defaults to the real clock and a nil
// Logger discards output.
func New(opts Options) *Refresher {
	clk := opts.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewNoopLogger()
	}
	return &Refresher{
		source: opts.Source,
		store:  opts.Store,
		clock:  clk,
		logger: logger,
	}
}

// Refresh fetches the remote list and, only after the fetch and parse have
// both succeeded, replaces the store. Fetch failures yield
// domain.ErrRefreshFailed with the store untouched; replace failures are
// returned as reported by the store.
func (r *Refresher) Refresh(ctx context.Context) (Result, error) {
	start := r.clock.Now()

	domains, err := r.source.Fetch(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", domain.ErrRefreshFailed, err)
	}

	if err := r.store.Replace(domains); err != nil {
		return Result{}, err
	}

	now := r.clock.Now()
	res := Result{
		Domains:     len(domains),
		RefreshedAt: now,
		Elapsed:     now.Sub(start),
	}
	r.logger.Info(map[string]any{
		"domains":      res.Domains,
		"refreshed_at": res.RefreshedAt.UTC().Format(time.RFC3339),
		"elapsed":      res.Elapsed.String(),
	}, "Disposable domain list refreshed")
	return res, nil
}
