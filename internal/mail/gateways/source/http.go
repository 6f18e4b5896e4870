// Package source fetches the current disposable domain list from a remote
// resource and parses it into an ordered list of domains.
package source

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	logpkg "github.com/haukened/dispofilter/internal/mail/common/log"
)

const userAgent = "dispofilter/0.1"

// Options configures an HTTPSource.
type Options struct {
	URL     string
	Timeout time.Duration
	Parser  Parser
	Client  *http.Client // optional; a client with Timeout is created when nil
	Logger  logpkg.Logger
}

// HTTPSource retrieves a document with a single GET request and hands the
// body to its Parser.
type HTTPSource struct {
	url    string
	client *http.Client
	parser Parser
	logger logpkg.Logger
}

// NewHTTPSource validates opts and returns a ready HTTPSource.
func NewHTTPSource(opts Options) (*HTTPSource, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return nil, fmt.Errorf("source url must not be empty")
	}
	if opts.Parser == nil {
		return nil, fmt.Errorf("source parser must not be nil")
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewNoopLogger()
	}
	return &HTTPSource{
		url:    opts.URL,
		client: client,
		parser: opts.Parser,
		logger: logger,
	}, nil
}

// URL returns the remote resource location.
func (s *HTTPSource) URL() string { return s.url }

// Fetch downloads and parses the remote document. Nothing is cached; every
// call performs exactly one request.
func (s *HTTPSource) Fetch(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	s.logger.Debug(map[string]any{"url": s.url}, "fetch_start")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	domains, err := s.parser(resp.Body)
	if err != nil {
		return nil, err
	}
	s.logger.Debug(map[string]any{"url": s.url, "count": len(domains)}, "fetch_done")
	return domains, nil
}
