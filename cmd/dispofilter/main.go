package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/haukened/dispofilter/internal/mail/common/clock"
	"github.com/haukened/dispofilter/internal/mail/common/log"
	"github.com/haukened/dispofilter/internal/mail/config"
	"github.com/haukened/dispofilter/internal/mail/domain"
	"github.com/haukened/dispofilter/internal/mail/gateways/source"
	"github.com/haukened/dispofilter/internal/mail/repos/domainlist"
	"github.com/haukened/dispofilter/internal/mail/repos/domainset"
	"github.com/haukened/dispofilter/internal/mail/repos/domainset/bloom"
	"github.com/haukened/dispofilter/internal/mail/repos/domainset/lru"
	"github.com/haukened/dispofilter/internal/mail/services/filter"
	"github.com/haukened/dispofilter/internal/mail/services/refresh"
)

const (
	// Version information
	version = "0.1.0-dev"
	appName = "dispofilter"

	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

// Application holds all the components of one filtering run.
type Application struct {
	config    *config.AppConfig
	logger    log.Logger
	store     *domainlist.FileStore
	refresher *refresh.Refresher // nil unless a refresh was requested
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the tool and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [-i input] [-o output] [-r]\n\nFilter email addresses by disposable domains.\n\n", appName)
		fs.PrintDefaults()
	}

	cfg, err := config.Load(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return exitUsage
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(stderr, "Logging configuration error: %v\n", err)
		return exitUsage
	}
	defer log.Sync()

	log.Info(map[string]any{
		"version": version,
		"env":     cfg.Env,
		"input":   cfg.Input,
		"output":  cfg.Output,
		"store":   cfg.Store,
		"refresh": cfg.Refresh,
	}, "Filtering emails")

	app, err := buildApplication(cfg, log.GetLogger())
	if err != nil {
		log.Error(map[string]any{"operation": "build", "error": err}, "Failed to build application")
		return exitFailed
	}

	res, err := app.Run(ctx)
	if err != nil {
		log.Error(map[string]any{"operation": operationOf(err), "error": err}, "Sorry, an unexpected error occurred")
		return exitFailed
	}

	fmt.Fprintf(stdout, "Copied %d email addresses to the output file.\n", res.Matched)
	return exitOK
}

// buildApplication constructs all components and wires them together.
func buildApplication(cfg *config.AppConfig, logger log.Logger) (*Application, error) {
	app := &Application{
		config: cfg,
		logger: logger,
		store:  domainlist.New(cfg.Store, logger),
	}
	if !cfg.Refresh {
		return app, nil
	}

	parser, err := source.NewParser(cfg.SourceFormat, cfg.SourceClass, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build source parser: %w", err)
	}
	src, err := source.NewHTTPSource(source.Options{
		URL:     cfg.SourceURL,
		Timeout: cfg.FetchTimeout,
		Parser:  parser,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build remote source: %w", err)
	}
	app.refresher = refresh.New(refresh.Options{
		Source: src,
		Store:  app.store,
		Clock:  clock.RealClock{},
		Logger: logger,
	})

	logger.Info(map[string]any{
		"url":     cfg.SourceURL,
		"format":  cfg.SourceFormat,
		"timeout": cfg.FetchTimeout.String(),
	}, "Remote source configured")
	return app, nil
}

// buildDomainSet loads the store and builds the in-memory set for this run.
func (app *Application) buildDomainSet() (*domainset.Set, error) {
	domains, err := app.store.Load()
	if err != nil {
		return nil, err
	}

	cacheSize := app.config.CacheSize
	if cacheSize > uint(^uint(0)>>1) {
		return nil, fmt.Errorf("cache size too large: %d (max %d)", cacheSize, ^uint(0)>>1)
	}
	cache, err := lru.New(int(cacheSize))
	if err != nil {
		return nil, fmt.Errorf("failed to create verdict cache: %w", err)
	}

	set := domainset.New(domains, domainset.Options{
		Factory: bloom.NewFactory(),
		FPRate:  app.config.BloomFPRate,
		Cache:   cache,
	})
	app.logger.Info(map[string]any{
		"store":   app.store.Path(),
		"entries": len(domains),
		"unique":  set.Len(),
	}, "Disposable domain set loaded")
	return set, nil
}

// Run refreshes the store when requested, then filters the input file into
// the output file. Refresh always completes or fails before filtering starts.
func (app *Application) Run(ctx context.Context) (filter.Result, error) {
	if app.refresher != nil {
		if _, err := app.refresher.Refresh(ctx); err != nil {
			return filter.Result{}, err
		}
	}

	set, err := app.buildDomainSet()
	if err != nil {
		return filter.Result{}, err
	}

	in, err := os.Open(app.config.Input)
	if err != nil {
		return filter.Result{}, fmt.Errorf("%w: open %s: %w", domain.ErrInputUnavailable, app.config.Input, err)
	}
	defer in.Close()

	out, err := os.Create(app.config.Output)
	if err != nil {
		return filter.Result{}, fmt.Errorf("%w: create %s: %w", domain.ErrStoreWrite, app.config.Output, err)
	}

	res, err := filter.New(set, app.logger).Run(ctx, in, out, nil)
	if err != nil {
		_ = out.Close()
		return res, err
	}
	if err := out.Close(); err != nil {
		return res, fmt.Errorf("%w: close %s: %w", domain.ErrStoreWrite, app.config.Output, err)
	}

	st := set.Stats()
	app.logger.Info(map[string]any{
		"lines":         res.Lines,
		"matched":       res.Matched,
		"not_matched":   res.NotMatched,
		"invalid":       res.Invalid,
		"lookups":       st.Lookups,
		"bloom_rejects": st.BloomRejects,
		"cache_hits":    st.Cache.Hits,
		"cache_misses":  st.Cache.Misses,
	}, "Done")
	return res, nil
}

// operationOf names the failed step for the top-level diagnostic.
func operationOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrRefreshFailed):
		return "refresh"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "load_store"
	case errors.Is(err, domain.ErrInputUnavailable):
		return "read_input"
	case errors.Is(err, domain.ErrStoreWrite):
		return "write"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "run"
	}
}
