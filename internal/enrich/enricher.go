package enrich

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"marquee/internal/config"
	"marquee/internal/fallback"
	"marquee/internal/logging"
	"marquee/internal/postercache"
	"marquee/internal/titles"
	"marquee/internal/tvmaze"
	"marquee/internal/xmltv"
)

// Cache is the lookup cache surface the enricher needs.
type Cache interface {
	Lookup(ctx context.Context, titleKey string) (postercache.Entry, bool, error)
	Store(ctx context.Context, entry postercache.Entry) error
}

// Result summarizes a completed enrichment pass.
type Result struct {
	RunID      string
	Total      int
	Processed  int
	Skipped    int
	FromLookup int
	FromCache  int
	Generic    int
	Unknown    int
	Duration   time.Duration
	Source     string
	Output     string
}

// Options tunes a single Run.
type Options struct {
	// Fresh forces reading paths.input even when the output file exists.
	Fresh bool
	// DisableLookup skips TVMaze entirely; cache hits and fallbacks still apply.
	DisableLookup bool
}

// Enricher walks a guide document and attaches poster artwork.
type Enricher struct {
	cfg      *config.Config
	cache    Cache
	lookup   tvmaze.Lookup
	resolver *fallback.Resolver
	logger   *slog.Logger
	showETA  bool
	onStart  func(total int)
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithProgressETA overrides the TTY detection for ETA log lines.
func WithProgressETA(enabled bool) Option {
	return func(e *Enricher) {
		e.showETA = enabled
	}
}

// WithOnStart registers a callback invoked once the guide has loaded and the
// programme count is known.
func WithOnStart(fn func(total int)) Option {
	return func(e *Enricher) {
		e.onStart = fn
	}
}

// New constructs an enricher. lookup may be nil when the TVMaze integration
// is disabled.
func New(cfg *config.Config, cache Cache, lookup tvmaze.Lookup, resolver *fallback.Resolver, logger *slog.Logger, opts ...Option) (*Enricher, error) {
	if cfg == nil {
		return nil, errors.New("enricher requires config")
	}
	if cache == nil {
		return nil, errors.New("enricher requires a lookup cache")
	}
	if resolver == nil {
		return nil, errors.New("enricher requires a fallback resolver")
	}
	if cfg.Behavior.BatchSize <= 0 {
		return nil, errors.New("enricher requires a positive batch size")
	}

	e := &Enricher{
		cfg:      cfg,
		cache:    cache,
		lookup:   lookup,
		resolver: resolver,
		logger:   logging.NewComponentLogger(logger, "enrich"),
		showETA:  cfg.Behavior.ShowProgressETA && isatty.IsTerminal(os.Stdout.Fd()),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run executes one enrichment pass and returns its result.
func (e *Enricher) Run(ctx context.Context, opts Options) (*Result, error) {
	started := time.Now()

	result := &Result{
		RunID:  uuid.NewString(),
		Output: e.cfg.Paths.Output,
	}
	logger := e.logger.With(logging.String(logging.FieldRunID, result.RunID))

	source := e.sourcePath(opts)
	result.Source = source
	logger.Info("loading guide", logging.String("path", source))

	doc, err := xmltv.Load(source)
	if err != nil {
		return nil, err
	}

	result.Total = len(doc.Programmes)
	logger.Info("guide loaded", logging.Int("programmes", result.Total))
	if e.onStart != nil {
		e.onStart(result.Total)
	}

	batchSize := e.cfg.Behavior.BatchSize
	for i, programme := range doc.Programmes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		title := programme.Title()
		if title == "" {
			continue
		}
		if e.cfg.Behavior.SkipExistingIcons && programme.HasIcon() {
			result.Skipped++
			continue
		}

		if err := e.enrichProgramme(ctx, logger, programme, title, i+1, result, opts); err != nil {
			return nil, err
		}

		result.Processed++
		if result.Processed%batchSize == 0 {
			if err := e.checkpoint(logger, doc, result, started); err != nil {
				return nil, err
			}
		}
	}

	if err := xmltv.Save(doc, e.cfg.Paths.Output); err != nil {
		return nil, err
	}

	result.Duration = time.Since(started)
	logger.Info("enrichment complete",
		logging.Int("processed", result.Processed),
		logging.Int("from_lookup", result.FromLookup),
		logging.Int("from_cache", result.FromCache),
		logging.Int("generic", result.Generic),
		logging.Int("unknown", result.Unknown),
		logging.Duration("duration", result.Duration))

	return result, nil
}

// sourcePath prefers the existing output so prior enrichment survives.
func (e *Enricher) sourcePath(opts Options) string {
	if opts.Fresh {
		return e.cfg.Paths.Input
	}
	if _, err := os.Stat(e.cfg.Paths.Output); err == nil {
		return e.cfg.Paths.Output
	}
	return e.cfg.Paths.Input
}

func (e *Enricher) enrichProgramme(ctx context.Context, logger *slog.Logger, programme *xmltv.Programme, title string, position int, result *Result, opts Options) error {
	normalized := titles.Normalize(title)
	key := titles.Key(title)

	entry, cached, err := e.cache.Lookup(ctx, key)
	if err != nil {
		return fmt.Errorf("cache lookup for %q: %w", normalized, err)
	}

	switch {
	case cached:
		if !entry.Negative() {
			programme.AddIcon(entry.PosterURL)
			result.FromCache++
			logger.Info("poster applied",
				logging.String("title", normalized),
				logging.String("origin", "cache"),
				logging.Int("position", position),
				logging.Int("total", result.Total))
		}
	case opts.DisableLookup || e.lookup == nil:
		// No lookup available; fall through to generic artwork.
	default:
		posterURL, err := e.lookupPoster(ctx, normalized)
		if err != nil {
			return err
		}
		if storeErr := e.cache.Store(ctx, postercache.Entry{
			TitleKey:  key,
			Title:     normalized,
			PosterURL: posterURL,
			Source:    postercache.SourceTVMaze,
		}); storeErr != nil {
			return fmt.Errorf("cache store for %q: %w", normalized, storeErr)
		}
		if posterURL != "" {
			programme.AddIcon(posterURL)
			result.FromLookup++
			logger.Info("poster applied",
				logging.String("title", normalized),
				logging.String("origin", "tvmaze"),
				logging.Int("position", position),
				logging.Int("total", result.Total))
		} else {
			logger.Debug("no poster found",
				logging.String("title", normalized),
				logging.Int("position", position))
		}
	}

	if programme.HasIcon() {
		return nil
	}

	if e.cfg.Fallbacks.Enabled {
		if poster := e.resolver.Resolve(programme.CategoryValues()); poster != "" {
			programme.AddIcon(poster)
			result.Generic++
			logger.Info("generic poster applied",
				logging.String("title", normalized),
				logging.Any("categories", programme.CategoryValues()))
			return nil
		}

		programme.AddIcon(e.resolver.Unknown())
		result.Unknown++
		logger.Info("unknown poster applied", logging.String("title", normalized))
	}

	return nil
}

func (e *Enricher) lookupPoster(ctx context.Context, title string) (string, error) {
	show, err := e.lookup.SingleSearch(ctx, title)
	if err != nil {
		if errors.Is(err, tvmaze.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("tvmaze lookup for %q: %w", title, err)
	}
	return show.PosterURL(), nil
}

func (e *Enricher) checkpoint(logger *slog.Logger, doc *xmltv.TV, result *Result, started time.Time) error {
	if err := xmltv.Save(doc, e.cfg.Paths.Output); err != nil {
		return fmt.Errorf("checkpoint guide: %w", err)
	}

	percent := 0.0
	if result.Total > 0 {
		percent = float64(result.Processed) / float64(result.Total) * 100
	}

	attrs := []logging.Attr{
		logging.Int("processed", result.Processed),
		logging.Int("total", result.Total),
		logging.Float64("percent", percent),
	}
	if e.showETA {
		elapsed := time.Since(started)
		if elapsed > 0 && result.Processed > 0 {
			perItem := elapsed / time.Duration(result.Processed)
			remaining := time.Duration(result.Total-result.Processed) * perItem
			attrs = append(attrs, logging.Duration("eta", remaining.Round(time.Second)))
		}
	}
	logger.Info("checkpoint", logging.Args(attrs...)...)
	return nil
}
