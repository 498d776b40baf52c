// Package analysis sequences the review pipeline: match the site, fetch the
// page, extract reviews, score them and run the spam heuristic.
package analysis

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spacesedan/reviewlens/internal/metrics"
	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/spacesedan/reviewlens/internal/scraper"
	"github.com/spacesedan/reviewlens/internal/sentiment"
)

const DEFAULT_TIMEOUT = 2 * time.Minute

type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Options struct {
	// Timeout bounds every Submit'ed task. Run uses whatever ctx it is given.
	Timeout time.Duration
}

type Analyzer struct {
	sites   *scraper.Registry
	fetcher Fetcher
	scorer  *sentiment.Scorer
	spam    *sentiment.SpamDetector
	timeout time.Duration
}

func New(sites *scraper.Registry, fetcher Fetcher, scorer *sentiment.Scorer, spam *sentiment.SpamDetector, opts Options) *Analyzer {
	if opts.Timeout <= 0 {
		opts.Timeout = DEFAULT_TIMEOUT
	}
	return &Analyzer{
		sites:   sites,
		fetcher: fetcher,
		scorer:  scorer,
		spam:    spam,
		timeout: opts.Timeout,
	}
}

// Run executes one analysis synchronously. Every stage failure short-circuits
// the rest and comes back as an *Error.
func (a *Analyzer) Run(ctx context.Context, url string) (*models.AnalysisResult, error) {
	return a.execute(ctx, uuid.New(), url)
}

func (a *Analyzer) execute(ctx context.Context, id uuid.UUID, url string) (*models.AnalysisResult, error) {
	result := &models.AnalysisResult{
		ID:        id,
		URL:       strings.TrimSpace(url),
		StartedAt: time.Now(),
	}

	err := a.run(ctx, result)
	result.Elapsed = time.Since(result.StartedAt)

	outcome := "ok"
	if err != nil {
		kind, _ := KindOf(err)
		outcome = kind.String()
		slog.Warn("[Analyzer] Analysis failed",
			slog.String("id", result.ID.String()),
			slog.String("url", result.URL),
			slog.String("kind", outcome),
			slog.String("error", err.Error()))
	} else {
		slog.Info("[Analyzer] Analysis complete",
			slog.String("id", result.ID.String()),
			slog.String("site", result.Site),
			slog.Int("reviews", len(result.Reviews)),
			slog.Int("spam", len(result.Spam)),
			slog.Duration("elapsed", result.Elapsed))
	}
	metrics.ObserveAnalysis(result.Site, outcome, result.Elapsed, len(result.Reviews), len(result.Spam))

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (a *Analyzer) run(ctx context.Context, result *models.AnalysisResult) error {
	if result.URL == "" {
		return &Error{Kind: KindInvalidInput, Err: ErrEmptyURL}
	}

	site, err := a.sites.Match(result.URL)
	if err != nil {
		return &Error{Kind: KindUnsupportedSite, Err: err}
	}
	result.Site = site.Name

	body, err := a.fetcher.Fetch(ctx, result.URL)
	if err != nil {
		return &Error{Kind: KindFetchOrParse, Err: err}
	}

	reviews, err := scraper.Extract(site, body)
	if err != nil {
		return &Error{Kind: KindFetchOrParse, Err: err}
	}

	summary, err := a.scorer.Score(ctx, reviews)
	if err != nil {
		return &Error{Kind: KindScoring, Err: err}
	}
	result.Reviews = reviews
	result.Summary = summary

	result.Spam = a.spam.Detect(reviews)
	return nil
}
