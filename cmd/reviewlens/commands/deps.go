package commands

import (
	"fmt"
	"log/slog"

	"github.com/spacesedan/reviewlens/internal/analysis"
	"github.com/spacesedan/reviewlens/internal/clients"
	appconfig "github.com/spacesedan/reviewlens/internal/config"
	"github.com/spacesedan/reviewlens/internal/scraper"
	"github.com/spacesedan/reviewlens/internal/sentiment"
)

// buildAnalyzer constructs every pipeline dependency from config. The
// returned cleanup releases the classifier and cache connection.
func buildAnalyzer(cfg *appconfig.Config) (*analysis.Analyzer, func(), error) {
	classifier, err := buildClassifier(cfg.Classifier)
	if err != nil {
		return nil, nil, err
	}

	var valkey *clients.ValkeyClient
	if cfg.Cache.Enabled {
		valkey, err = clients.NewValkeyClient(clients.ValkeyOptions{
			Address:  cfg.Cache.Address,
			Password: cfg.Cache.Password,
			TLS:      cfg.Cache.TLS,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			// the cache is an optimisation; run without it
			slog.Warn("[Main] Prediction cache unavailable, continuing without it",
				slog.String("error", err.Error()))
		} else {
			classifier = sentiment.NewCachedClassifier(classifier, valkey, cacheNamespace(cfg.Classifier))
		}
	}

	scorer := sentiment.NewScorer(classifier)
	fetcher := clients.NewFetchClient(clients.FetchOptions{
		UserAgent:        cfg.Fetch.UserAgent,
		Timeout:          cfg.Fetch.Timeout,
		CloudflareBypass: cfg.Fetch.CloudflareBypass,
	})
	spam := sentiment.NewSpamDetector(sentiment.NewVaderPolarity(), cfg.Spam.Threshold)

	analyzer := analysis.New(scraper.DefaultRegistry(), fetcher, scorer, spam, analysis.Options{
		Timeout: cfg.Analysis.Timeout,
	})

	cleanup := func() {
		if err := scorer.Close(); err != nil {
			slog.Warn("[Main] Failed to release classifier", slog.String("error", err.Error()))
		}
		if valkey != nil {
			valkey.Close()
		}
	}
	return analyzer, cleanup, nil
}

func buildClassifier(cfg appconfig.ClassifierConfig) (sentiment.Classifier, error) {
	switch cfg.Backend {
	case appconfig.BackendLocal:
		return sentiment.NewHugotClassifier(sentiment.HugotOptions{
			ModelName: cfg.ModelName,
			ModelDir:  cfg.ModelDir,
		})
	case appconfig.BackendRemote:
		return sentiment.NewRemoteClassifier(clients.NewHuggingFaceClient(cfg.Endpoint, cfg.Timeout)), nil
	case appconfig.BackendOpenAI:
		client, err := clients.NewOpenAIClient(cfg.OpenAIAPIKey)
		if err != nil {
			return nil, err
		}
		return sentiment.NewOpenAIClassifier(client, cfg.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unknown classifier backend %q", cfg.Backend)
	}
}

// cacheNamespace keeps predictions from different models apart.
func cacheNamespace(cfg appconfig.ClassifierConfig) string {
	switch cfg.Backend {
	case appconfig.BackendLocal:
		return cfg.Backend + ":" + cfg.ModelName
	case appconfig.BackendOpenAI:
		return cfg.Backend + ":" + cfg.OpenAIModel
	default:
		return cfg.Backend + ":" + cfg.Endpoint
	}
}
