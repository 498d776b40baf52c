package sentiment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/spacesedan/reviewlens/internal/models"
)

// PredictionStore is satisfied by clients.ValkeyClient.
type PredictionStore interface {
	GetPrediction(ctx context.Context, key string) (models.Prediction, bool, error)
	PutPrediction(ctx context.Context, key string, prediction models.Prediction) error
}

// CachedClassifier memoizes per-review predictions so a re-run of the same
// page only sends unseen reviews to the model. Cache failures degrade to a
// miss and never fail the classification.
type CachedClassifier struct {
	inner     Classifier
	store     PredictionStore
	namespace string
}

func NewCachedClassifier(inner Classifier, store PredictionStore, namespace string) *CachedClassifier {
	return &CachedClassifier{inner: inner, store: store, namespace: namespace}
}

func (c *CachedClassifier) key(review string) string {
	sum := sha256.Sum256([]byte(review))
	return c.namespace + ":" + hex.EncodeToString(sum[:])
}

func (c *CachedClassifier) Classify(ctx context.Context, reviews []string) ([]models.Prediction, error) {
	predictions := make([]models.Prediction, len(reviews))

	var misses []string
	var missIdx []int
	for i, review := range reviews {
		p, found, err := c.store.GetPrediction(ctx, c.key(review))
		if err != nil {
			slog.Warn("[CachedClassifier] Cache lookup failed", slog.String("error", err.Error()))
		}
		if found {
			predictions[i] = p
			continue
		}
		misses = append(misses, review)
		missIdx = append(missIdx, i)
	}

	slog.Debug("[CachedClassifier] Cache lookup complete",
		slog.Int("hits", len(reviews)-len(misses)),
		slog.Int("misses", len(misses)))

	if len(misses) == 0 {
		return predictions, nil
	}

	fresh, err := c.inner.Classify(ctx, misses)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(misses) {
		return nil, fmt.Errorf("classifier returned %d predictions for %d reviews", len(fresh), len(misses))
	}

	for j, p := range fresh {
		predictions[missIdx[j]] = p
		if err := c.store.PutPrediction(ctx, c.key(misses[j]), p); err != nil {
			slog.Warn("[CachedClassifier] Failed to cache prediction", slog.String("error", err.Error()))
		}
	}

	return predictions, nil
}

func (c *CachedClassifier) Close() error {
	return c.inner.Close()
}
