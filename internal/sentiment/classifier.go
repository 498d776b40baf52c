// Package sentiment classifies review text and aggregates the labels.
package sentiment

import (
	"context"

	"github.com/spacesedan/reviewlens/internal/models"
)

// Classifier labels each input independently. Implementations must return
// exactly one prediction per review, in input order.
type Classifier interface {
	Classify(ctx context.Context, reviews []string) ([]models.Prediction, error)
	Close() error
}
