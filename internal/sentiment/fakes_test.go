package sentiment

import (
	"context"
	"strings"

	"github.com/spacesedan/reviewlens/internal/models"
)

// keywordClassifier is a deterministic binary stand-in for a real model.
type keywordClassifier struct {
	calls  int
	inputs [][]string
	err    error
}

func (k *keywordClassifier) Classify(_ context.Context, reviews []string) ([]models.Prediction, error) {
	k.calls++
	k.inputs = append(k.inputs, append([]string(nil), reviews...))
	if k.err != nil {
		return nil, k.err
	}

	out := make([]models.Prediction, len(reviews))
	for i, r := range reviews {
		label := models.LabelPositive
		lower := strings.ToLower(r)
		if strings.Contains(lower, "terrible") || strings.Contains(lower, "worst") || strings.Contains(lower, "okay") {
			label = models.LabelNegative
		}
		out[i] = models.Prediction{Label: label, Confidence: 0.99}
	}
	return out, nil
}

func (k *keywordClassifier) Close() error { return nil }

type mapPolarity map[string]float64

func (m mapPolarity) Polarity(text string) float64 { return m[text] }
