package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/reviewlens/internal/models"
)

var ErrNoReviews = errors.New("No reviews found")

type Scorer struct {
	classifier Classifier
}

func NewScorer(classifier Classifier) *Scorer {
	return &Scorer{classifier: classifier}
}

func (s *Scorer) Close() error {
	return s.classifier.Close()
}

func (s *Scorer) Score(ctx context.Context, reviews []string) (models.AnalysisSummary, error) {
	if len(reviews) == 0 {
		return models.AnalysisSummary{}, ErrNoReviews
	}

	slog.Debug("[Scorer] Reviews being analyzed", slog.Any("reviews", reviews))
	start := time.Now()

	predictions, err := s.classifier.Classify(ctx, reviews)
	if err != nil {
		slog.Error("[Scorer] Error during sentiment analysis", slog.String("error", err.Error()))
		return models.AnalysisSummary{}, err
	}
	if len(predictions) != len(reviews) {
		return models.AnalysisSummary{}, fmt.Errorf("classifier returned %d predictions for %d reviews", len(predictions), len(reviews))
	}

	slog.Debug("[Scorer] Sentiment analysis results",
		slog.Any("predictions", predictions),
		slog.Duration("elapsed", time.Since(start)))

	return Summarize(predictions), nil
}

// Summarize turns predictions into percentages. Neutral is whatever is left
// after positive and negative, so a binary classifier always yields ~0.
func Summarize(predictions []models.Prediction) models.AnalysisSummary {
	var positive, negative int
	for _, p := range predictions {
		switch p.Label {
		case models.LabelPositive:
			positive++
		case models.LabelNegative:
			negative++
		}
	}

	var positivePct, negativePct float64
	if total := len(predictions); total > 0 {
		positivePct = float64(positive) / float64(total) * 100
		negativePct = float64(negative) / float64(total) * 100
	}

	return models.AnalysisSummary{
		OverallScore: fmt.Sprintf("%.2f%% Positive", positivePct),
		Positive:     positivePct,
		Negative:     negativePct,
		Neutral:      100 - (positivePct + negativePct),
	}
}
