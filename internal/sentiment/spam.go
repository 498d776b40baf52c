package sentiment

import "log/slog"

// DefaultSpamThreshold is the polarity a review must fall strictly below to be
// flagged.
const DefaultSpamThreshold = -0.5

// SpamDetector treats very negative reviews as spam. It is a polarity proxy,
// not fraud detection, and it does not share a label space with the Scorer.
type SpamDetector struct {
	polarity  Polarity
	threshold float64
}

func NewSpamDetector(polarity Polarity, threshold float64) *SpamDetector {
	return &SpamDetector{polarity: polarity, threshold: threshold}
}

// Detect returns the flagged reviews in their original order.
func (d *SpamDetector) Detect(reviews []string) []string {
	spam := []string{}
	for _, review := range reviews {
		score := d.polarity.Polarity(review)
		if score < d.threshold {
			spam = append(spam, review)
		}
	}

	slog.Debug("[SpamDetector] Polarity pass complete",
		slog.Int("reviews", len(reviews)),
		slog.Int("flagged", len(spam)),
		slog.Float64("threshold", d.threshold))

	return spam
}
