package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type SentimentLabel string

const (
	LabelPositive SentimentLabel = "POSITIVE"
	LabelNegative SentimentLabel = "NEGATIVE"
)

// NormalizeLabel upper-cases whatever label a classifier backend emits.
// Labels outside the binary pair are kept so they fall into the neutral residual.
func NormalizeLabel(raw string) SentimentLabel {
	return SentimentLabel(strings.ToUpper(strings.TrimSpace(raw)))
}

type Prediction struct {
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence"`
}

type AnalysisSummary struct {
	OverallScore string  `json:"overall_score"`
	Positive     float64 `json:"positive"`
	Negative     float64 `json:"negative"`
	Neutral      float64 `json:"neutral"`
}

type AnalysisResult struct {
	ID        uuid.UUID       `json:"id"`
	URL       string          `json:"url"`
	Site      string          `json:"site"`
	Reviews   []string        `json:"reviews"`
	Summary   AnalysisSummary `json:"summary"`
	Spam      []string        `json:"spam"`
	StartedAt time.Time       `json:"started_at"`
	Elapsed   time.Duration   `json:"elapsed"`
}
