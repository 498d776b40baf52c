package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spacesedan/reviewlens/internal/models"
)

const openAISentimentPrompt = `You are a binary sentiment classifier for product reviews.
You receive a JSON array of objects {"index": number, "text": string}.
Return ONLY a JSON object of the form {"results": [{"index": number, "label": "POSITIVE" | "NEGATIVE", "confidence": number}]}
with exactly one entry per input index. Never answer NEUTRAL; pick the closer of the two labels.`

// Completer is the slice of the OpenAI client the classifier needs.
type Completer interface {
	Complete(ctx context.Context, model, system, user string) (string, error)
}

type OpenAIClassifier struct {
	client Completer
	model  string
}

func NewOpenAIClassifier(client Completer, model string) *OpenAIClassifier {
	return &OpenAIClassifier{client: client, model: model}
}

type openAIReviewInput struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

func (o *OpenAIClassifier) Classify(ctx context.Context, reviews []string) ([]models.Prediction, error) {
	inputs := make([]openAIReviewInput, len(reviews))
	for i, review := range reviews {
		inputs[i] = openAIReviewInput{Index: i, Text: review}
	}

	body, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reviews: %w", err)
	}

	raw, err := o.client.Complete(ctx, o.model, openAISentimentPrompt, string(body))
	if err != nil {
		return nil, err
	}

	var resp models.OpenAISentimentResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		slog.Warn("[OpenAIClassifier] Failed to parse JSON into struct",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to parse classifier response: %w", err)
	}

	predictions := make([]models.Prediction, len(reviews))
	seen := make([]bool, len(reviews))
	for _, item := range resp.Results {
		if item.Index < 0 || item.Index >= len(reviews) {
			continue
		}
		predictions[item.Index] = models.Prediction{
			Label:      models.NormalizeLabel(item.Label),
			Confidence: item.Confidence,
		}
		seen[item.Index] = true
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("no sentiment result for review %d", i)
		}
	}

	return predictions, nil
}

func (o *OpenAIClassifier) Close() error { return nil }
