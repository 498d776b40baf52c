package sentiment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spacesedan/reviewlens/internal/clients"
	"github.com/spacesedan/reviewlens/internal/models"
)

// RemoteClassifier delegates to a hosted inference endpoint that accepts a
// batch of {content_id, text} items.
type RemoteClassifier struct {
	client *clients.HuggingFaceClient
}

func NewRemoteClassifier(client *clients.HuggingFaceClient) *RemoteClassifier {
	return &RemoteClassifier{client: client}
}

func (r *RemoteClassifier) Classify(ctx context.Context, reviews []string) ([]models.Prediction, error) {
	request := make(models.SentimentAnalysisBatchRequest, 0, len(reviews))
	for i, review := range reviews {
		request = append(request, models.SentimentAnalysisRequest{
			ContentID: strconv.Itoa(i),
			Text:      review,
		})
	}

	scores, err := r.client.GetBatchedSentimentAnalysis(ctx, request)
	if err != nil {
		return nil, err
	}

	mapped := mapSentimentScoreToContentID(scores)
	predictions := make([]models.Prediction, len(reviews))
	for i := range reviews {
		score, ok := mapped[strconv.Itoa(i)]
		if !ok {
			return nil, fmt.Errorf("no sentiment result for review %d", i)
		}
		predictions[i] = models.Prediction{
			Label:      models.NormalizeLabel(score.SentimentLabel),
			Confidence: score.Confidence,
		}
	}

	return predictions, nil
}

func (r *RemoteClassifier) Close() error { return nil }

// mapSentimentScoreToContentID Creates a map to sentiment scores to avoid nested loops
func mapSentimentScoreToContentID(scores models.SentimentAnalysisBatchResponse) map[string]models.SentimentAnalysisResponse {
	scoreMap := make(map[string]models.SentimentAnalysisResponse, len(scores))

	for _, score := range scores {
		scoreMap[score.ContentID] = score
	}

	return scoreMap
}
