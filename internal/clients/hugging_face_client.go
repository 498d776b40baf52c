package clients

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spacesedan/reviewlens/internal/models"
)

const HF_SENTIMENT_ANALYSIS_ENDPOINT = "https://spacesedan-sentiment-analyzer.hf.space/analyze_batch"

type HuggingFaceClient struct {
	Client   *resty.Client
	Endpoint string
}

func NewHuggingFaceClient(endpoint string, timeout time.Duration) *HuggingFaceClient {
	if endpoint == "" {
		endpoint = HF_SENTIMENT_ANALYSIS_ENDPOINT
	}
	if timeout <= 0 {
		timeout = DEFAULT_INFERENCE_TIMEOUT
	}

	slog.Info("[HuggingFaceClient] Initializing Client",
		slog.String("endpoint", endpoint),
		slog.Duration("timeout", timeout))

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", USER_AGENT)

	return &HuggingFaceClient{
		Client:   client,
		Endpoint: endpoint,
	}
}

func (h *HuggingFaceClient) GetBatchedSentimentAnalysis(ctx context.Context, input models.SentimentAnalysisBatchRequest) (models.SentimentAnalysisBatchResponse, error) {
	var result models.SentimentAnalysisBatchResponse
	slog.Info("[HuggingFaceClient] Requesting sentiment analysis from sentiment analysis service",
		slog.Int("batch_size", len(input)))
	start := time.Now()

	err := h.postJSON(ctx, input, &result)
	if err != nil {
		slog.Error("[HuggingFaceClient] Sentiment Analysis request failed",
			slog.Duration("elapsed", time.Since(start)))
		return result, err
	}

	slog.Info("[HuggingFaceClient] Sentiment Analysis request successful",
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

func (h *HuggingFaceClient) postJSON(ctx context.Context, input interface{}, output interface{}) error {
	res, err := h.Client.R().
		SetContext(ctx).
		SetBody(input).
		SetResult(output).
		Post(h.Endpoint)
	if err != nil {
		slog.Error("[HuggingFaceClient] Request failed",
			slog.String("endpoint", h.Endpoint),
			slog.String("error", err.Error()))
		return fmt.Errorf("request failed: %w", err)
	}

	if res.IsError() {
		slog.Error("[HuggingFaceClient] Unexpected response",
			slog.String("endpoint", h.Endpoint),
			slog.Int("status", res.StatusCode()),
			getPreview(res.Body()))
		return fmt.Errorf("inference service returned status code %d", res.StatusCode())
	}

	return nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
