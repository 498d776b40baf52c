package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/spacesedan/reviewlens/internal/models"
)

const (
	DEFAULT_MODEL_NAME = "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english"
	DEFAULT_MODEL_DIR  = "./models"
)

type HugotOptions struct {
	ModelName string
	ModelDir  string
}

// HugotClassifier runs an SST-2 style binary model on a local ONNX runtime
// session. The session is owned by the classifier and released by Close.
type HugotClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
	mu       sync.Mutex
}

func NewHugotClassifier(opts HugotOptions) (*HugotClassifier, error) {
	if opts.ModelName == "" {
		opts.ModelName = DEFAULT_MODEL_NAME
	}
	if opts.ModelDir == "" {
		opts.ModelDir = DEFAULT_MODEL_DIR
	}

	modelPath, err := ensureModel(opts)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		slog.Error("[HugotClassifier] Failed to initialize Hugot session", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to initialize hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "reviewSentimentPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		slog.Error("[HugotClassifier] Failed to initialize sentiment pipeline", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to initialize sentiment pipeline: %w", err)
	}

	slog.Info("[HugotClassifier] Sentiment pipeline ready", slog.String("model", modelPath))

	return &HugotClassifier{session: session, pipeline: pipeline}, nil
}

// ensureModel downloads the model into ModelDir unless a previous run already
// did.
func ensureModel(opts HugotOptions) (string, error) {
	if err := os.MkdirAll(opts.ModelDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}

	modelPath := filepath.Join(opts.ModelDir, strings.ReplaceAll(opts.ModelName, "/", "_"))
	if _, err := os.Stat(modelPath); err == nil {
		slog.Info("[HugotClassifier] Using existing model", slog.String("path", modelPath))
		return modelPath, nil
	}

	slog.Info("[HugotClassifier] Model not found, downloading...", slog.String("model", opts.ModelName))
	start := time.Now()
	downloaded, err := hugot.DownloadModel(opts.ModelName, opts.ModelDir, hugot.NewDownloadOptions())
	if err != nil {
		slog.Error("[HugotClassifier] Failed to download model", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to download model %s: %w", opts.ModelName, err)
	}

	slog.Info("[HugotClassifier] Model downloaded successfully",
		slog.String("path", downloaded),
		slog.Duration("elapsed", time.Since(start)))
	return downloaded, nil
}

func (h *HugotClassifier) Classify(ctx context.Context, reviews []string) ([]models.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h.mu.Lock()
	output, err := h.pipeline.RunPipeline(reviews)
	h.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	predictions := make([]models.Prediction, 0, len(output.ClassificationOutputs))
	for _, candidates := range output.ClassificationOutputs {
		predictions = append(predictions, topPrediction(candidates))
	}

	return predictions, nil
}

func topPrediction(candidates []pipelines.ClassificationOutput) models.Prediction {
	var best models.Prediction
	for i, c := range candidates {
		if i == 0 || float64(c.Score) > best.Confidence {
			best = models.Prediction{
				Label:      models.NormalizeLabel(c.Label),
				Confidence: float64(c.Score),
			}
		}
	}
	return best
}

func (h *HugotClassifier) Close() error {
	return h.session.Destroy()
}
