package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/knights-analytics/hugot/pipelines"
	"github.com/spacesedan/reviewlens/internal/clients"
	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	data   map[string]models.Prediction
	getErr error
	puts   int
	putErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string]models.Prediction{}}
}

func (m *memoryStore) GetPrediction(_ context.Context, key string) (models.Prediction, bool, error) {
	if m.getErr != nil {
		return models.Prediction{}, false, m.getErr
	}
	p, ok := m.data[key]
	return p, ok, nil
}

func (m *memoryStore) PutPrediction(_ context.Context, key string, p models.Prediction) error {
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = p
	return nil
}

func TestCachedClassifierOnlyClassifiesMisses(t *testing.T) {
	inner := &keywordClassifier{}
	store := newMemoryStore()
	cached := NewCachedClassifier(inner, store, "local")

	first, err := cached.Classify(context.Background(), []string{"great", "worst"})
	require.NoError(t, err)

	second, err := cached.Classify(context.Background(), []string{"worst", "new one", "great"})
	require.NoError(t, err)

	require.Equal(t, 2, inner.calls)
	assert.Equal(t, []string{"new one"}, inner.inputs[1])
	assert.Equal(t, first[1], second[0])
	assert.Equal(t, first[0], second[2])
	assert.Equal(t, models.LabelPositive, second[1].Label)
}

func TestCachedClassifierSurvivesStoreFailures(t *testing.T) {
	inner := &keywordClassifier{}
	store := newMemoryStore()
	store.getErr = errors.New("connection refused")
	store.putErr = errors.New("connection refused")

	out, err := NewCachedClassifier(inner, store, "local").Classify(context.Background(), []string{"worst"})
	require.NoError(t, err)
	assert.Equal(t, models.LabelNegative, out[0].Label)
	assert.Equal(t, 1, store.puts)
}

func TestCachedClassifierNamespacesKeys(t *testing.T) {
	a := NewCachedClassifier(&keywordClassifier{}, newMemoryStore(), "local")
	b := NewCachedClassifier(&keywordClassifier{}, newMemoryStore(), "openai")
	assert.NotEqual(t, a.key("same"), b.key("same"))
	assert.Equal(t, a.key("same"), a.key("same"))
}

type stubCompleter struct {
	response string
	err      error
	user     string
}

func (s *stubCompleter) Complete(_ context.Context, _, _, user string) (string, error) {
	s.user = user
	return s.response, s.err
}

func TestOpenAIClassifier(t *testing.T) {
	stub := &stubCompleter{response: `{"results":[{"index":1,"label":"negative","confidence":0.8},{"index":0,"label":"POSITIVE","confidence":0.9}]}`}
	out, err := NewOpenAIClassifier(stub, "gpt-4o-mini").Classify(context.Background(), []string{"love it", "hate it"})
	require.NoError(t, err)

	assert.Equal(t, models.LabelPositive, out[0].Label)
	assert.Equal(t, models.LabelNegative, out[1].Label)
	assert.Contains(t, stub.user, `"text":"hate it"`)
}

func TestOpenAIClassifierMissingIndex(t *testing.T) {
	stub := &stubCompleter{response: `{"results":[{"index":0,"label":"POSITIVE"}]}`}
	_, err := NewOpenAIClassifier(stub, "gpt-4o-mini").Classify(context.Background(), []string{"a", "b"})
	require.Error(t, err)
}

func TestOpenAIClassifierBadJSON(t *testing.T) {
	stub := &stubCompleter{response: "I think these are positive"}
	_, err := NewOpenAIClassifier(stub, "gpt-4o-mini").Classify(context.Background(), []string{"a"})
	require.Error(t, err)
}

func TestRemoteClassifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.SentimentAnalysisBatchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		// answer out of order to exercise the content id mapping
		resp := models.SentimentAnalysisBatchResponse{}
		for i := len(req) - 1; i >= 0; i-- {
			label := "positive"
			if req[i].Text == "bad" {
				label = "negative"
			}
			resp = append(resp, models.SentimentAnalysisResponse{ContentID: req[i].ContentID, SentimentLabel: label})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	classifier := NewRemoteClassifier(clients.NewHuggingFaceClient(srv.URL, time.Second))
	out, err := classifier.Classify(context.Background(), []string{"good", "bad", "good"})
	require.NoError(t, err)

	assert.Equal(t, []models.SentimentLabel{models.LabelPositive, models.LabelNegative, models.LabelPositive},
		[]models.SentimentLabel{out[0].Label, out[1].Label, out[2].Label})
}

func TestTopPrediction(t *testing.T) {
	p := topPrediction([]pipelines.ClassificationOutput{
		{Label: "NEGATIVE", Score: 0.1},
		{Label: "POSITIVE", Score: 0.9},
	})
	assert.Equal(t, models.LabelPositive, p.Label)
	assert.InDelta(t, 0.9, p.Confidence, 1e-6)
}
