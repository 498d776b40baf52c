package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBatchedSentimentAnalysis(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.SentimentAnalysisBatchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := models.SentimentAnalysisBatchResponse{}
		for _, item := range req {
			resp = append(resp, models.SentimentAnalysisResponse{
				ContentID:      item.ContentID,
				SentimentLabel: "positive",
				Confidence:     0.9,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := NewHuggingFaceClient(srv.URL, time.Second)
	out, err := client.GetBatchedSentimentAnalysis(context.Background(), models.SentimentAnalysisBatchRequest{
		{ContentID: "0", Text: "great"},
		{ContentID: "1", Text: "fine"},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "1", out[1].ContentID)
	assert.Equal(t, "positive", out[0].SentimentLabel)
}

func TestGetBatchedSentimentAnalysisErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHuggingFaceClient(srv.URL, time.Second).
		GetBatchedSentimentAnalysis(context.Background(), models.SentimentAnalysisBatchRequest{{ContentID: "0", Text: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestCleanOpenAIResponse(t *testing.T) {
	raw := "```json\n{“results”: []}\n```"
	assert.Equal(t, `{"results": []}`, CleanOpenAIResponse(raw))
}

func TestIsConnectionError(t *testing.T) {
	assert.False(t, isConnectionError(nil))
	assert.False(t, isConnectionError(assert.AnError))
	assert.True(t, isConnectionError(errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")))
}

func TestValkeyTTLDefault(t *testing.T) {
	assert.Equal(t, 24*time.Hour, (&ValkeyClient{}).ttl())
	assert.Equal(t, time.Hour, (&ValkeyClient{opts: ValkeyOptions{TTL: time.Hour}}).ttl())
}
