package analysis

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/spacesedan/reviewlens/internal/scraper"
	"github.com/spacesedan/reviewlens/internal/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	body  string
	err   error
	calls atomic.Int32
	block chan struct{}
}

func (s *stubFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	s.calls.Add(1)
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.body), nil
}

type labelClassifier struct {
	calls int
}

func (l *labelClassifier) Classify(_ context.Context, reviews []string) ([]models.Prediction, error) {
	l.calls++
	out := make([]models.Prediction, len(reviews))
	for i, r := range reviews {
		out[i] = models.Prediction{Label: models.LabelPositive, Confidence: 0.9}
		if strings.Contains(r, "awful") {
			out[i].Label = models.LabelNegative
		}
	}
	return out, nil
}

func (l *labelClassifier) Close() error { return nil }

type countingPolarity struct {
	calls int
}

func (c *countingPolarity) Polarity(text string) float64 {
	c.calls++
	if strings.Contains(text, "awful") {
		return -0.9
	}
	return 0.4
}

const page = `<html><body>
<span class="a-size-base review-text">Lovely blender</span>
<span class="a-size-base review-text">awful motor, broke in a day</span>
</body></html>`

type fixture struct {
	fetcher    *stubFetcher
	classifier *labelClassifier
	polarity   *countingPolarity
	analyzer   *Analyzer
}

func newFixture(fetcher *stubFetcher, timeout time.Duration) *fixture {
	f := &fixture{
		fetcher:    fetcher,
		classifier: &labelClassifier{},
		polarity:   &countingPolarity{},
	}
	f.analyzer = New(
		scraper.DefaultRegistry(),
		fetcher,
		sentiment.NewScorer(f.classifier),
		sentiment.NewSpamDetector(f.polarity, sentiment.DefaultSpamThreshold),
		Options{Timeout: timeout},
	)
	return f
}

func TestRunSuccess(t *testing.T) {
	f := newFixture(&stubFetcher{body: page}, 0)

	result, err := f.analyzer.Run(context.Background(), "  https://www.amazon.com/dp/B01  ")
	require.NoError(t, err)

	assert.Equal(t, "amazon", result.Site)
	assert.Equal(t, "https://www.amazon.com/dp/B01", result.URL)
	assert.Equal(t, []string{"Lovely blender", "awful motor, broke in a day"}, result.Reviews)
	assert.Equal(t, 50.0, result.Summary.Positive)
	assert.Equal(t, 50.0, result.Summary.Negative)
	assert.Equal(t, 0.0, result.Summary.Neutral)
	assert.Equal(t, []string{"awful motor, broke in a day"}, result.Spam)
	assert.NotEmpty(t, result.ID)
}

func TestRunUnsupportedSiteSkipsNetwork(t *testing.T) {
	f := newFixture(&stubFetcher{body: page}, 0)

	_, err := f.analyzer.Run(context.Background(), "https://www.ebay.com/itm/1")
	require.ErrorIs(t, err, scraper.ErrUnsupportedSite)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindUnsupportedSite, kind)
	assert.Equal(t, "Website not supported", err.Error())
	assert.Zero(t, f.fetcher.calls.Load())
}

func TestRunEmptyURL(t *testing.T) {
	f := newFixture(&stubFetcher{body: page}, 0)

	_, err := f.analyzer.Run(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmptyURL)
	assert.Zero(t, f.fetcher.calls.Load())
}

func TestRunFetchErrorIsVerbatim(t *testing.T) {
	fetchErr := errors.New(`Get "https://www.flipkart.com/x": dial tcp: lookup www.flipkart.com: no such host`)
	f := newFixture(&stubFetcher{err: fetchErr}, 0)

	_, err := f.analyzer.Run(context.Background(), "https://www.flipkart.com/x")
	require.Error(t, err)

	kind, _ := KindOf(err)
	assert.Equal(t, KindFetchOrParse, kind)
	assert.Equal(t, fetchErr.Error(), err.Error())
	assert.Zero(t, f.classifier.calls)
}

func TestRunNoReviewsHaltsBeforeSpam(t *testing.T) {
	f := newFixture(&stubFetcher{body: "<html><body><p>Sign in</p></body></html>"}, 0)

	result, err := f.analyzer.Run(context.Background(), "https://www.flipkart.com/x")
	require.ErrorIs(t, err, sentiment.ErrNoReviews)
	assert.Nil(t, result)

	kind, _ := KindOf(err)
	assert.Equal(t, KindScoring, kind)
	assert.Equal(t, "No reviews found", err.Error())
	assert.Zero(t, f.polarity.calls)
}

func TestSubmitDeliversOutcome(t *testing.T) {
	f := newFixture(&stubFetcher{body: page}, time.Second)

	task := f.analyzer.Submit(context.Background(), "https://amazon.in/dp/1")
	select {
	case outcome := <-task.Done():
		require.NoError(t, outcome.Err)
		assert.Len(t, outcome.Result.Reviews, 2)
		assert.Equal(t, task.ID, outcome.Result.ID)
	case <-time.After(5 * time.Second):
		t.Fatal("task never completed")
	}

	_, open := <-task.Done()
	assert.False(t, open)
}

func TestSubmitCancel(t *testing.T) {
	f := newFixture(&stubFetcher{body: page, block: make(chan struct{})}, time.Minute)

	task := f.analyzer.Submit(context.Background(), "https://amazon.in/dp/1")
	task.Cancel()

	outcome := <-task.Done()
	require.ErrorIs(t, outcome.Err, context.Canceled)
	kind, _ := KindOf(outcome.Err)
	assert.Equal(t, KindFetchOrParse, kind)
}

func TestSubmitTimeout(t *testing.T) {
	f := newFixture(&stubFetcher{body: page, block: make(chan struct{})}, 20*time.Millisecond)

	outcome := <-f.analyzer.Submit(context.Background(), "https://amazon.in/dp/1").Done()
	require.ErrorIs(t, outcome.Err, context.DeadlineExceeded)
}
