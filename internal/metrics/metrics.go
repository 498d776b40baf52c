package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewlens_analyses_total",
			Help: "Total analyses run, by site and outcome",
		},
		[]string{"site", "outcome"},
	)
	analysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reviewlens_analysis_duration_seconds",
			Help:    "Wall time of a full fetch, extract and score run",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"outcome"},
	)
	reviewsScored = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reviewlens_reviews_scored_total",
		Help: "Reviews passed through the sentiment classifier",
	})
	spamFlagged = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reviewlens_spam_flagged_total",
		Help: "Reviews flagged by the polarity heuristic",
	})

	registerOnce sync.Once
)

// Init registers the collectors. Must be called once at startup; calling it
// again is a no-op.
func Init(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(analysesTotal, analysisDuration, reviewsScored, spamFlagged)
	})
}

// ObserveAnalysis records the outcome of one run. site is empty when the URL
// never matched a profile.
func ObserveAnalysis(site, outcome string, elapsed time.Duration, reviews, spam int) {
	if site == "" {
		site = "unknown"
	}
	analysesTotal.WithLabelValues(site, outcome).Inc()
	analysisDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	reviewsScored.Add(float64(reviews))
	spamFlagged.Add(float64(spam))
}
