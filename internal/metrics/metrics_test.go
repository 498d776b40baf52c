package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAnalysis(t *testing.T) {
	Init(prometheus.NewRegistry())

	before := testutil.ToFloat64(analysesTotal.WithLabelValues("amazon", "ok"))
	spamBefore := testutil.ToFloat64(spamFlagged)

	ObserveAnalysis("amazon", "ok", 2*time.Second, 10, 3)
	ObserveAnalysis("", "unsupported_site", time.Millisecond, 0, 0)

	assert.Equal(t, before+1, testutil.ToFloat64(analysesTotal.WithLabelValues("amazon", "ok")))
	assert.Equal(t, spamBefore+3, testutil.ToFloat64(spamFlagged))
	assert.Equal(t, 1.0, testutil.ToFloat64(analysesTotal.WithLabelValues("unknown", "unsupported_site")))
}
