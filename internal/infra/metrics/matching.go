package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		rankBatchSize,
		rankBatchLatencyMs,
		scoreFailuresTotal,
	)
}

var (
	rankBatchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_rank_batch_size",
			Help:    "Number of postings per ranking batch.",
			Buckets: []float64{1, 5, 10, 25, 50, 100},
		},
	)

	rankBatchLatencyMs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "matching_rank_batch_latency_ms",
			Help:    "End-to-end ranking batch latency in milliseconds.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		},
	)

	scoreFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_score_failures_total",
			Help: "Per-posting scoring failures degraded to score 0.",
		},
	)
)

func ObserveRankBatch(size int, d time.Duration) {
	rankBatchSize.Observe(float64(size))
	rankBatchLatencyMs.Observe(float64(d / time.Millisecond))
}

func IncScoreFailure() { scoreFailuresTotal.Inc() }
