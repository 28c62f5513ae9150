package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(jobsFetchTotal, jobsCacheTotal)
}

var (
	jobsFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobs_fetch_total",
			Help: "Job-source fetches, labeled by result.",
		},
		[]string{"result"}, // 'ok', 'error'
	)

	jobsCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobs_cache_requests_total",
			Help: "Scored-jobs cache lookups, labeled by result.",
		},
		[]string{"result"}, // 'hit', 'miss'
	)
)

func IncJobsFetch(ok bool) {
	result := "error"
	if ok {
		result = "ok"
	}
	jobsFetchTotal.WithLabelValues(result).Inc()
}

func IncJobsCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	jobsCacheTotal.WithLabelValues(result).Inc()
}
