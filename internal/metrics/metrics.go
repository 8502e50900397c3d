package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "companion_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	FetchedTendersCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "companion_tenders_fetched_total",
			Help: "Total number of tenders fetched from the BOAMP feed.",
		},
	)
	MatchedTendersCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "companion_tenders_matched_total",
			Help: "Total number of tenders above the alert score threshold.",
		},
	)
	CacheHitsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "companion_tender_cache_hits_total",
			Help: "Total number of tender cache hits.",
		},
	)
	CacheMissesCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "companion_tender_cache_misses_total",
			Help: "Total number of tender cache misses.",
		},
	)
	FetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "companion_tender_fetch_duration_seconds",
			Help:    "Duration of one tender page fetch in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
	)
	SweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "companion_watcher_sweep_duration_seconds",
			Help:    "Duration of each background watcher sweep in seconds.",
			Buckets: []float64{60, 300, 900, 1800, 3600},
		},
	)
)

func StartMetricsServer(address string) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(FetchedTendersCounter)
	prometheus.MustRegister(MatchedTendersCounter)
	prometheus.MustRegister(CacheHitsCounter)
	prometheus.MustRegister(CacheMissesCounter)
	prometheus.MustRegister(FetchDuration)
	prometheus.MustRegister(SweepDuration)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(address, nil))
	}()
}
