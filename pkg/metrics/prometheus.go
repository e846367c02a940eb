package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for a scan run
type Metrics struct {
	MessagesFound   prometheus.Counter
	MessagesFetched prometheus.Counter
	MessagesSkipped *prometheus.CounterVec
	RecordsExported prometheus.Counter
	FetchDuration   prometheus.Histogram
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		MessagesFound: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_found_total",
			Help:      "Unique messages matched across all search queries",
		}),
		MessagesFetched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_fetched_total",
			Help:      "Messages fetched in full from Gmail",
		}),
		MessagesSkipped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_skipped_total",
			Help:      "Messages dropped from the export",
		}, []string{"reason"}),
		RecordsExported: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_exported_total",
			Help:      "Flight records written to the report",
		}),
		FetchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "message_fetch_duration_seconds",
			Help:      "Time taken to fetch one message",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
