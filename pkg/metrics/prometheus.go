package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	QueriesRun     prometheus.Counter
	FlightsScraped prometheus.Counter
	RowsAppended   prometheus.Counter
	ScrapeTime     prometheus.Histogram
	ErrorsCount    *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		QueriesRun: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_run_total",
			Help:      "The total number of route queries executed",
		}),
		FlightsScraped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_scraped_total",
			Help:      "The total number of direct flights extracted",
		}),
		RowsAppended: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_rows_appended_total",
			Help:      "The total number of rows appended to the history workbook",
		}),
		ScrapeTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scrape_duration_seconds",
			Help:      "Time taken to fetch and extract one route query",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
