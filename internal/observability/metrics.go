package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "housingdash",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "housingdash",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"})

	datasetLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "housingdash",
		Subsystem: "dataset",
		Name:      "loads_total",
		Help:      "Dataset loads by dataset and outcome",
	}, []string{"dataset", "outcome"})

	datasetRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "housingdash",
		Subsystem: "dataset",
		Name:      "records",
		Help:      "Number of records in the currently loaded dataset",
	}, []string{"dataset"})

	lookupMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "housingdash",
		Subsystem: "metadata",
		Name:      "lookup_misses_total",
		Help:      "ZIP code lookups that found no aggregate record",
	})

	renderCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "housingdash",
		Subsystem: "ranking",
		Name:      "cache_results_total",
		Help:      "Ranking render cache results by outcome",
	}, []string{"outcome"})
)

// ObserveDatasetLoad records the outcome of one dataset load.
func ObserveDatasetLoad(dataset string, records int, err error) {
	if err != nil {
		datasetLoads.WithLabelValues(dataset, "error").Inc()
		return
	}
	datasetLoads.WithLabelValues(dataset, "ok").Inc()
	datasetRecords.WithLabelValues(dataset).Set(float64(records))
}

func IncLookupMiss() {
	lookupMisses.Inc()
}

func ObserveRenderCache(hit bool) {
	if hit {
		renderCache.WithLabelValues("hit").Inc()
		return
	}
	renderCache.WithLabelValues("miss").Inc()
}

// Middleware records request metrics per matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
