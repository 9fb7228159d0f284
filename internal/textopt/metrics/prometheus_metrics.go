package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
)

const subsystem = "seo"

// PrometheusMetrics holds the service's Prometheus instruments
type PrometheusMetrics struct {
	httpRequests *prometheus.CounterVec

	optimizationsTotal *prometheus.CounterVec
	completionDuration prometheus.Histogram

	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	validationErrors *prometheus.CounterVec
	parseFallbacks   *prometheus.CounterVec
	languageMismatch prometheus.Counter

	logger      *zap.Logger
	httpHandler func(*fasthttp.RequestCtx)
}

// NewPrometheusMetrics registers the instruments with the default registry
func NewPrometheusMetrics(namespace string, logger *zap.Logger) *PrometheusMetrics {
	return NewPrometheusMetricsWithRegistry(namespace, prometheus.DefaultRegisterer, logger)
}

// NewPrometheusMetricsWithRegistry registers the instruments with registerer.
// The exposition handler gathers from registerer when it is also a Gatherer.
func NewPrometheusMetricsWithRegistry(namespace string, registerer prometheus.Registerer, logger *zap.Logger) *PrometheusMetrics {
	pm := &PrometheusMetrics{logger: logger}

	pm.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint and status",
	}, []string{"endpoint", "status"})

	pm.optimizationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "optimizations_total",
		Help:      "Optimization requests by outcome",
	}, []string{"outcome"}) // outcome: success, fallback, error

	pm.completionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "completion_duration_seconds",
		Help:      "Time spent waiting for the completion API",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 9), // 0.25s to 64s
	})

	pm.cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "completion_cache_hits_total",
		Help:      "Completions served from the cache",
	})

	pm.cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "completion_cache_misses_total",
		Help:      "Completions not found in the cache",
	})

	pm.validationErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "validation_errors_total",
		Help:      "Rejected request fields",
	}, []string{"field"})

	pm.parseFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "parse_fallbacks_total",
		Help:      "Completion sections missing from the answer",
	}, []string{"section"}) // section: optimized_text, meta_description

	pm.languageMismatch = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "language_mismatch_total",
		Help:      "Requests whose text language differs from the declared language",
	})

	registerer.MustRegister(
		pm.httpRequests,
		pm.optimizationsTotal,
		pm.completionDuration,
		pm.cacheHits,
		pm.cacheMisses,
		pm.validationErrors,
		pm.parseFallbacks,
		pm.languageMismatch,
	)

	gatherer, ok := registerer.(prometheus.Gatherer)
	if !ok {
		gatherer = prometheus.DefaultGatherer
	}
	pm.httpHandler = fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	logger.Debug("Prometheus metrics initialized", zap.String("namespace", namespace))
	return pm
}

func (pm *PrometheusMetrics) RecordHTTPRequest(endpoint, status string) {
	pm.httpRequests.WithLabelValues(endpoint, status).Inc()
}

func (pm *PrometheusMetrics) RecordOptimization(outcome string) {
	pm.optimizationsTotal.WithLabelValues(outcome).Inc()
}

func (pm *PrometheusMetrics) RecordCompletionDuration(seconds float64) {
	pm.completionDuration.Observe(seconds)
}

func (pm *PrometheusMetrics) RecordCacheHit() {
	pm.cacheHits.Inc()
}

func (pm *PrometheusMetrics) RecordCacheMiss() {
	pm.cacheMisses.Inc()
}

func (pm *PrometheusMetrics) RecordValidationError(field string) {
	pm.validationErrors.WithLabelValues(field).Inc()
}

func (pm *PrometheusMetrics) RecordParseFallback(section string) {
	pm.parseFallbacks.WithLabelValues(section).Inc()
}

func (pm *PrometheusMetrics) RecordLanguageMismatch() {
	pm.languageMismatch.Inc()
}

// CacheHitRatio returns hits / (hits + misses), or 0 before any lookup.
func (pm *PrometheusMetrics) CacheHitRatio() float64 {
	hits := pm.getCounterValue(pm.cacheHits)
	total := hits + pm.getCounterValue(pm.cacheMisses)
	if total == 0 {
		return 0
	}
	return hits / total
}

func (pm *PrometheusMetrics) getCounterValue(counter prometheus.Counter) float64 {
	metric := &dto.Metric{}
	if err := counter.Write(metric); err != nil {
		pm.logger.Warn("Failed to read counter value", zap.Error(err))
		return 0
	}
	return metric.GetCounter().GetValue()
}

// ServeHTTP serves the Prometheus exposition format
func (pm *PrometheusMetrics) ServeHTTP(ctx *fasthttp.RequestCtx) {
	pm.httpHandler(ctx)
}
