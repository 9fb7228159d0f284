// Package metrics records service metrics in Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Optimization outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

// Parsed answer sections
const (
	SectionOptimizedText   = "optimized_text"
	SectionMetaDescription = "meta_description"
)

// MetricsCollector is the single entry point for recording metrics
type MetricsCollector struct {
	prometheus *PrometheusMetrics
	logger     *zap.Logger
}

func NewMetricsCollector(namespace string, logger *zap.Logger) *MetricsCollector {
	return &MetricsCollector{
		prometheus: NewPrometheusMetrics(namespace, logger),
		logger:     logger,
	}
}

// NewMetricsCollectorWithRegistry is used by tests to avoid the global registry.
func NewMetricsCollectorWithRegistry(namespace string, registerer prometheus.Registerer, logger *zap.Logger) *MetricsCollector {
	return &MetricsCollector{
		prometheus: NewPrometheusMetricsWithRegistry(namespace, registerer, logger),
		logger:     logger,
	}
}

func (mc *MetricsCollector) RecordHTTPRequest(endpoint, status string) {
	mc.prometheus.RecordHTTPRequest(endpoint, status)
}

func (mc *MetricsCollector) RecordOptimizationSuccess() {
	mc.prometheus.RecordOptimization(OutcomeSuccess)
}

// RecordOptimizationFallback records a result degraded to the original text.
func (mc *MetricsCollector) RecordOptimizationFallback() {
	mc.prometheus.RecordOptimization(OutcomeFallback)
}

func (mc *MetricsCollector) RecordOptimizationError() {
	mc.prometheus.RecordOptimization(OutcomeError)
}

func (mc *MetricsCollector) RecordCompletionDuration(d time.Duration) {
	mc.prometheus.RecordCompletionDuration(d.Seconds())
}

func (mc *MetricsCollector) RecordCacheHit() {
	mc.prometheus.RecordCacheHit()
}

func (mc *MetricsCollector) RecordCacheMiss() {
	mc.prometheus.RecordCacheMiss()
}

func (mc *MetricsCollector) RecordValidationError(field string) {
	mc.prometheus.RecordValidationError(field)
}

func (mc *MetricsCollector) RecordParseFallback(section string) {
	mc.prometheus.RecordParseFallback(section)
	mc.logger.Debug("Recorded parse fallback", zap.String("section", section))
}

func (mc *MetricsCollector) RecordLanguageMismatch() {
	mc.prometheus.RecordLanguageMismatch()
}

func (mc *MetricsCollector) CacheHitRatio() float64 {
	return mc.prometheus.CacheHitRatio()
}

func (mc *MetricsCollector) ServeHTTP(ctx *fasthttp.RequestCtx) {
	mc.prometheus.ServeHTTP(ctx)
}
