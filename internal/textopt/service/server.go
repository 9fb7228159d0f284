// Package service exposes the optimizer over HTTP.
package service

import (
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/edgecomet/seotext/internal/common/httputil"
	"github.com/edgecomet/seotext/internal/common/requestid"
	"github.com/edgecomet/seotext/internal/textopt/metrics"
	"github.com/edgecomet/seotext/internal/textopt/optimizer"
)

const (
	PathOptimize = "/api/optimize"
	PathAnalyze  = "/api/analyze"
	PathHealth   = "/health"

	// unknownPathLabel replaces the path label of 404s
	unknownPathLabel = "unknown"
)

// Options carries the static values the handlers need.
type Options struct {
	ServiceID    string
	Model        string
	CacheEnabled bool
	// RequestTimeout bounds one optimization including the completion call
	RequestTimeout time.Duration
}

// CreateHTTPHandler creates the main HTTP request handler with routing
func CreateHTTPHandler(opt *optimizer.Optimizer, metricsCollector *metrics.MetricsCollector, opts Options, logger *zap.Logger) fasthttp.RequestHandler {
	allowed := map[string]string{
		PathOptimize: fasthttp.MethodPost,
		PathAnalyze:  fasthttp.MethodPost,
		PathHealth:   fasthttp.MethodGet,
	}

	return func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())
		method := string(ctx.Method())

		reqID := requestid.Resolve(string(ctx.Request.Header.Peek(requestid.Header)))
		ctx.Response.Header.Set(requestid.Header, reqID)

		switch {
		case method == fasthttp.MethodPost && path == PathOptimize:
			HandleOptimize(ctx, reqID, opt, metricsCollector, opts, logger)
		case method == fasthttp.MethodPost && path == PathAnalyze:
			HandleAnalyze(ctx, reqID, opt, metricsCollector, logger)
		case method == fasthttp.MethodGet && path == PathHealth:
			HandleHealth(ctx, metricsCollector, opts)
		default:
			if want, known := allowed[path]; known {
				ctx.Response.Header.Set("Allow", want)
				httputil.WriteText(ctx, fasthttp.StatusMethodNotAllowed, "Method Not Allowed")
				metricsCollector.RecordHTTPRequest(path, "405")
				return
			}
			httputil.WriteText(ctx, fasthttp.StatusNotFound, "Not Found")
			metricsCollector.RecordHTTPRequest(unknownPathLabel, "404")
		}
	}
}
