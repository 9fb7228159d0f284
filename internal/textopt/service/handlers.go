package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/edgecomet/seotext/internal/common/httputil"
	"github.com/edgecomet/seotext/internal/textopt/metrics"
	"github.com/edgecomet/seotext/internal/textopt/optimizer"
	"github.com/edgecomet/seotext/internal/textopt/validate"
	"github.com/edgecomet/seotext/pkg/types"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string  `json:"status"`
	ServiceID     string  `json:"service_id"`
	Model         string  `json:"model"`
	CacheEnabled  bool    `json:"cache_enabled"`
	CacheHitRatio float64 `json:"cache_hit_ratio"`
}

func writeJSONResponse(ctx *fasthttp.RequestCtx, statusCode int, response interface{}, path string, metricsCollector *metrics.MetricsCollector) {
	httputil.WriteJSON(ctx, statusCode, response)
	metricsCollector.RecordHTTPRequest(path, strconv.Itoa(ctx.Response.StatusCode()))
}

// writeDecodeError reports an undecodable payload. A value of the wrong type
// is reported on its field; any other decode failure on the body field. The
// request language is only known when decoding got past it, German otherwise.
func writeDecodeError(ctx *fasthttp.RequestCtx, reqID, path string, lang types.Language, err error, metricsCollector *metrics.MetricsCollector, logger *zap.Logger) {
	lang = lang.OrDefault()

	fields := validate.MalformedBody(lang)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		fields = validate.InvalidType(typeErr.Field, lang)
	}

	metricsCollector.RecordValidationError(validate.MetricLabel(fields[0].Field))
	writeJSONResponse(ctx, fasthttp.StatusBadRequest, NewValidationErrorResponse(lang, fields), path, metricsCollector)
	logger.Warn("Invalid request body",
		zap.String("request_id", reqID),
		zap.String("path", path),
		zap.Error(err))
}

func writeValidationError(ctx *fasthttp.RequestCtx, reqID, path string, lang types.Language, verr *optimizer.ValidationError, metricsCollector *metrics.MetricsCollector, logger *zap.Logger) {
	writeJSONResponse(ctx, fasthttp.StatusBadRequest, NewValidationErrorResponse(lang, verr.Fields), path, metricsCollector)
	logger.Debug("Request rejected",
		zap.String("request_id", reqID),
		zap.String("path", path),
		zap.Int("errors", len(verr.Fields)))
}

// HandleOptimize processes POST /api/optimize requests
func HandleOptimize(ctx *fasthttp.RequestCtx, reqID string, opt *optimizer.Optimizer, metricsCollector *metrics.MetricsCollector, opts Options, logger *zap.Logger) {
	startTime := time.Now().UTC()

	var req types.OptimizationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeDecodeError(ctx, reqID, PathOptimize, req.Language, err, metricsCollector, logger)
		return
	}

	// Not derived from ctx: fasthttp cancels every RequestCtx as soon as
	// shutdown starts, and in-flight completions must be allowed to drain.
	optCtx := context.Background()
	if opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		optCtx, cancel = context.WithTimeout(optCtx, opts.RequestTimeout)
		defer cancel()
	}

	result, err := opt.Optimize(optCtx, reqID, &req)
	if err != nil {
		var verr *optimizer.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(ctx, reqID, PathOptimize, req.Language, verr, metricsCollector, logger)
			return
		}
		writeJSONResponse(ctx, fasthttp.StatusInternalServerError, NewErrorResponse(req.Language, err), PathOptimize, metricsCollector)
		logger.Error("Optimization failed",
			zap.String("request_id", reqID),
			zap.Duration("duration", time.Since(startTime)),
			zap.Error(err))
		return
	}

	writeJSONResponse(ctx, fasthttp.StatusOK, result, PathOptimize, metricsCollector)

	logger.Info("Optimization completed",
		zap.String("request_id", reqID),
		zap.String("language", string(req.Language)),
		zap.String("model", result.Completion.Model),
		zap.Bool("cached", result.Completion.Cached),
		zap.Bool("degraded", result.Completion.Degraded),
		zap.Duration("duration", time.Since(startTime)))
}

// HandleAnalyze processes POST /api/analyze requests
func HandleAnalyze(ctx *fasthttp.RequestCtx, reqID string, opt *optimizer.Optimizer, metricsCollector *metrics.MetricsCollector, logger *zap.Logger) {
	var req types.AnalyzeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeDecodeError(ctx, reqID, PathAnalyze, req.Language, err, metricsCollector, logger)
		return
	}

	result, err := opt.Analyze(&req)
	if err != nil {
		var verr *optimizer.ValidationError
		if errors.As(err, &verr) {
			writeValidationError(ctx, reqID, PathAnalyze, req.Language, verr, metricsCollector, logger)
			return
		}
		writeJSONResponse(ctx, fasthttp.StatusInternalServerError, NewErrorResponse(req.Language, err), PathAnalyze, metricsCollector)
		return
	}

	writeJSONResponse(ctx, fasthttp.StatusOK, result, PathAnalyze, metricsCollector)
}

// HandleHealth processes GET /health requests
func HandleHealth(ctx *fasthttp.RequestCtx, metricsCollector *metrics.MetricsCollector, opts Options) {
	writeJSONResponse(ctx, fasthttp.StatusOK, HealthResponse{
		Status:        "ok",
		ServiceID:     opts.ServiceID,
		Model:         opts.Model,
		CacheEnabled:  opts.CacheEnabled,
		CacheHitRatio: metricsCollector.CacheHitRatio(),
	}, PathHealth, metricsCollector)
}
