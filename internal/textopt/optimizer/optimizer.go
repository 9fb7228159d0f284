// Package optimizer runs the optimization pipeline: validation, baseline
// metadata, prompt, completion, answer parsing, text metrics and result
// assembly.
package optimizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/edgecomet/seotext/internal/textopt/analysis"
	"github.com/edgecomet/seotext/internal/textopt/cache"
	"github.com/edgecomet/seotext/internal/textopt/llm"
	"github.com/edgecomet/seotext/internal/textopt/metrics"
	"github.com/edgecomet/seotext/internal/textopt/prompt"
	"github.com/edgecomet/seotext/internal/textopt/seometa"
	"github.com/edgecomet/seotext/internal/textopt/validate"
	"github.com/edgecomet/seotext/pkg/types"
)

// Completer sends a prompt to a chat completion API.
type Completer interface {
	Complete(ctx context.Context, prompt string) (*llm.Completion, error)
	Model() string
}

// CompletionCache stores completion answers by model and prompt.
type CompletionCache interface {
	Get(ctx context.Context, model, prompt string) (*cache.Entry, bool)
	Put(ctx context.Context, model, prompt string, entry *cache.Entry) error
}

// ValidationError carries every rejected request field.
type ValidationError struct {
	Fields []types.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// Options configures an Optimizer.
type Options struct {
	// Cache is optional
	Cache CompletionCache
	// FallbackOnError degrades to the original text when the completion
	// fails instead of returning the error.
	FallbackOnError bool
}

type Optimizer struct {
	completer       Completer
	cache           CompletionCache
	fallbackOnError bool
	metrics         *metrics.MetricsCollector
	logger          *zap.Logger
}

func New(completer Completer, opts Options, metricsCollector *metrics.MetricsCollector, logger *zap.Logger) *Optimizer {
	return &Optimizer{
		completer:       completer,
		cache:           opts.Cache,
		fallbackOnError: opts.FallbackOnError,
		metrics:         metricsCollector,
		logger:          logger,
	}
}

// Analyze computes the text metrics of an /api/analyze request.
func (o *Optimizer) Analyze(req *types.AnalyzeRequest) (*types.TextAnalysis, error) {
	if errs := validate.ValidateAnalyzeRequest(req); len(errs) > 0 {
		o.recordValidation(errs)
		return nil, &ValidationError{Fields: errs}
	}
	result := analysis.Analyze(req.Text, validate.NormalizeKeywords(req.Keywords), req.Language)
	return &result, nil
}

// Optimize runs the full pipeline for req. A *ValidationError is returned for
// invalid input. Completion failures are returned as errors unless the
// optimizer was built with FallbackOnError.
func (o *Optimizer) Optimize(ctx context.Context, requestID string, req *types.OptimizationRequest) (*types.OptimizationResult, error) {
	if errs := validate.ValidateRequest(req); len(errs) > 0 {
		o.recordValidation(errs)
		return nil, &ValidationError{Fields: errs}
	}

	normalized := *req
	normalized.Keywords = validate.NormalizeKeywords(req.Keywords)

	lang := normalized.Language
	text := normalized.Texts[0]
	baseline := seometa.Generate(text, normalized.Title, lang)

	promptText, err := prompt.Build(&normalized)
	if err != nil {
		o.metrics.RecordOptimizationError()
		return nil, err
	}

	completion := types.CompletionInfo{Model: o.completer.Model()}

	answer, err := o.complete(ctx, requestID, promptText, &completion)
	if err != nil {
		if !o.fallbackOnError {
			o.metrics.RecordOptimizationError()
			return nil, err
		}
		o.logger.Warn("Completion failed, returning original text",
			zap.String("request_id", requestID),
			zap.Error(err))
		completion.Degraded = true
	}

	parsed := prompt.Parse(answer)
	completion.Parsed = parsed.Sections()
	if !completion.Degraded {
		o.recordParseFallbacks(requestID, completion.Parsed)
	}

	optimizedText := text
	if parsed.OptimizedText != "" {
		optimizedText = parsed.OptimizedText
	}

	meta := baseline
	if parsed.MetaDescription != "" {
		description := strings.TrimSpace(seometa.TruncateRunes(parsed.MetaDescription, types.MaxMetaDescriptionLength))
		meta.MetaDescription = description
		meta.OgDescription = description
		meta.TwitterDescription = description
	}

	result := &types.OptimizationResult{
		RequestID:       requestID,
		MetaDescription: meta.MetaDescription,
		OptimizedTexts: []types.TextBlock{{
			Text:     optimizedText,
			Analysis: analysis.Analyze(optimizedText, normalized.Keywords, lang),
		}},
		Keywords:    MergeKeywords(normalized.Keywords, baseline.Keywords, baseline.LsiKeywords),
		SeoMetadata: meta,
		MetaTags:    seometa.MetaTags(meta),
		Completion:  completion,
	}

	result.DetectedLanguage, result.LanguageMismatch = detectLanguage(text, lang)
	if result.LanguageMismatch {
		o.metrics.RecordLanguageMismatch()
		o.logger.Info("Text language differs from declared language",
			zap.String("request_id", requestID),
			zap.String("declared", string(lang)),
			zap.String("detected", result.DetectedLanguage))
	}

	if completion.Degraded || !completion.Parsed.OptimizedText {
		o.metrics.RecordOptimizationFallback()
	} else {
		o.metrics.RecordOptimizationSuccess()
	}

	return result, nil
}

// complete returns the completion answer for promptText, from the cache when
// possible. Successful answers are cached.
func (o *Optimizer) complete(ctx context.Context, requestID, promptText string, info *types.CompletionInfo) (string, error) {
	model := o.completer.Model()

	if o.cache != nil {
		if entry, ok := o.cache.Get(ctx, model, promptText); ok {
			o.metrics.RecordCacheHit()
			info.Model = entry.Model
			info.Cached = true
			return entry.Content, nil
		}
		o.metrics.RecordCacheMiss()
	}

	start := time.Now()
	resp, err := o.completer.Complete(ctx, promptText)
	o.metrics.RecordCompletionDuration(time.Since(start))
	if err != nil {
		if errors.Is(err, llm.ErrUnauthorized) {
			o.logger.Error("Completion API credentials rejected", zap.String("request_id", requestID))
		}
		return "", fmt.Errorf("completion failed: %w", err)
	}
	info.Model = resp.Model

	o.logger.Debug("Completion finished",
		zap.String("request_id", requestID),
		zap.String("model", resp.Model),
		zap.Duration("duration", time.Since(start)))

	if o.cache != nil && strings.TrimSpace(resp.Content) != "" {
		if err := o.cache.Put(ctx, model, promptText, &cache.Entry{Model: resp.Model, Content: resp.Content}); err != nil {
			o.logger.Warn("Failed to cache completion",
				zap.String("request_id", requestID),
				zap.Error(err))
		}
	}

	return resp.Content, nil
}

func (o *Optimizer) recordValidation(errs []types.FieldError) {
	for _, e := range errs {
		o.metrics.RecordValidationError(validate.MetricLabel(e.Field))
	}
}

func (o *Optimizer) recordParseFallbacks(requestID string, parsed types.ParsedSections) {
	if !parsed.OptimizedText {
		o.metrics.RecordParseFallback(metrics.SectionOptimizedText)
	}
	if !parsed.MetaDescription {
		o.metrics.RecordParseFallback(metrics.SectionMetaDescription)
	}
	if !parsed.OptimizedText || !parsed.MetaDescription {
		o.logger.Info("Completion answer is missing sections, using fallbacks",
			zap.String("request_id", requestID),
			zap.Bool("optimized_text", parsed.OptimizedText),
			zap.Bool("meta_description", parsed.MetaDescription))
	}
}

// MergeKeywords concatenates the keyword lists and drops exact duplicates,
// keeping the first occurrence.
func MergeKeywords(lists ...[]string) []string {
	seen := make(map[string]struct{})
	merged := []string{}
	for _, list := range lists {
		for _, kw := range list {
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			merged = append(merged, kw)
		}
	}
	return merged
}
