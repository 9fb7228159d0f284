package service_test

import (
	"encoding/json"
	"net/http"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/edgecomet/seotext/internal/textopt/service"
	"github.com/edgecomet/seotext/pkg/types"
)

const shortGermanRequest = `{"title":"Test","texts":["Dies ist ein kurzer Testtext ohne viele Worte."],"language":"de"}`

var _ = Describe("Optimize API", func() {
	Context("with a well formed completion answer", func() {
		BeforeEach(func() {
			testEnv.LLMAnswer.Store("Gern!\nOPTIMIZED_TEXT:\n## Kurzer Testtext\nDies ist ein kurzer Testtext.\n\nMETA_DESCRIPTION:\nEin kurzer Testtext ohne viele Worte.")
		})

		It("should return the optimized text with analysis and metadata", func() {
			status, header, body := testEnv.Do("POST", service.PathOptimize, shortGermanRequest, nil)
			Expect(status).To(Equal(http.StatusOK))
			Expect(string(header.ContentType())).To(HavePrefix("application/json"))

			var result types.OptimizationResult
			Expect(json.Unmarshal(body, &result)).To(Succeed())

			Expect(result.OptimizedTexts).To(HaveLen(1))
			Expect(result.OptimizedTexts[0].Text).To(Equal("## Kurzer Testtext\nDies ist ein kurzer Testtext."))
			Expect(result.OptimizedTexts[0].Analysis.Structure.Headings).To(Equal(1))
			Expect(result.OptimizedTexts[0].Analysis.TextLength.Status).To(Equal(types.LengthTooShort))
			Expect(result.MetaDescription).To(Equal("Ein kurzer Testtext ohne viele Worte."))
			Expect(result.SeoMetadata.OgDescription).To(Equal(result.MetaDescription))
			Expect(result.MetaTags).To(ContainSubstring(`<meta name="description"`))
			Expect(result.Completion.Model).To(Equal("fake-model-0125"))
			Expect(result.Completion.Cached).To(BeFalse())
		})

		It("should serve a repeated request from the completion cache", func() {
			status, _, _ := testEnv.Do("POST", service.PathOptimize, shortGermanRequest, nil)
			Expect(status).To(Equal(http.StatusOK))

			status, _, body := testEnv.Do("POST", service.PathOptimize, shortGermanRequest, nil)
			Expect(status).To(Equal(http.StatusOK))

			var result types.OptimizationResult
			Expect(json.Unmarshal(body, &result)).To(Succeed())
			Expect(result.Completion.Cached).To(BeTrue())
			Expect(testEnv.LLMCalls.Load()).To(Equal(int32(1)))
			Expect(testEnv.MiniRedis.Keys()).To(HaveLen(1))
			Expect(testEnv.MiniRedis.Keys()[0]).To(HavePrefix("completion:"))
		})

		It("should echo the supplied request ID", func() {
			_, header, body := testEnv.Do("POST", service.PathOptimize, shortGermanRequest,
				map[string]string{"X-Request-ID": "order-42"})
			Expect(string(header.Peek("X-Request-ID"))).To(Equal("order-42"))

			var result types.OptimizationResult
			Expect(json.Unmarshal(body, &result)).To(Succeed())
			Expect(result.RequestID).To(Equal("order-42"))
		})
	})

	Context("with an answer missing the markers", func() {
		It("should fall back to the original text and generated metadata", func() {
			testEnv.LLMAnswer.Store("I cannot help with that.")

			status, _, body := testEnv.Do("POST", service.PathOptimize, shortGermanRequest, nil)
			Expect(status).To(Equal(http.StatusOK))

			var result types.OptimizationResult
			Expect(json.Unmarshal(body, &result)).To(Succeed())
			Expect(result.OptimizedTexts[0].Text).To(Equal("Dies ist ein kurzer Testtext ohne viele Worte."))
			Expect(result.MetaDescription).To(HavePrefix("Dies ist ein kurzer Testtext ohne viele Worte"))
			Expect(result.Completion.Parsed.OptimizedText).To(BeFalse())

			a := result.OptimizedTexts[0].Analysis
			Expect(a.KeywordDensity.TotalDensity).To(Equal(0.0))
			Expect(a.Structure.Headings).To(Equal(0))
			Expect(a.Structure.RecommendationCodes).To(ContainElement(types.RecommendAddHeadings))
		})
	})

	Context("when the completion API fails", func() {
		It("should answer 500 with the error envelope", func() {
			testEnv.LLMStatus.Store(http.StatusBadGateway)

			status, _, body := testEnv.Do("POST", service.PathOptimize, shortGermanRequest, nil)
			Expect(status).To(Equal(http.StatusInternalServerError))

			var resp types.ErrorResponse
			Expect(json.Unmarshal(body, &resp)).To(Succeed())
			Expect(resp.Error).To(Equal("Interner Serverfehler"))
			Expect(resp.Message).To(Equal("Ein unerwarteter Fehler ist aufgetreten"))
			Expect(resp.Details).To(ContainSubstring("502"))
			Expect(testEnv.MiniRedis.Keys()).To(BeEmpty())
		})
	})

	Context("with invalid input", func() {
		It("should list every invalid field", func() {
			body := `{"title":"` + strings.Repeat("x", 61) + `","texts":[""],"language":"en"}`
			status, _, respBody := testEnv.Do("POST", service.PathOptimize, body, nil)
			Expect(status).To(Equal(http.StatusBadRequest))

			var resp types.ValidationErrorResponse
			Expect(json.Unmarshal(respBody, &resp)).To(Succeed())
			Expect(resp.Error).To(Equal("Invalid request data"))

			var fields []string
			for _, d := range resp.Details {
				fields = append(fields, d.Field)
			}
			Expect(fields).To(Equal([]string{"texts.0", "title"}))
			Expect(testEnv.LLMCalls.Load()).To(BeZero())
		})

		It("should report malformed JSON as a body error", func() {
			status, _, respBody := testEnv.Do("POST", service.PathOptimize, `not json`, nil)
			Expect(status).To(Equal(http.StatusBadRequest))

			var resp types.ValidationErrorResponse
			Expect(json.Unmarshal(respBody, &resp)).To(Succeed())
			Expect(resp.Details).To(HaveLen(1))
			Expect(resp.Details[0].Field).To(Equal("body"))
		})
	})
})

var _ = Describe("Analyze API", func() {
	It("should compute metrics without calling the completion API", func() {
		status, _, body := testEnv.Do("POST", service.PathAnalyze,
			`{"text":"Gute Tipps helfen. Tipps sind gut.","keywords":["tipps"],"language":"de"}`, nil)
		Expect(status).To(Equal(http.StatusOK))

		var a types.TextAnalysis
		Expect(json.Unmarshal(body, &a)).To(Succeed())
		Expect(a.Structure.Sentences).To(Equal(2))
		Expect(a.KeywordDensity.Distribution).To(HaveLen(1))
		Expect(testEnv.LLMCalls.Load()).To(BeZero())
	})
})

var _ = Describe("Health and routing", func() {
	It("should report health", func() {
		status, _, body := testEnv.Do("GET", service.PathHealth, "", nil)
		Expect(status).To(Equal(http.StatusOK))

		var health service.HealthResponse
		Expect(json.Unmarshal(body, &health)).To(Succeed())
		Expect(health.Status).To(Equal("ok"))
		Expect(health.CacheEnabled).To(BeTrue())
	})

	It("should return 404 for unknown paths", func() {
		status, _, body := testEnv.Do("GET", "/unknown", "", nil)
		Expect(status).To(Equal(http.StatusNotFound))
		Expect(string(body)).To(Equal("Not Found"))
	})

	It("should return 405 for the wrong method", func() {
		status, _, _ := testEnv.Do("GET", service.PathOptimize, "", nil)
		Expect(status).To(Equal(http.StatusMethodNotAllowed))
	})
})
