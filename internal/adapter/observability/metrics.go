package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"route", "method"},
	)

	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of LLM requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)
	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "LLM request duration in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
		},
		[]string{"provider"},
	)
	AITokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_tokens_total",
			Help: "Prompt and completion tokens sent to or received from LLM providers",
		},
		[]string{"model", "kind"},
	)

	// FinalScoreHistogram is the distribution of weighted final scores in [0,1].
	FinalScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resume_final_score",
			Help:    "Distribution of weighted resume scores (fraction [0,1])",
			Buckets: []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)
	FeedbackTokensIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "feedback_tokens_issued_total",
			Help: "Total number of feedback tokens issued by /upload",
		},
	)
	FeedbackRedemptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_redemptions_total",
			Help: "Feedback redemption attempts by outcome",
		},
		[]string{"outcome"},
	)
	FeedbackPending = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "feedback_pending_entries",
			Help: "Number of issued feedback tokens not yet redeemed",
		},
	)
)

var registerOnce sync.Once

// InitMetrics registers every collector with the default registry. Safe to call more than once.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			AIRequestsTotal,
			AIRequestDuration,
			AITokensTotal,
			FinalScoreHistogram,
			FeedbackTokensIssued,
			FeedbackRedemptions,
			FeedbackPending,
		)
	})
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, http.StatusText(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(dur)
	})
}

// ObserveAIRequest records one LLM call.
func ObserveAIRequest(provider string, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	AIRequestsTotal.WithLabelValues(provider, outcome).Inc()
	AIRequestDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// RecordAITokens adds prompt and completion token counts for model.
func RecordAITokens(model string, prompt, completion int) {
	if prompt > 0 {
		AITokensTotal.WithLabelValues(model, "prompt").Add(float64(prompt))
	}
	if completion > 0 {
		AITokensTotal.WithLabelValues(model, "completion").Add(float64(completion))
	}
}

// ObserveFinalScore records a weighted score; values outside [0,1] are ignored.
func ObserveFinalScore(v float64) {
	if v >= 0 && v <= 1 {
		FinalScoreHistogram.Observe(v)
	}
}

// TokenIssued counts a stored pending-feedback entry.
func TokenIssued() {
	FeedbackTokensIssued.Inc()
	FeedbackPending.Inc()
}

// Redemption outcomes.
const (
	RedeemOK       = "ok"
	RedeemNotFound = "not_found"
	RedeemFailed   = "llm_error"
)

// TokenRedeemed counts a redemption attempt. Any outcome other than
// RedeemNotFound consumed an entry.
func TokenRedeemed(outcome string) {
	FeedbackRedemptions.WithLabelValues(outcome).Inc()
	if outcome != RedeemNotFound {
		FeedbackPending.Dec()
	}
}

// SetPendingFeedback overwrites the pending gauge, for stores that can count.
func SetPendingFeedback(n int) { FeedbackPending.Set(float64(n)) }
