package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	assessmentsSubmittedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assessments_submitted_total",
		Help: "Total assessments scored and stored",
	})
	assessmentsFailedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assessments_failed_total",
		Help: "Total assessment submissions that could not be stored",
	})
	answerWarningsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assessment_answer_warnings_total",
		Help: "Answers skipped during scoring, by reason",
	}, []string{"reason"})
	overallScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "assessment_overall_score",
		Help:    "Distribution of weighted overall readiness scores",
		Buckets: []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5},
	})
	recommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendations_emitted_total",
		Help: "Recommendations returned to callers, by priority",
	}, []string{"priority"})
	scoringDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "assessment_scoring_duration_ms",
		Help:    "Time spent scoring and recommending one submission in milliseconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})
	reportExportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_exports_total",
		Help: "Report export attempts, by outcome",
	}, []string{"outcome"})
	reportJobsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_jobs_total",
		Help: "Report export jobs seen by the worker, by outcome",
	}, []string{"outcome"})
	resourceRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "resources_refresh_total",
		Help: "Strategy resource digest refreshes, by outcome",
	}, []string{"outcome"})
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"method", "route", "status"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		assessmentsSubmittedTotal,
		assessmentsFailedTotal,
		answerWarningsTotal,
		overallScore,
		recommendationsTotal,
		scoringDuration,
		reportExportsTotal,
		reportJobsTotal,
		resourceRefreshTotal,
		requestDuration,
	)
}

// Registry exposes the process registry, mainly for tests.
func Registry() *prometheus.Registry {
	return registry
}

// IncAssessmentSubmitted records a stored assessment and its overall score.
func IncAssessmentSubmitted(overall float64) {
	assessmentsSubmittedTotal.Inc()
	overallScore.Observe(overall)
}

// IncAssessmentFailed increments the failed counter.
func IncAssessmentFailed() {
	assessmentsFailedTotal.Inc()
}

// IncAnswerWarning counts one skipped answer.
func IncAnswerWarning(reason string) {
	answerWarningsTotal.WithLabelValues(reason).Inc()
}

// IncRecommendation counts one emitted recommendation.
func IncRecommendation(priority string) {
	recommendationsTotal.WithLabelValues(priority).Inc()
}

// ObserveScoring records how long scoring took.
func ObserveScoring(d time.Duration) {
	scoringDuration.Observe(float64(d.Nanoseconds()) / 1e6)
}

// IncReportExport counts an export attempt; outcome is "ok" or "error".
func IncReportExport(outcome string) {
	reportExportsTotal.WithLabelValues(outcome).Inc()
}

// IncReportJob counts a worker job transition: received, completed, failed
// or dropped.
func IncReportJob(outcome string) {
	reportJobsTotal.WithLabelValues(outcome).Inc()
}

// IncResourceRefresh counts a digest refresh; outcome is "ok" or "error".
func IncResourceRefresh(outcome string) {
	resourceRefreshTotal.WithLabelValues(outcome).Inc()
}

// ObserveRequest records one HTTP request.
func ObserveRequest(method, route, status string, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	requestDuration.WithLabelValues(method, route, status).Observe(float64(d.Microseconds()) / 1000.0)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
}
