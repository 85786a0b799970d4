package metrics

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Analyses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trustscope_analyses_total",
		Help: "Completed analyses by data provenance",
	}, []string{"provenance"})
	Fallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trustscope_live_fallbacks_total",
		Help: "Analyses that fell back from live data",
	}, []string{"reason"})
	TrustScores = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "trustscope_trust_score",
		Help:    "Distribution of overall trust scores",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	})
	BotPercentages = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "trustscope_bot_percentage",
		Help:    "Distribution of estimated bot percentages",
		Buckets: []float64{5, 10, 20, 30, 45, 60, 85},
	})
	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trustscope_command_runs_total",
		Help: "CLI command invocations",
	}, []string{"command"})
	CommandErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trustscope_command_errors_total",
		Help: "CLI command failures",
	}, []string{"command"})
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trustscope_http_requests_total",
		Help: "HTTP requests by route and status",
	}, []string{"route", "status"})
	BatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "trustscope_batch_duration_seconds",
		Help:    "Batch analysis duration seconds",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(Analyses, Fallbacks, TrustScores, BotPercentages,
		CommandRuns, CommandErrors, HTTPRequests, BatchDuration)
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }

// StartServer starts a metrics HTTP server on addr (e.g., ":9090").
func StartServer(addr string) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, mux) }()
}

// ObserveAnalysis records one finished analysis.
func ObserveAnalysis(provenance string, trustScore int, botPercentage float64) {
	Analyses.WithLabelValues(provenance).Inc()
	TrustScores.Observe(float64(trustScore))
	BotPercentages.Observe(botPercentage)
}

// IncFallback counts a fallback from live data.
func IncFallback(reason string) { Fallbacks.WithLabelValues(reason).Inc() }

func IncCommandRun(cmd string)   { CommandRuns.WithLabelValues(cmd).Inc() }
func IncCommandError(cmd string) { CommandErrors.WithLabelValues(cmd).Inc() }

// IncHTTPRequest counts a served request.
func IncHTTPRequest(route string, status int) {
	HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// ObserveBatchDuration records a batch run duration.
func ObserveBatchDuration(start time.Time) {
	BatchDuration.Observe(time.Since(start).Seconds())
}
