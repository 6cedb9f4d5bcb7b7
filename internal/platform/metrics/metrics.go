package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	PlansTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "routeplan_plans_total",
		Help: "Planning calls by mode and outcome",
	}, []string{"mode", "outcome"})
	PlanDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "routeplan_plan_duration_ms",
		Help:    "Planning call duration in milliseconds",
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
	})
	VariantsEvaluated = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "routeplan_variants_evaluated",
		Help:    "Successful candidates per variant search",
		Buckets: []float64{0, 1, 2, 3, 4, 5},
	})
	OracleCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "routeplan_oracle_calls_total",
		Help: "Routing oracle calls by outcome",
	}, []string{"outcome"})
	OracleDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "routeplan_oracle_duration_ms",
		Help:    "Routing oracle call duration in milliseconds",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000},
	})
	RouteCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "routeplan_route_cache_total",
		Help: "Oracle result cache lookups by result (hit|miss|error)",
	}, []string{"result"})
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "routeplan_http_requests_total",
		Help: "HTTP requests by path and status code",
	}, []string{"path", "status"})
)

var registry = prometheus.NewRegistry()

func init() {
	registry.MustRegister(
		PlansTotal,
		PlanDurationMs,
		VariantsEvaluated,
		OracleCallsTotal,
		OracleDurationMs,
		RouteCacheTotal,
		HTTPRequestsTotal,
	)
}

// Handler exposes the service metrics in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
