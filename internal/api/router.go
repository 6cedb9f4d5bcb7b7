package api

import (
	"net/http"

	"tentative-route-service/internal/api/handlers"
	"tentative-route-service/internal/platform/metrics"
	"tentative-route-service/internal/ports"
)

type Dependencies struct {
	Planner  handlers.TentativePlanner
	Oracle   handlers.LegRouter
	Registry ports.DepotRegistry
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Planner: deps.Planner}
	oracleHandler := &handlers.OracleHandler{Oracle: deps.Oracle}
	depotHandler := &handlers.DepotHandler{Registry: deps.Registry}

	mux.HandleFunc("/health", handlers.Health)
	mux.Handle("/metrics", metrics.Handler())

	mux.HandleFunc("/api/v1/routes/tentative", routeHandler.Tentative)
	mux.HandleFunc("/api/v1/routes/tentative/variants", routeHandler.Variants)
	mux.HandleFunc("/api/v1/oracle/route", oracleHandler.Route)
	mux.HandleFunc("/api/v1/oracle/distance", oracleHandler.Distance)
	mux.HandleFunc("/api/v1/depots", depotHandler.List)

	return requestIDMiddleware(loggingMiddleware(mux))
}
