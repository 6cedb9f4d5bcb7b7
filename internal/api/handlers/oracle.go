package handlers

import (
	"context"
	"fmt"
	"net/http"

	"tentative-route-service/internal/api/dto"
	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/platform/geo"
	"tentative-route-service/internal/ports"
)

// LegRouter answers a single oracle query between two points.
type LegRouter interface {
	Route(ctx context.Context, creds ports.Credentials, origin, destination domain.Coordinates) domain.OracleResult
}

type OracleHandler struct {
	Oracle LegRouter
}

// Route exposes one oracle call between two coordinates.
func (h *OracleHandler) Route(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	origin, destination, err := parsePointPair(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res := h.Oracle.Route(r.Context(), credentialsFrom(r), origin, destination)

	writeJSON(w, r, statusFor(res.Failure), dto.OracleRouteResponse{
		Success:       res.Success,
		DistanceKm:    res.DistanceKm,
		DurationHours: res.DurationHours,
		Geometry:      res.Geometry,
		Message:       res.Message,
		Failure:       string(res.Failure),
	})
}

// Distance returns the road distance between two coordinates, or a
// great-circle estimate flagged as such when the oracle cannot answer.
// The planning engine never uses the estimate.
func (h *OracleHandler) Distance(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	origin, destination, err := parsePointPair(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res := h.Oracle.Route(r.Context(), credentialsFrom(r), origin, destination)
	if res.Success {
		writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
			DistanceKm:    res.DistanceKm,
			DurationHours: res.DurationHours,
		})
		return
	}
	if res.Failure == domain.FailureCanceled {
		writeError(w, r, statusFor(res.Failure), res.Message)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
		DistanceKm: domain.Round2(geo.HaversineKm(origin, destination)),
		Estimated:  true,
		Message:    fmt.Sprintf("great-circle estimate: %s", res.Message),
	})
}

func parsePointPair(r *http.Request) (domain.Coordinates, domain.Coordinates, error) {
	q := r.URL.Query()

	var vals [4]float64
	for i, name := range []string{"originLat", "originLon", "destinationLat", "destinationLon"} {
		v, err := parseFloat(q.Get(name), name)
		if err != nil {
			return domain.Coordinates{}, domain.Coordinates{}, err
		}
		vals[i] = v
	}

	origin := domain.Coordinates{Lat: vals[0], Lon: vals[1]}
	destination := domain.Coordinates{Lat: vals[2], Lon: vals[3]}
	if !origin.Valid() || !destination.Valid() {
		return domain.Coordinates{}, domain.Coordinates{}, errCoordinates
	}
	return origin, destination, nil
}
