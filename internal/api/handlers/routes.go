package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"tentative-route-service/internal/api/dto"
	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/ports"
)

// TentativePlanner is the planning surface the route handlers need.
type TentativePlanner interface {
	Plan(ctx context.Context, creds ports.Credentials, req domain.PlanningRequest) domain.RouteCandidate
	Variants(ctx context.Context, creds ports.Credentials, originID, destinationID int64) ([]domain.RouteCandidate, error)
}

type RouteHandler struct {
	Planner TentativePlanner
}

// Tentative plans a route from query parameters (GET) or a JSON body (POST).
// The response body is always a route candidate; its status reflects the
// failure kind when planning did not succeed.
func (h *RouteHandler) Tentative(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	var req dto.TentativeRouteRequest
	var err error
	if r.Method == http.MethodPost {
		err = decodeTentativeBody(r, &req)
	} else {
		err = parseTentativeQuery(r, &req)
	}
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	c := h.Planner.Plan(r.Context(), credentialsFrom(r), req.ToDomain())

	writeJSON(w, r, statusFor(c.Failure), dto.FromCandidate(c))
}

// Variants lists every successful candidate of a variant search.
func (h *RouteHandler) Variants(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	origin, err := parseID(q.Get("originDepotId"), "originDepotId", true)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	destination, err := parseID(q.Get("destinationDepotId"), "destinationDepotId", true)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	variants, err := h.Planner.Variants(r.Context(), credentialsFrom(r), origin, destination)
	if err != nil {
		writeError(w, r, statusFor(domain.KindOf(err)), err.Error())
		return
	}

	res := dto.VariantsResponse{
		Count:    len(variants),
		Variants: make([]dto.RouteCandidateResponse, 0, len(variants)),
	}
	for _, c := range variants {
		res.Variants = append(res.Variants, dto.FromCandidate(c))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func decodeTentativeBody(r *http.Request, req *dto.TentativeRouteRequest) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(req); err != nil {
		return errInvalidJSON
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errTrailingJSON
	}
	return nil
}

func parseTentativeQuery(r *http.Request, req *dto.TentativeRouteRequest) error {
	q := r.URL.Query()

	var err error
	if req.OriginDepotID, err = parseID(q.Get("originDepotId"), "originDepotId", true); err != nil {
		return err
	}
	if req.DestinationDepotID, err = parseID(q.Get("destinationDepotId"), "destinationDepotId", true); err != nil {
		return err
	}
	if req.IntermediateDepotIDs, err = parseIDList(q.Get("intermediates"), "intermediates"); err != nil {
		return err
	}

	if v := strings.TrimSpace(q.Get("computeVariants")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errComputeVariants
		}
		req.ComputeVariants = b
	}
	return nil
}
