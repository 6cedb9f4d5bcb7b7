package handlers

import (
	"net/http"

	"tentative-route-service/internal/api/dto"
	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/platform/logger"
	"tentative-route-service/internal/ports"
)

// DepotHandler exposes read-only depot retrieval endpoints.
type DepotHandler struct {
	Registry ports.DepotRegistry
}

// List returns every depot, or only those named by ?ids=1,2,3.
func (h *DepotHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	ids, err := parseIDList(r.URL.Query().Get("ids"), "ids")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	creds := credentialsFrom(r)

	var depots []domain.DepotInfo
	if ids == nil {
		depots, err = h.Registry.ListDepots(r.Context(), creds)
	} else {
		var found map[int64]domain.DepotInfo
		found, err = h.Registry.GetDepots(r.Context(), creds, ids)
		for _, id := range ids {
			if d, ok := found[id]; ok {
				depots = append(depots, d)
				delete(found, id)
			}
		}
	}
	if err != nil {
		logger.Component("api").WithError(err).Error("list depots failed")
		writeError(w, r, http.StatusServiceUnavailable, "depot registry unavailable")
		return
	}

	res := make([]dto.DepotResponse, 0, len(depots))
	for _, d := range depots {
		res = append(res, dto.DepotResponse{ID: d.ID, Name: d.Name, Lat: d.Lat, Lon: d.Lon})
	}

	writeJSON(w, r, http.StatusOK, res)
}
