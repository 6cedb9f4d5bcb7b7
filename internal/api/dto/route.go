package dto

import "tentative-route-service/internal/domain"

type TentativeRouteRequest struct {
	OriginDepotID        int64   `json:"originDepotId"`
	DestinationDepotID   int64   `json:"destinationDepotId"`
	IntermediateDepotIDs []int64 `json:"intermediateDepotIds,omitempty"`
	ComputeVariants      bool    `json:"computeVariants"`
}

func (r TentativeRouteRequest) ToDomain() domain.PlanningRequest {
	return domain.PlanningRequest{
		OriginDepotID:        r.OriginDepotID,
		DestinationDepotID:   r.DestinationDepotID,
		IntermediateDepotIDs: r.IntermediateDepotIDs,
		ComputeVariants:      r.ComputeVariants,
	}
}

type LegResponse struct {
	Order              int     `json:"order"`
	OriginDepotID      int64   `json:"originDepotId"`
	OriginName         string  `json:"originName"`
	DestinationDepotID int64   `json:"destinationDepotId"`
	DestinationName    string  `json:"destinationName"`
	DistanceKm         float64 `json:"distanceKm"`
	DurationHours      float64 `json:"durationHours"`
	Geometry           string  `json:"geometry,omitempty"`
}

type RouteCandidateResponse struct {
	Success            bool          `json:"success"`
	Message            string        `json:"message"`
	Failure            string        `json:"failure,omitempty"`
	DepotSequence      []int64       `json:"depotSequence,omitempty"`
	DepotNames         []string      `json:"depotNames,omitempty"`
	Legs               []LegResponse `json:"legs,omitempty"`
	TotalDistanceKm    float64       `json:"totalDistanceKm"`
	TotalDurationHours float64       `json:"totalDurationHours"`
	CombinedGeometry   string        `json:"combinedGeometry,omitempty"`
}

type VariantsResponse struct {
	Count    int                      `json:"count"`
	Variants []RouteCandidateResponse `json:"variants"`
}

func FromCandidate(c domain.RouteCandidate) RouteCandidateResponse {
	res := RouteCandidateResponse{
		Success:            c.Success,
		Message:            c.Message,
		Failure:            string(c.Failure),
		DepotSequence:      c.DepotSequence,
		DepotNames:         c.DepotNames,
		TotalDistanceKm:    c.TotalDistanceKm,
		TotalDurationHours: c.TotalDurationHours,
		CombinedGeometry:   c.CombinedGeometry,
	}

	if len(c.Legs) > 0 {
		res.Legs = make([]LegResponse, 0, len(c.Legs))
		for _, l := range c.Legs {
			res.Legs = append(res.Legs, LegResponse{
				Order:              l.Order,
				OriginDepotID:      l.OriginDepotID,
				OriginName:         l.OriginName,
				DestinationDepotID: l.DestDepotID,
				DestinationName:    l.DestName,
				DistanceKm:         l.DistanceKm,
				DurationHours:      l.DurationHours,
				Geometry:           l.Geometry,
			})
		}
	}

	return res
}
