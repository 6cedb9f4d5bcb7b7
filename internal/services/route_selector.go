package services

import "tentative-route-service/internal/domain"

// RouteSelector picks the candidate with the strictly smallest total
// distance. The earliest candidate wins ties, so callers that put the direct
// route first get it on an exact tie.
type RouteSelector struct{}

func (RouteSelector) Select(candidates []domain.RouteCandidate) (domain.RouteCandidate, error) {
	if len(candidates) == 0 {
		return domain.RouteCandidate{}, domain.ErrNoViableCandidate
	}

	best := 0
	for i := 1; i < len(candidates); i++ {
		if candidates[i].TotalDistanceKm < candidates[best].TotalDistanceKm {
			best = i
		}
	}

	return candidates[best], nil
}
