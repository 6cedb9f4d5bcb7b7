package domain

import (
	"fmt"
	"math"
)

// Represents one point-to-point segment of a tentative route between two depots.
// Order is 1-based and follows the depot sequence of the owning candidate.
type Leg struct {
	Order         int
	OriginDepotID int64
	OriginName    string
	DestDepotID   int64
	DestName      string
	DistanceKm    float64
	DurationHours float64
	Geometry      string
}

// Represents a fully or partially evaluated itinerary considered during planning.
//
// On success DepotSequence has exactly len(Legs)+1 entries, origin first and
// destination last, and the totals are the 2-decimal rounded sums of the legs.
// A failed candidate only guarantees Message and Failure.
type RouteCandidate struct {
	DepotSequence      []int64
	DepotNames         []string
	Legs               []Leg
	TotalDistanceKm    float64
	TotalDurationHours float64
	CombinedGeometry   string
	Success            bool
	Message            string
	Failure            FailureKind
}

// FailedCandidate builds a candidate that carries only a failure description.
func FailedCandidate(kind FailureKind, msg string) RouteCandidate {
	return RouteCandidate{Success: false, Message: msg, Failure: kind}
}

// WithMessage returns a copy of the candidate with its message replaced.
func (c RouteCandidate) WithMessage(msg string) RouteCandidate {
	c.Message = msg
	return c
}

// Waypoints returns the depots strictly between origin and destination.
func (c RouteCandidate) Waypoints() []int64 {
	if len(c.DepotSequence) <= 2 {
		return nil
	}
	return c.DepotSequence[1 : len(c.DepotSequence)-1]
}

// Input of a planning call.
type PlanningRequest struct {
	OriginDepotID        int64
	DestinationDepotID   int64
	IntermediateDepotIDs []int64
	ComputeVariants      bool
}

func (r PlanningRequest) Validate() error {
	if r.OriginDepotID <= 0 {
		return fmt.Errorf("%w: origin depot id must be positive", ErrInvalidRequest)
	}
	if r.DestinationDepotID <= 0 {
		return fmt.Errorf("%w: destination depot id must be positive", ErrInvalidRequest)
	}
	for i, id := range r.IntermediateDepotIDs {
		if id <= 0 {
			return fmt.Errorf("%w: intermediate depot id at index %d must be positive", ErrInvalidRequest, i)
		}
	}
	return nil
}

// Sequence returns the ordered depot ids the request asks for:
// origin, any explicit intermediates, destination.
func (r PlanningRequest) Sequence() []int64 {
	seq := make([]int64, 0, 2+len(r.IntermediateDepotIDs))
	seq = append(seq, r.OriginDepotID)
	seq = append(seq, r.IntermediateDepotIDs...)
	return append(seq, r.DestinationDepotID)
}

// Outcome of a single routing oracle call between two coordinates.
type OracleResult struct {
	Success       bool
	DistanceKm    float64
	DurationHours float64
	Geometry      string
	Message       string
	Failure       FailureKind
}

// Round2 rounds half away from zero to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
