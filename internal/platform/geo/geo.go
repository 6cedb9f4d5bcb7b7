// Package geo holds planar and great-circle helpers used for ranking depots
// and for coarse distance estimates. Road distances always come from the
// routing oracle.
package geo

import (
	"math"

	"tentative-route-service/internal/domain"
)

const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in kilometers.
func HaversineKm(a, b domain.Coordinates) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// PointToSegmentKm returns the distance in kilometers from p to the segment a-b.
//
// Points are projected onto a local equirectangular plane centred on the
// segment's mean latitude, which keeps the error small for segments of a few
// hundred kilometers. A degenerate segment falls back to HaversineKm(p, a).
func PointToSegmentKm(p, a, b domain.Coordinates) float64 {
	if a.Equal(b) {
		return HaversineKm(p, a)
	}

	cosLat := math.Cos(degToRad((a.Lat + b.Lat) / 2))
	project := func(c domain.Coordinates) (float64, float64) {
		return degToRad(c.Lon) * cosLat * EarthRadiusKm, degToRad(c.Lat) * EarthRadiusKm
	}

	ax, ay := project(a)
	bx, by := project(b)
	px, py := project(p)

	dx, dy := bx-ax, by-ay
	t := ((px-ax)*dx + (py-ay)*dy) / (dx*dx + dy*dy)
	t = math.Max(0, math.Min(1, t))

	cx, cy := ax+t*dx, ay+t*dy
	return math.Hypot(px-cx, py-cy)
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
