package cache

import (
	"fmt"

	"tentative-route-service/internal/domain"
)

// routeKey identifies a directed coordinate pair. Five decimals is roughly
// one meter, which is finer than any depot position we store.
func routeKey(origin, destination domain.Coordinates) string {
	return fmt.Sprintf("%.5f,%.5f;%.5f,%.5f", origin.Lon, origin.Lat, destination.Lon, destination.Lat)
}
