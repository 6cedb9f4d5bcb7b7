package distance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	buenosAires = domain.Coordinates{Lat: -34.6, Lon: -58.4}
	rosario     = domain.Coordinates{Lat: -32.9, Lon: -60.6}
)

func newTestOSRM(t *testing.T, h http.HandlerFunc) *OSRMOracle {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	o, err := NewOSRMOracle(srv.URL, "", 2*time.Second)
	require.NoError(t, err)
	o.client.Backoff = time.Millisecond
	return o
}

func TestOSRMOracle_Route(t *testing.T) {
	o := newTestOSRM(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/route/v1/driving/-58.400000,-34.600000;-60.600000,-32.900000", r.URL.Path)
		assert.Equal(t, "full", r.URL.Query().Get("overview"))
		assert.Equal(t, "polyline", r.URL.Query().Get("geometries"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":305300.4,"duration":12600,"geometry":"enc"}]}`))
	})

	res, err := o.Route(context.Background(), ports.Credentials{BearerToken: "tok"}, buenosAires, rosario)
	require.NoError(t, err)
	assert.Equal(t, ports.RouteResult{DistanceMeters: 305300.4, DurationSeconds: 12600, Geometry: "enc"}, res)
}

func TestOSRMOracle_NoRoute(t *testing.T) {
	t.Run("code in ok response", func(t *testing.T) {
		o := newTestOSRM(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"code":"NoRoute","message":"Impossible route","routes":[]}`))
		})

		_, err := o.Route(context.Background(), ports.Credentials{}, buenosAires, rosario)
		assert.ErrorIs(t, err, ports.ErrNoRoute)
	})

	t.Run("code in 400 response", func(t *testing.T) {
		o := newTestOSRM(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":"NoSegment","message":"Could not find a matching segment"}`))
		})

		_, err := o.Route(context.Background(), ports.Credentials{}, buenosAires, rosario)
		assert.ErrorIs(t, err, ports.ErrNoRoute)
	})
}

func TestOSRMOracle_ServerError(t *testing.T) {
	o := newTestOSRM(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := o.Route(context.Background(), ports.Credentials{}, buenosAires, rosario)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrNoRoute)
}

func TestNewOSRMOracle_RequiresBaseURL(t *testing.T) {
	_, err := NewOSRMOracle("  ", "driving", time.Second)
	assert.Error(t, err)
}
