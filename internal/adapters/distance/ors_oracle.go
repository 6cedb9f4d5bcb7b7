package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/platform/httpx"
	"tentative-route-service/internal/platform/obs"
	"tentative-route-service/internal/ports"
)

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

// ORSOracle implements RoutingOracle using the OpenRouteService directions API.
//
// ORS authenticates with the service api key, so caller credentials are not
// forwarded. The oracle is safe for concurrent use.
type ORSOracle struct {
	client  *httpx.Client
	apiKey  string
	baseURL string
	profile string
}

func NewORSOracle(apiKey, baseURL, profile string, timeout time.Duration) (*ORSOracle, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openrouteservice.org"
	}
	if profile == "" {
		profile = "driving-hgv"
	}

	return &ORSOracle{
		client:  httpx.New(timeout),
		apiKey:  apiKey,
		baseURL: baseURL,
		profile: profile,
	}, nil
}

func (o *ORSOracle) Route(
	ctx context.Context,
	_ ports.Credentials,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "ors.Route")(&err)

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{origin.CoordsToList(), destination.CoordsToList()},
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.client.DoWithRetry(ctx, func() (*http.Request, error) {
		return httpx.NewRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload), o.apiKey)
	})
	if err != nil {
		// ORS reports unroutable points (error code 2009/2010) as 404.
		if httpx.IsStatus(err, http.StatusNotFound) {
			return ports.RouteResult{}, fmt.Errorf("ors directions: %w", ports.ErrNoRoute)
		}
		return ports.RouteResult{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(decoded.Routes) == 0 {
		return ports.RouteResult{}, fmt.Errorf("ors directions: %w", ports.ErrNoRoute)
	}

	r := decoded.Routes[0]
	return ports.RouteResult{
		DistanceMeters:  r.Summary.Distance,
		DurationSeconds: r.Summary.Duration,
		Geometry:        r.Geometry,
	}, nil
}
