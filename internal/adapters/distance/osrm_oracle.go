package distance

import (
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

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry string  `json:"geometry"`
	} `json:"routes"`
}

// OSRMOracle implements RoutingOracle against an OSRM route service.
//
// The caller's bearer token, when present, is relayed to the oracle so that
// deployments fronting OSRM with an authenticating proxy keep working.
// The oracle is safe for concurrent use.
type OSRMOracle struct {
	client  *httpx.Client
	baseURL string
	profile string
}

func NewOSRMOracle(baseURL, profile string, timeout time.Duration) (*OSRMOracle, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("OSRM base url is empty")
	}
	if profile == "" {
		profile = "driving"
	}

	return &OSRMOracle{
		client:  httpx.New(timeout),
		baseURL: baseURL,
		profile: profile,
	}, nil
}

func (o *OSRMOracle) Route(
	ctx context.Context,
	creds ports.Credentials,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "osrm.Route")(&err)

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%.6f,%.6f;%.6f,%.6f",
		o.baseURL, o.profile,
		origin.Lon, origin.Lat,
		destination.Lon, destination.Lat,
	)

	auth := ""
	if creds.HasToken() {
		auth = "Bearer " + creds.BearerToken
	}

	resp, err := o.client.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := httpx.NewRequest(ctx, http.MethodGet, endpoint, nil, auth)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("overview", "full")
		q.Set("geometries", "polyline")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		// OSRM answers 400 with code NoRoute/NoSegment when the points are unreachable.
		var se *httpx.StatusError
		if errors.As(err, &se) && se.Code == http.StatusBadRequest && isOSRMNoRoute(se.Body) {
			return ports.RouteResult{}, fmt.Errorf("osrm route: %w", ports.ErrNoRoute)
		}
		return ports.RouteResult{}, fmt.Errorf("osrm route request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode osrm response: %w", err)
	}

	if decoded.Code != "Ok" {
		if decoded.Code == "NoRoute" || decoded.Code == "NoSegment" {
			return ports.RouteResult{}, fmt.Errorf("osrm route: %s: %w", decoded.Message, ports.ErrNoRoute)
		}
		return ports.RouteResult{}, fmt.Errorf("osrm route: code %s: %s", decoded.Code, decoded.Message)
	}

	if len(decoded.Routes) == 0 {
		return ports.RouteResult{}, fmt.Errorf("osrm route: %w", ports.ErrNoRoute)
	}

	r := decoded.Routes[0]
	return ports.RouteResult{
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
		Geometry:        r.Geometry,
	}, nil
}

func isOSRMNoRoute(body string) bool {
	var decoded osrmResponse
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return false
	}
	return decoded.Code == "NoRoute" || decoded.Code == "NoSegment"
}
