package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/platform/httpx"
	"tentative-route-service/internal/platform/obs"
	"tentative-route-service/internal/ports"
)

type depotPayload struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// HTTPDepotRegistry implements DepotRegistry against a remote depot service
// exposing GET /api/v1/depots. The caller's bearer token is relayed as-is.
type HTTPDepotRegistry struct {
	client  *httpx.Client
	baseURL string
}

func NewHTTPDepotRegistry(baseURL string, timeout time.Duration) (*HTTPDepotRegistry, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("registry base url is empty")
	}

	return &HTTPDepotRegistry{client: httpx.New(timeout), baseURL: baseURL}, nil
}

func (r *HTTPDepotRegistry) GetDepots(
	ctx context.Context,
	creds ports.Credentials,
	ids []int64,
) (_ map[int64]domain.DepotInfo, err error) {
	defer obs.Time(ctx, "depots.http.GetDepots")(&err)

	if len(ids) == 0 {
		return map[int64]domain.DepotInfo{}, nil
	}

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}

	depots, err := r.fetch(ctx, creds, strings.Join(parts, ","))
	if err != nil {
		return nil, fmt.Errorf("get depots: %w", err)
	}

	out := make(map[int64]domain.DepotInfo, len(depots))
	for _, d := range depots {
		out[d.ID] = d
	}
	return out, nil
}

func (r *HTTPDepotRegistry) ListDepots(ctx context.Context, creds ports.Credentials) (_ []domain.DepotInfo, err error) {
	defer obs.Time(ctx, "depots.http.ListDepots")(&err)

	depots, err := r.fetch(ctx, creds, "")
	if err != nil {
		return nil, fmt.Errorf("list depots: %w", err)
	}
	return depots, nil
}

func (r *HTTPDepotRegistry) fetch(ctx context.Context, creds ports.Credentials, ids string) ([]domain.DepotInfo, error) {
	endpoint := r.baseURL + "/api/v1/depots"

	auth := ""
	if creds.HasToken() {
		auth = "Bearer " + creds.BearerToken
	}

	resp, err := r.client.DoWithRetry(ctx, func() (*http.Request, error) {
		req, err := httpx.NewRequest(ctx, http.MethodGet, endpoint, nil, auth)
		if err != nil {
			return nil, err
		}
		if ids != "" {
			q := req.URL.Query()
			q.Set("ids", ids)
			req.URL.RawQuery = q.Encode()
		}
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("registry request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded []depotPayload
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode registry response: %w", err)
	}

	out := make([]domain.DepotInfo, 0, len(decoded))
	for _, d := range decoded {
		out = append(out, domain.DepotInfo{ID: d.ID, Name: d.Name, Lat: d.Lat, Lon: d.Lon})
	}
	return out, nil
}
