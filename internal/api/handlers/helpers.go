package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/ports"

	"github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func allowMethods(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// credentialsFrom extracts the caller's bearer token so it can be relayed to
// the registry and the oracle.
func credentialsFrom(r *http.Request) ports.Credentials {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return ports.Credentials{BearerToken: strings.TrimSpace(h[7:])}
	}
	return ports.Credentials{}
}

// statusFor maps a failure kind to the HTTP status returned to the caller.
func statusFor(kind domain.FailureKind) int {
	switch kind {
	case domain.FailureNone:
		return http.StatusOK
	case domain.FailureInvalidRequest:
		return http.StatusBadRequest
	case domain.FailureDepotNotFound:
		return http.StatusNotFound
	case domain.FailureResolverUnavailable:
		return http.StatusServiceUnavailable
	case domain.FailureCanceled:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func parseID(q string, name string, required bool) (int64, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		if required {
			return 0, fmt.Errorf("%s is required", name)
		}
		return 0, nil
	}
	id, err := strconv.ParseInt(q, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return id, nil
}

// parseIDList parses a comma separated id list. Empty input yields nil.
func parseIDList(q string, name string) ([]int64, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}

	parts := strings.Split(q, ",")
	out := make([]int64, 0, len(parts))
	for i, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: element %d is not an integer", name, i)
		}
		out = append(out, id)
	}
	return out, nil
}

func parseFloat(q string, name string) (float64, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseFloat(q, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}
