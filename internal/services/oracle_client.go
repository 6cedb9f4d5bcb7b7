package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/platform/metrics"
	"tentative-route-service/internal/platform/obs"
	"tentative-route-service/internal/ports"
)

// DistanceOracleClient performs one routing oracle call per leg and reports
// the outcome as a domain.OracleResult. It never returns an error: failures
// are values so a single bad leg cannot take down the planning call.
type DistanceOracleClient struct {
	oracle  ports.RoutingOracle
	timeout time.Duration
}

// NewDistanceOracleClient wraps oracle. A zero timeout leaves only the
// caller's deadline in effect.
func NewDistanceOracleClient(oracle ports.RoutingOracle, timeout time.Duration) *DistanceOracleClient {
	return &DistanceOracleClient{oracle: oracle, timeout: timeout}
}

func (c *DistanceOracleClient) Route(
	ctx context.Context,
	creds ports.Credentials,
	origin domain.Coordinates,
	destination domain.Coordinates,
) domain.OracleResult {
	if origin.Equal(destination) {
		return domain.OracleResult{Success: true, Message: "origin and destination coincide"}
	}

	if err := ctx.Err(); err != nil {
		metrics.OracleCallsTotal.WithLabelValues("canceled").Inc()
		return oracleFailure(domain.FailureCanceled, fmt.Sprintf("oracle call canceled: %v", err))
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	done := obs.Time(ctx, "oracle.Route")
	res, err := c.oracle.Route(callCtx, creds, origin, destination)
	done(&err)
	metrics.OracleDurationMs.Observe(float64(time.Since(start).Milliseconds()))

	switch {
	case err == nil:
	case ctx.Err() != nil:
		metrics.OracleCallsTotal.WithLabelValues("canceled").Inc()
		return oracleFailure(domain.FailureCanceled, fmt.Sprintf("oracle call canceled: %v", ctx.Err()))
	case errors.Is(err, ports.ErrNoRoute):
		metrics.OracleCallsTotal.WithLabelValues("no_route").Inc()
		return oracleFailure(domain.FailureOracle, "oracle found no route")
	case errors.Is(callCtx.Err(), context.DeadlineExceeded):
		metrics.OracleCallsTotal.WithLabelValues("timeout").Inc()
		return oracleFailure(domain.FailureOracle, fmt.Sprintf("oracle timed out after %s", c.timeout))
	default:
		metrics.OracleCallsTotal.WithLabelValues("error").Inc()
		return oracleFailure(domain.FailureOracle, fmt.Sprintf("oracle unavailable: %v", err))
	}

	if res.DistanceMeters <= 0 {
		metrics.OracleCallsTotal.WithLabelValues("invalid").Inc()
		return oracleFailure(domain.FailureOracle, fmt.Sprintf("oracle returned invalid distance %.2f m", res.DistanceMeters))
	}

	metrics.OracleCallsTotal.WithLabelValues("success").Inc()
	return domain.OracleResult{
		Success:       true,
		DistanceKm:    domain.Round2(res.DistanceMeters / 1000),
		DurationHours: domain.Round2(res.DurationSeconds / 3600),
		Geometry:      res.Geometry,
		Message:       "ok",
	}
}

func oracleFailure(kind domain.FailureKind, msg string) domain.OracleResult {
	return domain.OracleResult{Success: false, Message: msg, Failure: kind}
}
