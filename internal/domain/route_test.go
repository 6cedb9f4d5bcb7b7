package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanningRequestValidate(t *testing.T) {
	t.Run("accepts positive ids", func(t *testing.T) {
		req := PlanningRequest{OriginDepotID: 1, DestinationDepotID: 2, IntermediateDepotIDs: []int64{5, 6}}
		require.NoError(t, req.Validate())
	})

	t.Run("rejects missing origin", func(t *testing.T) {
		err := PlanningRequest{DestinationDepotID: 2}.Validate()
		require.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("rejects non-positive intermediate", func(t *testing.T) {
		err := PlanningRequest{OriginDepotID: 1, DestinationDepotID: 2, IntermediateDepotIDs: []int64{3, 0}}.Validate()
		require.ErrorIs(t, err, ErrInvalidRequest)
		assert.Contains(t, err.Error(), "index 1")
	})
}

func TestPlanningRequestSequence(t *testing.T) {
	req := PlanningRequest{OriginDepotID: 1, DestinationDepotID: 2, IntermediateDepotIDs: []int64{5, 6}}
	assert.Equal(t, []int64{1, 5, 6, 2}, req.Sequence())

	direct := PlanningRequest{OriginDepotID: 1, DestinationDepotID: 2}
	assert.Equal(t, []int64{1, 2}, direct.Sequence())
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, 305.3, Round2(305.299999))
	assert.Equal(t, 0.0, Round2(0.001))
}

func TestRouteCandidateWaypoints(t *testing.T) {
	assert.Nil(t, RouteCandidate{DepotSequence: []int64{1, 2}}.Waypoints())
	assert.Equal(t, []int64{3}, RouteCandidate{DepotSequence: []int64{1, 3, 2}}.Waypoints())
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want FailureKind
	}{
		{nil, FailureNone},
		{fmt.Errorf("resolve: %w", ErrResolverUnavailable), FailureResolverUnavailable},
		{fmt.Errorf("leg 1: %w", ErrDepotNotFound), FailureDepotNotFound},
		{ErrNoViableCandidate, FailureNoViableCandidate},
		{fmt.Errorf("%w: bad", ErrInvalidRequest), FailureInvalidRequest},
		{fmt.Errorf("resolve: %w: %w", ErrResolverUnavailable, context.DeadlineExceeded), FailureCanceled},
		{errors.New("boom"), FailureOracle},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, KindOf(tc.err), "err=%v", tc.err)
	}
}
