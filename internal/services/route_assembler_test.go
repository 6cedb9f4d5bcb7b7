package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"tentative-route-service/internal/adapters/distance"
	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAssembler(registry ports.DepotRegistry, oracle ports.RoutingOracle) *RouteAssembler {
	return NewRouteAssembler(NewCoordinateResolver(registry), NewDistanceOracleClient(oracle, time.Second), 4)
}

func TestRouteAssembler_MultiLeg(t *testing.T) {
	oracle := distance.NewMockOracle([]distance.MockRoute{
		{From: buenosAires.Coordinates(), To: sanPedro.Coordinates(), Meters: 150006, Seconds: 6000, Geometry: "g1"},
		{From: sanPedro.Coordinates(), To: cordoba.Coordinates(), Meters: 400006, Seconds: 16000},
		{From: cordoba.Coordinates(), To: rosario.Coordinates(), Meters: 390006, Seconds: 15000, Geometry: "g3"},
	})
	asm := newTestAssembler(memoryRegistry(allDepots()...), oracle)

	c, err := asm.Assemble(context.Background(), ports.Credentials{}, []int64{1, 3, 4, 2})
	require.NoError(t, err)
	require.True(t, c.Success, c.Message)

	assert.Equal(t, []int64{1, 3, 4, 2}, c.DepotSequence)
	assert.Equal(t, []string{"Buenos Aires", "San Pedro", "Cordoba", "Rosario"}, c.DepotNames)
	require.Len(t, c.Legs, 3)
	assert.Len(t, c.DepotSequence, len(c.Legs)+1)

	for i, l := range c.Legs {
		assert.Equal(t, i+1, l.Order)
		assert.Equal(t, c.DepotSequence[i], l.OriginDepotID)
		assert.Equal(t, c.DepotSequence[i+1], l.DestDepotID)
	}

	assert.Equal(t, 940.03, c.TotalDistanceKm)
	assert.Equal(t, domain.Round2(c.Legs[0].DistanceKm+c.Legs[1].DistanceKm+c.Legs[2].DistanceKm), c.TotalDistanceKm)
	assert.Equal(t, 10.28, c.TotalDurationHours)
	assert.Equal(t, "g1|g3", c.CombinedGeometry)
	assert.Equal(t, "tentative route computed with 3 legs", c.Message)
}

func TestRouteAssembler_TooShort(t *testing.T) {
	asm := newTestAssembler(memoryRegistry(allDepots()...), distance.NewMockOracle(nil))

	c, err := asm.Assemble(context.Background(), ports.Credentials{}, []int64{1})
	require.NoError(t, err)
	assert.False(t, c.Success)
	assert.Equal(t, domain.FailureInvalidRequest, c.Failure)
}

func TestRouteAssembler_MissingDepotNamesFirstPair(t *testing.T) {
	oracle := distance.NewMockOracle(nil)
	asm := newTestAssembler(memoryRegistry(allDepots()...), oracle)

	c, err := asm.Assemble(context.Background(), ports.Credentials{}, []int64{1, 3, 98, 99})
	require.NoError(t, err)

	assert.False(t, c.Success)
	assert.Equal(t, domain.FailureDepotNotFound, c.Failure)
	assert.Equal(t, "leg 2 (3 -> 98): depot not found: 98", c.Message)
	assert.Empty(t, c.Legs)
	assert.Zero(t, oracle.Calls())
}

func TestRouteAssembler_LegFailureDiscardsPartialLegs(t *testing.T) {
	oracle := distance.NewMockOracle([]distance.MockRoute{
		route(buenosAires, sanPedro, 150),
	})
	asm := newTestAssembler(memoryRegistry(allDepots()...), oracle)

	c, err := asm.Assemble(context.Background(), ports.Credentials{}, []int64{1, 3, 2})
	require.NoError(t, err)

	assert.False(t, c.Success)
	assert.Equal(t, domain.FailureOracle, c.Failure)
	assert.Contains(t, c.Message, "leg 2 (3 -> 2)")
	assert.Empty(t, c.Legs)
	assert.Zero(t, c.TotalDistanceKm)
}

func TestRouteAssembler_ResolverUnavailable(t *testing.T) {
	reg := new(mockRegistry)
	reg.On("GetDepots", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	c, err := newTestAssembler(reg, distance.NewMockOracle(nil)).
		Assemble(context.Background(), ports.Credentials{}, []int64{1, 2})

	require.ErrorIs(t, err, domain.ErrResolverUnavailable)
	assert.False(t, c.Success)
	assert.Equal(t, domain.FailureResolverUnavailable, c.Failure)
}

func TestRouteAssembler_BoundsConcurrency(t *testing.T) {
	oracle := &countingOracle{delay: 20 * time.Millisecond}
	asm := NewRouteAssembler(
		NewCoordinateResolver(memoryRegistry(allDepots()...)),
		NewDistanceOracleClient(oracle, time.Second),
		2,
	)

	c, err := asm.Assemble(context.Background(), ports.Credentials{}, []int64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	require.True(t, c.Success, c.Message)

	assert.Len(t, c.Legs, 5)
	assert.LessOrEqual(t, oracle.peak.Load(), int32(2))
}

func TestRouteAssembler_LegsKeepSequenceOrderWhenFinishedOutOfOrder(t *testing.T) {
	oracle := slowPairOracle{
		from:  buenosAires.Coordinates(),
		delay: 50 * time.Millisecond,
		next: distance.NewMockOracle([]distance.MockRoute{
			{From: buenosAires.Coordinates(), To: sanPedro.Coordinates(), Meters: 150000, Seconds: 6000, Geometry: "g1"},
			{From: sanPedro.Coordinates(), To: cordoba.Coordinates(), Meters: 400000, Seconds: 16000, Geometry: "g2"},
			{From: cordoba.Coordinates(), To: rosario.Coordinates(), Meters: 390000, Seconds: 15000, Geometry: "g3"},
		}),
	}
	asm := newTestAssembler(memoryRegistry(allDepots()...), oracle)

	c, err := asm.Assemble(context.Background(), ports.Credentials{}, []int64{1, 3, 4, 2})
	require.NoError(t, err)
	require.True(t, c.Success, c.Message)
	require.Len(t, c.Legs, 3)

	want := []struct {
		from, to int64
		km       float64
	}{{1, 3, 150}, {3, 4, 400}, {4, 2, 390}}
	for i, l := range c.Legs {
		assert.Equal(t, i+1, l.Order)
		assert.Equal(t, want[i].from, l.OriginDepotID)
		assert.Equal(t, want[i].to, l.DestDepotID)
		assert.Equal(t, want[i].km, l.DistanceKm)
	}
	assert.Equal(t, "g1|g2|g3", c.CombinedGeometry)
}

func TestRouteAssembler_RegistryCallCountsAgainstLimit(t *testing.T) {
	gauge := &countingOracle{delay: 10 * time.Millisecond}
	reg := &countingRegistry{next: memoryRegistry(allDepots()...), calls: gauge}
	asm := NewRouteAssembler(NewCoordinateResolver(reg), NewDistanceOracleClient(gauge, time.Second), 1)

	c, err := asm.Assemble(context.Background(), ports.Credentials{}, []int64{1, 3, 4, 2})
	require.NoError(t, err)
	require.True(t, c.Success, c.Message)
	assert.Equal(t, int32(1), gauge.peak.Load())
}
