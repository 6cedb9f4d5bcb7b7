package services

import (
	"context"
	"errors"
	"testing"

	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNeighborSelector_NearestFirst(t *testing.T) {
	sel := NewNeighborSelector(memoryRegistry(allDepots()...))

	got, err := sel.NearestToSegment(context.Background(), ports.Credentials{}, buenosAires.ID, rosario.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, []int64{sanPedro.ID, cordoba.ID, sanLuis.ID}, got)
}

func TestNeighborSelector_FewerThanK(t *testing.T) {
	sel := NewNeighborSelector(memoryRegistry(buenosAires, rosario, sanPedro))

	got, err := sel.NearestToSegment(context.Background(), ports.Credentials{}, buenosAires.ID, rosario.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{sanPedro.ID}, got)
}

func TestNeighborSelector_TieBreaksOnLowerID(t *testing.T) {
	west := domain.DepotInfo{ID: 10, Name: "W", Lat: 0, Lon: 0}
	east := domain.DepotInfo{ID: 11, Name: "E", Lat: 0, Lon: 10}
	north := domain.DepotInfo{ID: 7, Name: "N", Lat: 1, Lon: 5}
	south := domain.DepotInfo{ID: 4, Name: "S", Lat: -1, Lon: 5}

	sel := NewNeighborSelector(memoryRegistry(west, east, north, south))

	got, err := sel.NearestToSegment(context.Background(), ports.Credentials{}, west.ID, east.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{south.ID}, got)
}

func TestNeighborSelector_UnknownEndpoint(t *testing.T) {
	sel := NewNeighborSelector(memoryRegistry(allDepots()...))

	got, err := sel.NearestToSegment(context.Background(), ports.Credentials{}, buenosAires.ID, 99, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNeighborSelector_ZeroK(t *testing.T) {
	reg := new(mockRegistry)

	got, err := NewNeighborSelector(reg).NearestToSegment(context.Background(), ports.Credentials{}, 1, 2, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	reg.AssertNotCalled(t, "ListDepots", mock.Anything, mock.Anything)
}

func TestNeighborSelector_RegistryFailure(t *testing.T) {
	reg := new(mockRegistry)
	reg.On("ListDepots", mock.Anything, mock.Anything).Return(nil, errors.New("503"))

	_, err := NewNeighborSelector(reg).NearestToSegment(context.Background(), ports.Credentials{}, 1, 2, 3)
	assert.ErrorIs(t, err, domain.ErrResolverUnavailable)
}
