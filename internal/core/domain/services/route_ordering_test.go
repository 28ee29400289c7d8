package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func TestOrderStopsNearestNeighbor(t *testing.T) {
	depot := point(t, 0, 0)

	t.Run("greedy proximity from the depot", func(t *testing.T) {
		far := point(t, 0, 3)
		mid := point(t, 0, 2)
		near := point(t, 0, 1)

		ordered, err := services.OrderStopsNearestNeighbor(
			depot, []kernel.GeoPoint{far, near, mid})

		require.NoError(t, err)
		require.Len(t, ordered, 3)
		assert.InDelta(t, 1, ordered[0].Lng(), 1e-9)
		assert.InDelta(t, 2, ordered[1].Lng(), 1e-9)
		assert.InDelta(t, 3, ordered[2].Lng(), 1e-9)
	})

	t.Run("deterministic for fixed input", func(t *testing.T) {
		stops := []kernel.GeoPoint{
			point(t, 1, 1), point(t, -1, 2), point(t, 0.5, -0.5),
		}

		first, err := services.OrderStopsNearestNeighbor(depot, stops)
		require.NoError(t, err)
		second, err := services.OrderStopsNearestNeighbor(depot, stops)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("single stop and empty input unchanged", func(t *testing.T) {
		only := point(t, 1, 1)

		ordered, err := services.OrderStopsNearestNeighbor(depot, []kernel.GeoPoint{only})
		require.NoError(t, err)
		require.Len(t, ordered, 1)

		ordered, err = services.OrderStopsNearestNeighbor(depot, nil)
		require.NoError(t, err)
		assert.Empty(t, ordered)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		a := point(t, 0, 2)
		b := point(t, 0, 1)
		stops := []kernel.GeoPoint{a, b}

		_, err := services.OrderStopsNearestNeighbor(depot, stops)
		require.NoError(t, err)

		assert.InDelta(t, 2, stops[0].Lng(), 1e-9)
		assert.InDelta(t, 1, stops[1].Lng(), 1e-9)
	})

	t.Run("invalid depot is rejected", func(t *testing.T) {
		var zero kernel.GeoPoint
		_, err := services.OrderStopsNearestNeighbor(zero, []kernel.GeoPoint{point(t, 1, 1)})
		require.Error(t, err)
	})
}
