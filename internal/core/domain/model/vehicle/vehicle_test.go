package vehicle_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vehicle"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVan(t *testing.T, capacityKg float64) *vehicle.Vehicle {
	t.Helper()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "van", "KDA 123X", capacityKg)
	require.NoError(t, err)
	return v
}

func TestNewVehicle(t *testing.T) {
	t.Run("starts available", func(t *testing.T) {
		v := newVan(t, 500)
		assert.Equal(t, vehicle.StatusAvailable, v.Status())
		assert.Equal(t, "van", v.VehicleType())
		assert.InDelta(t, 500, v.CapacityKg(), 1e-9)
	})

	t.Run("rejects invalid parameters", func(t *testing.T) {
		_, err := vehicle.NewVehicle(kernel.NewUUID(), "", "KDA 123X", 500)
		require.ErrorIs(t, err, vehicle.ErrTypeIsRequired)

		_, err = vehicle.NewVehicle(kernel.NewUUID(), "van", "", 500)
		require.ErrorIs(t, err, vehicle.ErrRegistrationIsRequired)

		_, err = vehicle.NewVehicle(kernel.NewUUID(), "van", "KDA 123X", 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var v vehicle.Vehicle
		require.ErrorIs(t, v.Validate(), vehicle.ErrVehicleIsNotConstructed)
	})
}

func TestVehicle_CanCarry(t *testing.T) {
	v := newVan(t, 500)

	assert.True(t, v.CanCarry(400, ""))
	assert.True(t, v.CanCarry(500, "van"))
	assert.False(t, v.CanCarry(501, ""))
	assert.False(t, v.CanCarry(400, "truck"))

	require.NoError(t, v.Claim())
	assert.False(t, v.CanCarry(400, ""), "claimed vehicle is not available")
}

func TestVehicle_ClaimRelease(t *testing.T) {
	t.Run("claim then release round trips", func(t *testing.T) {
		v := newVan(t, 500)

		require.NoError(t, v.Claim())
		assert.Equal(t, vehicle.StatusInUse, v.Status())

		require.NoError(t, v.Release())
		assert.Equal(t, vehicle.StatusAvailable, v.Status())
	})

	t.Run("double claim conflicts", func(t *testing.T) {
		v := newVan(t, 500)
		require.NoError(t, v.Claim())

		err := v.Claim()
		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "in_use")
	})

	t.Run("vehicle in maintenance cannot be claimed or released", func(t *testing.T) {
		v := newVan(t, 500)
		require.NoError(t, v.ChangeStatus(vehicle.StatusMaintenance))

		require.ErrorIs(t, v.Claim(), errs.ErrConflict)
		require.ErrorIs(t, v.Release(), errs.ErrConflict)
	})
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"available", "in_use", "maintenance", "out_of_service"} {
		parsed, err := vehicle.ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, parsed.String())
	}

	_, err := vehicle.ParseStatus("parked")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
