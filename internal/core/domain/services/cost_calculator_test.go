package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostCalculator_Calculate(t *testing.T) {
	calc := services.NewCostCalculator()

	tests := []struct {
		name       string
		distanceKm float64
		weightKg   float64
		priority   services.Priority
		want       float64
	}{
		{"urgent 10km 15kg", 10, 15, services.PriorityUrgent, 750},
		{"normal 10km 15kg", 10, 15, services.PriorityNormal, 375},
		{"high 10km 15kg", 10, 15, services.PriorityHigh, 563},
		{"low 10km 15kg", 10, 15, services.PriorityLow, 300},
		{"weight at free allowance", 10, 10, services.PriorityNormal, 350},
		{"weight below free allowance", 10, 2, services.PriorityNormal, 350},
		{"zero distance zero weight", 0, 0, services.PriorityNormal, 200},
		{"unknown priority prices as normal", 10, 15, services.PriorityUnknown, 375},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Calculate(tt.distanceKm, tt.weightKg, tt.priority)
			assert.InDelta(t, tt.want, got.Total, 1e-9)
		})
	}

	t.Run("breakdown components", func(t *testing.T) {
		got := calc.Calculate(10, 15, services.PriorityUrgent)

		assert.InDelta(t, 200, got.BaseFee, 1e-9)
		assert.InDelta(t, 150, got.DistanceFee, 1e-9)
		assert.InDelta(t, 25, got.WeightFee, 1e-9)
		assert.InDelta(t, 2.0, got.Multiplier, 1e-9)
	})
}

func TestParsePriority(t *testing.T) {
	t.Run("known priorities round trip", func(t *testing.T) {
		for _, s := range []string{"low", "normal", "high", "urgent"} {
			parsed, err := services.ParsePriority(s)
			require.NoError(t, err)
			assert.Equal(t, s, parsed.String())
		}
	})

	t.Run("empty defaults to normal", func(t *testing.T) {
		parsed, err := services.ParsePriority("")
		require.NoError(t, err)
		assert.Equal(t, services.PriorityNormal, parsed)
	})

	t.Run("unknown string is rejected", func(t *testing.T) {
		_, err := services.ParsePriority("express")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
