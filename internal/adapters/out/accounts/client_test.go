package accounts_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/accounts"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get_ReturnsFarmerProfile(t *testing.T) {
	ctx := t.Context()
	farmerID := kernel.NewUUID()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/farmers/"+farmerID.String(), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"id": %q,
			"name": "Wanjiku Farm",
			"active": true,
			"verified": true,
			"pickup_lat": -0.7172,
			"pickup_lng": 36.4310,
			"pickup_address": "Naivasha"
		}`, farmerID)
	}))
	defer server.Close()

	client := accounts.NewClient(server.URL, 2*time.Second)

	profile, err := client.Get(ctx, farmerID)
	require.NoError(t, err)
	assert.True(t, profile.ID.IsEqual(farmerID))
	assert.Equal(t, "Wanjiku Farm", profile.Name)
	assert.True(t, profile.Active)
	assert.True(t, profile.Verified)
	assert.InDelta(t, -0.7172, profile.PickupLocation.Lat(), 1e-9)
	assert.Equal(t, "Naivasha", profile.PickupAddress)
}

func TestClient_Get_MapsMissingFarmerToNotFound(t *testing.T) {
	ctx := t.Context()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := accounts.NewClient(server.URL, 2*time.Second)

	_, err := client.Get(ctx, kernel.NewUUID())
	assert.True(t, errors.Is(err, errs.ErrObjectNotFound))
}

func TestClient_Get_WrapsServerErrorAsUpstream(t *testing.T) {
	ctx := t.Context()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := accounts.NewClient(server.URL, 2*time.Second)

	_, err := client.Get(ctx, kernel.NewUUID())
	assert.True(t, errors.Is(err, errs.ErrUpstreamService))
}

func TestPermissiveDirectory_AcceptsEveryFarmer(t *testing.T) {
	ctx := t.Context()
	farmerID := kernel.NewUUID()

	profile, err := accounts.NewPermissiveDirectory().Get(ctx, farmerID)
	require.NoError(t, err)
	assert.True(t, profile.ID.IsEqual(farmerID))
	assert.True(t, profile.Active)
	assert.True(t, profile.Verified)
}
