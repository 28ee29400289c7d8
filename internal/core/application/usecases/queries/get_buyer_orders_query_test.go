package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestNewGetBuyerOrdersQuery(t *testing.T) {
	t.Run("valid buyer", func(t *testing.T) {
		buyerID := kernel.NewUUID()
		q, err := queries.NewGetBuyerOrdersQuery(buyerID)
		require.NoError(t, err)
		require.NoError(t, q.Validate())
		require.True(t, buyerID.IsEqual(q.BuyerID()))
	})

	t.Run("zero buyer rejected", func(t *testing.T) {
		_, err := queries.NewGetBuyerOrdersQuery(kernel.UUID{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var q queries.GetBuyerOrdersQuery
		require.ErrorIs(t, q.Validate(), queries.ErrGetBuyerOrdersQueryIsNotConstructed)
	})
}
