package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetBuyerOrdersQueryIsNotConstructed = errors.New(
	"GetBuyerOrdersQuery must be created via NewGetBuyerOrdersQuery constructor",
)

// GetBuyerOrdersQuery retrieves a buyer's order list, newest first.
type GetBuyerOrdersQuery struct { //nolint:recvcheck //using for validation
	buyerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBuyerOrdersQuery creates a query for a buyer's orders.
func NewGetBuyerOrdersQuery(buyerID kernel.UUID) (GetBuyerOrdersQuery, error) {
	q := GetBuyerOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setBuyerID(buyerID); err != nil {
		return GetBuyerOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBuyerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetBuyerOrdersQueryIsNotConstructed)
}

// BuyerID returns the buyer whose orders are listed.
func (q GetBuyerOrdersQuery) BuyerID() kernel.UUID { return q.buyerID }

func (q *GetBuyerOrdersQuery) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyerId", err)
	}
	q.buyerID = buyerID
	return nil
}

// GetBuyerOrdersQueryResponse is the flat read model of one order row in the
// buyer's list.
type GetBuyerOrdersQueryResponse struct {
	ID              kernel.UUID
	ProductID       kernel.UUID
	Quantity        int
	TotalAmount     float64
	Status          string
	PaymentStatus   string
	DeliveryAddress string
	CreatedAt       time.Time
}
