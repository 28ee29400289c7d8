// Package queries implements the read side: raw-SQL projections that bypass
// the aggregates and return flat response structs. Queries never mutate state
// and run outside the unit of work.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetTrackingQueryIsNotConstructed = errors.New(
	"GetTrackingQuery must be created via NewGetTrackingQuery constructor",
)

// GetTrackingQuery retrieves the public view of one tracking record by its
// tracking number. This is the lookup behind the buyer-facing "where is my
// order" page, so the response carries no fleet internals beyond the vehicle
// snapshot already shown to the buyer.
type GetTrackingQuery struct { //nolint:recvcheck //using for validation
	trackingNumber string

	guard guard.ConstructorGuard
}

// NewGetTrackingQuery creates a query for one tracking record.
func NewGetTrackingQuery(trackingNumber string) (GetTrackingQuery, error) {
	q := GetTrackingQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setTrackingNumber(trackingNumber); err != nil {
		return GetTrackingQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingQueryIsNotConstructed)
}

// TrackingNumber returns the tracking number to look up.
func (q GetTrackingQuery) TrackingNumber() string { return q.trackingNumber }

func (q *GetTrackingQuery) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	q.trackingNumber = trackingNumber
	return nil
}

// GetTrackingQueryResponse is the flat read model of one tracking record.
type GetTrackingQueryResponse struct {
	TrackingNumber    string
	OrderID           kernel.UUID
	Status            string
	CurrentLat        float64
	CurrentLng        float64
	CurrentAddress    string
	EstimatedDelivery *time.Time
	ActualDelivery    *time.Time
}
