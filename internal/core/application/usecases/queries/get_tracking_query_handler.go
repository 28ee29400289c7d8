package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTrackingQueryHandler reads one tracking row straight from the database.
type GetTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingQueryHandler creates a handler for tracking lookups.
func NewGetTrackingQueryHandler(db *gorm.DB) GetTrackingQueryHandler {
	return GetTrackingQueryHandler{db: db}
}

// Handle executes the lookup. Returns ObjectNotFoundError when no tracking
// carries the requested number.
func (h GetTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingQuery,
) (GetTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackingQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_number,
			order_id,
			status,
			current_lat,
			current_lng,
			current_address,
			estimated_at,
			delivered_at
		FROM trackings
		WHERE tracking_number = ?
	`, query.TrackingNumber()).Row()

	var resp GetTrackingQueryResponse
	var orderID uuid.UUID

	err := row.Scan(
		&resp.TrackingNumber,
		&orderID,
		&resp.Status,
		&resp.CurrentLat,
		&resp.CurrentLng,
		&resp.CurrentAddress,
		&resp.EstimatedDelivery,
		&resp.ActualDelivery,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetTrackingQueryResponse{}, errs.NewObjectNotFoundError(
				"tracking", query.TrackingNumber())
		}
		return GetTrackingQueryResponse{}, err
	}

	id, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}
	resp.OrderID = id

	return resp, nil
}
