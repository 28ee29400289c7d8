package trackingrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL error code for a unique index violation.
const uniqueViolation = "23505"

// GormTrackingRepository implements TrackingRepository using GORM.
type GormTrackingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTrackingRepository creates a new GORM tracking repository.
func NewGormTrackingRepository(db *gorm.DB, tracker aggregateTracker) *GormTrackingRepository {
	return &GormTrackingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new tracking to the database. The unique index on the order ID
// makes a second tracking for the same order surface as a ConflictError.
func (r *GormTrackingRepository) Add(ctx context.Context, aggregate *tracking.Tracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.NewConflictErrorWithCause(
				fmt.Sprintf("order %s already has a tracking", aggregate.OrderID()), err)
		}
		return errs.NewPersistenceError("add tracking", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing tracking to the database.
func (r *GormTrackingRepository) Update(ctx context.Context, aggregate *tracking.Tracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&TrackingDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return errs.NewPersistenceError("update tracking", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("tracking", aggregate.TrackingNumber())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByNumber retrieves a tracking by its public tracking number.
func (r *GormTrackingRepository) GetByNumber(ctx context.Context, trackingNumber string) (*tracking.Tracking, error) {
	if trackingNumber == "" {
		return nil, errs.NewValueIsRequiredError("trackingNumber")
	}

	var dto TrackingDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_number = ?", trackingNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tracking", trackingNumber)
		}
		return nil, errs.NewPersistenceError("get tracking", err)
	}

	return toDomain(dto)
}

// GetByOrder retrieves the tracking of an order.
func (r *GormTrackingRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*tracking.Tracking, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto TrackingDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tracking", orderID.String())
		}
		return nil, errs.NewPersistenceError("get tracking by order", err)
	}

	return toDomain(dto)
}

// GetAllActive retrieves all trackings not yet in a terminal status.
func (r *GormTrackingRepository) GetAllActive(ctx context.Context) ([]*tracking.Tracking, error) {
	var dtos []TrackingDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status NOT IN ?", []string{
			tracking.StatusDelivered.String(),
			tracking.StatusFailed.String(),
		}).Error
	if err != nil {
		return nil, errs.NewPersistenceError("get active trackings", err)
	}

	trackings := make([]*tracking.Tracking, 0, len(dtos))
	for _, dto := range dtos {
		tr, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		trackings = append(trackings, tr)
	}

	return trackings, nil
}
