package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/ports"
)

// RefreshEtasCommandHandler re-estimates the ETA of every active tracking
// from its current position. Because the route planner degrades to the
// geometric fallback instead of failing, a routing-service outage only makes
// the refreshed estimates coarser.
type RefreshEtasCommandHandler struct {
	uowFactory TrackingUoWFactory
	planner    ports.RoutePlanner
}

// NewRefreshEtasCommandHandler creates a handler for the ETA refresh batch.
func NewRefreshEtasCommandHandler(
	uowFactory TrackingUoWFactory,
	planner ports.RoutePlanner,
) RefreshEtasCommandHandler {
	return RefreshEtasCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
	}
}

// Handle processes the refresh batch in a single transaction.
func (h *RefreshEtasCommandHandler) Handle(ctx context.Context, cmd RefreshEtasCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	trackingRepo := uow.TrackingRepository()
	active, err := trackingRepo.GetAllActive(ctx)
	if err != nil {
		return err
	}

	for _, tr := range active {
		if err = h.refreshOne(ctx, tr); err != nil {
			return err
		}

		if err = trackingRepo.Update(ctx, tr); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func (h *RefreshEtasCommandHandler) refreshOne(ctx context.Context, tr *tracking.Tracking) error {
	estimate, err := h.planner.Estimate(ctx, tr.CurrentLocation(), tr.Delivery(), nil)
	if err != nil {
		return err
	}

	eta := time.Now().UTC().Add(time.Duration(estimate.DurationMin * float64(time.Minute)))
	return tr.RefreshEta(eta)
}
