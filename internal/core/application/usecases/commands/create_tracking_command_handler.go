package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CreateTrackingCommandHandler dispatches an order: it estimates the route,
// prices the delivery, claims the best-fit vehicle, and inserts the tracking
// record, all in one transaction.
//
// Vehicle claiming walks the best-fit ranking and races each candidate with
// a conditional update; losing a candidate to a concurrent dispatch moves on
// to the next, without retry or backoff. The unique index on the order ID
// turns a second dispatch of the same order into a ConflictError.
type CreateTrackingCommandHandler struct {
	uowFactory DispatchUoWFactory
	planner    ports.RoutePlanner
	selector   services.VehicleSelector
	calculator services.CostCalculator
}

// NewCreateTrackingCommandHandler creates a handler for order dispatch.
func NewCreateTrackingCommandHandler(
	uowFactory DispatchUoWFactory,
	planner ports.RoutePlanner,
) CreateTrackingCommandHandler {
	return CreateTrackingCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		selector:   services.NewVehicleSelector(),
		calculator: services.NewCostCalculator(),
	}
}

// Handle processes the dispatch command and returns the minted tracking
// number.
func (h *CreateTrackingCommandHandler) Handle(ctx context.Context, cmd CreateTrackingCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	estimate, err := h.planner.Estimate(ctx, cmd.Pickup(), cmd.Delivery(), nil)
	if err != nil {
		return "", err
	}

	eta := time.Now().UTC().Add(time.Duration(estimate.DurationMin * float64(time.Minute)))
	cost := h.calculator.Calculate(estimate.DistanceKm, cmd.WeightKg(), cmd.Priority())

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return "", err
	}
	if aggregate.Status().IsTerminal() {
		return "", errs.NewConflictError(
			fmt.Sprintf("order %s is %s and cannot be dispatched", aggregate.ID(), aggregate.Status()))
	}

	tr, err := tracking.NewTracking(
		cmd.TrackingID(), tracking.NewTrackingNumber(), cmd.OrderID(), cmd.Pickup(), cmd.Delivery())
	if err != nil {
		return "", err
	}
	tr.ApplyEstimate(eta, cost)

	if err = h.claimVehicle(ctx, uow, tr, cmd); err != nil {
		return "", err
	}

	if err = uow.TrackingRepository().Add(ctx, tr); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return tr.TrackingNumber(), nil
}

// claimVehicle ranks the available fleet best-fit and claims the first
// candidate that is still free.
func (h *CreateTrackingCommandHandler) claimVehicle(
	ctx context.Context,
	uow DispatchUoW,
	tr *tracking.Tracking,
	cmd CreateTrackingCommand,
) error {
	vehicleRepo := uow.VehicleRepository()
	candidates, err := vehicleRepo.GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	ranked, err := h.selector.SelectBestFit(candidates, cmd.WeightKg(), cmd.VehicleType())
	if err != nil {
		return err
	}

	for _, candidate := range ranked {
		claimed, claimErr := vehicleRepo.ClaimAvailable(ctx, candidate.ID())
		if claimErr != nil {
			return claimErr
		}
		if !claimed {
			continue
		}

		return tr.AssignVehicle(tracking.VehicleInfo{
			ID:           candidate.ID(),
			Type:         candidate.VehicleType(),
			Registration: candidate.Registration(),
			CapacityKg:   candidate.CapacityKg(),
		})
	}

	return services.ErrNoVehicleAvailable
}
