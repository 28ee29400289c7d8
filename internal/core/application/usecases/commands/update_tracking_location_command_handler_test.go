package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activeTracking(t *testing.T, orderID kernel.UUID, withVehicle bool) *tracking.Tracking {
	t.Helper()
	pickup, _ := kernel.NewGeoPoint(-1.2921, 36.8219)
	delivery, _ := kernel.NewGeoPoint(-1.3032, 36.8441)
	tr, err := tracking.NewTracking(
		kernel.NewUUID(), tracking.NewTrackingNumber(), orderID, pickup, delivery)
	require.NoError(t, err)
	if withVehicle {
		require.NoError(t, tr.AssignVehicle(tracking.VehicleInfo{
			ID: kernel.NewUUID(), Type: "van", Registration: "KDA 123X", CapacityKg: 500,
		}))
	}
	return tr
}

func inTransitOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		2, 10, "14 Riverside Dr",
		order.StatusInTransit, order.PaymentPaid, "mpesa", "MP-1",
		nil, nil, nil, nil, "")
	require.NoError(t, err)
	return o
}

func TestUpdateTrackingLocationCommandHandler_Handle_ProgressUpdate(t *testing.T) {
	ctx := t.Context()
	tr := activeTracking(t, kernel.NewUUID(), false)
	loc, _ := kernel.NewGeoPoint(-1.2950, 36.8300)

	cmd, err := commands.NewUpdateTrackingLocationCommand(
		tr.TrackingNumber(), loc, "Enterprise Rd", "in_transit", "on the move")
	require.NoError(t, err)

	trackingRepo := new(MockTrackingRepository)
	uow := new(MockDispatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TrackingRepository").Return(trackingRepo).Once(),
		trackingRepo.On("GetByNumber", ctx, tr.TrackingNumber()).Return(tr, nil).Once(),
		trackingRepo.On("Update", ctx, tr).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishTrackingStatusChanged",
		ctx, tr, tracking.StatusPending, tracking.StatusInTransit).Return(nil).Once()

	h := commands.NewUpdateTrackingLocationCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, tracking.StatusInTransit, tr.Status())
	require.Len(t, tr.History(), 1)
	trackingRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpdateTrackingLocationCommandHandler_Handle_DeliveredSyncsOrderAndReleasesVehicle(t *testing.T) {
	ctx := t.Context()
	aggregate := inTransitOrder(t)
	tr := activeTracking(t, aggregate.ID(), true)
	vehicleID := tr.Vehicle().ID
	loc, _ := kernel.NewGeoPoint(-1.3032, 36.8441)

	cmd, err := commands.NewUpdateTrackingLocationCommand(
		tr.TrackingNumber(), loc, "doorstep", "delivered", "")
	require.NoError(t, err)

	trackingRepo := new(MockTrackingRepository)
	orderRepo := new(MockOrderRepository)
	vehicleRepo := new(MockVehicleRepository)
	uow := new(MockDispatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TrackingRepository").Return(trackingRepo).Once(),
		trackingRepo.On("GetByNumber", ctx, tr.TrackingNumber()).Return(tr, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("VehicleRepository").Return(vehicleRepo).Once(),
		vehicleRepo.On("Release", ctx, vehicleID).Return(nil).Once(),
		trackingRepo.On("Update", ctx, tr).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishTrackingStatusChanged",
		ctx, tr, tracking.StatusPending, tracking.StatusDelivered).Return(nil).Once()

	h := commands.NewUpdateTrackingLocationCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, tracking.StatusDelivered, tr.Status())
	assert.NotNil(t, tr.ActualDelivery())
	assert.Equal(t, order.StatusDelivered, aggregate.Status())
	assert.NotNil(t, aggregate.DeliveryDate())
	trackingRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	vehicleRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpdateTrackingLocationCommandHandler_Handle_DeliveredRollsBackWhenOrderNotInTransit(t *testing.T) {
	ctx := t.Context()
	aggregate := pendingOrder(t, kernel.NewUUID(), kernel.NewUUID())
	tr := activeTracking(t, aggregate.ID(), false)
	loc, _ := kernel.NewGeoPoint(-1.3032, 36.8441)

	cmd, err := commands.NewUpdateTrackingLocationCommand(
		tr.TrackingNumber(), loc, "", "delivered", "")
	require.NoError(t, err)

	trackingRepo := new(MockTrackingRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockDispatchUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TrackingRepository").Return(trackingRepo).Once(),
		trackingRepo.On("GetByNumber", ctx, tr.TrackingNumber()).Return(tr, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateTrackingLocationCommandHandler(factory, new(MockEventPublisher))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Equal(t, order.StatusPending, aggregate.Status())
	uow.AssertExpectations(t)
}

func TestNewUpdateTrackingLocationCommand_RejectsUnknownStatus(t *testing.T) {
	loc, _ := kernel.NewGeoPoint(-1.2950, 36.8300)
	_, err := commands.NewUpdateTrackingLocationCommand("TRK-1", loc, "", "shipped", "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
