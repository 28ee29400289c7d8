package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	aggregate := pendingOrder(t, buyerID, kernel.NewUUID())

	cmd, err := commands.NewCancelOrderCommand(
		aggregate.ID(), buyerRequester(t, buyerID), "changed my mind")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockOrderProductUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("ReleaseStock", ctx, aggregate.ProductID(), aggregate.Quantity()).Return(nil).Once(),
		orderRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderProductUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishOrderStatusChanged",
		ctx, aggregate, order.StatusPending, order.StatusCancelled).Return(nil).Once()

	h := commands.NewCancelOrderCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusCancelled, aggregate.Status())
	assert.Equal(t, "changed my mind", aggregate.CancelReason())
	assert.NotNil(t, aggregate.CancelledAt())
	orderRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_InTransitConflict(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), buyerID, kernel.NewUUID(), kernel.NewUUID(),
		2, 10, "14 Riverside Dr",
		order.StatusInTransit, order.PaymentPaid, "mpesa", "MP-1",
		nil, nil, nil, nil, "")
	require.NoError(t, err)

	cmd, err := commands.NewCancelOrderCommand(
		aggregate.ID(), buyerRequester(t, buyerID), "too slow")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderProductUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderProductUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, new(MockEventPublisher))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Contains(t, err.Error(), "in transit")
	assert.Equal(t, order.StatusInTransit, aggregate.Status())
	uow.AssertExpectations(t)
}

func TestNewCancelOrderCommand_RequiresReason(t *testing.T) {
	_, err := commands.NewCancelOrderCommand(
		kernel.NewUUID(), buyerRequester(t, kernel.NewUUID()), "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
