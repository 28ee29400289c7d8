package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func buyerRequester(t *testing.T, id kernel.UUID) commands.Requester {
	t.Helper()
	r, err := commands.NewRequester(id, commands.RoleBuyer)
	require.NoError(t, err)
	return r
}

func activeFarmer(id kernel.UUID) ports.FarmerProfile {
	return ports.FarmerProfile{ID: id, Name: "Green Valley", Active: true, Verified: true}
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	farmerID := kernel.NewUUID()
	productID := kernel.NewUUID()
	prod, err := product.RestoreProduct(productID, farmerID, "Hass Avocado 4kg", 18.5, 40, true)
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), buyerRequester(t, buyerID), buyerID, farmerID, productID, 3, "14 Riverside Dr")
	require.NoError(t, err)

	farmers := new(MockFarmerDirectory)
	farmers.On("Get", ctx, farmerID).Return(activeFarmer(farmerID), nil).Once()

	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderProductUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", ctx, productID).Return(prod, nil).Once(),
		productRepo.On("ReserveStock", ctx, productID, 3).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderProductUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	publisher.On("PublishOrderCreated", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	h := commands.NewCreateOrderCommandHandler(factory, farmers, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	// The inserted order locks in the product price.
	inserted := orderRepo.Calls[0].Arguments.Get(1).(*order.Order)
	require.InDelta(t, 18.5, inserted.UnitPrice(), 1e-9)
	require.Equal(t, order.StatusPending, inserted.Status())

	farmers.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ForbiddenForOtherBuyer(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	stranger := buyerRequester(t, kernel.NewUUID())

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), stranger, buyerID, kernel.NewUUID(), kernel.NewUUID(), 1, "14 Riverside Dr")
	require.NoError(t, err)

	h := commands.NewCreateOrderCommandHandler(
		new(MockOrderProductUoWFactory), new(MockFarmerDirectory), new(MockEventPublisher))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrAuthorization)
}

func TestCreateOrderCommandHandler_Handle_UnverifiedFarmer(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	farmerID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), buyerRequester(t, buyerID), buyerID, farmerID, kernel.NewUUID(), 1, "14 Riverside Dr")
	require.NoError(t, err)

	farmers := new(MockFarmerDirectory)
	farmers.On("Get", ctx, farmerID).
		Return(ports.FarmerProfile{ID: farmerID, Active: true, Verified: false}, nil).Once()

	h := commands.NewCreateOrderCommandHandler(
		new(MockOrderProductUoWFactory), farmers, new(MockEventPublisher))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	farmers.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_InsufficientStockRollsBack(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	farmerID := kernel.NewUUID()
	productID := kernel.NewUUID()
	prod, err := product.RestoreProduct(productID, farmerID, "Hass Avocado 4kg", 18.5, 2, true)
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), buyerRequester(t, buyerID), buyerID, farmerID, productID, 5, "14 Riverside Dr")
	require.NoError(t, err)

	farmers := new(MockFarmerDirectory)
	farmers.On("Get", ctx, farmerID).Return(activeFarmer(farmerID), nil).Once()

	productRepo := new(MockProductRepository)
	uow := new(MockOrderProductUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", ctx, productID).Return(prod, nil).Once(),
		productRepo.On("ReserveStock", ctx, productID, 5).
			Return(errs.NewResourceExhaustedError("insufficient stock: 2 available")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderProductUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, farmers, new(MockEventPublisher))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrResourceExhausted)

	productRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ProductFarmerMismatch(t *testing.T) {
	ctx := t.Context()
	buyerID := kernel.NewUUID()
	farmerID := kernel.NewUUID()
	productID := kernel.NewUUID()
	prod, err := product.RestoreProduct(productID, kernel.NewUUID(), "Hass Avocado 4kg", 18.5, 40, true)
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), buyerRequester(t, buyerID), buyerID, farmerID, productID, 1, "14 Riverside Dr")
	require.NoError(t, err)

	farmers := new(MockFarmerDirectory)
	farmers.On("Get", ctx, farmerID).Return(activeFarmer(farmerID), nil).Once()

	productRepo := new(MockProductRepository)
	uow := new(MockOrderProductUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", ctx, productID).Return(prod, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderProductUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, farmers, new(MockEventPublisher))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCreateOrderCommand_Validation(t *testing.T) {
	buyerID := kernel.NewUUID()
	requester := buyerRequester(t, buyerID)

	t.Run("zero value is rejected", func(t *testing.T) {
		cmd := commands.CreateOrderCommand{}
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), requester, buyerID, kernel.NewUUID(), kernel.NewUUID(), 0, "addr")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("empty delivery address", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), requester, buyerID, kernel.NewUUID(), kernel.NewUUID(), 1, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
