package postgres_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/adapters/out/postgres/trackingrepo"
	"fulfillment/internal/adapters/out/postgres/vehiclerepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/domain/model/vehicle"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkTestSuite struct {
	suite.Suite
	container *postgrescontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgrescontainer.Run(ctx,
		"postgres:15-alpine",
		postgrescontainer.WithDatabase("testdb"),
		postgrescontainer.WithUsername("testuser"),
		postgrescontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&productrepo.ProductDTO{},
		&trackingrepo.TrackingDTO{},
		&vehiclerepo.VehicleDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, products, trackings, vehicles CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkTestSuite) seedProduct(quantity int) kernel.UUID {
	id := kernel.NewUUID()
	dto := productrepo.ProductDTO{
		ID:                id.Bytes(),
		FarmerID:          kernel.NewUUID().Bytes(),
		Name:              "Hass Avocado 4kg",
		Price:             12.5,
		QuantityAvailable: quantity,
		StockStatus:       "InStock",
		IsActive:          true,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return id
}

func (suite *UnitOfWorkTestSuite) newOrder(productID kernel.UUID) *order.Order {
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), productID,
		3, 12.5, "14 Riverside Dr")
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkTestSuite) TestCommit_PersistsOrderAndStockTogether() {
	ctx := context.Background()
	productID := suite.seedProduct(20)
	aggregate := suite.newOrder(productID)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.ProductRepository().ReserveStock(ctx, productID, aggregate.Quantity()))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	verify := suite.factory.Create()
	loaded, err := verify.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusPending, loaded.Status())
	suite.InDelta(37.5, loaded.TotalAmount(), 1e-9)

	remaining, err := verify.ProductRepository().Get(ctx, productID)
	suite.Require().NoError(err)
	suite.Equal(17, remaining.QuantityAvailable())
}

func (suite *UnitOfWorkTestSuite) TestRollback_DiscardsOrderAndStock() {
	ctx := context.Background()
	productID := suite.seedProduct(20)
	aggregate := suite.newOrder(productID)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.ProductRepository().ReserveStock(ctx, productID, aggregate.Quantity()))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Rollback(ctx))

	verify := suite.factory.Create()
	_, err := verify.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	remaining, err := verify.ProductRepository().Get(ctx, productID)
	suite.Require().NoError(err)
	suite.Equal(20, remaining.QuantityAvailable())
}

func (suite *UnitOfWorkTestSuite) TestReserveStock_InsufficientStockNamesAvailableAmount() {
	ctx := context.Background()
	productID := suite.seedProduct(2)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	err := uow.ProductRepository().ReserveStock(ctx, productID, 5)
	suite.Require().ErrorIs(err, errs.ErrResourceExhausted)
	suite.Contains(err.Error(), "2 available")
}

func (suite *UnitOfWorkTestSuite) TestReserveStock_RecomputesStockTier() {
	ctx := context.Background()
	productID := suite.seedProduct(12)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ProductRepository().ReserveStock(ctx, productID, 4))
	suite.Require().NoError(uow.Commit(ctx))

	var dto productrepo.ProductDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", productID.Bytes()).Error)
	suite.Equal(8, dto.QuantityAvailable)
	suite.Equal("LowStock", dto.StockStatus)
}

func (suite *UnitOfWorkTestSuite) TestAddTracking_SecondTrackingForOrderConflicts() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	pickup, _ := kernel.NewGeoPoint(-1.2921, 36.8219)
	delivery, _ := kernel.NewGeoPoint(-1.3032, 36.8441)

	first, err := tracking.NewTracking(
		kernel.NewUUID(), tracking.NewTrackingNumber(), orderID, pickup, delivery)
	suite.Require().NoError(err)
	second, err := tracking.NewTracking(
		kernel.NewUUID(), tracking.NewTrackingNumber(), orderID, pickup, delivery)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.TrackingRepository().Add(ctx, first))
	suite.Require().NoError(uow.Commit(ctx))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	err = uow.TrackingRepository().Add(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *UnitOfWorkTestSuite) TestTrackingRoundTrip_PreservesHistoryAndSnapshot() {
	ctx := context.Background()
	pickup, _ := kernel.NewGeoPoint(-1.2921, 36.8219)
	delivery, _ := kernel.NewGeoPoint(-1.3032, 36.8441)
	waypoint, _ := kernel.NewGeoPoint(-1.2950, 36.8300)

	tr, err := tracking.NewTracking(
		kernel.NewUUID(), tracking.NewTrackingNumber(), kernel.NewUUID(), pickup, delivery)
	suite.Require().NoError(err)

	suite.Require().NoError(tr.AssignVehicle(tracking.VehicleInfo{
		ID: kernel.NewUUID(), Type: "van", Registration: "KDA 123X", CapacityKg: 500,
	}))
	tr.ApplyEstimate(time.Now().UTC().Add(40*time.Minute), tracking.CostBreakdown{
		BaseFee: 200, DistanceFee: 52.5, WeightFee: 0, Multiplier: 1.0, Total: 253,
	})
	inTransit := tracking.StatusInTransit
	suite.Require().NoError(tr.UpdateLocation(waypoint, "Enterprise Rd", &inTransit, "on the move"))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.TrackingRepository().Add(ctx, tr))
	suite.Require().NoError(uow.Commit(ctx))

	verify := suite.factory.Create()
	loaded, err := verify.TrackingRepository().GetByNumber(ctx, tr.TrackingNumber())
	suite.Require().NoError(err)

	suite.Equal(tracking.StatusInTransit, loaded.Status())
	suite.Equal("Enterprise Rd", loaded.CurrentAddress())
	suite.Require().Len(loaded.History(), 1)
	suite.Equal(tracking.StatusPending, loaded.History()[0].PrevStatus)
	suite.Require().NotNil(loaded.Vehicle())
	suite.Equal("KDA 123X", loaded.Vehicle().Registration)
	suite.Require().NotNil(loaded.Cost())
	suite.InDelta(253, loaded.Cost().Total, 1e-9)
}

func (suite *UnitOfWorkTestSuite) TestClaimAvailable_SecondClaimReportsFalse() {
	ctx := context.Background()
	aggregate, err := vehicle.NewVehicle(kernel.NewUUID(), "van", "KAA 010A", 300)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.VehicleRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	repo := suite.factory.Create().VehicleRepository()

	claimed, err := repo.ClaimAvailable(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(claimed)

	claimed, err = repo.ClaimAvailable(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.False(claimed)

	suite.Require().NoError(repo.Release(ctx, aggregate.ID()))

	available, err := repo.GetAllAvailable(ctx)
	suite.Require().NoError(err)
	suite.Len(available, 1)
}

func TestUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}
