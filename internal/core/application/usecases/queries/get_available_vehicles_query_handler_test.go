package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/vehiclerepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vehicle"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetAvailableVehiclesQueryHandlerTestSuite struct {
	suite.Suite
	container *postgrescontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
	handler   queries.GetAvailableVehiclesQueryHandler
}

func (suite *GetAvailableVehiclesQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&vehiclerepo.VehicleDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
	suite.handler = queries.NewGetAvailableVehiclesQueryHandler(db)
}

func (suite *GetAvailableVehiclesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetAvailableVehiclesQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE vehicles CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetAvailableVehiclesQueryHandlerTestSuite) seedVehicle(registration string, capacityKg float64) *vehicle.Vehicle {
	ctx := context.Background()
	v, err := vehicle.NewVehicle(kernel.NewUUID(), "van", registration, capacityKg)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.VehicleRepository().Add(ctx, v))
	suite.Require().NoError(uow.Commit(ctx))

	return v
}

func (suite *GetAvailableVehiclesQueryHandlerTestSuite) TestHandle_SmallestCapacityFirst() {
	suite.seedVehicle("KAA 002A", 800)
	suite.seedVehicle("KAA 001A", 40)
	suite.seedVehicle("KAA 003A", 300)

	result, err := suite.handler.Handle(context.Background(), queries.NewGetAvailableVehiclesQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("KAA 001A", result[0].Registration)
	suite.Equal("KAA 003A", result[1].Registration)
	suite.Equal("KAA 002A", result[2].Registration)
}

func (suite *GetAvailableVehiclesQueryHandlerTestSuite) TestHandle_ExcludesClaimedVehicles() {
	claimed := suite.seedVehicle("KAA 004A", 300)
	suite.seedVehicle("KAA 005A", 500)

	repo := suite.factory.Create().VehicleRepository()
	ok, err := repo.ClaimAvailable(context.Background(), claimed.ID())
	suite.Require().NoError(err)
	suite.Require().True(ok)

	result, err := suite.handler.Handle(context.Background(), queries.NewGetAvailableVehiclesQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("KAA 005A", result[0].Registration)
}

func (suite *GetAvailableVehiclesQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	var invalid queries.GetAvailableVehiclesQuery

	result, err := suite.handler.Handle(context.Background(), invalid)

	suite.Require().Error(err)
	suite.Nil(result)
}

func TestGetAvailableVehiclesQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAvailableVehiclesQueryHandlerTestSuite))
}
