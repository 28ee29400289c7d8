package main

import (
	"fmt"
	"log/slog"
	"os"

	"fulfillment/cmd"
	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	if err := postgres.MigrateSchema(gormDB); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB)
	defer func() {
		_ = app.Close()
	}()

	jobManager := jobs.NewJobManager(
		app.CreateRefreshEtasCommandHandler(),
		slog.Default(),
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded, relying on process environment")
	}

	return cmd.Config{
		HTTPPort:                 os.Getenv("HTTP_PORT"),
		DBHost:                   os.Getenv("DB_HOST"),
		DBPort:                   os.Getenv("DB_PORT"),
		DBUser:                   os.Getenv("DB_USER"),
		DBPassword:               os.Getenv("DB_PASSWORD"),
		DBName:                   os.Getenv("DB_NAME"),
		DBSslMode:                os.Getenv("DB_SSLMODE"),
		RoutingServiceURL:        os.Getenv("ROUTING_SERVICE_URL"),
		RoutingTimeoutSeconds:    os.Getenv("ROUTING_TIMEOUT_SECONDS"),
		AccountsServiceURL:       os.Getenv("ACCOUNTS_SERVICE_URL"),
		AccountsTimeoutSeconds:   os.Getenv("ACCOUNTS_TIMEOUT_SECONDS"),
		KafkaBrokers:             os.Getenv("KAFKA_BROKERS"),
		KafkaOrderEventsTopic:    os.Getenv("KAFKA_ORDER_EVENTS_TOPIC"),
		KafkaTrackingEventsTopic: os.Getenv("KAFKA_TRACKING_EVENTS_TOPIC"),
	}
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return db
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateUpdatePaymentStatusCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateCreateTrackingCommandHandler(),
		app.CreateUpdateTrackingLocationCommandHandler(),
		app.CreateRecordDeliveryAttemptCommandHandler(),
		app.CreateAssignVehicleCommandHandler(),
		app.CreateRegisterVehicleCommandHandler(),
		app.CreateGetTrackingQueryHandler(),
		app.CreateGetBuyerOrdersQueryHandler(),
		app.CreateGetAvailableVehiclesQueryHandler(),
		app.RoutePlanner(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
