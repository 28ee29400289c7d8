package postgres

import (
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/adapters/out/postgres/trackingrepo"
	"fulfillment/internal/adapters/out/postgres/vehiclerepo"

	"gorm.io/gorm"
)

// MigrateSchema creates or updates the tables backing every repository.
func MigrateSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&productrepo.ProductDTO{},
		&trackingrepo.TrackingDTO{},
		&vehiclerepo.VehicleDTO{},
	)
}
