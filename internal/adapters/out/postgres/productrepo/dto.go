// Package productrepo persists the inventory-facing subset of catalog
// products: available quantity and the derived stock tier. Stock mutation
// happens through single conditional UPDATE statements so concurrent
// reservations can never oversell.
package productrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for product inventory rows.
type ProductDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	FarmerID          uuid.UUID `gorm:"type:uuid;index"`
	Name              string
	Price             float64
	QuantityAvailable int
	StockStatus       string
	IsActive          bool
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product aggregate to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:                aggregate.ID().Bytes(),
		FarmerID:          aggregate.FarmerID().Bytes(),
		Name:              aggregate.Name(),
		Price:             aggregate.Price(),
		QuantityAvailable: aggregate.QuantityAvailable(),
		StockStatus:       aggregate.StockStatus().String(),
		IsActive:          aggregate.IsActive(),
	}
}

// toDomain converts a database row to a product aggregate. The stock tier is
// re-derived inside RestoreProduct rather than read from the row.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	farmerID, err := kernel.UUIDFromBytes(dto.FarmerID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(
		id, farmerID, dto.Name, dto.Price, dto.QuantityAvailable, dto.IsActive)
}
