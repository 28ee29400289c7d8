// Package product contains the inventory-facing subset of the catalog
// product: available quantity and its derived stock tier. Mutation of stock
// belongs exclusively to the inventory coordinator (the product repository's
// atomic reserve/release operations); the aggregate here mirrors those rules
// for in-memory use and validation.
package product

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// lowStockThreshold is the largest quantity still reported as LowStock.
const lowStockThreshold = 10

// ErrProductIsNotConstructed is returned when a Product instance was not
// created through the RestoreProduct factory function.
var ErrProductIsNotConstructed = errors.New("Product must be created via RestoreProduct constructor")

// StockStatus is the derived stock-level tier shown to buyers.
type StockStatus int

const (
	// StockUnknown represents an undefined tier.
	StockUnknown StockStatus = iota
	// OutOfStock means no units are available.
	OutOfStock
	// LowStock means ten or fewer units remain.
	LowStock
	// InStock means more than ten units remain.
	InStock
)

// String returns the tier name used in persistence and API responses.
func (s StockStatus) String() string {
	switch s {
	case OutOfStock:
		return "OutOfStock"
	case LowStock:
		return "LowStock"
	case InStock:
		return "InStock"
	default:
		return "Unknown"
	}
}

// StockStatusFor derives the stock tier from an available quantity:
// 0 is OutOfStock, up to 10 is LowStock, anything above is InStock.
// The tier is recomputed after every reservation and release.
func StockStatusFor(quantityAvailable int) StockStatus {
	switch {
	case quantityAvailable <= 0:
		return OutOfStock
	case quantityAvailable <= lowStockThreshold:
		return LowStock
	default:
		return InStock
	}
}

// Product is the inventory view of a catalog product. Quantity never goes
// negative; the stock tier always matches the quantity.
type Product struct {
	id                kernel.UUID
	farmerID          kernel.UUID
	name              string
	price             float64
	quantityAvailable int
	stockStatus       StockStatus
	isActive          bool

	guard guard.ConstructorGuard
}

// RestoreProduct reconstructs the inventory view of a product from the
// catalog store. The stock tier is re-derived from the quantity rather than
// trusted from storage.
func RestoreProduct(
	id kernel.UUID,
	farmerID kernel.UUID,
	name string,
	price float64,
	quantityAvailable int,
	isActive bool,
) (*Product, error) {
	p := &Product{
		name:     name,
		isActive: isActive,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setFarmerID(farmerID),
		p.setPrice(price),
		p.setQuantityAvailable(quantityAvailable),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the Product was created through the factory function.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// ID returns the product identifier.
func (p *Product) ID() kernel.UUID { return p.id }

// FarmerID returns the owning farmer's identifier.
func (p *Product) FarmerID() kernel.UUID { return p.farmerID }

// Name returns the catalog name.
func (p *Product) Name() string { return p.name }

// Price returns the current per-unit price.
func (p *Product) Price() float64 { return p.price }

// QuantityAvailable returns the units currently reservable.
func (p *Product) QuantityAvailable() int { return p.quantityAvailable }

// StockStatus returns the derived stock tier.
func (p *Product) StockStatus() StockStatus { return p.stockStatus }

// IsActive reports whether the product is open for ordering.
func (p *Product) IsActive() bool { return p.isActive }

// Reserve decrements available quantity by amount, failing with a
// ResourceExhaustedError naming the available amount when stock is short.
// The authoritative, race-free version of this rule is the repository's
// conditional update; this method expresses the same semantics for the
// in-memory aggregate.
func (p *Product) Reserve(amount int) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}

	if p.quantityAvailable < amount {
		return errs.NewResourceExhaustedError(
			fmt.Sprintf("insufficient stock: %d available", p.quantityAvailable))
	}

	p.quantityAvailable -= amount
	p.stockStatus = StockStatusFor(p.quantityAvailable)
	return nil
}

// Release returns amount units to the available quantity. Release is not
// idempotent: callers must release a given reservation exactly once.
func (p *Product) Release(amount int) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}

	p.quantityAvailable += amount
	p.stockStatus = StockStatusFor(p.quantityAvailable)
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setFarmerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("farmerId", err)
	}
	p.farmerID = id
	return nil
}

func (p *Product) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%v is negative", price))
	}
	p.price = price
	return nil
}

func (p *Product) setQuantityAvailable(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantityAvailable",
			fmt.Errorf("%d is negative", quantity))
	}
	p.quantityAvailable = quantity
	p.stockStatus = StockStatusFor(quantity)
	return nil
}
