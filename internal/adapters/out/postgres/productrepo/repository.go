package productrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Get retrieves a product by ID.
func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, errs.NewPersistenceError("get product", err)
	}

	return toDomain(dto)
}

// ReserveStock decrements the available quantity and recomputes the stock
// tier in one conditional statement. The quantity guard in the WHERE clause
// is what makes concurrent reservations safe: the row only changes when
// enough stock remains.
func (r *GormProductRepository) ReserveStock(ctx context.Context, productID kernel.UUID, amount int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE products
		SET quantity_available = quantity_available - ?,
			stock_status = CASE
				WHEN quantity_available - ? <= 0 THEN 'OutOfStock'
				WHEN quantity_available - ? <= 10 THEN 'LowStock'
				ELSE 'InStock'
			END
		WHERE id = ? AND quantity_available >= ?
	`, amount, amount, amount, productID.Bytes(), amount)
	if result.Error != nil {
		return errs.NewPersistenceError("reserve stock", result.Error)
	}

	if result.RowsAffected == 0 {
		return r.classifyReserveFailure(ctx, productID)
	}

	return nil
}

// ReleaseStock returns amount units to the available quantity and recomputes
// the stock tier.
func (r *GormProductRepository) ReleaseStock(ctx context.Context, productID kernel.UUID, amount int) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE products
		SET quantity_available = quantity_available + ?,
			stock_status = CASE
				WHEN quantity_available + ? <= 0 THEN 'OutOfStock'
				WHEN quantity_available + ? <= 10 THEN 'LowStock'
				ELSE 'InStock'
			END
		WHERE id = ?
	`, amount, amount, amount, productID.Bytes())
	if result.Error != nil {
		return errs.NewPersistenceError("release stock", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", productID.String())
	}

	return nil
}

// classifyReserveFailure distinguishes a missing product from insufficient
// stock after a conditional decrement touched no rows.
func (r *GormProductRepository) classifyReserveFailure(ctx context.Context, productID kernel.UUID) error {
	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", productID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("product", productID.String())
		}
		return errs.NewPersistenceError("reserve stock", err)
	}

	return errs.NewResourceExhaustedError(
		fmt.Sprintf("insufficient stock: %d available", dto.QuantityAvailable))
}
