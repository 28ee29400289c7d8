// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status history travels as a jsonb document; everything queried on gets
// its own indexed column.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID         uuid.UUID `gorm:"type:uuid;index"`
	FarmerID        uuid.UUID `gorm:"type:uuid;index"`
	ProductID       uuid.UUID `gorm:"type:uuid"`
	Quantity        int
	UnitPrice       float64
	TotalAmount     float64
	DeliveryAddress string
	Status          string `gorm:"index"`
	PaymentStatus   string
	PaymentMethod   string
	PaymentRef      string
	StatusHistory   []byte `gorm:"type:jsonb"`
	DeliveryDate    *time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// statusChangeDTO is the jsonb element of the status history document.
type statusChangeDTO struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedBy string    `json:"changed_by"`
	Note      string    `json:"note,omitempty"`
	At        time.Time `json:"at"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	historyDTOs := make([]statusChangeDTO, 0, len(aggregate.StatusHistory()))
	for _, change := range aggregate.StatusHistory() {
		historyDTOs = append(historyDTOs, statusChangeDTO{
			From:      change.From.String(),
			To:        change.To.String(),
			ChangedBy: change.ChangedBy,
			Note:      change.Note,
			At:        change.At,
		})
	}

	history, err := json.Marshal(historyDTOs)
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		BuyerID:         aggregate.BuyerID().Bytes(),
		FarmerID:        aggregate.FarmerID().Bytes(),
		ProductID:       aggregate.ProductID().Bytes(),
		Quantity:        aggregate.Quantity(),
		UnitPrice:       aggregate.UnitPrice(),
		TotalAmount:     aggregate.TotalAmount(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		Status:          aggregate.Status().String(),
		PaymentStatus:   aggregate.PaymentStatus().String(),
		PaymentMethod:   aggregate.PaymentMethod(),
		PaymentRef:      aggregate.PaymentReference(),
		StatusHistory:   history,
		DeliveryDate:    aggregate.DeliveryDate(),
		CompletedAt:     aggregate.CompletedAt(),
		CancelledAt:     aggregate.CancelledAt(),
		CancelReason:    aggregate.CancelReason(),
	}, nil
}

// toDomain converts a database row to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}
	farmerID, err := kernel.UUIDFromBytes(dto.FarmerID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	history, err := historyToDomain(dto.StatusHistory)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, buyerID, farmerID, productID,
		dto.Quantity, dto.UnitPrice, dto.DeliveryAddress,
		status, paymentStatus, dto.PaymentMethod, dto.PaymentRef,
		history,
		dto.DeliveryDate, dto.CompletedAt, dto.CancelledAt, dto.CancelReason,
	)
}

func historyToDomain(raw []byte) ([]order.StatusChange, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var dtos []statusChangeDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, err
	}

	history := make([]order.StatusChange, 0, len(dtos))
	for _, dto := range dtos {
		from, err := order.ParseStatus(dto.From)
		if err != nil {
			return nil, err
		}
		to, err := order.ParseStatus(dto.To)
		if err != nil {
			return nil, err
		}
		history = append(history, order.StatusChange{
			From:      from,
			To:        to,
			ChangedBy: dto.ChangedBy,
			Note:      dto.Note,
			At:        dto.At,
		})
	}

	return history, nil
}
