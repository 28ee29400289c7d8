// Package trackingrepo persists tracking aggregates. One tracking exists per
// order; a unique index on the order ID turns a duplicate dispatch into a
// conflict instead of a second record.
package trackingrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// TrackingDTO represents the database structure for persisting tracking
// aggregates. The append-only history and attempt logs, the vehicle snapshot
// and the cost breakdown travel as jsonb documents.
type TrackingDTO struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey"`
	TrackingNumber string      `gorm:"uniqueIndex"`
	OrderID        uuid.UUID   `gorm:"type:uuid;uniqueIndex"`
	Pickup         GeoPointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery       GeoPointDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	Current        GeoPointDTO `gorm:"embedded;embeddedPrefix:current_"`
	CurrentAddress string
	Status         string `gorm:"index"`
	History        []byte `gorm:"type:jsonb"`
	Attempts       []byte `gorm:"type:jsonb"`
	Vehicle        []byte `gorm:"type:jsonb"`
	Cost           []byte `gorm:"type:jsonb"`
	EstimatedAt    *time.Time
	DeliveredAt    *time.Time
}

// TableName specifies the database table name for tracking entities.
func (TrackingDTO) TableName() string {
	return "trackings"
}

// GeoPointDTO represents embedded coordinates within the tracking table.
type GeoPointDTO struct {
	Lat float64
	Lng float64
}

func geoPointFromDomain(p kernel.GeoPoint) GeoPointDTO {
	return GeoPointDTO{Lat: p.Lat(), Lng: p.Lng()}
}

func (d GeoPointDTO) toDomain() (kernel.GeoPoint, error) {
	return kernel.NewGeoPoint(d.Lat, d.Lng)
}

type locationUpdateDTO struct {
	PrevLocation *GeoPointDTO `json:"prev_location,omitempty"`
	Location     GeoPointDTO  `json:"location"`
	Address      string       `json:"address,omitempty"`
	PrevStatus   string       `json:"prev_status"`
	Status       string       `json:"status"`
	Notes        string       `json:"notes,omitempty"`
	At           time.Time    `json:"at"`
}

type deliveryAttemptDTO struct {
	Outcome     string     `json:"outcome"`
	Reason      string     `json:"reason,omitempty"`
	NextAttempt *time.Time `json:"next_attempt,omitempty"`
	At          time.Time  `json:"at"`
}

type vehicleInfoDTO struct {
	ID           uuid.UUID `json:"id"`
	Type         string    `json:"type"`
	Registration string    `json:"registration"`
	CapacityKg   float64   `json:"capacity_kg"`
}

type costBreakdownDTO struct {
	BaseFee     float64 `json:"base_fee"`
	DistanceFee float64 `json:"distance_fee"`
	WeightFee   float64 `json:"weight_fee"`
	Multiplier  float64 `json:"multiplier"`
	Total       float64 `json:"total"`
}

// fromDomain converts a tracking aggregate to its database representation.
func fromDomain(aggregate *tracking.Tracking) (TrackingDTO, error) {
	history, err := historyFromDomain(aggregate.History())
	if err != nil {
		return TrackingDTO{}, err
	}
	attempts, err := attemptsFromDomain(aggregate.Attempts())
	if err != nil {
		return TrackingDTO{}, err
	}
	vehicle, err := vehicleFromDomain(aggregate.Vehicle())
	if err != nil {
		return TrackingDTO{}, err
	}
	cost, err := costFromDomain(aggregate.Cost())
	if err != nil {
		return TrackingDTO{}, err
	}

	return TrackingDTO{
		ID:             aggregate.ID().Bytes(),
		TrackingNumber: aggregate.TrackingNumber(),
		OrderID:        aggregate.OrderID().Bytes(),
		Pickup:         geoPointFromDomain(aggregate.Pickup()),
		Delivery:       geoPointFromDomain(aggregate.Delivery()),
		Current:        geoPointFromDomain(aggregate.CurrentLocation()),
		CurrentAddress: aggregate.CurrentAddress(),
		Status:         aggregate.Status().String(),
		History:        history,
		Attempts:       attempts,
		Vehicle:        vehicle,
		Cost:           cost,
		EstimatedAt:    aggregate.EstimatedDelivery(),
		DeliveredAt:    aggregate.ActualDelivery(),
	}, nil
}

// toDomain converts a database row to a tracking aggregate using
// RestoreTracking.
func toDomain(dto TrackingDTO) (*tracking.Tracking, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	pickup, err := dto.Pickup.toDomain()
	if err != nil {
		return nil, err
	}
	delivery, err := dto.Delivery.toDomain()
	if err != nil {
		return nil, err
	}
	current, err := dto.Current.toDomain()
	if err != nil {
		return nil, err
	}

	status, err := tracking.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	history, err := historyToDomain(dto.History)
	if err != nil {
		return nil, err
	}
	attempts, err := attemptsToDomain(dto.Attempts)
	if err != nil {
		return nil, err
	}
	vehicle, err := vehicleToDomain(dto.Vehicle)
	if err != nil {
		return nil, err
	}
	cost, err := costToDomain(dto.Cost)
	if err != nil {
		return nil, err
	}

	return tracking.RestoreTracking(
		id, dto.TrackingNumber, orderID,
		pickup, delivery, current, dto.CurrentAddress, status,
		history, attempts, vehicle, cost,
		dto.EstimatedAt, dto.DeliveredAt,
	)
}

func historyFromDomain(history []tracking.LocationUpdate) ([]byte, error) {
	dtos := make([]locationUpdateDTO, 0, len(history))
	for _, update := range history {
		var prev *GeoPointDTO
		if update.PrevLocation != nil {
			p := geoPointFromDomain(*update.PrevLocation)
			prev = &p
		}
		dtos = append(dtos, locationUpdateDTO{
			PrevLocation: prev,
			Location:     geoPointFromDomain(update.Location),
			Address:      update.Address,
			PrevStatus:   update.PrevStatus.String(),
			Status:       update.Status.String(),
			Notes:        update.Notes,
			At:           update.At,
		})
	}
	return json.Marshal(dtos)
}

func historyToDomain(raw []byte) ([]tracking.LocationUpdate, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var dtos []locationUpdateDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, err
	}

	history := make([]tracking.LocationUpdate, 0, len(dtos))
	for _, dto := range dtos {
		location, err := dto.Location.toDomain()
		if err != nil {
			return nil, err
		}

		var prev *kernel.GeoPoint
		if dto.PrevLocation != nil {
			p, prevErr := dto.PrevLocation.toDomain()
			if prevErr != nil {
				return nil, prevErr
			}
			prev = &p
		}

		prevStatus, err := tracking.ParseStatus(dto.PrevStatus)
		if err != nil {
			return nil, err
		}
		status, err := tracking.ParseStatus(dto.Status)
		if err != nil {
			return nil, err
		}

		history = append(history, tracking.LocationUpdate{
			PrevLocation: prev,
			Location:     location,
			Address:      dto.Address,
			PrevStatus:   prevStatus,
			Status:       status,
			Notes:        dto.Notes,
			At:           dto.At,
		})
	}

	return history, nil
}

func attemptsFromDomain(attempts []tracking.DeliveryAttempt) ([]byte, error) {
	dtos := make([]deliveryAttemptDTO, 0, len(attempts))
	for _, attempt := range attempts {
		dtos = append(dtos, deliveryAttemptDTO{
			Outcome:     attempt.Outcome,
			Reason:      attempt.Reason,
			NextAttempt: attempt.NextAttempt,
			At:          attempt.At,
		})
	}
	return json.Marshal(dtos)
}

func attemptsToDomain(raw []byte) ([]tracking.DeliveryAttempt, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var dtos []deliveryAttemptDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, err
	}

	attempts := make([]tracking.DeliveryAttempt, 0, len(dtos))
	for _, dto := range dtos {
		attempts = append(attempts, tracking.DeliveryAttempt{
			Outcome:     dto.Outcome,
			Reason:      dto.Reason,
			NextAttempt: dto.NextAttempt,
			At:          dto.At,
		})
	}

	return attempts, nil
}

func vehicleFromDomain(info *tracking.VehicleInfo) ([]byte, error) {
	if info == nil {
		return nil, nil
	}
	return json.Marshal(vehicleInfoDTO{
		ID:           info.ID.Bytes(),
		Type:         info.Type,
		Registration: info.Registration,
		CapacityKg:   info.CapacityKg,
	})
}

func vehicleToDomain(raw []byte) (*tracking.VehicleInfo, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var dto vehicleInfoDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return &tracking.VehicleInfo{
		ID:           id,
		Type:         dto.Type,
		Registration: dto.Registration,
		CapacityKg:   dto.CapacityKg,
	}, nil
}

func costFromDomain(cost *tracking.CostBreakdown) ([]byte, error) {
	if cost == nil {
		return nil, nil
	}
	return json.Marshal(costBreakdownDTO{
		BaseFee:     cost.BaseFee,
		DistanceFee: cost.DistanceFee,
		WeightFee:   cost.WeightFee,
		Multiplier:  cost.Multiplier,
		Total:       cost.Total,
	})
}

func costToDomain(raw []byte) (*tracking.CostBreakdown, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var dto costBreakdownDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, err
	}

	return &tracking.CostBreakdown{
		BaseFee:     dto.BaseFee,
		DistanceFee: dto.DistanceFee,
		WeightFee:   dto.WeightFee,
		Multiplier:  dto.Multiplier,
		Total:       dto.Total,
	}, nil
}
