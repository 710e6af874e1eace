package model

import (
	"time"

	"github.com/google/uuid"
)

// CycleStatus is the lifecycle state of a delivery cycle.
// Cycles move upcoming -> delivered -> archived and are never reused.
type CycleStatus string

const (
	CycleUpcoming  CycleStatus = "upcoming"
	CycleDelivered CycleStatus = "delivered"
	CycleArchived  CycleStatus = "archived"
)

// DeliveryCycle represents one periodic shipment round. Its position in the
// delivery-date ordering drives seasonal renewal gap counting.
type DeliveryCycle struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	DeliveryDate time.Time   `json:"deliveryDate" db:"delivery_date"`
	Status       CycleStatus `json:"status" db:"status"`
	Title        string      `json:"title,omitempty" db:"title"`
	Description  string      `json:"description,omitempty" db:"description"`
	Revealed     bool        `json:"revealed" db:"revealed"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
}

// CycleCreateRequest is the staff payload for opening a new delivery cycle.
type CycleCreateRequest struct {
	DeliveryDate time.Time `json:"deliveryDate" validate:"required"`
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	Revealed     bool      `json:"revealed,omitempty"`
}

// CycleStatusUpdateRequest is the staff payload for advancing a cycle's
// lifecycle. Only the two forward transitions are accepted.
type CycleStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=delivered archived"`
}
