package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TripStatus is an enum for the lifecycle state of a trip
type TripStatus string

const (
	TripStatusBooked    TripStatus = "booked"
	TripStatusInTransit TripStatus = "in_transit"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// Trip vehicle ownership discriminator
const (
	TripVehicleOwned  = "owned"
	TripVehicleVendor = "vendor"
)

// Trip is a haulage job for a client. Trips are created by the operations
// system upstream; this service reads and reports on them.
type Trip struct {
	Model
	ReferenceNumber string           `json:"reference_number" gorm:"uniqueIndex;size:50"`
	BookingNumber   string           `json:"booking_number" gorm:"size:50;index"`
	ClientID        uint             `json:"client_id" gorm:"index"`
	Client          *Client          `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	VehicleType     string           `json:"vehicle_type" gorm:"size:10"` // owned or vendor
	VehicleID       uint             `json:"vehicle_id"`
	VehicleNumber   string           `json:"vehicle_number" gorm:"size:20"`
	FromLocation    string           `json:"from_location" gorm:"size:255"`
	ToLocation      string           `json:"to_location" gorm:"size:255"`
	Status          TripStatus       `json:"status" gorm:"size:20;default:booked;index"`
	ClientRate      decimal.Decimal  `json:"client_rate" gorm:"type:decimal(14,2)"`
	VendorRate      *decimal.Decimal `json:"vendor_rate" gorm:"type:decimal(14,2)"`
	TripDate        time.Time        `json:"trip_date" gorm:"index"`
}
