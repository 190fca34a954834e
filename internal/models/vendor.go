package models

import "time"

// VendorStatus is an enum for the approval state of a vendor
type VendorStatus string

const (
	VendorStatusPending  VendorStatus = "pending"
	VendorStatusActive   VendorStatus = "active"
	VendorStatusRejected VendorStatus = "rejected"
)

// Vendor represents an external transporter whose vehicles can be hired
// for trips. New vendors start out pending until an admin approves or
// rejects them.
type Vendor struct {
	Model
	CompanyName     string       `json:"company_name" gorm:"size:255;index"`
	VendorCode      string       `json:"vendor_code" gorm:"uniqueIndex;size:50"`
	Status          VendorStatus `json:"status" gorm:"size:20;default:pending;index"`
	ContactPerson   string       `json:"contact_person" gorm:"size:255"`
	Phone           string       `json:"phone" gorm:"size:20"`
	Email           string       `json:"email" gorm:"size:255"`
	Address         string       `json:"address" gorm:"size:500"`
	ApprovedBy      *uint        `json:"approved_by"`
	ApprovedAt      *time.Time   `json:"approved_at"`
	RejectedBy      *uint        `json:"rejected_by"`
	RejectedAt      *time.Time   `json:"rejected_at"`
	RejectionReason *string      `json:"rejection_reason" gorm:"size:500"`
	Vehicles        []VendorVehicle `json:"vehicles,omitempty" gorm:"foreignKey:VendorID"`
}

// VendorVehicle is a vehicle owned by a vendor, kept separate from the own
// fleet but searchable through the same endpoint shape.
type VendorVehicle struct {
	Model
	VendorID         uint   `json:"vendor_id" gorm:"index"`
	VehicleNumber    string `json:"vehicle_number" gorm:"size:20"`
	NormalizedNumber string `json:"-" gorm:"index;size:20"`
	VehicleType      string `json:"vehicle_type" gorm:"size:50"`
}
