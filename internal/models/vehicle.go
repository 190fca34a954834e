package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VehicleStatus is an enum for the operational state of a vehicle
type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusLoaded      VehicleStatus = "loaded"
	VehicleStatusOnTrip      VehicleStatus = "on_trip"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
)

// Vehicle represents an owned fleet vehicle.
//
// VehicleNumber keeps the registration exactly as entered; NormalizedNumber
// is the comparison key (spaces and hyphens stripped, uppercased) and is
// what the unique index guards.
type Vehicle struct {
	Model
	VehicleNumber     string         `json:"vehicle_number" gorm:"size:20"`
	NormalizedNumber  string         `json:"-" gorm:"uniqueIndex;size:20"`
	DriverName        string         `json:"driver_name" gorm:"size:255"`
	OwnerName         string         `json:"owner_name" gorm:"size:255"`
	MakeModel         string         `json:"make_model" gorm:"size:255"`
	ManufacturingYear int            `json:"manufacturing_year"`
	GVW               *float64       `json:"gvw"`
	IsFinanced        bool           `json:"is_financed"`
	CurrentStatus     VehicleStatus  `json:"current_status" gorm:"size:20;default:available;index"`
	Financing         *VehicleFinancing `json:"financing,omitempty" gorm:"foreignKey:VehicleID"`
	Documents         []VehicleDocument `json:"documents,omitempty" gorm:"foreignKey:VehicleID"`
}

// VehicleFinancing holds loan details for a financed vehicle (1:1).
// Every field is nullable so the row can be blanked out when the vehicle
// stops being financed.
type VehicleFinancing struct {
	Model
	VehicleID        uint             `json:"vehicle_id" gorm:"uniqueIndex"`
	BankName         *string          `json:"bank_name" gorm:"size:255"`
	LoanAmount       *decimal.Decimal `json:"loan_amount" gorm:"type:decimal(14,2)"`
	InterestRate     *decimal.Decimal `json:"interest_rate" gorm:"type:decimal(6,2)"`
	LoanTenureMonths *int             `json:"loan_tenure_months"`
	EMIAmount        *decimal.Decimal `json:"emi_amount" gorm:"type:decimal(14,2)"`
	LoanStartDate    *time.Time       `json:"loan_start_date"`
	LoanEndDate      *time.Time       `json:"loan_end_date"`
}

// Driver links a driver name to exactly one vehicle number. The 1:1 pairing
// is enforced both by the assignment checks in the service layer and by the
// unique indexes on both columns.
type Driver struct {
	Model
	Name          string `json:"name" gorm:"uniqueIndex;size:255"`
	VehicleNumber string `json:"vehicle_number" gorm:"uniqueIndex;size:20"`
	Status        string `json:"status" gorm:"size:20;default:active"`
}

// VehicleDocument is metadata for an uploaded vehicle document (RC, permit,
// insurance...). The file itself lives on disk under the upload directory.
type VehicleDocument struct {
	Model
	VehicleID    uint   `json:"vehicle_id" gorm:"index"`
	DocumentType string `json:"document_type" gorm:"size:50"`
	FileName     string `json:"file_name" gorm:"size:255"`
	OriginalName string `json:"original_name" gorm:"size:255"`
	FilePath     string `json:"file_path" gorm:"size:500"`
	UploadedBy   uint   `json:"uploaded_by"`
}
