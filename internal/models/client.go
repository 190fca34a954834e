package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientStatus is an enum for the commercial state of a client
type ClientStatus string

const (
	ClientStatusActive    ClientStatus = "active"
	ClientStatusInactive  ClientStatus = "inactive"
	ClientStatusSuspended ClientStatus = "suspended"
)

// Client represents a customer the business hauls for. Clients are soft
// deleted; deleting one cascades to its rates, documents and contacts.
type Client struct {
	Model
	ClientName    string           `json:"client_name" gorm:"size:255;index"`
	ClientCode    string           `json:"client_code" gorm:"size:50"`
	Status        ClientStatus     `json:"status" gorm:"size:20;default:active;index"`
	ContactPerson string           `json:"contact_person" gorm:"size:255"`
	Phone         string           `json:"phone" gorm:"size:20"`
	Email         string           `json:"email" gorm:"size:255"`
	Address       string           `json:"address" gorm:"size:500"`
	GSTNumber     string           `json:"gst_number" gorm:"size:30"`
	Rates         []ClientRate     `json:"rates,omitempty" gorm:"foreignKey:ClientID"`
	Documents     []ClientDocument `json:"documents,omitempty" gorm:"foreignKey:ClientID"`
	Contacts      []ClientContact  `json:"contacts,omitempty" gorm:"foreignKey:ClientID"`
}

// ClientRate is an agreed freight rate for a lane
type ClientRate struct {
	Model
	ClientID      uint            `json:"client_id" gorm:"index"`
	FromLocation  string          `json:"from_location" gorm:"size:255"`
	ToLocation    string          `json:"to_location" gorm:"size:255"`
	ContainerSize string          `json:"container_size" gorm:"size:20"`
	Rate          decimal.Decimal `json:"rate" gorm:"type:decimal(14,2)"`
	EffectiveFrom *time.Time      `json:"effective_from"`
}

// ClientDocument is metadata for an uploaded client document
type ClientDocument struct {
	Model
	ClientID     uint   `json:"client_id" gorm:"index"`
	DocumentType string `json:"document_type" gorm:"size:50"`
	FileName     string `json:"file_name" gorm:"size:255"`
	OriginalName string `json:"original_name" gorm:"size:255"`
	FilePath     string `json:"file_path" gorm:"size:500"`
}

// ClientContact is an additional contact person for a client. Contacts are
// hard-deleted when the client is deleted, so there is no DeletedAt here.
type ClientContact struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ClientID    uint      `json:"client_id" gorm:"index"`
	Name        string    `json:"name" gorm:"size:255"`
	Designation string    `json:"designation" gorm:"size:100"`
	Phone       string    `json:"phone" gorm:"size:20"`
	Email       string    `json:"email" gorm:"size:255"`
}
