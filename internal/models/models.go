package models

import (
	"time"

	"gorm.io/gorm"
)

// Model is the base model with common fields for all database entities
type Model struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Role represents the access level of a back-office user
type Role string

const (
	// RoleAdmin has full access including approvals and deletes
	RoleAdmin Role = "admin"
	// RoleStaff has day-to-day data entry access
	RoleStaff Role = "staff"
)

// User represents a back-office user account
type User struct {
	Model
	Username     string `json:"username" gorm:"uniqueIndex;size:100"`
	PasswordHash string `json:"-" gorm:"size:255"`
	FullName     string `json:"full_name" gorm:"size:255"`
	Role         Role   `json:"role" gorm:"size:20;default:staff"`
}

// Location is a lookup table of operating locations (cities/areas)
// referenced by yards and client rates.
type Location struct {
	Model
	Name  string `json:"name" gorm:"uniqueIndex;size:100"`
	State string `json:"state" gorm:"size:100"`
}
