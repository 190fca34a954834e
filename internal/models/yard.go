package models

// YardType is an enum for the kind of yard facility
type YardType string

const (
	YardTypeOpen      YardType = "open"
	YardTypeCovered   YardType = "covered"
	YardTypeContainer YardType = "container"
	YardTypeWorkshop  YardType = "workshop"
)

// YardLocation represents a parking/storage yard at a location.
// Rows are soft-deleted; YardCode uniqueness among live rows is backed by a
// partial unique index created during migration.
type YardLocation struct {
	Model
	YardName      string   `json:"yard_name" gorm:"size:255;index"`
	LocationID    uint     `json:"location_id" gorm:"index"`
	Location      *Location `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	YardCode      *string  `json:"yard_code" gorm:"size:50"`
	YardType      YardType `json:"yard_type" gorm:"size:20;default:open"`
	ContactPerson string   `json:"contact_person" gorm:"size:255"`
	ContactPhone  string   `json:"contact_phone" gorm:"size:20"`
	Address       string   `json:"address" gorm:"size:500"`
	Capacity      *int     `json:"capacity"`
	IsActive      bool     `json:"is_active" gorm:"default:true"`
}
