package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/rohingrover/absuma/internal/database"
	"github.com/rohingrover/absuma/internal/models"
)

// YardFilter holds the optional list filters for yards
type YardFilter struct {
	YardType   string
	LocationID uint
	IsActive   *bool
	Search     string // substring over name, code and contact person
	Page       int
	Limit      int
}

// YardRepository defines data access for yard locations
type YardRepository interface {
	FindByID(ctx context.Context, id uint) (*models.YardLocation, error)
	FindByCode(ctx context.Context, code string, excludeID uint) (*models.YardLocation, error)
	FindByNameInLocation(ctx context.Context, name string, locationID uint, excludeID uint) (*models.YardLocation, error)
	List(ctx context.Context, filter YardFilter) ([]models.YardLocation, int64, error)
	Create(ctx context.Context, yard *models.YardLocation) error
	Update(ctx context.Context, yard *models.YardLocation) error
	SoftDelete(ctx context.Context, id uint) error
	ListLocations(ctx context.Context) ([]models.Location, error)
}

type yardRepository struct {
	db *gorm.DB
}

// NewYardRepository creates a new yard repository
func NewYardRepository(db *gorm.DB) YardRepository {
	return &yardRepository{db: db}
}

func (r *yardRepository) FindByID(ctx context.Context, id uint) (*models.YardLocation, error) {
	var yard models.YardLocation
	err := r.db.WithContext(ctx).Preload("Location").First(&yard, id).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &yard, nil
}

// FindByCode looks up a live yard by exact code, optionally excluding the
// record being edited.
func (r *yardRepository) FindByCode(ctx context.Context, code string, excludeID uint) (*models.YardLocation, error) {
	dbCtx := r.db.WithContext(ctx).Where("yard_code = ?", code)
	if excludeID != 0 {
		dbCtx = dbCtx.Where("id <> ?", excludeID)
	}
	var yard models.YardLocation
	err := dbCtx.First(&yard).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &yard, nil
}

func (r *yardRepository) FindByNameInLocation(ctx context.Context, name string, locationID uint, excludeID uint) (*models.YardLocation, error) {
	dbCtx := r.db.WithContext(ctx).Where("yard_name = ? AND location_id = ?", name, locationID)
	if excludeID != 0 {
		dbCtx = dbCtx.Where("id <> ?", excludeID)
	}
	var yard models.YardLocation
	err := dbCtx.First(&yard).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &yard, nil
}

// List orders by location then yard name, both ascending.
func (r *yardRepository) List(ctx context.Context, filter YardFilter) ([]models.YardLocation, int64, error) {
	dbCtx := r.db.WithContext(ctx).Model(&models.YardLocation{})

	if filter.YardType != "" {
		dbCtx = dbCtx.Where("yard_type = ?", filter.YardType)
	}
	if filter.LocationID != 0 {
		dbCtx = dbCtx.Where("location_id = ?", filter.LocationID)
	}
	if filter.IsActive != nil {
		dbCtx = dbCtx.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		dbCtx = dbCtx.Where("yard_name ILIKE ? OR yard_code ILIKE ? OR contact_person ILIKE ?", like, like, like)
	}

	var total int64
	if err := dbCtx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var yards []models.YardLocation
	err := dbCtx.
		Preload("Location").
		Order("location_id ASC, yard_name ASC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&yards).Error
	if err != nil {
		return nil, 0, err
	}
	return yards, total, nil
}

func (r *yardRepository) Create(ctx context.Context, yard *models.YardLocation) error {
	err := r.db.WithContext(ctx).Create(yard).Error
	if database.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *yardRepository) Update(ctx context.Context, yard *models.YardLocation) error {
	err := r.db.WithContext(ctx).Save(yard).Error
	if database.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *yardRepository) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.YardLocation{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *yardRepository) ListLocations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	err := r.db.WithContext(ctx).Order("name ASC").Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}
