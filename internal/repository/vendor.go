package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/rohingrover/absuma/internal/database"
	"github.com/rohingrover/absuma/internal/models"
)

// VendorFilter holds the optional list filters for vendors
type VendorFilter struct {
	Status string
	Search string // substring over company name and code
	Page   int
	Limit  int
}

// VendorRepository defines data access for vendors and their vehicles
type VendorRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Vendor, error)
	List(ctx context.Context, filter VendorFilter) ([]models.Vendor, int64, error)
	Create(ctx context.Context, vendor *models.Vendor) error
	Update(ctx context.Context, vendor *models.Vendor) error
	CreateVehicle(ctx context.Context, vehicle *models.VendorVehicle) error
	SearchVehicles(ctx context.Context, normalizedTerm string, limit int) ([]models.VendorVehicle, error)
	CountByStatus(ctx context.Context, status models.VendorStatus) (int64, error)
}

type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) FindByID(ctx context.Context, id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).Preload("Vehicles").First(&vendor, id).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) List(ctx context.Context, filter VendorFilter) ([]models.Vendor, int64, error) {
	dbCtx := r.db.WithContext(ctx).Model(&models.Vendor{})

	if filter.Status != "" {
		dbCtx = dbCtx.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		dbCtx = dbCtx.Where("company_name ILIKE ? OR vendor_code ILIKE ?", like, like)
	}

	var total int64
	if err := dbCtx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vendors []models.Vendor
	err := dbCtx.
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&vendors).Error
	if err != nil {
		return nil, 0, err
	}
	return vendors, total, nil
}

func (r *vendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	err := r.db.WithContext(ctx).Create(vendor).Error
	if database.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *vendorRepository) Update(ctx context.Context, vendor *models.Vendor) error {
	err := r.db.WithContext(ctx).Save(vendor).Error
	if database.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *vendorRepository) CreateVehicle(ctx context.Context, vehicle *models.VendorVehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

// SearchVehicles returns vendor vehicles whose normalized number contains
// the normalized search term. Only vehicles of active vendors qualify.
func (r *vendorRepository) SearchVehicles(ctx context.Context, normalizedTerm string, limit int) ([]models.VendorVehicle, error) {
	var vehicles []models.VendorVehicle
	err := r.db.WithContext(ctx).
		Joins("JOIN vendors ON vendors.id = vendor_vehicles.vendor_id AND vendors.status = ? AND vendors.deleted_at IS NULL", models.VendorStatusActive).
		Where("vendor_vehicles.normalized_number LIKE ?", "%"+normalizedTerm+"%").
		Limit(limit).
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vendorRepository) CountByStatus(ctx context.Context, status models.VendorStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vendor{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
