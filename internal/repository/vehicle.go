package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/rohingrover/absuma/internal/database"
	"github.com/rohingrover/absuma/internal/models"
)

// VehicleFilter holds the optional list filters for vehicles. Empty fields
// are omitted from the query entirely.
type VehicleFilter struct {
	Status     string
	IsFinanced *bool
	Year       int
	Owner      string
	Page       int
	Limit      int
}

// VehicleRepository defines data access for vehicles, their financing rows
// and document metadata. Multi-table writes run in a single transaction.
type VehicleRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Vehicle, error)
	FindByNormalizedNumber(ctx context.Context, normalized string) (*models.Vehicle, error)
	List(ctx context.Context, filter VehicleFilter) ([]models.Vehicle, int64, error)
	SearchCandidates(ctx context.Context, normalizedTerm string, limit int) ([]models.Vehicle, error)
	CreateWithAssociations(ctx context.Context, vehicle *models.Vehicle, financing *models.VehicleFinancing, driver *models.Driver) error
	UpdateWithAssociations(ctx context.Context, vehicle *models.Vehicle, financing *models.VehicleFinancing, driver *models.Driver, oldVehicleNumber string) error
	DeleteCascade(ctx context.Context, id uint) error
	CreateDocument(ctx context.Context, doc *models.VehicleDocument) error
	ListDocuments(ctx context.Context, vehicleID uint) ([]models.VehicleDocument, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).
		Preload("Financing").
		Preload("Documents").
		First(&vehicle, id).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) FindByNormalizedNumber(ctx context.Context, normalized string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).Where("normalized_number = ?", normalized).First(&vehicle).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// List applies each non-empty filter as an independent conjunct and orders
// by creation time, newest first.
func (r *vehicleRepository) List(ctx context.Context, filter VehicleFilter) ([]models.Vehicle, int64, error) {
	dbCtx := r.db.WithContext(ctx).Model(&models.Vehicle{})

	if filter.Status != "" {
		dbCtx = dbCtx.Where("current_status = ?", filter.Status)
	}
	if filter.IsFinanced != nil {
		dbCtx = dbCtx.Where("is_financed = ?", *filter.IsFinanced)
	}
	if filter.Year != 0 {
		dbCtx = dbCtx.Where("manufacturing_year = ?", filter.Year)
	}
	if filter.Owner != "" {
		dbCtx = dbCtx.Where("owner_name ILIKE ?", "%"+filter.Owner+"%")
	}

	var total int64
	if err := dbCtx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vehicles []models.Vehicle
	err := dbCtx.
		Preload("Financing").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&vehicles).Error
	if err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

// SearchCandidates returns vehicles whose normalized number contains the
// normalized search term. Ranking happens in the service layer.
func (r *vehicleRepository) SearchCandidates(ctx context.Context, normalizedTerm string, limit int) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).
		Where("normalized_number LIKE ?", "%"+normalizedTerm+"%").
		Limit(limit).
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

// CreateWithAssociations inserts the vehicle, its financing row (when
// present) and the driver link in one transaction.
func (r *vehicleRepository) CreateWithAssociations(ctx context.Context, vehicle *models.Vehicle, financing *models.VehicleFinancing, driver *models.Driver) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(vehicle).Error; err != nil {
			return err
		}
		if financing != nil {
			financing.VehicleID = vehicle.ID
			if err := tx.Create(financing).Error; err != nil {
				return err
			}
		}
		if driver != nil {
			if err := tx.Create(driver).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if database.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

// UpdateWithAssociations saves the vehicle, upserts its financing row and
// moves the driver link in one transaction. The driver row is keyed by the
// vehicle number the record had before this update.
func (r *vehicleRepository) UpdateWithAssociations(ctx context.Context, vehicle *models.Vehicle, financing *models.VehicleFinancing, driver *models.Driver, oldVehicleNumber string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(vehicle).Error; err != nil {
			return err
		}

		if vehicle.IsFinanced && financing != nil {
			res := tx.Model(&models.VehicleFinancing{}).
				Where("vehicle_id = ?", vehicle.ID).
				Updates(map[string]interface{}{
					"bank_name":          financing.BankName,
					"loan_amount":        financing.LoanAmount,
					"interest_rate":      financing.InterestRate,
					"loan_tenure_months": financing.LoanTenureMonths,
					"emi_amount":         financing.EMIAmount,
					"loan_start_date":    financing.LoanStartDate,
					"loan_end_date":      financing.LoanEndDate,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				financing.VehicleID = vehicle.ID
				if err := tx.Create(financing).Error; err != nil {
					return err
				}
			}
		} else {
			// No longer financed: blank out every loan field but keep the row
			if err := tx.Model(&models.VehicleFinancing{}).
				Where("vehicle_id = ?", vehicle.ID).
				Updates(map[string]interface{}{
					"bank_name":          nil,
					"loan_amount":        nil,
					"interest_rate":      nil,
					"loan_tenure_months": nil,
					"emi_amount":         nil,
					"loan_start_date":    nil,
					"loan_end_date":      nil,
				}).Error; err != nil {
				return err
			}
		}

		if driver != nil {
			res := tx.Model(&models.Driver{}).
				Where("vehicle_number = ?", oldVehicleNumber).
				Updates(map[string]interface{}{
					"name":           driver.Name,
					"vehicle_number": driver.VehicleNumber,
					"status":         driver.Status,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				if err := tx.Create(driver).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if database.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

// DeleteCascade hard-deletes the vehicle together with its financing row,
// driver link and document metadata.
func (r *vehicleRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		if err := tx.First(&vehicle, id).Error; err != nil {
			if database.IsRecordNotFoundError(err) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Unscoped().Where("vehicle_id = ?", id).Delete(&models.VehicleDocument{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("vehicle_id = ?", id).Delete(&models.VehicleFinancing{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("vehicle_number = ?", vehicle.VehicleNumber).Delete(&models.Driver{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&vehicle).Error
	})
}

func (r *vehicleRepository) CreateDocument(ctx context.Context, doc *models.VehicleDocument) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *vehicleRepository) ListDocuments(ctx context.Context, vehicleID uint) ([]models.VehicleDocument, error) {
	var docs []models.VehicleDocument
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}
