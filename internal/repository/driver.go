package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/rohingrover/absuma/internal/database"
	"github.com/rohingrover/absuma/internal/models"
)

// DriverRepository defines lookups over driver↔vehicle links. Writes go
// through VehicleRepository so they share the vehicle transaction.
type DriverRepository interface {
	FindByName(ctx context.Context, name string) (*models.Driver, error)
	FindByVehicleNumber(ctx context.Context, vehicleNumber string) (*models.Driver, error)
	FindByPair(ctx context.Context, name, vehicleNumber string) (*models.Driver, error)
	List(ctx context.Context) ([]models.Driver, error)
}

type driverRepository struct {
	db *gorm.DB
}

// NewDriverRepository creates a new driver repository
func NewDriverRepository(db *gorm.DB) DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) FindByName(ctx context.Context, name string) (*models.Driver, error) {
	var driver models.Driver
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&driver).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &driver, nil
}

func (r *driverRepository) FindByVehicleNumber(ctx context.Context, vehicleNumber string) (*models.Driver, error) {
	var driver models.Driver
	err := r.db.WithContext(ctx).Where("vehicle_number = ?", vehicleNumber).First(&driver).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &driver, nil
}

func (r *driverRepository) FindByPair(ctx context.Context, name, vehicleNumber string) (*models.Driver, error) {
	var driver models.Driver
	err := r.db.WithContext(ctx).
		Where("name = ? AND vehicle_number = ?", name, vehicleNumber).
		First(&driver).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &driver, nil
}

func (r *driverRepository) List(ctx context.Context) ([]models.Driver, error) {
	var drivers []models.Driver
	err := r.db.WithContext(ctx).Order("name ASC").Find(&drivers).Error
	if err != nil {
		return nil, err
	}
	return drivers, nil
}
