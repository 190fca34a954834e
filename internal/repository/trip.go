package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rohingrover/absuma/internal/database"
	"github.com/rohingrover/absuma/internal/models"
)

// TripFilter holds the optional list filters for trips
type TripFilter struct {
	Status   string
	ClientID uint
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string // substring over reference and booking numbers
	Page     int
	Limit    int
}

// StatusCount is a grouped count row for dashboard summaries
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// TripRepository defines read access to trips. Trips are created upstream;
// this service only lists and reports on them.
type TripRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Trip, error)
	List(ctx context.Context, filter TripFilter) ([]models.Trip, int64, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	CountVehiclesByStatus(ctx context.Context) ([]StatusCount, error)
	CountActiveClients(ctx context.Context) (int64, error)
}

type tripRepository struct {
	db *gorm.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) FindByID(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.WithContext(ctx).Preload("Client").First(&trip, id).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &trip, nil
}

// List orders by trip date, newest first. Absent filters are omitted, not
// wildcarded.
func (r *tripRepository) List(ctx context.Context, filter TripFilter) ([]models.Trip, int64, error) {
	dbCtx := r.db.WithContext(ctx).Model(&models.Trip{})

	if filter.Status != "" {
		dbCtx = dbCtx.Where("status = ?", filter.Status)
	}
	if filter.ClientID != 0 {
		dbCtx = dbCtx.Where("client_id = ?", filter.ClientID)
	}
	if filter.DateFrom != nil {
		dbCtx = dbCtx.Where("trip_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		dbCtx = dbCtx.Where("trip_date <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		dbCtx = dbCtx.Where("reference_number ILIKE ? OR booking_number ILIKE ?", like, like)
	}

	var total int64
	if err := dbCtx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dbCtx = dbCtx.Preload("Client").Order("trip_date DESC")
	if filter.Limit > 0 {
		dbCtx = dbCtx.Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit)
	}

	var trips []models.Trip
	if err := dbCtx.Find(&trips).Error; err != nil {
		return nil, 0, err
	}
	return trips, total, nil
}

func (r *tripRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.WithContext(ctx).Model(&models.Trip{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts).Error
	return counts, err
}

func (r *tripRepository) CountVehiclesByStatus(ctx context.Context) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Select("current_status as status, count(*) as count").
		Group("current_status").
		Scan(&counts).Error
	return counts, err
}

func (r *tripRepository) CountActiveClients(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Client{}).
		Where("status = ?", models.ClientStatusActive).
		Count(&count).Error
	return count, err
}
