package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/rohingrover/absuma/internal/database"
	"github.com/rohingrover/absuma/internal/models"
)

// ClientFilter holds the optional list filters for clients
type ClientFilter struct {
	Status string
	Search string // substring over name and code
	Page   int
	Limit  int
}

// ClientRepository defines data access for clients and their child rows
type ClientRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Client, error)
	FindByCode(ctx context.Context, code string, excludeID uint) (*models.Client, error)
	List(ctx context.Context, filter ClientFilter) ([]models.Client, int64, error)
	Create(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, client *models.Client) error
	DeleteCascade(ctx context.Context, id uint) error
	ListRates(ctx context.Context, clientID uint) ([]models.ClientRate, error)
	CreateRate(ctx context.Context, rate *models.ClientRate) error
	CreateContact(ctx context.Context, contact *models.ClientContact) error
	DeleteContact(ctx context.Context, id uint) error
}

type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.WithContext(ctx).
		Preload("Rates").
		Preload("Contacts").
		Preload("Documents").
		First(&client, id).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindByCode(ctx context.Context, code string, excludeID uint) (*models.Client, error) {
	dbCtx := r.db.WithContext(ctx).Where("client_code = ?", code)
	if excludeID != 0 {
		dbCtx = dbCtx.Where("id <> ?", excludeID)
	}
	var client models.Client
	err := dbCtx.First(&client).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) List(ctx context.Context, filter ClientFilter) ([]models.Client, int64, error) {
	dbCtx := r.db.WithContext(ctx).Model(&models.Client{})

	if filter.Status != "" {
		dbCtx = dbCtx.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		dbCtx = dbCtx.Where("client_name ILIKE ? OR client_code ILIKE ?", like, like)
	}

	var total int64
	if err := dbCtx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []models.Client
	err := dbCtx.
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&clients).Error
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	err := r.db.WithContext(ctx).Create(client).Error
	if database.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *clientRepository) Update(ctx context.Context, client *models.Client) error {
	err := r.db.WithContext(ctx).Save(client).Error
	if database.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

// DeleteCascade soft-deletes the client together with its rates and
// documents and hard-deletes its contacts, all in one transaction.
func (r *clientRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.First(&client, id).Error; err != nil {
			if database.IsRecordNotFoundError(err) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.ClientRate{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.ClientDocument{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.ClientContact{}).Error; err != nil {
			return err
		}
		return tx.Delete(&client).Error
	})
}

func (r *clientRepository) ListRates(ctx context.Context, clientID uint) ([]models.ClientRate, error) {
	var rates []models.ClientRate
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("from_location ASC, to_location ASC").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *clientRepository) CreateRate(ctx context.Context, rate *models.ClientRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *clientRepository) CreateContact(ctx context.Context, contact *models.ClientContact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *clientRepository) DeleteContact(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.ClientContact{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
