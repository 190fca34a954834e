package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/rohingrover/absuma/internal/models"
	"github.com/rohingrover/absuma/internal/repository"
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// Mock repositories for testing

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) FindByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindByNormalizedNumber(ctx context.Context, normalized string) (*models.Vehicle, error) {
	args := m.Called(ctx, normalized)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) List(ctx context.Context, filter repository.VehicleFilter) ([]models.Vehicle, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Vehicle), args.Get(1).(int64), args.Error(2)
}

func (m *MockVehicleRepository) SearchCandidates(ctx context.Context, normalizedTerm string, limit int) ([]models.Vehicle, error) {
	args := m.Called(ctx, normalizedTerm, limit)
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) CreateWithAssociations(ctx context.Context, vehicle *models.Vehicle, financing *models.VehicleFinancing, driver *models.Driver) error {
	args := m.Called(ctx, vehicle, financing, driver)
	return args.Error(0)
}

func (m *MockVehicleRepository) UpdateWithAssociations(ctx context.Context, vehicle *models.Vehicle, financing *models.VehicleFinancing, driver *models.Driver, oldVehicleNumber string) error {
	args := m.Called(ctx, vehicle, financing, driver, oldVehicleNumber)
	return args.Error(0)
}

func (m *MockVehicleRepository) DeleteCascade(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) CreateDocument(ctx context.Context, doc *models.VehicleDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockVehicleRepository) ListDocuments(ctx context.Context, vehicleID uint) ([]models.VehicleDocument, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).([]models.VehicleDocument), args.Error(1)
}

type MockDriverRepository struct {
	mock.Mock
}

func (m *MockDriverRepository) FindByName(ctx context.Context, name string) (*models.Driver, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Driver), args.Error(1)
}

func (m *MockDriverRepository) FindByVehicleNumber(ctx context.Context, vehicleNumber string) (*models.Driver, error) {
	args := m.Called(ctx, vehicleNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Driver), args.Error(1)
}

func (m *MockDriverRepository) FindByPair(ctx context.Context, name, vehicleNumber string) (*models.Driver, error) {
	args := m.Called(ctx, name, vehicleNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Driver), args.Error(1)
}

func (m *MockDriverRepository) List(ctx context.Context) ([]models.Driver, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Driver), args.Error(1)
}

type MockYardRepository struct {
	mock.Mock
}

func (m *MockYardRepository) FindByID(ctx context.Context, id uint) (*models.YardLocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.YardLocation), args.Error(1)
}

func (m *MockYardRepository) FindByCode(ctx context.Context, code string, excludeID uint) (*models.YardLocation, error) {
	args := m.Called(ctx, code, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.YardLocation), args.Error(1)
}

func (m *MockYardRepository) FindByNameInLocation(ctx context.Context, name string, locationID uint, excludeID uint) (*models.YardLocation, error) {
	args := m.Called(ctx, name, locationID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.YardLocation), args.Error(1)
}

func (m *MockYardRepository) List(ctx context.Context, filter repository.YardFilter) ([]models.YardLocation, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.YardLocation), args.Get(1).(int64), args.Error(2)
}

func (m *MockYardRepository) Create(ctx context.Context, yard *models.YardLocation) error {
	args := m.Called(ctx, yard)
	return args.Error(0)
}

func (m *MockYardRepository) Update(ctx context.Context, yard *models.YardLocation) error {
	args := m.Called(ctx, yard)
	return args.Error(0)
}

func (m *MockYardRepository) SoftDelete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockYardRepository) ListLocations(ctx context.Context) ([]models.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Location), args.Error(1)
}

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientRepository) FindByCode(ctx context.Context, code string, excludeID uint) (*models.Client, error) {
	args := m.Called(ctx, code, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context, filter repository.ClientFilter) ([]models.Client, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Client), args.Get(1).(int64), args.Error(2)
}

func (m *MockClientRepository) Create(ctx context.Context, client *models.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, client *models.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteCascade(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) ListRates(ctx context.Context, clientID uint) ([]models.ClientRate, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]models.ClientRate), args.Error(1)
}

func (m *MockClientRepository) CreateRate(ctx context.Context, rate *models.ClientRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockClientRepository) CreateContact(ctx context.Context, contact *models.ClientContact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteContact(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uint) (*models.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vendor), args.Error(1)
}

func (m *MockVendorRepository) List(ctx context.Context, filter repository.VendorFilter) ([]models.Vendor, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Vendor), args.Get(1).(int64), args.Error(2)
}

func (m *MockVendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Update(ctx context.Context, vendor *models.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) CreateVehicle(ctx context.Context, vehicle *models.VendorVehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVendorRepository) SearchVehicles(ctx context.Context, normalizedTerm string, limit int) ([]models.VendorVehicle, error) {
	args := m.Called(ctx, normalizedTerm, limit)
	return args.Get(0).([]models.VendorVehicle), args.Error(1)
}

func (m *MockVendorRepository) CountByStatus(ctx context.Context, status models.VendorStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) FindByID(ctx context.Context, id uint) (*models.Trip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Trip), args.Error(1)
}

func (m *MockTripRepository) List(ctx context.Context, filter repository.TripFilter) ([]models.Trip, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Trip), args.Get(1).(int64), args.Error(2)
}

func (m *MockTripRepository) CountByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.StatusCount), args.Error(1)
}

func (m *MockTripRepository) CountVehiclesByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.StatusCount), args.Error(1)
}

func (m *MockTripRepository) CountActiveClients(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCache) DeleteByPattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
