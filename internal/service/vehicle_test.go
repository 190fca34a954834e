package service

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rohingrover/absuma/internal/models"
	"github.com/rohingrover/absuma/internal/repository"
)

func newVehicleService(repo *MockVehicleRepository, drivers *MockDriverRepository) VehicleService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewVehicleService(repo, drivers, nil, log)
}

func validVehicleInput() *VehicleInput {
	return &VehicleInput{
		VehicleNumber:     "UP25 GT 0880",
		DriverName:        "Ramesh Kumar",
		OwnerName:         "Absuma Logistics",
		ManufacturingYear: 2020,
	}
}

func TestCreateVehicle(t *testing.T) {
	repo := new(MockVehicleRepository)
	drivers := new(MockDriverRepository)

	repo.On("FindByNormalizedNumber", mock.Anything, "UP25GT0880").Return(nil, repository.ErrNotFound)
	drivers.On("FindByName", mock.Anything, "Ramesh Kumar").Return(nil, repository.ErrNotFound)
	drivers.On("FindByVehicleNumber", mock.Anything, "UP25 GT 0880").Return(nil, repository.ErrNotFound)
	drivers.On("FindByPair", mock.Anything, "Ramesh Kumar", "UP25 GT 0880").Return(nil, repository.ErrNotFound)
	repo.On("CreateWithAssociations", mock.Anything, mock.AnythingOfType("*models.Vehicle"), (*models.VehicleFinancing)(nil), mock.AnythingOfType("*models.Driver")).Return(nil)

	svc := newVehicleService(repo, drivers)
	vehicle, err := svc.Create(context.Background(), validVehicleInput())

	require.NoError(t, err)
	require.Equal(t, "UP25 GT 0880", vehicle.VehicleNumber)
	require.Equal(t, "UP25GT0880", vehicle.NormalizedNumber)
	require.Equal(t, models.VehicleStatusAvailable, vehicle.CurrentStatus)
	repo.AssertExpectations(t)
	drivers.AssertExpectations(t)
}

func TestCreateVehicleDuplicateNumber(t *testing.T) {
	repo := new(MockVehicleRepository)
	drivers := new(MockDriverRepository)

	existing := &models.Vehicle{VehicleNumber: "up25gt0880", NormalizedNumber: "UP25GT0880"}
	repo.On("FindByNormalizedNumber", mock.Anything, "UP25GT0880").Return(existing, nil)

	svc := newVehicleService(repo, drivers)
	_, err := svc.Create(context.Background(), validVehicleInput())

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Contains(t, conflict.Message, "registered as up25gt0880")
	repo.AssertNotCalled(t, "CreateWithAssociations", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateVehicleDriverConflict(t *testing.T) {
	repo := new(MockVehicleRepository)
	drivers := new(MockDriverRepository)

	repo.On("FindByNormalizedNumber", mock.Anything, "UP25GT0880").Return(nil, repository.ErrNotFound)
	drivers.On("FindByName", mock.Anything, "Ramesh Kumar").
		Return(&models.Driver{Name: "Ramesh Kumar", VehicleNumber: "DL9C AB 4321"}, nil)

	svc := newVehicleService(repo, drivers)
	_, err := svc.Create(context.Background(), validVehicleInput())

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "driver Ramesh Kumar is already assigned to vehicle DL9C AB 4321", conflict.Message)
	// the driver check fires first, so the vehicle check never runs
	drivers.AssertNotCalled(t, "FindByVehicleNumber", mock.Anything, mock.Anything)
}

func TestCreateVehicleVehicleConflict(t *testing.T) {
	repo := new(MockVehicleRepository)
	drivers := new(MockDriverRepository)

	repo.On("FindByNormalizedNumber", mock.Anything, "UP25GT0880").Return(nil, repository.ErrNotFound)
	drivers.On("FindByName", mock.Anything, "Ramesh Kumar").Return(nil, repository.ErrNotFound)
	drivers.On("FindByVehicleNumber", mock.Anything, "UP25 GT 0880").
		Return(&models.Driver{Name: "Suresh Yadav", VehicleNumber: "UP25 GT 0880"}, nil)

	svc := newVehicleService(repo, drivers)
	_, err := svc.Create(context.Background(), validVehicleInput())

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "vehicle UP25 GT 0880 is already assigned to driver Suresh Yadav", conflict.Message)
}

func TestCreateVehicleInvalidInput(t *testing.T) {
	svc := newVehicleService(new(MockVehicleRepository), new(MockDriverRepository))

	_, err := svc.Create(context.Background(), &VehicleInput{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Errors, "vehicle_number is required")
	require.Contains(t, verr.Errors, "driver_name is required")
}

func TestCreateVehicleConcurrentDuplicate(t *testing.T) {
	repo := new(MockVehicleRepository)
	drivers := new(MockDriverRepository)

	repo.On("FindByNormalizedNumber", mock.Anything, "UP25GT0880").Return(nil, repository.ErrNotFound)
	drivers.On("FindByName", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	drivers.On("FindByVehicleNumber", mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	drivers.On("FindByPair", mock.Anything, mock.Anything, mock.Anything).Return(nil, repository.ErrNotFound)
	repo.On("CreateWithAssociations", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(repository.ErrDuplicateKey)

	svc := newVehicleService(repo, drivers)
	_, err := svc.Create(context.Background(), validVehicleInput())

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestUpdateVehicleNoopSkipsConflictChecks(t *testing.T) {
	repo := new(MockVehicleRepository)
	drivers := new(MockDriverRepository)

	existing := &models.Vehicle{
		VehicleNumber:    "UP25 GT 0880",
		NormalizedNumber: "UP25GT0880",
		DriverName:       "Ramesh Kumar",
		CurrentStatus:    models.VehicleStatusAvailable,
	}
	existing.ID = 7
	repo.On("FindByID", mock.Anything, uint(7)).Return(existing, nil)
	repo.On("UpdateWithAssociations", mock.Anything, mock.Anything, (*models.VehicleFinancing)(nil), mock.Anything, "UP25 GT 0880").Return(nil)

	svc := newVehicleService(repo, drivers)
	in := validVehicleInput()
	in.OwnerName = "Absuma Logistics Pvt Ltd"
	updated, err := svc.Update(context.Background(), 7, in)

	require.NoError(t, err)
	require.Equal(t, "Absuma Logistics Pvt Ltd", updated.OwnerName)
	drivers.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
	drivers.AssertNotCalled(t, "FindByVehicleNumber", mock.Anything, mock.Anything)
	drivers.AssertNotCalled(t, "FindByPair", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateVehicleOwnRowNotConflict(t *testing.T) {
	repo := new(MockVehicleRepository)
	drivers := new(MockDriverRepository)

	existing := &models.Vehicle{
		VehicleNumber:    "UP25 GT 0880",
		NormalizedNumber: "UP25GT0880",
		DriverName:       "Suresh Yadav",
	}
	existing.ID = 7
	repo.On("FindByID", mock.Anything, uint(7)).Return(existing, nil)
	// the driver being assigned is currently linked to this very vehicle
	drivers.On("FindByName", mock.Anything, "Ramesh Kumar").
		Return(&models.Driver{Name: "Ramesh Kumar", VehicleNumber: "UP25 GT 0880"}, nil)
	drivers.On("FindByPair", mock.Anything, "Ramesh Kumar", "UP25 GT 0880").
		Return(&models.Driver{Name: "Ramesh Kumar", VehicleNumber: "UP25 GT 0880"}, nil)
	repo.On("UpdateWithAssociations", mock.Anything, mock.Anything, (*models.VehicleFinancing)(nil), mock.Anything, "UP25 GT 0880").Return(nil)

	svc := newVehicleService(repo, drivers)
	_, err := svc.Update(context.Background(), 7, validVehicleInput())

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateVehicleFinancingRemoved(t *testing.T) {
	repo := new(MockVehicleRepository)
	drivers := new(MockDriverRepository)

	existing := &models.Vehicle{
		VehicleNumber:    "UP25 GT 0880",
		NormalizedNumber: "UP25GT0880",
		DriverName:       "Ramesh Kumar",
		IsFinanced:       true,
	}
	existing.ID = 7
	repo.On("FindByID", mock.Anything, uint(7)).Return(existing, nil)
	repo.On("UpdateWithAssociations", mock.Anything, mock.Anything, (*models.VehicleFinancing)(nil), mock.Anything, "UP25 GT 0880").Return(nil)

	svc := newVehicleService(repo, drivers)
	in := validVehicleInput()
	in.IsFinanced = false
	updated, err := svc.Update(context.Background(), 7, in)

	require.NoError(t, err)
	require.False(t, updated.IsFinanced)
	// a nil financing row with is_financed=false tells the repository to
	// blank out the stored loan fields
	repo.AssertExpectations(t)
}

func TestSearchTermTooShort(t *testing.T) {
	svc := newVehicleService(new(MockVehicleRepository), new(MockDriverRepository))

	_, err := svc.Search(context.Background(), " 8 ")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestSearchRanking(t *testing.T) {
	repo := new(MockVehicleRepository)
	drivers := new(MockDriverRepository)

	candidates := []models.Vehicle{
		{VehicleNumber: "UP25 GT 1880", NormalizedNumber: "UP25GT1880"},
		{VehicleNumber: "DL9C AB 0880", NormalizedNumber: "DL9CAB0880"},
		{VehicleNumber: "KA01 M 8808", NormalizedNumber: "KA01M8808"},
	}
	repo.On("SearchCandidates", mock.Anything, "0880", searchCandidateCap).Return(candidates, nil)

	svc := newVehicleService(repo, drivers)
	results, err := svc.Search(context.Background(), "0880")

	require.NoError(t, err)
	require.Len(t, results, 3)
	// exact last-four match first, then the rest alphabetically
	require.Equal(t, "DL9C AB 0880", results[0].VehicleNumber)
	require.Equal(t, "KA01 M 8808", results[1].VehicleNumber)
	require.Equal(t, "UP25 GT 1880", results[2].VehicleNumber)
}

func TestSearchPrefixRanking(t *testing.T) {
	repo := new(MockVehicleRepository)
	drivers := new(MockDriverRepository)

	candidates := []models.Vehicle{
		{VehicleNumber: "DL9C UP 2504", NormalizedNumber: "DL9CUP2504"},
		{VehicleNumber: "UP25 GT 0880", NormalizedNumber: "UP25GT0880"},
	}
	repo.On("SearchCandidates", mock.Anything, "UP25", searchCandidateCap).Return(candidates, nil)

	svc := newVehicleService(repo, drivers)
	results, err := svc.Search(context.Background(), "up25")

	require.NoError(t, err)
	require.Equal(t, "UP25 GT 0880", results[0].VehicleNumber)
	require.Equal(t, "DL9C UP 2504", results[1].VehicleNumber)
}

func TestSearchUsesCache(t *testing.T) {
	repo := new(MockVehicleRepository)
	drivers := new(MockDriverRepository)
	cacheClient := new(MockCache)

	cacheClient.On("Get", mock.Anything, "vehicle:search:UP25").
		Return(`[{"id":3,"vehicle_number":"UP25 GT 0880"}]`, nil)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	svc := NewVehicleService(repo, drivers, cacheClient, log)
	results, err := svc.Search(context.Background(), "UP 25")

	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, uint(3), results[0].ID)
	repo.AssertNotCalled(t, "SearchCandidates", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteVehicleInvalidatesCache(t *testing.T) {
	repo := new(MockVehicleRepository)
	cacheClient := new(MockCache)

	repo.On("DeleteCascade", mock.Anything, uint(7)).Return(nil)
	cacheClient.On("DeleteByPattern", mock.Anything, "vehicle:search:*").Return(nil)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	svc := NewVehicleService(repo, new(MockDriverRepository), cacheClient, log)

	require.NoError(t, svc.Delete(context.Background(), 7))
	cacheClient.AssertExpectations(t)
}

func TestRegistrationRank(t *testing.T) {
	require.Equal(t, 0, registrationRank("UP25GT0880", "0880"))
	require.Equal(t, 1, registrationRank("UP25GT0880", "UP25"))
	require.Equal(t, 2, registrationRank("UP25GT0880", "GT08"))
	require.Equal(t, 2, registrationRank("UP25GT1880", "0880"))
}
