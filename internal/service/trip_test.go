package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rohingrover/absuma/internal/models"
	"github.com/rohingrover/absuma/internal/repository"
)

func sampleTrips() []models.Trip {
	return []models.Trip{
		{
			ReferenceNumber: "TRP-2025-0001",
			BookingNumber:   "BK-4411",
			Client:          &models.Client{ClientName: "Maersk India"},
			VehicleType:     models.TripVehicleOwned,
			VehicleNumber:   "UP25 GT 0880",
			FromLocation:    "Dadri",
			ToLocation:      "Mundra",
			Status:          models.TripStatusCompleted,
			ClientRate:      decimal.RequireFromString("48500"),
			TripDate:        time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			ReferenceNumber: "TRP-2025-0002",
			VehicleType:     models.TripVehicleVendor,
			VehicleNumber:   "DL9C AB 4321",
			Status:          models.TripStatusInTransit,
			ClientRate:      decimal.RequireFromString("36000.5"),
			TripDate:        time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestExportCSVHeaderAndRows(t *testing.T) {
	repo := new(MockTripRepository)
	repo.On("List", mock.Anything, mock.AnythingOfType("repository.TripFilter")).
		Return(sampleTrips(), int64(2), nil)

	svc := NewTripService(repo, new(MockVendorRepository))
	data, err := svc.ExportCSV(context.Background(), repository.TripFilter{Page: 3, Limit: 20})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, []string{
		"Reference Number", "Booking Number", "Client", "Vehicle Number",
		"Vehicle Type", "From", "To", "Status", "Client Rate", "Trip Date",
	}, records[0])
	require.Equal(t, []string{
		"TRP-2025-0001", "BK-4411", "Maersk India", "UP25 GT 0880",
		"owned", "Dadri", "Mundra", "completed", "48500.00", "2025-06-12",
	}, records[1])
	// a trip without a preloaded client exports an empty client column
	require.Equal(t, "", records[2][2])
	require.Equal(t, "36000.50", records[2][8])
}

func TestExportCoversAllPages(t *testing.T) {
	repo := new(MockTripRepository)
	repo.On("List", mock.Anything, repository.TripFilter{Status: "completed"}).
		Return([]models.Trip{}, int64(0), nil)

	svc := NewTripService(repo, new(MockVendorRepository))
	// pagination from the request must not limit the export
	_, err := svc.ExportCSV(context.Background(), repository.TripFilter{Status: "completed", Page: 2, Limit: 10})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestExportXLSX(t *testing.T) {
	repo := new(MockTripRepository)
	repo.On("List", mock.Anything, mock.AnythingOfType("repository.TripFilter")).
		Return(sampleTrips(), int64(2), nil)

	svc := NewTripService(repo, new(MockVendorRepository))
	data, err := svc.ExportXLSX(context.Background(), repository.TripFilter{})

	require.NoError(t, err)
	// xlsx files are zip archives
	require.Equal(t, []byte{'P', 'K'}, data[:2])
}

func TestListClampsPagination(t *testing.T) {
	repo := new(MockTripRepository)
	repo.On("List", mock.Anything, repository.TripFilter{Page: 1, Limit: 20}).
		Return([]models.Trip{}, int64(0), nil)

	svc := NewTripService(repo, new(MockVendorRepository))
	_, _, err := svc.List(context.Background(), repository.TripFilter{Page: 0, Limit: 500})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDashboard(t *testing.T) {
	repo := new(MockTripRepository)
	vendorRepo := new(MockVendorRepository)

	repo.On("CountVehiclesByStatus", mock.Anything).
		Return([]repository.StatusCount{{Status: "available", Count: 12}}, nil)
	repo.On("CountByStatus", mock.Anything).
		Return([]repository.StatusCount{{Status: "in_transit", Count: 4}}, nil)
	vendorRepo.On("CountByStatus", mock.Anything, models.VendorStatusPending).Return(int64(3), nil)
	repo.On("CountActiveClients", mock.Anything).Return(int64(9), nil)

	svc := NewTripService(repo, vendorRepo)
	summary, err := svc.Dashboard(context.Background())

	require.NoError(t, err)
	require.Equal(t, int64(3), summary.PendingVendors)
	require.Equal(t, int64(9), summary.ActiveClients)
	require.Len(t, summary.VehiclesByStatus, 1)
	require.Len(t, summary.TripsByStatus, 1)
}
