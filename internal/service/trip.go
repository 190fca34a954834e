package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rohingrover/absuma/internal/models"
	"github.com/rohingrover/absuma/internal/repository"
)

// tripReportColumns is the fixed header row of the trip report export
var tripReportColumns = []string{
	"Reference Number", "Booking Number", "Client", "Vehicle Number",
	"Vehicle Type", "From", "To", "Status", "Client Rate", "Trip Date",
}

// DashboardSummary aggregates the counts shown on the landing page
type DashboardSummary struct {
	VehiclesByStatus []repository.StatusCount `json:"vehicles_by_status"`
	TripsByStatus    []repository.StatusCount `json:"trips_by_status"`
	PendingVendors   int64                    `json:"pending_vendors"`
	ActiveClients    int64                    `json:"active_clients"`
}

// TripService defines trip reporting operations. Trips are written by the
// operations system upstream; here they are only listed and exported.
type TripService interface {
	Get(ctx context.Context, id uint) (*models.Trip, error)
	List(ctx context.Context, filter repository.TripFilter) ([]models.Trip, int64, error)
	ExportCSV(ctx context.Context, filter repository.TripFilter) ([]byte, error)
	ExportXLSX(ctx context.Context, filter repository.TripFilter) ([]byte, error)
	Dashboard(ctx context.Context) (*DashboardSummary, error)
}

type tripService struct {
	repo       repository.TripRepository
	vendorRepo repository.VendorRepository
}

// NewTripService creates a new trip service
func NewTripService(repo repository.TripRepository, vendorRepo repository.VendorRepository) TripService {
	return &tripService{repo: repo, vendorRepo: vendorRepo}
}

func (s *tripService) Get(ctx context.Context, id uint) (*models.Trip, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *tripService) List(ctx context.Context, filter repository.TripFilter) ([]models.Trip, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.repo.List(ctx, filter)
}

func tripReportRow(t *models.Trip) []string {
	clientName := ""
	if t.Client != nil {
		clientName = t.Client.ClientName
	}
	return []string{
		t.ReferenceNumber,
		t.BookingNumber,
		clientName,
		t.VehicleNumber,
		t.VehicleType,
		t.FromLocation,
		t.ToLocation,
		string(t.Status),
		t.ClientRate.StringFixed(2),
		t.TripDate.Format("2006-01-02"),
	}
}

// ExportCSV renders the filtered trips as a literal CSV with the fixed
// header row. Pagination is ignored so the export covers every match.
func (s *tripService) ExportCSV(ctx context.Context, filter repository.TripFilter) ([]byte, error) {
	filter.Page = 0
	filter.Limit = 0
	trips, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(tripReportColumns); err != nil {
		return nil, err
	}
	for i := range trips {
		if err := w.Write(tripReportRow(&trips[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportXLSX renders the same report as a spreadsheet
func (s *tripService) ExportXLSX(ctx context.Context, filter repository.TripFilter) ([]byte, error) {
	filter.Page = 0
	filter.Limit = 0
	trips, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, name := range tripReportColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}
	}
	for row := range trips {
		values := tripReportRow(&trips[row])
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Dashboard returns the aggregate counts for the landing page
func (s *tripService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	vehicles, err := s.repo.CountVehiclesByStatus(ctx)
	if err != nil {
		return nil, err
	}
	trips, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	pendingVendors, err := s.vendorRepo.CountByStatus(ctx, models.VendorStatusPending)
	if err != nil {
		return nil, err
	}
	activeClients, err := s.repo.CountActiveClients(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		VehiclesByStatus: vehicles,
		TripsByStatus:    trips,
		PendingVendors:   pendingVendors,
		ActiveClients:    activeClients,
	}, nil
}
