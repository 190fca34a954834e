package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rohingrover/absuma/internal/cache"
	"github.com/rohingrover/absuma/internal/models"
	"github.com/rohingrover/absuma/internal/repository"
)

const (
	searchCacheTTL     = 2 * time.Minute
	searchCachePrefix  = "vehicle:search:"
	searchCandidateCap = 50
)

// FinancingInput carries the loan details submitted with a financed vehicle
type FinancingInput struct {
	BankName         string           `json:"bank_name"`
	LoanAmount       *decimal.Decimal `json:"loan_amount"`
	InterestRate     *decimal.Decimal `json:"interest_rate"`
	LoanTenureMonths *int             `json:"loan_tenure_months"`
	EMIAmount        *decimal.Decimal `json:"emi_amount"`
	LoanStartDate    string           `json:"loan_start_date"`
	LoanEndDate      string           `json:"loan_end_date"`
}

// VehicleInput is the create/update payload for a vehicle
type VehicleInput struct {
	VehicleNumber     string          `json:"vehicle_number" validate:"required"`
	DriverName        string          `json:"driver_name" validate:"required"`
	OwnerName         string          `json:"owner_name" validate:"required"`
	MakeModel         string          `json:"make_model"`
	ManufacturingYear int             `json:"manufacturing_year" validate:"required"`
	GVW               *float64        `json:"gvw"`
	IsFinanced        bool            `json:"is_financed"`
	CurrentStatus     string          `json:"current_status"`
	Financing         *FinancingInput `json:"financing"`
}

// SearchResult is one candidate row for the search-as-you-type endpoint
type SearchResult struct {
	ID            uint   `json:"id"`
	VehicleNumber string `json:"vehicle_number"`
	DriverName    string `json:"driver_name,omitempty"`
	Status        string `json:"status,omitempty"`
}

// VehicleService defines the vehicle business operations
type VehicleService interface {
	Create(ctx context.Context, in *VehicleInput) (*models.Vehicle, error)
	Update(ctx context.Context, id uint, in *VehicleInput) (*models.Vehicle, error)
	Get(ctx context.Context, id uint) (*models.Vehicle, error)
	List(ctx context.Context, filter repository.VehicleFilter) ([]models.Vehicle, int64, error)
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, term string) ([]SearchResult, error)
	AddDocument(ctx context.Context, doc *models.VehicleDocument) error
	ListDocuments(ctx context.Context, vehicleID uint) ([]models.VehicleDocument, error)
}

type vehicleService struct {
	repo       repository.VehicleRepository
	driverRepo repository.DriverRepository
	cache      cache.Client
	log        *logrus.Logger
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(
	repo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	cacheClient cache.Client,
	log *logrus.Logger,
) VehicleService {
	return &vehicleService{
		repo:       repo,
		driverRepo: driverRepo,
		cache:      cacheClient,
		log:        log,
	}
}

// validateInput collects every violated rule instead of failing fast
func validateVehicleInput(in *VehicleInput) []string {
	errs := structErrors(in)

	if in.VehicleNumber != "" {
		if !vehicleNumberPattern.MatchString(NormalizeVehicleNumber(in.VehicleNumber)) {
			errs = append(errs, "vehicle_number must be a valid registration, e.g. UP25 GT 0880")
		}
	}
	if in.ManufacturingYear != 0 {
		currentYear := time.Now().Year()
		if in.ManufacturingYear < 1900 || in.ManufacturingYear > currentYear {
			errs = append(errs, fmt.Sprintf("manufacturing_year must be between 1900 and %d", currentYear))
		}
	}
	if in.GVW != nil && *in.GVW <= 0 {
		errs = append(errs, "gvw must be greater than zero")
	}
	if in.CurrentStatus != "" {
		switch models.VehicleStatus(in.CurrentStatus) {
		case models.VehicleStatusAvailable, models.VehicleStatusLoaded,
			models.VehicleStatusOnTrip, models.VehicleStatusMaintenance:
		default:
			errs = append(errs, "current_status must be one of available, loaded, on_trip, maintenance")
		}
	}

	if in.IsFinanced {
		fin := in.Financing
		if fin == nil {
			errs = append(errs, "financing details are required for a financed vehicle")
		} else {
			if strings.TrimSpace(fin.BankName) == "" {
				errs = append(errs, "bank_name is required for a financed vehicle")
			}
			if fin.EMIAmount == nil {
				errs = append(errs, "emi_amount is required for a financed vehicle")
			}
			requirePositive("loan_amount", fin.LoanAmount, &errs)
			requirePositive("interest_rate", fin.InterestRate, &errs)
			requirePositive("emi_amount", fin.EMIAmount, &errs)
			if fin.LoanTenureMonths != nil && *fin.LoanTenureMonths <= 0 {
				errs = append(errs, "loan_tenure_months must be greater than zero")
			}
			parseDate("loan_start_date", fin.LoanStartDate, &errs)
			parseDate("loan_end_date", fin.LoanEndDate, &errs)
		}
	}

	return errs
}

// checkAssignmentConflicts runs the duplicate-assignment checks in a fixed
// order; the first violation aborts with its specific message. When a
// record is being edited, ownVehicleNumber is its stored registration so
// the record's own driver row is not reported as a conflict.
func (s *vehicleService) checkAssignmentConflicts(ctx context.Context, driverName, vehicleNumber, ownVehicleNumber string) error {
	// 1) Driver already linked to a different vehicle
	d, err := s.driverRepo.FindByName(ctx, driverName)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if d != nil && d.VehicleNumber != vehicleNumber && d.VehicleNumber != ownVehicleNumber {
		return NewConflictError("driver %s is already assigned to vehicle %s", driverName, d.VehicleNumber)
	}

	// 2) Vehicle already linked to a different driver
	if vehicleNumber != ownVehicleNumber {
		d, err = s.driverRepo.FindByVehicleNumber(ctx, vehicleNumber)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if d != nil && d.Name != driverName {
			return NewConflictError("vehicle %s is already assigned to driver %s", vehicleNumber, d.Name)
		}
	}

	// 3) Exact pair already exists
	d, err = s.driverRepo.FindByPair(ctx, driverName, vehicleNumber)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if d != nil && vehicleNumber != ownVehicleNumber {
		return NewConflictError("driver %s is already assigned to vehicle %s", driverName, vehicleNumber)
	}

	return nil
}

func buildFinancing(in *FinancingInput) *models.VehicleFinancing {
	if in == nil {
		return nil
	}
	var errs []string
	fin := &models.VehicleFinancing{
		LoanAmount:       in.LoanAmount,
		InterestRate:     in.InterestRate,
		LoanTenureMonths: in.LoanTenureMonths,
		EMIAmount:        in.EMIAmount,
		LoanStartDate:    parseDate("loan_start_date", in.LoanStartDate, &errs),
		LoanEndDate:      parseDate("loan_end_date", in.LoanEndDate, &errs),
	}
	if name := strings.TrimSpace(in.BankName); name != "" {
		fin.BankName = &name
	}
	return fin
}

// Create validates the input, runs the duplicate and assignment checks and
// persists vehicle, financing and driver link in one transaction.
func (s *vehicleService) Create(ctx context.Context, in *VehicleInput) (*models.Vehicle, error) {
	if errs := validateVehicleInput(in); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	normalized := NormalizeVehicleNumber(in.VehicleNumber)
	existing, err := s.repo.FindByNormalizedNumber(ctx, normalized)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, NewConflictError("vehicle %s already exists (registered as %s)", in.VehicleNumber, existing.VehicleNumber)
	}

	if err := s.checkAssignmentConflicts(ctx, in.DriverName, in.VehicleNumber, ""); err != nil {
		return nil, err
	}

	vehicle := &models.Vehicle{
		VehicleNumber:     in.VehicleNumber,
		NormalizedNumber:  normalized,
		DriverName:        in.DriverName,
		OwnerName:         in.OwnerName,
		MakeModel:         in.MakeModel,
		ManufacturingYear: in.ManufacturingYear,
		GVW:               in.GVW,
		IsFinanced:        in.IsFinanced,
		CurrentStatus:     models.VehicleStatusAvailable,
	}
	if in.CurrentStatus != "" {
		vehicle.CurrentStatus = models.VehicleStatus(in.CurrentStatus)
	}

	var financing *models.VehicleFinancing
	if in.IsFinanced {
		financing = buildFinancing(in.Financing)
	}
	driver := &models.Driver{
		Name:          in.DriverName,
		VehicleNumber: in.VehicleNumber,
		Status:        "active",
	}

	if err := s.repo.CreateWithAssociations(ctx, vehicle, financing, driver); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// A concurrent writer slipped past the checks; the unique
			// indexes are the authoritative guard.
			return nil, NewConflictError("vehicle %s or driver %s is already registered", in.VehicleNumber, in.DriverName)
		}
		return nil, err
	}

	s.invalidateSearchCache(ctx)
	return vehicle, nil
}

// Update re-runs validation and, only when the registration or driver
// actually changed, the assignment conflict checks. A no-op update goes
// straight to the transactional write.
func (s *vehicleService) Update(ctx context.Context, id uint, in *VehicleInput) (*models.Vehicle, error) {
	if errs := validateVehicleInput(in); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized := NormalizeVehicleNumber(in.VehicleNumber)
	numberChanged := normalized != existing.NormalizedNumber
	driverChanged := in.DriverName != existing.DriverName

	if numberChanged {
		dup, err := s.repo.FindByNormalizedNumber(ctx, normalized)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if dup != nil && dup.ID != id {
			return nil, NewConflictError("vehicle %s already exists (registered as %s)", in.VehicleNumber, dup.VehicleNumber)
		}
	}

	if numberChanged || driverChanged {
		if err := s.checkAssignmentConflicts(ctx, in.DriverName, in.VehicleNumber, existing.VehicleNumber); err != nil {
			return nil, err
		}
	}

	oldVehicleNumber := existing.VehicleNumber

	existing.VehicleNumber = in.VehicleNumber
	existing.NormalizedNumber = normalized
	existing.DriverName = in.DriverName
	existing.OwnerName = in.OwnerName
	existing.MakeModel = in.MakeModel
	existing.ManufacturingYear = in.ManufacturingYear
	existing.GVW = in.GVW
	existing.IsFinanced = in.IsFinanced
	if in.CurrentStatus != "" {
		existing.CurrentStatus = models.VehicleStatus(in.CurrentStatus)
	}
	existing.Financing = nil
	existing.Documents = nil

	var financing *models.VehicleFinancing
	if in.IsFinanced {
		financing = buildFinancing(in.Financing)
	}
	driver := &models.Driver{
		Name:          in.DriverName,
		VehicleNumber: in.VehicleNumber,
		Status:        "active",
	}

	if err := s.repo.UpdateWithAssociations(ctx, existing, financing, driver, oldVehicleNumber); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, NewConflictError("vehicle %s or driver %s is already registered", in.VehicleNumber, in.DriverName)
		}
		return nil, err
	}

	s.invalidateSearchCache(ctx)
	return existing, nil
}

func (s *vehicleService) Get(ctx context.Context, id uint) (*models.Vehicle, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *vehicleService) List(ctx context.Context, filter repository.VehicleFilter) ([]models.Vehicle, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.repo.List(ctx, filter)
}

func (s *vehicleService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return err
	}
	s.invalidateSearchCache(ctx)
	return nil
}

// Search returns candidates for search-as-you-type, ranked by last-4-digit
// match first, then prefix match. Results are cached briefly.
func (s *vehicleService) Search(ctx context.Context, term string) ([]SearchResult, error) {
	normalized := NormalizeVehicleNumber(term)
	if len(normalized) < 2 {
		return nil, NewValidationError([]string{"search term must be at least 2 characters"})
	}

	cacheKey := searchCachePrefix + normalized
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var results []SearchResult
			if err := json.Unmarshal([]byte(cached), &results); err == nil {
				return results, nil
			}
		} else if err != cache.Nil {
			s.log.WithError(err).Warn("Failed to read search cache")
		}
	}

	vehicles, err := s.repo.SearchCandidates(ctx, normalized, searchCandidateCap)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(vehicles, func(i, j int) bool {
		ri := registrationRank(vehicles[i].NormalizedNumber, normalized)
		rj := registrationRank(vehicles[j].NormalizedNumber, normalized)
		if ri != rj {
			return ri < rj
		}
		return vehicles[i].NormalizedNumber < vehicles[j].NormalizedNumber
	})

	results := make([]SearchResult, 0, len(vehicles))
	for _, v := range vehicles {
		results = append(results, SearchResult{
			ID:            v.ID,
			VehicleNumber: v.VehicleNumber,
			DriverName:    v.DriverName,
			Status:        string(v.CurrentStatus),
		})
	}

	if s.cache != nil {
		if payload, err := json.Marshal(results); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(payload), searchCacheTTL); err != nil {
				s.log.WithError(err).Warn("Failed to cache search results")
			}
		}
	}
	return results, nil
}

func (s *vehicleService) AddDocument(ctx context.Context, doc *models.VehicleDocument) error {
	if _, err := s.repo.FindByID(ctx, doc.VehicleID); err != nil {
		return err
	}
	return s.repo.CreateDocument(ctx, doc)
}

func (s *vehicleService) ListDocuments(ctx context.Context, vehicleID uint) ([]models.VehicleDocument, error) {
	return s.repo.ListDocuments(ctx, vehicleID)
}

func (s *vehicleService) invalidateSearchCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, searchCachePrefix+"*"); err != nil {
		s.log.WithError(err).Warn("Failed to invalidate search cache")
	}
}

// registrationRank scores a candidate registration against the normalized
// search term: a match on the last four digits ranks first, then a prefix
// match, then everything else.
func registrationRank(normalized, term string) int {
	if isAllDigits(term) && len(normalized) >= 4 &&
		strings.Contains(normalized[len(normalized)-4:], term) {
		return 0
	}
	if strings.HasPrefix(normalized, term) {
		return 1
	}
	return 2
}

func sortVendorVehicles(vehicles []models.VendorVehicle, term string) {
	sort.SliceStable(vehicles, func(i, j int) bool {
		ri := registrationRank(vehicles[i].NormalizedNumber, term)
		rj := registrationRank(vehicles[j].NormalizedNumber, term)
		if ri != rj {
			return ri < rj
		}
		return vehicles[i].NormalizedNumber < vehicles[j].NormalizedNumber
	})
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
