package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rohingrover/absuma/internal/models"
	"github.com/rohingrover/absuma/internal/repository"
)

// Approval actions accepted by the approval endpoint
const (
	ApprovalActionApprove = "approve"
	ApprovalActionReject  = "reject"
)

// VendorInput is the create/update payload for a vendor
type VendorInput struct {
	CompanyName   string `json:"company_name" validate:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address"`
}

// ApprovalInput is the payload of the vendor approval endpoint
type ApprovalInput struct {
	Action string `json:"action" validate:"required"`
	Reason string `json:"reason"`
}

// VendorVehicleInput is the payload for registering a vendor's vehicle
type VendorVehicleInput struct {
	VehicleNumber string `json:"vehicle_number" validate:"required"`
	VehicleType   string `json:"vehicle_type"`
}

// VendorService defines vendor business operations
type VendorService interface {
	Create(ctx context.Context, in *VendorInput) (*models.Vendor, error)
	Update(ctx context.Context, id uint, in *VendorInput) (*models.Vendor, error)
	Get(ctx context.Context, id uint) (*models.Vendor, error)
	List(ctx context.Context, filter repository.VendorFilter) ([]models.Vendor, int64, error)
	Decide(ctx context.Context, id uint, actor *Identity, in *ApprovalInput) (*models.Vendor, error)
	AddVehicle(ctx context.Context, vendorID uint, in *VendorVehicleInput) (*models.VendorVehicle, error)
	SearchVehicles(ctx context.Context, term string) ([]SearchResult, error)
}

type vendorService struct {
	repo repository.VendorRepository
}

// NewVendorService creates a new vendor service
func NewVendorService(repo repository.VendorRepository) VendorService {
	return &vendorService{repo: repo}
}

func (s *vendorService) Create(ctx context.Context, in *VendorInput) (*models.Vendor, error) {
	if errs := structErrors(in); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	vendor := &models.Vendor{
		CompanyName:   in.CompanyName,
		VendorCode:    generateVendorCode(),
		Status:        models.VendorStatusPending,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
	}
	if err := s.repo.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) Update(ctx context.Context, id uint, in *VendorInput) (*models.Vendor, error) {
	if errs := structErrors(in); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	vendor.CompanyName = in.CompanyName
	vendor.ContactPerson = in.ContactPerson
	vendor.Phone = in.Phone
	vendor.Email = in.Email
	vendor.Address = in.Address
	vendor.Vehicles = nil

	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) Get(ctx context.Context, id uint) (*models.Vendor, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *vendorService) List(ctx context.Context, filter repository.VendorFilter) ([]models.Vendor, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.repo.List(ctx, filter)
}

// Decide applies an admin approval decision. Rejection requires a reason;
// the decision metadata records who acted and when. Any state is reachable
// from any other, so re-deciding an already decided vendor is allowed.
func (s *vendorService) Decide(ctx context.Context, id uint, actor *Identity, in *ApprovalInput) (*models.Vendor, error) {
	if errs := structErrors(in); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	switch in.Action {
	case ApprovalActionApprove:
		vendor.Status = models.VendorStatusActive
		vendor.ApprovedBy = &actor.UserID
		vendor.ApprovedAt = &now
		vendor.RejectedBy = nil
		vendor.RejectedAt = nil
		vendor.RejectionReason = nil
	case ApprovalActionReject:
		reason := strings.TrimSpace(in.Reason)
		if reason == "" {
			return nil, NewValidationError([]string{"reason is required when rejecting a vendor"})
		}
		vendor.Status = models.VendorStatusRejected
		vendor.RejectedBy = &actor.UserID
		vendor.RejectedAt = &now
		vendor.RejectionReason = &reason
		vendor.ApprovedBy = nil
		vendor.ApprovedAt = nil
	default:
		return nil, NewValidationError([]string{"action must be approve or reject"})
	}

	vendor.Vehicles = nil
	if err := s.repo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) AddVehicle(ctx context.Context, vendorID uint, in *VendorVehicleInput) (*models.VendorVehicle, error) {
	errs := structErrors(in)
	normalized := NormalizeVehicleNumber(in.VehicleNumber)
	if in.VehicleNumber != "" && !vehicleNumberPattern.MatchString(normalized) {
		errs = append(errs, "vehicle_number must be a valid registration, e.g. UP25 GT 0880")
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	vendor, err := s.repo.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.Status != models.VendorStatusActive {
		return nil, NewConflictError("vendor %s is not active", vendor.CompanyName)
	}

	vehicle := &models.VendorVehicle{
		VendorID:         vendorID,
		VehicleNumber:    in.VehicleNumber,
		NormalizedNumber: normalized,
		VehicleType:      in.VehicleType,
	}
	if err := s.repo.CreateVehicle(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// SearchVehicles mirrors the owned-fleet search for vendor vehicles
func (s *vendorService) SearchVehicles(ctx context.Context, term string) ([]SearchResult, error) {
	normalized := NormalizeVehicleNumber(term)
	if len(normalized) < 2 {
		return nil, NewValidationError([]string{"search term must be at least 2 characters"})
	}

	vehicles, err := s.repo.SearchVehicles(ctx, normalized, searchCandidateCap)
	if err != nil {
		return nil, err
	}

	sortVendorVehicles(vehicles, normalized)

	results := make([]SearchResult, 0, len(vehicles))
	for _, v := range vehicles {
		results = append(results, SearchResult{
			ID:            v.ID,
			VehicleNumber: v.VehicleNumber,
		})
	}
	return results, nil
}

func generateVendorCode() string {
	// VND- plus the first 8 hex chars of a fresh UUID, uppercased
	return "VND-" + strings.ToUpper(uuid.New().String()[:8])
}
