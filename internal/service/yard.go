package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rohingrover/absuma/internal/models"
	"github.com/rohingrover/absuma/internal/repository"
)

// YardInput is the create/update payload for a yard location
type YardInput struct {
	YardName      string `json:"yard_name" validate:"required"`
	LocationID    uint   `json:"location_id" validate:"required"`
	YardCode      string `json:"yard_code"`
	YardType      string `json:"yard_type"`
	ContactPerson string `json:"contact_person"`
	ContactPhone  string `json:"contact_phone"`
	Address       string `json:"address"`
	Capacity      *int   `json:"capacity"`
	IsActive      *bool  `json:"is_active"`
}

// YardService defines yard location business operations
type YardService interface {
	Create(ctx context.Context, in *YardInput) (*models.YardLocation, error)
	Update(ctx context.Context, id uint, in *YardInput) (*models.YardLocation, error)
	Get(ctx context.Context, id uint) (*models.YardLocation, error)
	List(ctx context.Context, filter repository.YardFilter) ([]models.YardLocation, int64, error)
	Delete(ctx context.Context, id uint) error
	ListLocations(ctx context.Context) ([]models.Location, error)
}

type yardService struct {
	repo repository.YardRepository
}

// NewYardService creates a new yard service
func NewYardService(repo repository.YardRepository) YardService {
	return &yardService{repo: repo}
}

func validateYardInput(in *YardInput) []string {
	errs := structErrors(in)

	if in.YardType != "" {
		switch models.YardType(in.YardType) {
		case models.YardTypeOpen, models.YardTypeCovered,
			models.YardTypeContainer, models.YardTypeWorkshop:
		default:
			errs = append(errs, "yard_type must be one of open, covered, container, workshop")
		}
	}
	if in.Capacity != nil && *in.Capacity <= 0 {
		errs = append(errs, "capacity must be greater than zero")
	}

	return errs
}

// checkYardUniqueness enforces the two uniqueness rules: yard_code globally
// (case-sensitive exact match among live rows) and yard_name within the
// location. excludeID skips the record being edited.
func (s *yardService) checkYardUniqueness(ctx context.Context, in *YardInput, excludeID uint) error {
	if code := strings.TrimSpace(in.YardCode); code != "" {
		other, err := s.repo.FindByCode(ctx, code, excludeID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if other != nil {
			return NewConflictError("yard code %s is already used by yard %s", code, other.YardName)
		}
	}

	other, err := s.repo.FindByNameInLocation(ctx, in.YardName, in.LocationID, excludeID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if other != nil {
		return NewConflictError("a yard named %s already exists at this location", in.YardName)
	}

	return nil
}

func applyYardInput(yard *models.YardLocation, in *YardInput) {
	yard.YardName = in.YardName
	yard.LocationID = in.LocationID
	yard.YardCode = nil
	if code := strings.TrimSpace(in.YardCode); code != "" {
		yard.YardCode = &code
	}
	yard.YardType = models.YardTypeOpen
	if in.YardType != "" {
		yard.YardType = models.YardType(in.YardType)
	}
	yard.ContactPerson = in.ContactPerson
	yard.ContactPhone = in.ContactPhone
	yard.Address = in.Address
	yard.Capacity = in.Capacity
	yard.IsActive = true
	if in.IsActive != nil {
		yard.IsActive = *in.IsActive
	}
}

func (s *yardService) Create(ctx context.Context, in *YardInput) (*models.YardLocation, error) {
	if errs := validateYardInput(in); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}
	if err := s.checkYardUniqueness(ctx, in, 0); err != nil {
		return nil, err
	}

	yard := &models.YardLocation{}
	applyYardInput(yard, in)

	if err := s.repo.Create(ctx, yard); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, NewConflictError("yard code %s is already in use", in.YardCode)
		}
		return nil, err
	}
	return yard, nil
}

func (s *yardService) Update(ctx context.Context, id uint, in *YardInput) (*models.YardLocation, error) {
	if errs := validateYardInput(in); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	yard, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkYardUniqueness(ctx, in, id); err != nil {
		return nil, err
	}

	yard.Location = nil
	applyYardInput(yard, in)

	if err := s.repo.Update(ctx, yard); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, NewConflictError("yard code %s is already in use", in.YardCode)
		}
		return nil, err
	}
	return yard, nil
}

func (s *yardService) Get(ctx context.Context, id uint) (*models.YardLocation, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *yardService) List(ctx context.Context, filter repository.YardFilter) ([]models.YardLocation, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.repo.List(ctx, filter)
}

func (s *yardService) Delete(ctx context.Context, id uint) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *yardService) ListLocations(ctx context.Context) ([]models.Location, error) {
	return s.repo.ListLocations(ctx)
}
