package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rohingrover/absuma/internal/cache"
	"github.com/rohingrover/absuma/internal/models"
	"github.com/rohingrover/absuma/internal/repository"
)

const (
	ratesCacheTTL    = 5 * time.Minute
	ratesCachePrefix = "client:rates:"
)

// ClientInput is the create/update payload for a client
type ClientInput struct {
	ClientName    string `json:"client_name" validate:"required"`
	ClientCode    string `json:"client_code" validate:"required"`
	Status        string `json:"status"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address"`
	GSTNumber     string `json:"gst_number"`
}

// ClientRateInput is the payload for adding a lane rate to a client
type ClientRateInput struct {
	FromLocation  string           `json:"from_location" validate:"required"`
	ToLocation    string           `json:"to_location" validate:"required"`
	ContainerSize string           `json:"container_size"`
	Rate          *decimal.Decimal `json:"rate" validate:"required"`
	EffectiveFrom string           `json:"effective_from"`
}

// ClientRatesResponse is the payload of the rates lookup endpoint
type ClientRatesResponse struct {
	Success bool                `json:"success"`
	Client  *models.Client      `json:"client"`
	Rates   []models.ClientRate `json:"rates"`
}

// ClientService defines client business operations
type ClientService interface {
	Create(ctx context.Context, in *ClientInput) (*models.Client, error)
	Update(ctx context.Context, id uint, in *ClientInput) (*models.Client, error)
	Get(ctx context.Context, id uint) (*models.Client, error)
	List(ctx context.Context, filter repository.ClientFilter) ([]models.Client, int64, error)
	Delete(ctx context.Context, id uint) error
	Rates(ctx context.Context, clientID uint) (*ClientRatesResponse, error)
	AddRate(ctx context.Context, clientID uint, in *ClientRateInput) (*models.ClientRate, error)
	AddContact(ctx context.Context, clientID uint, contact *models.ClientContact) error
}

type clientService struct {
	repo  repository.ClientRepository
	cache cache.Client
	log   *logrus.Logger
}

// NewClientService creates a new client service
func NewClientService(repo repository.ClientRepository, cacheClient cache.Client, log *logrus.Logger) ClientService {
	return &clientService{repo: repo, cache: cacheClient, log: log}
}

func validateClientInput(in *ClientInput) []string {
	errs := structErrors(in)
	if in.Status != "" {
		switch models.ClientStatus(in.Status) {
		case models.ClientStatusActive, models.ClientStatusInactive, models.ClientStatusSuspended:
		default:
			errs = append(errs, "status must be one of active, inactive, suspended")
		}
	}
	return errs
}

func (s *clientService) checkCodeUnique(ctx context.Context, code string, excludeID uint) error {
	other, err := s.repo.FindByCode(ctx, code, excludeID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if other != nil {
		return NewConflictError("client code %s is already used by %s", code, other.ClientName)
	}
	return nil
}

func (s *clientService) Create(ctx context.Context, in *ClientInput) (*models.Client, error) {
	if errs := validateClientInput(in); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}
	if err := s.checkCodeUnique(ctx, in.ClientCode, 0); err != nil {
		return nil, err
	}

	client := &models.Client{
		ClientName:    in.ClientName,
		ClientCode:    in.ClientCode,
		Status:        models.ClientStatusActive,
		ContactPerson: in.ContactPerson,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		GSTNumber:     in.GSTNumber,
	}
	if in.Status != "" {
		client.Status = models.ClientStatus(in.Status)
	}

	if err := s.repo.Create(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, NewConflictError("client code %s is already in use", in.ClientCode)
		}
		return nil, err
	}
	return client, nil
}

func (s *clientService) Update(ctx context.Context, id uint, in *ClientInput) (*models.Client, error) {
	if errs := validateClientInput(in); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCodeUnique(ctx, in.ClientCode, id); err != nil {
		return nil, err
	}

	client.ClientName = in.ClientName
	client.ClientCode = in.ClientCode
	if in.Status != "" {
		client.Status = models.ClientStatus(in.Status)
	}
	client.ContactPerson = in.ContactPerson
	client.Phone = in.Phone
	client.Email = in.Email
	client.Address = in.Address
	client.GSTNumber = in.GSTNumber
	client.Rates = nil
	client.Documents = nil
	client.Contacts = nil

	if err := s.repo.Update(ctx, client); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, NewConflictError("client code %s is already in use", in.ClientCode)
		}
		return nil, err
	}

	s.invalidateRates(ctx, id)
	return client, nil
}

func (s *clientService) Get(ctx context.Context, id uint) (*models.Client, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *clientService) List(ctx context.Context, filter repository.ClientFilter) ([]models.Client, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.repo.List(ctx, filter)
}

// Delete soft-deletes the client and cascades to its children in one
// transaction: rates and documents are soft-deleted, contacts are removed
// outright.
func (s *clientService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		return err
	}
	s.invalidateRates(ctx, id)
	return nil
}

// Rates returns the client with its lane rates, cached briefly for the
// trip-entry lookups that hit this endpoint on every keystroke.
func (s *clientService) Rates(ctx context.Context, clientID uint) (*ClientRatesResponse, error) {
	cacheKey := fmt.Sprintf("%s%d", ratesCachePrefix, clientID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var resp ClientRatesResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		} else if err != cache.Nil {
			s.log.WithError(err).Warn("Failed to read rates cache")
		}
	}

	client, err := s.repo.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	rates, err := s.repo.ListRates(ctx, clientID)
	if err != nil {
		return nil, err
	}

	client.Rates = nil
	client.Documents = nil
	client.Contacts = nil
	resp := &ClientRatesResponse{Success: true, Client: client, Rates: rates}

	if s.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(payload), ratesCacheTTL); err != nil {
				s.log.WithError(err).Warn("Failed to cache client rates")
			}
		}
	}
	return resp, nil
}

func (s *clientService) AddRate(ctx context.Context, clientID uint, in *ClientRateInput) (*models.ClientRate, error) {
	errs := structErrors(in)
	requirePositive("rate", in.Rate, &errs)
	effectiveFrom := parseDate("effective_from", in.EffectiveFrom, &errs)
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	if _, err := s.repo.FindByID(ctx, clientID); err != nil {
		return nil, err
	}

	rate := &models.ClientRate{
		ClientID:      clientID,
		FromLocation:  in.FromLocation,
		ToLocation:    in.ToLocation,
		ContainerSize: in.ContainerSize,
		Rate:          *in.Rate,
		EffectiveFrom: effectiveFrom,
	}
	if err := s.repo.CreateRate(ctx, rate); err != nil {
		return nil, err
	}

	s.invalidateRates(ctx, clientID)
	return rate, nil
}

func (s *clientService) AddContact(ctx context.Context, clientID uint, contact *models.ClientContact) error {
	if contact.Name == "" {
		return NewValidationError([]string{"name is required"})
	}
	if _, err := s.repo.FindByID(ctx, clientID); err != nil {
		return err
	}
	contact.ClientID = clientID
	return s.repo.CreateContact(ctx, contact)
}

func (s *clientService) invalidateRates(ctx context.Context, clientID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, fmt.Sprintf("%s%d", ratesCachePrefix, clientID)); err != nil {
		s.log.WithError(err).Warn("Failed to invalidate rates cache")
	}
}
