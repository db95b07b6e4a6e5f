package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/events"
	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/validator"
)

const defaultCountry = "Australia"

var locationRequiredFields = []string{"name", "addressLine1", "suburb", "city", "state", "postcode"}

type locationService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewLocationService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) LocationService {
	return &locationService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *locationService) Create(ctx context.Context, req *validator.LocationRequest, actor *Actor) (*models.Location, error) {
	if err := validateRequest(s.validator, req, locationRequiredFields); err != nil {
		return nil, err
	}
	rooms, err := s.rooms(req.Rooms)
	if err != nil {
		return nil, err
	}

	location := &models.Location{
		Name:         strings.TrimSpace(req.Name),
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		Suburb:       req.Suburb,
		City:         req.City,
		State:        req.State,
		Country:      defaultCountry,
		Postcode:     req.Postcode,
		Rooms:        rooms,
		IsActive:     boolOr(req.IsActive, true),
		Audit:        models.Audit{CreatedBy: actor.AuditID(), UpdatedBy: actor.AuditID()},
	}
	if req.Country != nil && strings.TrimSpace(*req.Country) != "" {
		location.Country = strings.TrimSpace(*req.Country)
	}
	if req.Notes != nil {
		location.Notes = *req.Notes
	}

	if err := s.repo.Location().Create(ctx, s.db, location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	s.logger.Info("Location created", "id", location.ID, "rooms", len(location.Rooms))
	return location, nil
}

func (s *locationService) List(ctx context.Context, filters repositories.LocationFilters) ([]*models.Location, error) {
	locations, err := s.repo.Location().List(ctx, s.db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

// GetByID returns the location with its events in start-date order.
func (s *locationService) GetByID(ctx context.Context, id string) (*models.Location, error) {
	location, err := s.repo.Location().GetByIDWithEvents(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return location, nil
}

// Update is partial: empty strings and nil values leave fields unchanged.
func (s *locationService) Update(ctx context.Context, id string, req *validator.LocationRequest, actor *Actor) (*models.Location, error) {
	location, err := s.repo.Location().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if req.Rooms != nil {
		rooms, err := s.rooms(req.Rooms)
		if err != nil {
			return nil, err
		}
		location.Rooms = rooms
	}

	setIfPresent(&location.Name, strings.TrimSpace(req.Name))
	setIfPresent(&location.AddressLine1, req.AddressLine1)
	setIfPresent(&location.Suburb, req.Suburb)
	setIfPresent(&location.City, req.City)
	setIfPresent(&location.State, req.State)
	setIfPresent(&location.Postcode, req.Postcode)
	if req.AddressLine2 != nil {
		location.AddressLine2 = req.AddressLine2
	}
	if req.Country != nil {
		setIfPresent(&location.Country, strings.TrimSpace(*req.Country))
	}
	if req.Notes != nil {
		location.Notes = *req.Notes
	}
	if location.IsActive && req.IsActive != nil && !*req.IsActive {
		active, err := s.repo.Event().CountActiveByLocation(ctx, s.db, id)
		if err != nil {
			return nil, fmt.Errorf("failed to count active events: %w", err)
		}
		if active > 0 {
			return nil, ErrLocationHasEvents
		}
	}
	location.IsActive = boolOr(req.IsActive, location.IsActive)
	location.UpdatedBy = actor.AuditID()

	if err := s.repo.Location().Update(ctx, s.db, location); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	s.logger.Info("Location updated", "id", id)
	return location, nil
}

// Deactivate is refused while any active event still uses the location.
func (s *locationService) Deactivate(ctx context.Context, id string, actor *Actor) (*models.Location, error) {
	var location *models.Location
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		location, err = s.repo.Location().GetByID(ctx, tx, id)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrLocationNotFound
			}
			return fmt.Errorf("failed to get location: %w", err)
		}

		active, err := s.repo.Event().CountActiveByLocation(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to count active events: %w", err)
		}
		if active > 0 {
			return ErrLocationHasEvents
		}

		location.IsActive = false
		location.UpdatedBy = actor.AuditID()
		return s.repo.Location().Update(ctx, tx, location)
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, events.NewEvent(events.LocationDeactivated, "location-service", events.LocationDeactivatedData{
		LocationID: id,
		ActorID:    actor.AuditID(),
	}))
	s.logger.Info("Location deactivated", "id", id)
	return location, nil
}

func (s *locationService) rooms(value interface{}) (datatypes.JSONSlice[string], error) {
	if value == nil {
		return datatypes.JSONSlice[string]{}, nil
	}
	rooms, errs := s.validator.GetBusinessValidator().ValidateRooms(value)
	if len(errs) > 0 {
		return nil, errs
	}
	return datatypes.JSONSlice[string](rooms), nil
}

func setIfPresent(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
