package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/events"
	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/utils"
	"github.com/aps-academy/admin-service/internal/validator"
)

var eventRequiredFields = []string{
	"locationId", "categoryId", "title", "mediaUrl", "mediaType",
	"startDate", "endDate", "startTime", "endTime", "room", "availableSeats", "fees",
}

type eventService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewEventService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) EventService {
	return &eventService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *eventService) Create(ctx context.Context, req *validator.EventRequest, actor *Actor) (*models.Event, error) {
	if err := validateRequest(s.validator, req, eventRequiredFields); err != nil {
		return nil, err
	}
	bv := s.validator.GetBusinessValidator()
	if errs := bv.ValidateCapacity(req.AvailableSeats, req.Fees); len(errs) > 0 {
		return nil, errs
	}

	schedule, err := parseSchedule(req.StartDate, req.EndDate, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if errs := bv.ValidateSchedule(schedule.startDate, schedule.endDate); len(errs) > 0 {
		return nil, errs
	}

	location, err := s.activeLocation(ctx, req.LocationID, ErrLocationNotFound, ErrLocationInactive)
	if err != nil {
		return nil, err
	}
	if _, err := s.activeCategory(ctx, req.CategoryID, ErrCategoryNotFound, ErrCategoryInactive); err != nil {
		return nil, err
	}
	room := strings.TrimSpace(req.Room)
	if !location.HasRoom(room) {
		return nil, roomNotFound(room, false)
	}

	timezone := models.DefaultEventTimezone
	if req.Timezone != nil && *req.Timezone != "" {
		timezone = *req.Timezone
	}

	event := &models.Event{
		LocationID:     req.LocationID,
		CategoryID:     req.CategoryID,
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		MediaURL:       req.MediaURL,
		MediaType:      req.MediaType,
		CanEnroll:      boolOr(req.CanEnroll, false),
		StartDate:      datatypes.Date(schedule.startDate),
		EndDate:        datatypes.Date(schedule.endDate),
		StartTime:      schedule.startTime,
		EndTime:        schedule.endTime,
		Timezone:       timezone,
		Room:           room,
		Notes:          req.Notes,
		AvailableSeats: *req.AvailableSeats,
		Fees:           *req.Fees,
		IsActive:       boolOr(req.IsActive, true),
		Audit:          models.Audit{CreatedBy: actor.AuditID(), UpdatedBy: actor.AuditID()},
	}
	if err := s.repo.Event().Create(ctx, s.db, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	publish(ctx, s.publisher, s.logger, events.NewEvent(events.EventCreated, "event-service", events.EventCreatedData{
		EventID:    event.ID,
		LocationID: event.LocationID,
		CategoryID: event.CategoryID,
		Title:      event.Title,
	}))
	s.logger.Info("Event created", "id", event.ID, "location_id", event.LocationID)

	return s.GetByID(ctx, event.ID)
}

func (s *eventService) List(ctx context.Context, filters repositories.EventFilters) ([]*models.Event, error) {
	list, err := s.repo.Event().List(ctx, s.db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return list, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.Event().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// Update applies a partial change, re-checking references, the room, the
// date range and capacity against the merged result.
func (s *eventService) Update(ctx context.Context, id string, req *validator.EventUpdateRequest, actor *Actor) (*models.Event, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	bv := s.validator.GetBusinessValidator()
	if errs := bv.ValidateCapacity(req.AvailableSeats, req.Fees); len(errs) > 0 {
		return nil, errs
	}

	if req.CategoryID != nil && *req.CategoryID != event.CategoryID {
		if _, err := s.activeCategory(ctx, *req.CategoryID, ErrNewCategoryNotFound, ErrNewCategoryInactive); err != nil {
			return nil, err
		}
		event.CategoryID = *req.CategoryID
	}

	room := event.Room
	if req.Room != nil {
		room = strings.TrimSpace(*req.Room)
	}
	switch {
	case req.LocationID != nil && *req.LocationID != event.LocationID:
		location, err := s.activeLocation(ctx, *req.LocationID, ErrNewLocationNotFound, ErrNewLocationInactive)
		if err != nil {
			return nil, err
		}
		if !location.HasRoom(room) {
			return nil, roomNotFound(room, true)
		}
		event.LocationID = location.ID
	case room != event.Room:
		if event.Location == nil || !event.Location.HasRoom(room) {
			return nil, roomNotFound(room, false)
		}
	}
	event.Room = room

	if err := applyEventSchedule(event, req); err != nil {
		return nil, err
	}
	if errs := bv.ValidateSchedule(time.Time(event.StartDate), time.Time(event.EndDate)); len(errs) > 0 {
		return nil, errs
	}

	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.MediaURL != nil {
		event.MediaURL = *req.MediaURL
	}
	if req.MediaType != nil {
		event.MediaType = *req.MediaType
	}
	if req.Timezone != nil && *req.Timezone != "" {
		event.Timezone = *req.Timezone
	}
	if req.Notes != nil {
		event.Notes = req.Notes
	}
	if req.AvailableSeats != nil {
		event.AvailableSeats = *req.AvailableSeats
	}
	if req.Fees != nil {
		event.Fees = *req.Fees
	}
	event.CanEnroll = boolOr(req.CanEnroll, event.CanEnroll)
	event.IsActive = boolOr(req.IsActive, event.IsActive)
	event.UpdatedBy = actor.AuditID()
	event.Location, event.Category = nil, nil

	if err := s.repo.Event().Update(ctx, s.db, event); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	s.logger.Info("Event updated", "id", id)
	return s.GetByID(ctx, id)
}

func (s *eventService) Deactivate(ctx context.Context, id string, actor *Actor) (*models.Event, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	event.IsActive = false
	event.UpdatedBy = actor.AuditID()
	event.Location, event.Category = nil, nil
	if err := s.repo.Event().Update(ctx, s.db, event); err != nil {
		return nil, fmt.Errorf("failed to deactivate event: %w", err)
	}

	s.logger.Info("Event deactivated", "id", id)
	return event, nil
}

func (s *eventService) activeLocation(ctx context.Context, id string, notFound, inactive error) (*models.Location, error) {
	location, err := s.repo.Location().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	if !location.IsActive {
		return nil, inactive
	}
	return location, nil
}

func (s *eventService) activeCategory(ctx context.Context, id string, notFound, inactive error) (*models.CourseCategory, error) {
	category, err := s.repo.Category().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if !category.IsActive {
		return nil, inactive
	}
	return category, nil
}

func applyEventSchedule(event *models.Event, req *validator.EventUpdateRequest) error {
	if req.StartDate != nil {
		d, err := utils.ParseDate(*req.StartDate, "startDate")
		if err != nil {
			return err
		}
		event.StartDate = datatypes.Date(d)
	}
	if req.EndDate != nil {
		d, err := utils.ParseDate(*req.EndDate, "endDate")
		if err != nil {
			return err
		}
		event.EndDate = datatypes.Date(d)
	}
	if req.StartTime != nil {
		t, err := utils.ParseTime(*req.StartTime, "startTime")
		if err != nil {
			return err
		}
		event.StartTime = datatypes.Time(t)
	}
	if req.EndTime != nil {
		t, err := utils.ParseTime(*req.EndTime, "endTime")
		if err != nil {
			return err
		}
		event.EndTime = datatypes.Time(t)
	}
	return nil
}

// schedule is a parsed date range with daily start and end times
type schedule struct {
	startDate time.Time
	endDate   time.Time
	startTime datatypes.Time
	endTime   datatypes.Time
}

func parseSchedule(startDate, endDate, startTime, endTime string) (*schedule, error) {
	start, err := utils.ParseDate(startDate, "startDate")
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseDate(endDate, "endDate")
	if err != nil {
		return nil, err
	}
	from, err := utils.ParseTime(startTime, "startTime")
	if err != nil {
		return nil, err
	}
	to, err := utils.ParseTime(endTime, "endTime")
	if err != nil {
		return nil, err
	}
	return &schedule{
		startDate: start,
		endDate:   end,
		startTime: datatypes.Time(from),
		endTime:   datatypes.Time(to),
	}, nil
}
