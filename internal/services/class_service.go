package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/utils"
	"github.com/aps-academy/admin-service/internal/validator"
)

var classRequiredFields = []string{
	"courseId", "termId", "locationId", "tutorId", "day",
	"startDate", "endDate", "startTime", "endTime", "room", "availableSeats",
}

type classService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewClassService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) ClassService {
	return &classService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *classService) Create(ctx context.Context, req *validator.ClassRequest, actor *Actor) (*models.Class, error) {
	class := &models.Class{
		IsActive: true,
		Audit:    models.Audit{CreatedBy: actor.AuditID(), UpdatedBy: actor.AuditID()},
	}
	if err := s.prepare(ctx, class, req); err != nil {
		return nil, err
	}

	if err := s.repo.Class().Create(ctx, s.db, class); err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}

	s.logger.Info("Class created", "id", class.ID, "course_id", class.CourseID, "location_id", class.LocationID)
	return class, nil
}

func (s *classService) List(ctx context.Context, filters repositories.ClassFilters) ([]*models.Class, error) {
	classes, err := s.repo.Class().List(ctx, s.db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return classes, nil
}

func (s *classService) GetByID(ctx context.Context, id string) (*models.Class, error) {
	class, err := s.repo.Class().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("failed to get class: %w", err)
	}
	return class, nil
}

func (s *classService) Update(ctx context.Context, id string, req *validator.ClassRequest, actor *Actor) (*models.Class, error) {
	class, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.prepare(ctx, class, req); err != nil {
		return nil, err
	}
	class.Course, class.Location = nil, nil
	class.UpdatedBy = actor.AuditID()

	if err := s.repo.Class().Update(ctx, s.db, class); err != nil {
		return nil, fmt.Errorf("failed to update class: %w", err)
	}

	s.logger.Info("Class updated", "id", id)
	return class, nil
}

func (s *classService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Class().Delete(ctx, s.db, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrClassNotFound
		}
		return fmt.Errorf("failed to delete class: %w", err)
	}
	s.logger.Info("Class deleted", "id", id)
	return nil
}

// prepare validates req against the referenced course and location and
// copies it onto class.
func (s *classService) prepare(ctx context.Context, class *models.Class, req *validator.ClassRequest) error {
	if err := validateRequest(s.validator, req, classRequiredFields); err != nil {
		return err
	}

	schedule, err := parseSchedule(req.StartDate, req.EndDate, req.StartTime, req.EndTime)
	if err != nil {
		return err
	}
	if errs := s.validator.GetBusinessValidator().ValidateSchedule(schedule.startDate, schedule.endDate); len(errs) > 0 {
		return errs
	}

	if _, err := s.repo.Course().GetByID(ctx, s.db, req.CourseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to get course: %w", err)
	}

	location, err := s.repo.Location().GetByID(ctx, s.db, req.LocationID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrLocationNotFound
		}
		return fmt.Errorf("failed to get location: %w", err)
	}
	room := strings.TrimSpace(req.Room)
	if !location.HasRoom(room) {
		return roomNotFound(room, false)
	}

	class.CourseID = req.CourseID
	class.TermID = req.TermID
	class.LocationID = req.LocationID
	class.TutorID = req.TutorID
	class.Day = strings.TrimSpace(req.Day)
	class.StartDate = datatypes.Date(schedule.startDate)
	class.EndDate = datatypes.Date(schedule.endDate)
	class.StartTime = schedule.startTime
	class.EndTime = schedule.endTime
	class.Room = room
	class.Notes = req.Notes
	class.AvailableSeats = *req.AvailableSeats
	class.IsActive = boolOr(req.IsActive, class.IsActive)
	return nil
}

func roomNotFound(room string, moved bool) error {
	if moved {
		return utils.BadInput("Room \"%s\" does not exist in the new location", room)
	}
	return utils.BadInput("Room \"%s\" does not exist in this location", room)
}
