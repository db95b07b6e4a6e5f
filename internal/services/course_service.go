package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/validator"
)

var courseRequiredFields = []string{"title", "courseCategoryId", "mediaUrl", "mediaType"}

type courseService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCourseService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) CourseService {
	return &courseService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *courseService) Create(ctx context.Context, req *validator.CourseRequest, actor *Actor) (*models.Course, error) {
	if err := validateRequest(s.validator, req, courseRequiredFields); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, req.CourseCategoryID); err != nil {
		return nil, err
	}

	course := &models.Course{
		IsActive: true,
		Audit:    models.Audit{CreatedBy: actor.AuditID(), UpdatedBy: actor.AuditID()},
	}
	applyCourse(course, req)

	if err := s.repo.Course().Create(ctx, s.db, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("Course created", "id", course.ID, "category_id", course.CourseCategoryID)
	return course, nil
}

func (s *courseService) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, error) {
	courses, err := s.repo.Course().List(ctx, s.db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (s *courseService) GetByID(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

func (s *courseService) Update(ctx context.Context, id string, req *validator.CourseRequest, actor *Actor) (*models.Course, error) {
	course, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(s.validator, req, courseRequiredFields); err != nil {
		return nil, err
	}
	if req.CourseCategoryID != course.CourseCategoryID {
		if err := s.ensureCategory(ctx, req.CourseCategoryID); err != nil {
			return nil, err
		}
	}

	applyCourse(course, req)
	course.Category = nil
	course.UpdatedBy = actor.AuditID()

	if err := s.repo.Course().Update(ctx, s.db, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	s.logger.Info("Course updated", "id", id)
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Course().Delete(ctx, s.db, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to delete course: %w", err)
	}
	s.logger.Info("Course deleted", "id", id)
	return nil
}

func (s *courseService) ensureCategory(ctx context.Context, categoryID string) error {
	if _, err := s.repo.Category().GetByID(ctx, s.db, categoryID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to get category: %w", err)
	}
	return nil
}

func applyCourse(course *models.Course, req *validator.CourseRequest) {
	course.Title = strings.TrimSpace(req.Title)
	course.CourseCategoryID = req.CourseCategoryID
	course.AgeRange = req.AgeRange
	course.MediaURL = req.MediaURL
	course.MediaType = req.MediaType
	course.Description = req.Description
	course.IsActive = boolOr(req.IsActive, course.IsActive)
}
