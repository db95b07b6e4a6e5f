package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/cache"
	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/validator"
)

const categoriesCacheKind = "categories"

type categoryService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	cache     *cache.CacheManager
}

func NewCategoryService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, cm *cache.CacheManager) CategoryService {
	return &categoryService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		cache:     cm,
	}
}

func (s *categoryService) Create(ctx context.Context, req *validator.CategoryRequest, actor *Actor) (*models.CourseCategory, error) {
	if err := validateRequest(s.validator, req, []string{"name"}); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)

	if err := s.ensureUniqueName(ctx, name, ""); err != nil {
		return nil, err
	}

	category := &models.CourseCategory{
		Name:        name,
		Description: req.Description,
		IsActive:    boolOr(req.IsActive, true),
		Audit:       models.Audit{CreatedBy: actor.AuditID(), UpdatedBy: actor.AuditID()},
	}
	if err := s.repo.Category().Create(ctx, s.db, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	cache.InvalidateCatalog(ctx, s.cache, categoriesCacheKind)
	s.logger.Info("Category created", "id", category.ID, "name", category.Name)
	return category, nil
}

func (s *categoryService) List(ctx context.Context, filters repositories.CategoryFilters) ([]*models.CourseCategory, error) {
	key := categoriesCacheKind + ":all"
	if filters.IsActive != nil {
		key = categoriesCacheKind + ":active=" + strconv.FormatBool(*filters.IsActive)
	}

	var categories []*models.CourseCategory
	err := s.cache.Catalog.CacheOrExecute(ctx, key, &categories, cache.CatalogCacheConfig.TTL, func() (interface{}, error) {
		return s.repo.Category().List(ctx, s.db, filters)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) GetByID(ctx context.Context, id string) (*models.CourseCategory, error) {
	category, err := s.repo.Category().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id string, req *validator.CategoryRequest, actor *Actor) (*models.CourseCategory, error) {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(s.validator, req, []string{"name"}); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)

	if err := s.ensureUniqueName(ctx, name, id); err != nil {
		return nil, err
	}

	category.Name = name
	if req.Description != nil {
		category.Description = req.Description
	}
	category.IsActive = boolOr(req.IsActive, category.IsActive)
	category.UpdatedBy = actor.AuditID()

	if err := s.repo.Category().Update(ctx, s.db, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	cache.InvalidateCatalog(ctx, s.cache, categoriesCacheKind)
	s.logger.Info("Category updated", "id", id)
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Category().Delete(ctx, s.db, id); err != nil {
		switch {
		case repositories.IsNotFoundError(err):
			return ErrCategoryNotFound
		case repositories.IsInUseError(err):
			return ErrCategoryInUse
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	cache.InvalidateCatalog(ctx, s.cache, categoriesCacheKind)
	s.logger.Info("Category deleted", "id", id)
	return nil
}

func (s *categoryService) ensureUniqueName(ctx context.Context, name, excludeID string) error {
	exists, err := s.repo.Category().NameExists(ctx, s.db, name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return ErrCategoryNameExists
	}
	return nil
}
