package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/cache"
	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/validator"
)

const bannersCacheKind = "banners"

var bannerRequiredFields = []string{"title", "mediaUrl", "mediaType"}

type bannerService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	cache     *cache.CacheManager
}

func NewBannerService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, cm *cache.CacheManager) BannerService {
	return &bannerService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		cache:     cm,
	}
}

func (s *bannerService) Create(ctx context.Context, req *validator.BannerRequest, actor *Actor) (*models.Banner, error) {
	if err := validateRequest(s.validator, req, bannerRequiredFields); err != nil {
		return nil, err
	}

	banner := &models.Banner{Audit: models.Audit{CreatedBy: actor.AuditID(), UpdatedBy: actor.AuditID()}}
	applyBanner(banner, req)

	if err := s.repo.Banner().Create(ctx, s.db, banner); err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}

	cache.InvalidateCatalog(ctx, s.cache, bannersCacheKind)
	s.logger.Info("Banner created", "id", banner.ID, "order", banner.Order)
	return banner, nil
}

// List serves banners in display order from the catalogue cache.
func (s *bannerService) List(ctx context.Context) ([]*models.Banner, error) {
	var banners []*models.Banner
	err := s.cache.Catalog.CacheOrExecute(ctx, bannersCacheKind+":all", &banners, cache.CatalogCacheConfig.TTL, func() (interface{}, error) {
		return s.repo.Banner().List(ctx, s.db)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	return banners, nil
}

func (s *bannerService) GetByID(ctx context.Context, id string) (*models.Banner, error) {
	banner, err := s.repo.Banner().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrBannerNotFound
		}
		return nil, fmt.Errorf("failed to get banner: %w", err)
	}
	return banner, nil
}

func (s *bannerService) Update(ctx context.Context, id string, req *validator.BannerRequest, actor *Actor) (*models.Banner, error) {
	banner, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(s.validator, req, bannerRequiredFields); err != nil {
		return nil, err
	}

	applyBanner(banner, req)
	banner.UpdatedBy = actor.AuditID()

	if err := s.repo.Banner().Update(ctx, s.db, banner); err != nil {
		return nil, fmt.Errorf("failed to update banner: %w", err)
	}

	cache.InvalidateCatalog(ctx, s.cache, bannersCacheKind)
	s.logger.Info("Banner updated", "id", id)
	return banner, nil
}

func (s *bannerService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Banner().Delete(ctx, s.db, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrBannerNotFound
		}
		return fmt.Errorf("failed to delete banner: %w", err)
	}

	cache.InvalidateCatalog(ctx, s.cache, bannersCacheKind)
	s.logger.Info("Banner deleted", "id", id)
	return nil
}

func applyBanner(banner *models.Banner, req *validator.BannerRequest) {
	banner.Title = strings.TrimSpace(req.Title)
	banner.Subtitle = req.Subtitle
	banner.MediaURL = req.MediaURL
	banner.MediaType = req.MediaType
	banner.Button1Text = req.Button1Text
	banner.Button1Link = req.Button1Link
	banner.Button2Text = req.Button2Text
	banner.Button2Link = req.Button2Link
	if req.Order != nil {
		banner.Order = *req.Order
	}
}
