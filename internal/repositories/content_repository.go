package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/models"
)

type BannerRepository interface {
	Create(ctx context.Context, tx *gorm.DB, banner *models.Banner) error
	Update(ctx context.Context, tx *gorm.DB, banner *models.Banner) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Banner, error)
	List(ctx context.Context, tx *gorm.DB) ([]*models.Banner, error)
}

// TestimonialRepository holds the latest snapshot of external reviews
type TestimonialRepository interface {
	List(ctx context.Context, tx *gorm.DB) ([]*models.Testimonial, error)
	// ReplaceAll swaps the stored snapshot for reviews. Callers wrap it in a
	// transaction to keep readers from seeing an empty table.
	ReplaceAll(ctx context.Context, tx *gorm.DB, reviews []*models.Testimonial) error
}
