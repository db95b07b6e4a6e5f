package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
)

type BannerPostgreSQL struct {
	db *gorm.DB
}

func NewBannerPostgreSQL(db *gorm.DB) repositories.BannerRepository {
	return &BannerPostgreSQL{db: db}
}

func (r *BannerPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *BannerPostgreSQL) Create(ctx context.Context, tx *gorm.DB, banner *models.Banner) error {
	if err := r.getDB(tx).WithContext(ctx).Create(banner).Error; err != nil {
		return handleDBError(err, "create banner")
	}
	return nil
}

func (r *BannerPostgreSQL) Update(ctx context.Context, tx *gorm.DB, banner *models.Banner) error {
	if err := r.getDB(tx).WithContext(ctx).Save(banner).Error; err != nil {
		return handleDBError(err, "update banner")
	}
	return nil
}

func (r *BannerPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	result := r.getDB(tx).WithContext(ctx).Where("id = ?", id).Delete(&models.Banner{})
	if result.Error != nil {
		return handleDBError(result.Error, "delete banner")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete banner")
	}
	return nil
}

func (r *BannerPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Banner, error) {
	var banner models.Banner
	if err := r.getDB(tx).WithContext(ctx).Where("id = ?", id).First(&banner).Error; err != nil {
		return nil, handleDBError(err, "get banner by id")
	}
	return &banner, nil
}

func (r *BannerPostgreSQL) List(ctx context.Context, tx *gorm.DB) ([]*models.Banner, error) {
	var banners []*models.Banner
	if err := r.getDB(tx).WithContext(ctx).Order("display_order ASC").Order("created_at ASC").Find(&banners).Error; err != nil {
		return nil, handleDBError(err, "list banners")
	}
	return banners, nil
}

type TestimonialPostgreSQL struct {
	db *gorm.DB
}

func NewTestimonialPostgreSQL(db *gorm.DB) repositories.TestimonialRepository {
	return &TestimonialPostgreSQL{db: db}
}

func (r *TestimonialPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *TestimonialPostgreSQL) List(ctx context.Context, tx *gorm.DB) ([]*models.Testimonial, error) {
	var reviews []*models.Testimonial
	if err := r.getDB(tx).WithContext(ctx).Order("published_at DESC").Find(&reviews).Error; err != nil {
		return nil, handleDBError(err, "list testimonials")
	}
	return reviews, nil
}

func (r *TestimonialPostgreSQL) ReplaceAll(ctx context.Context, tx *gorm.DB, reviews []*models.Testimonial) error {
	db := r.getDB(tx).WithContext(ctx)
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Testimonial{}).Error; err != nil {
		return handleDBError(err, "clear testimonials")
	}
	if len(reviews) == 0 {
		return nil
	}
	if err := db.CreateInBatches(reviews, 100).Error; err != nil {
		return handleDBError(err, "insert testimonials")
	}
	return nil
}
