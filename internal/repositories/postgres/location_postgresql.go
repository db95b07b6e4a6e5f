package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
)

type LocationPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewLocationPostgreSQL(db *gorm.DB) repositories.LocationRepository {
	return &LocationPostgreSQL{db: db, helpers: NewSharedHelpers(db)}
}

func (r *LocationPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *LocationPostgreSQL) Create(ctx context.Context, tx *gorm.DB, location *models.Location) error {
	if err := r.getDB(tx).WithContext(ctx).Omit(clause.Associations).Create(location).Error; err != nil {
		return handleDBError(err, "create location")
	}
	return nil
}

func (r *LocationPostgreSQL) Update(ctx context.Context, tx *gorm.DB, location *models.Location) error {
	if err := r.getDB(tx).WithContext(ctx).Omit(clause.Associations).Save(location).Error; err != nil {
		return handleDBError(err, "update location")
	}
	return nil
}

func (r *LocationPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Location, error) {
	var location models.Location
	if err := r.getDB(tx).WithContext(ctx).Where("id = ?", id).First(&location).Error; err != nil {
		return nil, handleDBError(err, "get location by id")
	}
	return &location, nil
}

func (r *LocationPostgreSQL) GetByIDWithEvents(ctx context.Context, tx *gorm.DB, id string) (*models.Location, error) {
	var location models.Location
	err := r.getDB(tx).WithContext(ctx).
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date ASC")
		}).
		Where("id = ?", id).
		First(&location).Error
	if err != nil {
		return nil, handleDBError(err, "get location with events")
	}
	return &location, nil
}

func (r *LocationPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.LocationFilters) ([]*models.Location, error) {
	var locations []*models.Location

	query := r.getDB(tx).WithContext(ctx).Model(&models.Location{}).
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date ASC")
		})
	query = r.helpers.ApplyActiveFilter(query, filters.IsActive)

	if err := query.Order("created_at DESC").Find(&locations).Error; err != nil {
		return nil, handleDBError(err, "list locations")
	}
	return locations, nil
}
