package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
)

type ClassPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewClassPostgreSQL(db *gorm.DB) repositories.ClassRepository {
	return &ClassPostgreSQL{db: db, helpers: NewSharedHelpers(db)}
}

func (r *ClassPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *ClassPostgreSQL) Create(ctx context.Context, tx *gorm.DB, class *models.Class) error {
	if err := r.getDB(tx).WithContext(ctx).Omit(clause.Associations).Create(class).Error; err != nil {
		return handleDBError(err, "create class")
	}
	return nil
}

func (r *ClassPostgreSQL) Update(ctx context.Context, tx *gorm.DB, class *models.Class) error {
	if err := r.getDB(tx).WithContext(ctx).Omit(clause.Associations).Save(class).Error; err != nil {
		return handleDBError(err, "update class")
	}
	return nil
}

func (r *ClassPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	result := r.getDB(tx).WithContext(ctx).Where("id = ?", id).Delete(&models.Class{})
	if result.Error != nil {
		return handleDBError(result.Error, "delete class")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete class")
	}
	return nil
}

func (r *ClassPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Class, error) {
	var class models.Class
	err := r.getDB(tx).WithContext(ctx).
		Preload("Course").
		Preload("Location").
		Where("id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, handleDBError(err, "get class by id")
	}
	return &class, nil
}

func (r *ClassPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.ClassFilters) ([]*models.Class, error) {
	var classes []*models.Class

	query := r.getDB(tx).WithContext(ctx).Model(&models.Class{}).Preload("Course").Preload("Location")
	query = r.helpers.ApplyActiveFilter(query, filters.IsActive)
	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}
	if filters.LocationID != nil {
		query = query.Where("location_id = ?", *filters.LocationID)
	}

	if err := query.Order("created_at ASC").Find(&classes).Error; err != nil {
		return nil, handleDBError(err, "list classes")
	}
	return classes, nil
}
