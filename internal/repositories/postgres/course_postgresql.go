package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &CoursePostgreSQL{db: db, helpers: NewSharedHelpers(db)}
}

func (r *CoursePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *CoursePostgreSQL) Create(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	if err := r.getDB(tx).WithContext(ctx).Omit(clause.Associations).Create(course).Error; err != nil {
		return handleDBError(err, "create course")
	}
	return nil
}

func (r *CoursePostgreSQL) Update(ctx context.Context, tx *gorm.DB, course *models.Course) error {
	if err := r.getDB(tx).WithContext(ctx).Omit(clause.Associations).Save(course).Error; err != nil {
		return handleDBError(err, "update course")
	}
	return nil
}

func (r *CoursePostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	result := r.getDB(tx).WithContext(ctx).Where("id = ?", id).Delete(&models.Course{})
	if result.Error != nil {
		return handleDBError(result.Error, "delete course")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete course")
	}
	return nil
}

func (r *CoursePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Course, error) {
	var course models.Course
	if err := r.getDB(tx).WithContext(ctx).Preload("Category").Where("id = ?", id).First(&course).Error; err != nil {
		return nil, handleDBError(err, "get course by id")
	}
	return &course, nil
}

func (r *CoursePostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.CourseFilters) ([]*models.Course, error) {
	var courses []*models.Course

	query := r.getDB(tx).WithContext(ctx).Model(&models.Course{}).Preload("Category")
	query = r.helpers.ApplyContains(query, "title", filters.Title)
	query = r.helpers.ApplyActiveFilter(query, filters.IsActive)
	if filters.CategoryID != nil {
		query = query.Where("course_category_id = ?", *filters.CategoryID)
	}
	if filters.AgeRange != nil {
		query = query.Where("age_range = ?", *filters.AgeRange)
	}

	if err := query.Order("created_at ASC").Find(&courses).Error; err != nil {
		return nil, handleDBError(err, "list courses")
	}
	return courses, nil
}
