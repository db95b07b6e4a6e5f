package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
)

type CategoryPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewCategoryPostgreSQL(db *gorm.DB) repositories.CategoryRepository {
	return &CategoryPostgreSQL{db: db, helpers: NewSharedHelpers(db)}
}

func (r *CategoryPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *CategoryPostgreSQL) Create(ctx context.Context, tx *gorm.DB, category *models.CourseCategory) error {
	if err := r.getDB(tx).WithContext(ctx).Create(category).Error; err != nil {
		return handleDBError(err, "create category")
	}
	return nil
}

func (r *CategoryPostgreSQL) Update(ctx context.Context, tx *gorm.DB, category *models.CourseCategory) error {
	if err := r.getDB(tx).WithContext(ctx).Omit(clause.Associations).Save(category).Error; err != nil {
		return handleDBError(err, "update category")
	}
	return nil
}

// Delete refuses categories still referenced by a course or an event.
func (r *CategoryPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	courses, err := r.helpers.Count(ctx, tx, &models.Course{}, "course_category_id = ?", id)
	if err != nil {
		return handleDBError(err, "count category courses")
	}
	events, err := r.helpers.Count(ctx, tx, &models.Event{}, "category_id = ?", id)
	if err != nil {
		return handleDBError(err, "count category events")
	}
	if courses+events > 0 {
		return handleDBError(gorm.ErrForeignKeyViolated, "delete category")
	}

	result := r.getDB(tx).WithContext(ctx).Where("id = ?", id).Delete(&models.CourseCategory{})
	if result.Error != nil {
		return handleDBError(result.Error, "delete category")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete category")
	}
	return nil
}

func (r *CategoryPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.CourseCategory, error) {
	var category models.CourseCategory
	if err := r.getDB(tx).WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, handleDBError(err, "get category by id")
	}
	return &category, nil
}

func (r *CategoryPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.CategoryFilters) ([]*models.CourseCategory, error) {
	var categories []*models.CourseCategory
	query := r.helpers.ApplyActiveFilter(r.getDB(tx).WithContext(ctx), filters.IsActive)
	if err := query.Order("created_at ASC").Find(&categories).Error; err != nil {
		return nil, handleDBError(err, "list categories")
	}
	return categories, nil
}

func (r *CategoryPostgreSQL) NameExists(ctx context.Context, tx *gorm.DB, name, excludeID string) (bool, error) {
	condition := "LOWER(name) = ?"
	args := []interface{}{strings.ToLower(strings.TrimSpace(name))}
	if excludeID != "" {
		condition += " AND id <> ?"
		args = append(args, excludeID)
	}

	count, err := r.helpers.Count(ctx, tx, &models.CourseCategory{}, condition, args...)
	if err != nil {
		return false, handleDBError(err, "check category name")
	}
	return count > 0, nil
}
