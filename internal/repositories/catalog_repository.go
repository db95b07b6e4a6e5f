package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/models"
)

type CategoryRepository interface {
	Create(ctx context.Context, tx *gorm.DB, category *models.CourseCategory) error
	Update(ctx context.Context, tx *gorm.DB, category *models.CourseCategory) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.CourseCategory, error)
	List(ctx context.Context, tx *gorm.DB, filters CategoryFilters) ([]*models.CourseCategory, error)
	// NameExists compares names case-insensitively.
	NameExists(ctx context.Context, tx *gorm.DB, name, excludeID string) (bool, error)
}

type CourseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, course *models.Course) error
	Update(ctx context.Context, tx *gorm.DB, course *models.Course) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Course, error)
	List(ctx context.Context, tx *gorm.DB, filters CourseFilters) ([]*models.Course, error)
}

type ClassRepository interface {
	Create(ctx context.Context, tx *gorm.DB, class *models.Class) error
	Update(ctx context.Context, tx *gorm.DB, class *models.Class) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Class, error)
	List(ctx context.Context, tx *gorm.DB, filters ClassFilters) ([]*models.Class, error)
}

type LocationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, location *models.Location) error
	Update(ctx context.Context, tx *gorm.DB, location *models.Location) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Location, error)
	// GetByIDWithEvents loads the location's events ordered by start date.
	GetByIDWithEvents(ctx context.Context, tx *gorm.DB, id string) (*models.Location, error)
	List(ctx context.Context, tx *gorm.DB, filters LocationFilters) ([]*models.Location, error)
}

type EventRepository interface {
	Create(ctx context.Context, tx *gorm.DB, event *models.Event) error
	Update(ctx context.Context, tx *gorm.DB, event *models.Event) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Event, error)
	List(ctx context.Context, tx *gorm.DB, filters EventFilters) ([]*models.Event, error)
	CountActiveByLocation(ctx context.Context, tx *gorm.DB, locationID string) (int64, error)
}
