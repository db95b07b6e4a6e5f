package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/models"
)

// UserRepository stores accounts and the guardian/dependent links between them
type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error)
	// GetByEmail prefers the independent account when dependents share the address.
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	List(ctx context.Context, tx *gorm.DB, filters UserFilters) ([]*models.User, int64, error)
	ListDependents(ctx context.Context, tx *gorm.DB, guardianID string) ([]*models.User, error)

	// EmailTaken checks the address against accounts that are not dependents.
	EmailTaken(ctx context.Context, tx *gorm.DB, email, excludeID string) (bool, error)
	DependentExists(ctx context.Context, tx *gorm.DB, guardianID, firstName, lastName string, dob time.Time, excludeID string) (bool, error)
	DeactivateDependents(ctx context.Context, tx *gorm.DB, guardianID string, actorID *string) (int64, error)

	// Account identifier sequence
	LastAccountID(ctx context.Context, tx *gorm.DB) (string, error)
	LockAccountIDs(ctx context.Context, tx *gorm.DB) error
}
