package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/utils"
)

// accountIDLockKey identifies the advisory lock that serialises account
// identifier generation.
const accountIDLockKey = 7_310_001

type UserPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db, helpers: NewSharedHelpers(db)}
}

func (r *UserPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// ===== BASIC CRUD OPERATIONS =====

func (r *UserPostgreSQL) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if err := r.getDB(tx).WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return handleDBError(err, "create user")
	}
	return nil
}

func (r *UserPostgreSQL) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if err := r.getDB(tx).WithContext(ctx).Omit(clause.Associations).Save(user).Error; err != nil {
		return handleDBError(err, "update user")
	}
	return nil
}

func (r *UserPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := r.getDB(tx).WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, handleDBError(err, "get user by id")
	}
	return &user, nil
}

func (r *UserPostgreSQL) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := r.getDB(tx).WithContext(ctx).
		Where("LOWER(email) = ?", utils.NormalizeEmail(email)).
		Order("CASE WHEN guardian_id IS NULL THEN 0 ELSE 1 END").
		Order("created_at ASC").
		First(&user).Error
	if err != nil {
		return nil, handleDBError(err, "get user by email")
	}
	return &user, nil
}

// ===== QUERY OPERATIONS =====

func (r *UserPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := r.getDB(tx).WithContext(ctx).Model(&models.User{})
	query = r.applyUserFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count users")
	}

	query = r.helpers.ApplyPaginationAndSort(query, map[string]string{
		"created_at": "created_at",
		"updated_at": "updated_at",
		"first_name": "first_name",
		"last_name":  "last_name",
		"user_id":    "user_id",
		"email":      "email",
	}, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	if err := query.Find(&users).Error; err != nil {
		return nil, 0, handleDBError(err, "list users")
	}
	return users, total, nil
}

func (r *UserPostgreSQL) ListDependents(ctx context.Context, tx *gorm.DB, guardianID string) ([]*models.User, error) {
	var users []*models.User
	err := r.getDB(tx).WithContext(ctx).
		Where("guardian_id = ?", guardianID).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, handleDBError(err, "list dependents")
	}
	return users, nil
}

// ===== VALIDATION AND CHECKS =====

func (r *UserPostgreSQL) EmailTaken(ctx context.Context, tx *gorm.DB, email, excludeID string) (bool, error) {
	var count int64
	query := r.getDB(tx).WithContext(ctx).Model(&models.User{}).
		Where("LOWER(email) = ? AND guardian_id IS NULL", utils.NormalizeEmail(email))
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, handleDBError(err, "check email")
	}
	return count > 0, nil
}

func (r *UserPostgreSQL) DependentExists(ctx context.Context, tx *gorm.DB, guardianID, firstName, lastName string, dob time.Time, excludeID string) (bool, error) {
	var count int64
	query := r.getDB(tx).WithContext(ctx).Model(&models.User{}).
		Where("guardian_id = ? AND role = ?", guardianID, models.RoleStudent).
		Where("first_name = ? AND last_name = ?", strings.TrimSpace(firstName), strings.TrimSpace(lastName)).
		Where("dob = ?", datatypes.Date(dob))
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, handleDBError(err, "check duplicate dependent")
	}
	return count > 0, nil
}

func (r *UserPostgreSQL) DeactivateDependents(ctx context.Context, tx *gorm.DB, guardianID string, actorID *string) (int64, error) {
	result := r.getDB(tx).WithContext(ctx).Model(&models.User{}).
		Where("guardian_id = ? AND is_active = ?", guardianID, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": actorID,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, handleDBError(result.Error, "deactivate dependents")
	}
	return result.RowsAffected, nil
}

// ===== ACCOUNT IDENTIFIERS =====

func (r *UserPostgreSQL) LastAccountID(ctx context.Context, tx *gorm.DB) (string, error) {
	var user models.User
	err := r.getDB(tx).WithContext(ctx).
		Select("user_id").
		Where("user_id LIKE ?", utils.AccountIDPrefix+"%").
		Order("created_at DESC").
		Order("LENGTH(user_id) DESC").
		Order("user_id DESC").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", handleDBError(err, "get last account id")
	}
	return user.UserID, nil
}

// LockAccountIDs takes a transaction-scoped advisory lock on PostgreSQL. Other
// dialects rely on the unique index on user_id.
func (r *UserPostgreSQL) LockAccountIDs(ctx context.Context, tx *gorm.DB) error {
	db := r.getDB(tx)
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	if err := db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", accountIDLockKey).Error; err != nil {
		return handleDBError(err, "lock account ids")
	}
	return nil
}

func (r *UserPostgreSQL) applyUserFilters(query *gorm.DB, filters repositories.UserFilters) *gorm.DB {
	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.GuardianID != nil {
		query = query.Where("guardian_id = ?", *filters.GuardianID)
	}
	query = r.helpers.ApplyActiveFilter(query, filters.IsActive)

	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := containsPattern(search)
		query = query.Where(
			`LOWER(first_name) LIKE ? ESCAPE '\' OR LOWER(last_name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(user_id) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern, pattern,
		)
	}
	return query
}
