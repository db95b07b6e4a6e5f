package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/repositories"
)

// SharedHelpers contains query building shared by the entity repositories
type SharedHelpers struct {
	db *gorm.DB
}

func NewSharedHelpers(db *gorm.DB) *SharedHelpers {
	return &SharedHelpers{db: db}
}

// Count counts rows of model matching the condition
func (h *SharedHelpers) Count(ctx context.Context, tx *gorm.DB, model interface{}, query string, args ...interface{}) (int64, error) {
	db := h.db
	if tx != nil {
		db = tx
	}

	var count int64
	err := db.WithContext(ctx).Model(model).Where(query, args...).Count(&count).Error
	return count, err
}

// ApplyActiveFilter narrows a query to rows with the given is_active value
func (h *SharedHelpers) ApplyActiveFilter(query *gorm.DB, isActive *bool) *gorm.DB {
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}
	return query
}

// ApplyContains adds a case-insensitive substring match on column. LOWER
// keeps the query portable between PostgreSQL and SQLite.
func (h *SharedHelpers) ApplyContains(query *gorm.DB, column, value string) *gorm.DB {
	value = strings.TrimSpace(value)
	if value == "" {
		return query
	}
	return query.Where(fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column), containsPattern(value))
}

// ApplyPaginationAndSort applies pagination and sorting with SQL injection protection
func (h *SharedHelpers) ApplyPaginationAndSort(query *gorm.DB, allowed map[string]string, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	column, ok := allowed[sortBy]
	if !ok {
		column = "created_at"
	}

	order := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		order = "ASC"
	}

	query = query.Order(fmt.Sprintf("%s %s", column, order))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}

func containsPattern(value string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(value))
	return "%" + escaped + "%"
}

// handleDBError maps gorm failures onto the repository sentinels
func handleDBError(err error, operation string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s failed: %w", operation, repositories.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s failed: %w: %v", operation, repositories.ErrDuplicateKey, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s failed: %w: %v", operation, repositories.ErrInUse, err)
	}
	return fmt.Errorf("%s failed: %w", operation, err)
}
