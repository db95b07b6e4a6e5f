package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
)

type EventPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewEventPostgreSQL(db *gorm.DB) repositories.EventRepository {
	return &EventPostgreSQL{db: db, helpers: NewSharedHelpers(db)}
}

func (r *EventPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *EventPostgreSQL) Create(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	if err := r.getDB(tx).WithContext(ctx).Omit(clause.Associations).Create(event).Error; err != nil {
		return handleDBError(err, "create event")
	}
	return nil
}

func (r *EventPostgreSQL) Update(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	if err := r.getDB(tx).WithContext(ctx).Omit(clause.Associations).Save(event).Error; err != nil {
		return handleDBError(err, "update event")
	}
	return nil
}

func (r *EventPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Event, error) {
	var event models.Event
	err := r.getDB(tx).WithContext(ctx).
		Preload("Location").
		Preload("Category").
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, handleDBError(err, "get event by id")
	}
	return &event, nil
}

func (r *EventPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.EventFilters) ([]*models.Event, error) {
	var events []*models.Event

	query := r.getDB(tx).WithContext(ctx).Model(&models.Event{}).Preload("Location").Preload("Category")
	query = r.helpers.ApplyActiveFilter(query, filters.IsActive)
	if filters.CanEnroll != nil {
		query = query.Where("can_enroll = ?", *filters.CanEnroll)
	}
	if filters.LocationID != nil {
		query = query.Where("location_id = ?", *filters.LocationID)
	}
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}

	if err := query.Order("start_date ASC").Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, handleDBError(err, "list events")
	}
	return events, nil
}

func (r *EventPostgreSQL) CountActiveByLocation(ctx context.Context, tx *gorm.DB, locationID string) (int64, error) {
	count, err := r.helpers.Count(ctx, tx, &models.Event{}, "location_id = ? AND is_active = ?", locationID, true)
	if err != nil {
		return 0, handleDBError(err, "count active events")
	}
	return count, nil
}
