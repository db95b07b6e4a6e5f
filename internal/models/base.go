package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model is embedded by every persisted entity.
type Model struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Audit records the account that created and last updated a row. Both are
// nil for self-service actions.
type Audit struct {
	CreatedBy *string `json:"createdBy" gorm:"size:36"`
	UpdatedBy *string `json:"updatedBy" gorm:"size:36"`
}

// AllModels lists every entity managed by the service, in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&CourseCategory{},
		&Location{},
		&Course{},
		&Class{},
		&Event{},
		&Banner{},
		&Testimonial{},
	}
}

// AutoMigrate creates or updates the schema for every entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
