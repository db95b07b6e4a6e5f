package repositories

import (
	"github.com/aps-academy/admin-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Role       *models.UserRole `json:"role"`
	IsActive   *bool            `json:"is_active"`
	GuardianID *string          `json:"guardian_id"`
	Search     string           `json:"search"` // name, email or account id
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
	SortBy     string           `json:"sort_by"`    // "created_at", "first_name", "last_name", "user_id"
	SortOrder  string           `json:"sort_order"` // "asc", "desc"
}

type CategoryFilters struct {
	IsActive *bool `json:"is_active"`
}

type CourseFilters struct {
	Title      string  `json:"title"`
	CategoryID *string `json:"category_id"`
	IsActive   *bool   `json:"is_active"`
	AgeRange   *string `json:"age_range"`
}

type ClassFilters struct {
	CourseID   *string `json:"course_id"`
	LocationID *string `json:"location_id"`
	IsActive   *bool   `json:"is_active"`
}

type EventFilters struct {
	IsActive   *bool   `json:"is_active"`
	CanEnroll  *bool   `json:"can_enroll"`
	LocationID *string `json:"location_id"`
	CategoryID *string `json:"category_id"`
}

type LocationFilters struct {
	IsActive *bool `json:"is_active"`
}
