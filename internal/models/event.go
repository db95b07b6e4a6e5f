package models

import "gorm.io/datatypes"

const DefaultEventTimezone = "Australia/Melbourne"

type Event struct {
	Model
	LocationID     string          `json:"locationId" gorm:"index;not null;size:36"`
	CategoryID     string          `json:"categoryId" gorm:"index;not null;size:36"`
	Title          string          `json:"title" gorm:"not null;size:200"`
	Description    *string         `json:"description" gorm:"type:text"`
	MediaURL       string          `json:"mediaUrl" gorm:"not null;size:1000"`
	MediaType      string          `json:"mediaType" gorm:"not null;size:100"`
	CanEnroll      bool            `json:"canEnroll" gorm:"not null"`
	StartDate      datatypes.Date  `json:"startDate" gorm:"index;not null"`
	EndDate        datatypes.Date  `json:"endDate" gorm:"not null"`
	StartTime      datatypes.Time  `json:"startTime" gorm:"not null"`
	EndTime        datatypes.Time  `json:"endTime" gorm:"not null"`
	Timezone       string          `json:"timezone" gorm:"not null;size:64"`
	Room           string          `json:"room" gorm:"not null;size:100"`
	Notes          *string         `json:"notes" gorm:"type:text"`
	AvailableSeats int             `json:"availableSeats" gorm:"not null"`
	Fees           float64         `json:"fees" gorm:"not null"`
	IsActive       bool            `json:"isActive" gorm:"index;not null"`
	Location       *Location       `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Category       *CourseCategory `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Audit
}

func (Event) TableName() string {
	return "events"
}
