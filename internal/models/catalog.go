package models

import "gorm.io/datatypes"

type CourseCategory struct {
	Model
	Name        string  `json:"name" gorm:"not null;size:150"`
	Description *string `json:"description" gorm:"type:text"`
	IsActive    bool    `json:"isActive" gorm:"index;not null"`
	Audit
}

func (CourseCategory) TableName() string {
	return "course_categories"
}

type Course struct {
	Model
	Title            string          `json:"title" gorm:"not null;size:200"`
	CourseCategoryID string          `json:"courseCategoryId" gorm:"index;not null;size:36"`
	AgeRange         *string         `json:"ageRange" gorm:"size:50"`
	MediaURL         string          `json:"mediaUrl" gorm:"not null;size:1000"`
	MediaType        string          `json:"mediaType" gorm:"not null;size:100"`
	Description      *string         `json:"description" gorm:"type:text"`
	IsActive         bool            `json:"isActive" gorm:"index;not null"`
	Category         *CourseCategory `json:"category,omitempty" gorm:"foreignKey:CourseCategoryID"`
	Audit
}

func (Course) TableName() string {
	return "courses"
}

type Location struct {
	Model
	Name         string                      `json:"name" gorm:"not null;size:200"`
	AddressLine1 string                      `json:"addressLine1" gorm:"not null;size:255"`
	AddressLine2 *string                     `json:"addressLine2" gorm:"size:255"`
	Suburb       string                      `json:"suburb" gorm:"not null;size:100"`
	City         string                      `json:"city" gorm:"not null;size:100"`
	State        string                      `json:"state" gorm:"not null;size:100"`
	Country      string                      `json:"country" gorm:"not null;size:100"`
	Postcode     string                      `json:"postcode" gorm:"not null;size:20"`
	Rooms        datatypes.JSONSlice[string] `json:"rooms"`
	Notes        string                      `json:"notes" gorm:"type:text"`
	IsActive     bool                        `json:"isActive" gorm:"index;not null"`
	Events       []Event                     `json:"events,omitempty" gorm:"foreignKey:LocationID"`
	Audit
}

func (Location) TableName() string {
	return "locations"
}

// HasRoom reports whether room is one of the location's rooms.
func (l *Location) HasRoom(room string) bool {
	for _, r := range l.Rooms {
		if r == room {
			return true
		}
	}
	return false
}

type Class struct {
	Model
	CourseID       string         `json:"courseId" gorm:"index;not null;size:36"`
	TermID         string         `json:"termId" gorm:"index;not null;size:36"`
	LocationID     string         `json:"locationId" gorm:"index;not null;size:36"`
	TutorID        string         `json:"tutorId" gorm:"index;not null;size:36"`
	Day            string         `json:"day" gorm:"not null;size:20"`
	StartDate      datatypes.Date `json:"startDate" gorm:"not null"`
	EndDate        datatypes.Date `json:"endDate" gorm:"not null"`
	StartTime      datatypes.Time `json:"startTime" gorm:"not null"`
	EndTime        datatypes.Time `json:"endTime" gorm:"not null"`
	Room           string         `json:"room" gorm:"not null;size:100"`
	Notes          *string        `json:"notes" gorm:"type:text"`
	AvailableSeats int            `json:"availableSeats" gorm:"not null"`
	IsActive       bool           `json:"isActive" gorm:"index;not null"`
	Course         *Course        `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Location       *Location      `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Audit
}

func (Class) TableName() string {
	return "classes"
}
