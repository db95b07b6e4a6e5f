package validator

// PersonRecord is one entry of a registration batch. ID and UserID are only
// meaningful when a guardian updates an existing child.
type PersonRecord struct {
	ID             *string  `json:"id"`
	UserID         *string  `json:"userId"`
	FirstName      string   `json:"firstName" validate:"max=100"`
	LastName       string   `json:"lastName" validate:"max=100"`
	Email          string   `json:"email" validate:"omitempty,basic_email,max=255"`
	Phone          *string  `json:"phone" validate:"omitempty,max=30"`
	DOB            string   `json:"dob"`
	Gender         *string  `json:"gender" validate:"omitempty,max=30"`
	Details        *string  `json:"details"`
	SpecialNeeds   *bool    `json:"specialNeeds"`
	Password       string   `json:"password"`
	Specialization []string `json:"specialization" validate:"omitempty,dive,max=100"`
}

// Fields exposes the record by its JSON names for required-field checks.
func (r *PersonRecord) Fields() map[string]interface{} {
	return map[string]interface{}{
		"firstName": r.FirstName,
		"lastName":  r.LastName,
		"email":     r.Email,
		"dob":       r.DOB,
		"password":  r.Password,
		"phone":     r.Phone,
		"gender":    r.Gender,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,notblank"`
}

// UpdateUserRequest is a partial profile update; nil fields are untouched.
type UpdateUserRequest struct {
	UserID         *string  `json:"userId"`
	FirstName      *string  `json:"firstName" validate:"omitempty,notblank,max=100"`
	LastName       *string  `json:"lastName" validate:"omitempty,notblank,max=100"`
	Email          *string  `json:"email"`
	Phone          *string  `json:"phone" validate:"omitempty,max=30"`
	DOB            *string  `json:"dob" validate:"omitempty,ddmmyyyy"`
	Gender         *string  `json:"gender" validate:"omitempty,max=30"`
	Details        *string  `json:"details"`
	SpecialNeeds   *bool    `json:"specialNeeds"`
	Role           *string  `json:"role" validate:"omitempty,user_role"`
	Specialization []string `json:"specialization" validate:"omitempty,dive,max=100"`
	PhotoPath      *string  `json:"photoPath" validate:"omitempty,max=500"`
}

type BannerRequest struct {
	Title       string  `json:"title" form:"title" validate:"max=200"`
	Subtitle    *string `json:"subtitle" form:"subtitle" validate:"omitempty,max=500"`
	MediaURL    string  `json:"mediaUrl" form:"mediaUrl" validate:"max=1000"`
	MediaType   string  `json:"mediaType" form:"mediaType" validate:"max=100"`
	Button1Text *string `json:"button1Text" form:"button1Text" validate:"omitempty,max=100"`
	Button1Link *string `json:"button1Link" form:"button1Link" validate:"omitempty,max=500"`
	Button2Text *string `json:"button2Text" form:"button2Text" validate:"omitempty,max=100"`
	Button2Link *string `json:"button2Link" form:"button2Link" validate:"omitempty,max=500"`
	Order       *int    `json:"order" form:"order"`
}

func (r *BannerRequest) Fields() map[string]interface{} {
	return map[string]interface{}{
		"title":     r.Title,
		"mediaUrl":  r.MediaURL,
		"mediaType": r.MediaType,
	}
}

type CategoryRequest struct {
	Name        string  `json:"name" validate:"max=150"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

func (r *CategoryRequest) Fields() map[string]interface{} {
	return map[string]interface{}{"name": r.Name}
}

type CourseRequest struct {
	Title            string  `json:"title" form:"title" validate:"max=200"`
	CourseCategoryID string  `json:"courseCategoryId" form:"courseCategoryId"`
	AgeRange         *string `json:"ageRange" form:"ageRange" validate:"omitempty,max=50"`
	MediaURL         string  `json:"mediaUrl" form:"mediaUrl" validate:"max=1000"`
	MediaType        string  `json:"mediaType" form:"mediaType" validate:"max=100"`
	Description      *string `json:"description" form:"description"`
	IsActive         *bool   `json:"isActive" form:"isActive"`
}

func (r *CourseRequest) Fields() map[string]interface{} {
	return map[string]interface{}{
		"title":            r.Title,
		"courseCategoryId": r.CourseCategoryID,
		"mediaUrl":         r.MediaURL,
		"mediaType":        r.MediaType,
	}
}

type ClassRequest struct {
	CourseID       string  `json:"courseId"`
	TermID         string  `json:"termId"`
	LocationID     string  `json:"locationId"`
	TutorID        string  `json:"tutorId"`
	Day            string  `json:"day" validate:"max=20"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	Room           string  `json:"room" validate:"max=100"`
	Notes          *string `json:"notes"`
	AvailableSeats *int    `json:"availableSeats" validate:"omitempty,min=0"`
	IsActive       *bool   `json:"isActive"`
}

func (r *ClassRequest) Fields() map[string]interface{} {
	return map[string]interface{}{
		"courseId":       r.CourseID,
		"termId":         r.TermID,
		"locationId":     r.LocationID,
		"tutorId":        r.TutorID,
		"day":            r.Day,
		"startDate":      r.StartDate,
		"endDate":        r.EndDate,
		"startTime":      r.StartTime,
		"endTime":        r.EndTime,
		"room":           r.Room,
		"availableSeats": r.AvailableSeats,
	}
}

type EventRequest struct {
	LocationID     string   `json:"locationId" form:"locationId"`
	CategoryID     string   `json:"categoryId" form:"categoryId"`
	Title          string   `json:"title" form:"title" validate:"max=200"`
	Description    *string  `json:"description" form:"description"`
	MediaURL       string   `json:"mediaUrl" form:"mediaUrl" validate:"max=1000"`
	MediaType      string   `json:"mediaType" form:"mediaType" validate:"max=100"`
	CanEnroll      *bool    `json:"canEnroll" form:"canEnroll"`
	StartDate      string   `json:"startDate" form:"startDate"`
	EndDate        string   `json:"endDate" form:"endDate"`
	StartTime      string   `json:"startTime" form:"startTime"`
	EndTime        string   `json:"endTime" form:"endTime"`
	Timezone       *string  `json:"timezone" form:"timezone" validate:"omitempty,timezone"`
	Room           string   `json:"room" form:"room" validate:"max=100"`
	Notes          *string  `json:"notes" form:"notes"`
	AvailableSeats *int     `json:"availableSeats" form:"availableSeats"`
	Fees           *float64 `json:"fees" form:"fees"`
	IsActive       *bool    `json:"isActive" form:"isActive"`
}

func (r *EventRequest) Fields() map[string]interface{} {
	return map[string]interface{}{
		"locationId":     r.LocationID,
		"categoryId":     r.CategoryID,
		"title":          r.Title,
		"mediaUrl":       r.MediaURL,
		"mediaType":      r.MediaType,
		"startDate":      r.StartDate,
		"endDate":        r.EndDate,
		"startTime":      r.StartTime,
		"endTime":        r.EndTime,
		"room":           r.Room,
		"availableSeats": r.AvailableSeats,
		"fees":           r.Fees,
	}
}

// EventUpdateRequest is a partial event update; nil fields are untouched.
type EventUpdateRequest struct {
	LocationID     *string  `json:"locationId" form:"locationId"`
	CategoryID     *string  `json:"categoryId" form:"categoryId"`
	Title          *string  `json:"title" form:"title" validate:"omitempty,notblank,max=200"`
	Description    *string  `json:"description" form:"description"`
	MediaURL       *string  `json:"mediaUrl" form:"mediaUrl" validate:"omitempty,max=1000"`
	MediaType      *string  `json:"mediaType" form:"mediaType" validate:"omitempty,max=100"`
	CanEnroll      *bool    `json:"canEnroll" form:"canEnroll"`
	StartDate      *string  `json:"startDate" form:"startDate"`
	EndDate        *string  `json:"endDate" form:"endDate"`
	StartTime      *string  `json:"startTime" form:"startTime"`
	EndTime        *string  `json:"endTime" form:"endTime"`
	Timezone       *string  `json:"timezone" form:"timezone" validate:"omitempty,timezone"`
	Room           *string  `json:"room" form:"room" validate:"omitempty,max=100"`
	Notes          *string  `json:"notes" form:"notes"`
	AvailableSeats *int     `json:"availableSeats" form:"availableSeats"`
	Fees           *float64 `json:"fees" form:"fees"`
	IsActive       *bool    `json:"isActive" form:"isActive"`
}

// LocationRequest keeps rooms undecoded so a non-array payload can be
// reported with a domain message instead of a bind error.
type LocationRequest struct {
	Name         string      `json:"name" validate:"max=200"`
	AddressLine1 string      `json:"addressLine1" validate:"max=255"`
	AddressLine2 *string     `json:"addressLine2" validate:"omitempty,max=255"`
	Suburb       string      `json:"suburb" validate:"max=100"`
	City         string      `json:"city" validate:"max=100"`
	State        string      `json:"state" validate:"max=100"`
	Country      *string     `json:"country" validate:"omitempty,max=100"`
	Postcode     string      `json:"postcode" validate:"max=20"`
	Rooms        interface{} `json:"rooms"`
	Notes        *string     `json:"notes"`
	IsActive     *bool       `json:"isActive"`
}

func (r *LocationRequest) Fields() map[string]interface{} {
	return map[string]interface{}{
		"name":         r.Name,
		"addressLine1": r.AddressLine1,
		"suburb":       r.Suburb,
		"city":         r.City,
		"state":        r.State,
		"postcode":     r.Postcode,
	}
}
