package services

import (
	"context"
	"io"
	"time"

	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

type PersonRecord = validator.PersonRecord
type UpdateUserRequest = validator.UpdateUserRequest
type ChangePasswordRequest = validator.ChangePasswordRequest
type LoginRequest = validator.LoginRequest

// RegistrationFlow selects how a batch of person records is interpreted
type RegistrationFlow string

const (
	// FlowSelf is public sign-up: one adult, or a parent followed by children.
	FlowSelf RegistrationFlow = "self"
	// FlowAdmin is an administrator creating a family or a single adult.
	FlowAdmin RegistrationFlow = "admin"
	// FlowAdminStaff is an administrator creating one staff account.
	FlowAdminStaff RegistrationFlow = "admin_staff"
)

func (f RegistrationFlow) IsValid() bool {
	switch f {
	case FlowSelf, FlowAdmin, FlowAdminStaff:
		return true
	}
	return false
}

// Actor is the authenticated account performing an operation. A nil *Actor
// means a self-service request.
type Actor struct {
	ID   string
	Role models.UserRole
}

func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == models.RoleAdmin
}

// AuditID is the value stored in created_by/updated_by.
func (a *Actor) AuditID() *string {
	if a == nil || a.ID == "" {
		return nil
	}
	id := a.ID
	return &id
}

// LogID identifies the actor in log lines.
func (a *Actor) LogID() string {
	if a == nil {
		return "self"
	}
	return a.ID
}

// Session is a signed token bound to the cookie of the account's role
type Session struct {
	Token      string          `json:"-"`
	Role       models.UserRole `json:"role"`
	CookieName string          `json:"cookieName"`
	ExpiresAt  time.Time       `json:"expiresAt"`
}

type RegistrationResult struct {
	Accounts []*models.User `json:"accounts"`
	Primary  *models.User   `json:"primary"`
	Session  *Session       `json:"-"`
}

type ChildrenResult struct {
	Created []*models.User `json:"created"`
	Updated []*models.User `json:"updated"`
}

type UserListResponse struct {
	Users  []*models.User `json:"users"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

type FamilyResponse struct {
	Guardian   *models.User   `json:"guardian"`
	Dependents []*models.User `json:"dependents"`
}

type LoginResult struct {
	User    *models.User `json:"user"`
	Session *Session     `json:"-"`
}

type UploadedMedia struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	MediaType string `json:"mediaType"`
}

type SyncResult struct {
	Count     int       `json:"count"`
	PlaceName string    `json:"placeName"`
	SyncedAt  time.Time `json:"syncedAt"`
}

// ===== SERVICE INTERFACES =====

type UserService interface {
	// Registration
	Register(ctx context.Context, records []PersonRecord, flow RegistrationFlow, actor *Actor) (*RegistrationResult, error)
	UpsertChildren(ctx context.Context, guardianID string, children []PersonRecord, actor *Actor) (*ChildrenResult, error)

	// Management
	List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetFamily(ctx context.Context, guardianID string) (*FamilyResponse, error)
	Update(ctx context.Context, id string, req *UpdateUserRequest, actor *Actor) (*models.User, error)
	ChangePassword(ctx context.Context, id string, req *ChangePasswordRequest, actor *Actor) error
	Deactivate(ctx context.Context, id string, actor *Actor) (*models.User, error)

	// Export writes an XLSX workbook of the filtered users.
	Export(ctx context.Context, filters repositories.UserFilters, w io.Writer) error
}

type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResult, error)
	// Authenticate resolves a session token to an active account.
	Authenticate(ctx context.Context, token string) (*models.User, error)
	IssueSession(user *models.User) (*Session, error)
}

type BannerService interface {
	Create(ctx context.Context, req *validator.BannerRequest, actor *Actor) (*models.Banner, error)
	List(ctx context.Context) ([]*models.Banner, error)
	GetByID(ctx context.Context, id string) (*models.Banner, error)
	Update(ctx context.Context, id string, req *validator.BannerRequest, actor *Actor) (*models.Banner, error)
	Delete(ctx context.Context, id string) error
}

type CategoryService interface {
	Create(ctx context.Context, req *validator.CategoryRequest, actor *Actor) (*models.CourseCategory, error)
	List(ctx context.Context, filters repositories.CategoryFilters) ([]*models.CourseCategory, error)
	GetByID(ctx context.Context, id string) (*models.CourseCategory, error)
	Update(ctx context.Context, id string, req *validator.CategoryRequest, actor *Actor) (*models.CourseCategory, error)
	Delete(ctx context.Context, id string) error
}

type CourseService interface {
	Create(ctx context.Context, req *validator.CourseRequest, actor *Actor) (*models.Course, error)
	List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
	Update(ctx context.Context, id string, req *validator.CourseRequest, actor *Actor) (*models.Course, error)
	Delete(ctx context.Context, id string) error
}

type ClassService interface {
	Create(ctx context.Context, req *validator.ClassRequest, actor *Actor) (*models.Class, error)
	List(ctx context.Context, filters repositories.ClassFilters) ([]*models.Class, error)
	GetByID(ctx context.Context, id string) (*models.Class, error)
	Update(ctx context.Context, id string, req *validator.ClassRequest, actor *Actor) (*models.Class, error)
	Delete(ctx context.Context, id string) error
}

type EventService interface {
	Create(ctx context.Context, req *validator.EventRequest, actor *Actor) (*models.Event, error)
	List(ctx context.Context, filters repositories.EventFilters) ([]*models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Update(ctx context.Context, id string, req *validator.EventUpdateRequest, actor *Actor) (*models.Event, error)
	Deactivate(ctx context.Context, id string, actor *Actor) (*models.Event, error)
}

type LocationService interface {
	Create(ctx context.Context, req *validator.LocationRequest, actor *Actor) (*models.Location, error)
	List(ctx context.Context, filters repositories.LocationFilters) ([]*models.Location, error)
	GetByID(ctx context.Context, id string) (*models.Location, error)
	Update(ctx context.Context, id string, req *validator.LocationRequest, actor *Actor) (*models.Location, error)
	Deactivate(ctx context.Context, id string, actor *Actor) (*models.Location, error)
}

type TestimonialService interface {
	SyncReviews(ctx context.Context) (*SyncResult, error)
	GetReviews(ctx context.Context) ([]*models.Testimonial, error)
}

type MediaService interface {
	// Upload stores r under folder and returns its public location.
	Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (*UploadedMedia, error)
}

// ServiceManager owns every service and their shared dependencies
type ServiceManager interface {
	User() UserService
	Auth() AuthService
	Banner() BannerService
	Category() CategoryService
	Course() CourseService
	Class() ClassService
	Event() EventService
	Location() LocationService
	Testimonial() TestimonialService
	Media() MediaService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
