package services

import (
	"github.com/aps-academy/admin-service/internal/utils"
)

// Sentinel errors. Handlers match them with errors.Is; the kind decides the
// HTTP status.
var (
	// Accounts
	ErrUserNotFound          = utils.NotFound("User not found")
	ErrEmailExists           = utils.Conflict("Email already exists")
	ErrEmailImmutable        = utils.BadInput("Email cannot be changed")
	ErrUserIDImmutable       = utils.BadInput("userId cannot be changed")
	ErrInvalidRole           = utils.BadInput("Invalid role. Must be one of: Admin, Parent, Student, Staff")
	ErrNoRecords             = utils.BadInput("At least one user record is required")
	ErrInvalidFlow           = utils.BadInput("Invalid registration flow")
	ErrStaffSingleRecord     = utils.BadInput("Staff accounts must be created one at a time")
	ErrNotGuardian           = utils.Forbidden("Only parent accounts can manage children")
	ErrChildNotOwned         = utils.Forbidden("Child does not belong to this guardian")
	ErrCurrentPasswordNeeded = utils.BadInput("Current password is required")
	ErrCurrentPasswordWrong  = utils.Unauthorized("Current password is incorrect")

	// Login
	ErrCredentialsRequired = utils.BadInput("Email and password are required")
	ErrUseGuardianAccount  = utils.Forbidden("Please login using guardian account")
	ErrInvalidCredentials  = utils.Unauthorized("Invalid credentials")
	ErrAccountDeactivated  = utils.Forbidden("User account is deactivated. Please contact support.")

	// Sessions
	ErrNoToken          = utils.Unauthorized("No token provided.")
	ErrInvalidToken     = utils.Forbidden("Invalid token.")
	ErrInactiveSession  = utils.Forbidden("Invalid or inactive user.")
	ErrAdminRequired    = utils.Forbidden("Forbidden: Admin access required.")
	ErrAdminOrParent    = utils.Forbidden("Forbidden: Admin or parent access required.")
	ErrNotAccountHolder = utils.Forbidden("Forbidden: You can only access your own account.")

	// Catalogue
	ErrBannerNotFound         = utils.NotFound("Banner not found")
	ErrCategoryNotFound       = utils.NotFound("Category not found")
	ErrCategoryNameExists     = utils.Conflict("Category name already exists")
	ErrCategoryInUse          = utils.Conflict("Category is used by courses or events")
	ErrCourseNotFound         = utils.NotFound("Course not found")
	ErrClassNotFound          = utils.NotFound("Class not found")
	ErrEventNotFound          = utils.NotFound("Event not found")
	ErrLocationNotFound       = utils.NotFound("Location not found")
	ErrLocationInactive       = utils.BadInput("Cannot create event in an inactive location")
	ErrCategoryInactive       = utils.BadInput("Cannot create event with an inactive category")
	ErrLocationHasEvents      = utils.BadInput("Cannot deactivate location with active events. Please deactivate all events first.")
	ErrNewCategoryNotFound    = utils.NotFound("New category not found")
	ErrNewCategoryInactive    = utils.BadInput("Cannot assign event to an inactive category")
	ErrNewLocationNotFound    = utils.NotFound("New location not found")
	ErrNewLocationInactive    = utils.BadInput("Cannot move event to an inactive location")
	ErrReviewsNotConfigured   = utils.NewAppError(utils.KindInternal, "Review source is not configured")
	ErrUploadFolderNotAllowed = utils.BadInput("Unknown upload folder")
)
