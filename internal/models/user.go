package models

import (
	"fmt"
	"slices"
	"strings"

	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleAdmin   UserRole = "Admin"
	RoleParent  UserRole = "Parent"
	RoleStudent UserRole = "Student"
	RoleStaff   UserRole = "Staff"

	// Legacy roles still present on older accounts.
	RoleTutor UserRole = "Tutor"
	RoleAdult UserRole = "Adult"
)

var validRoles = []UserRole{RoleAdmin, RoleParent, RoleStudent, RoleStaff, RoleTutor, RoleAdult}

func (r UserRole) IsValid() bool {
	for _, role := range validRoles {
		if r == role {
			return true
		}
	}
	return false
}

// ParseUserRole accepts a role name in any letter case.
func ParseUserRole(s string) (UserRole, error) {
	for _, role := range validRoles {
		if strings.EqualFold(string(role), strings.TrimSpace(s)) {
			return role, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", s)
}

// AssignableRoles are the roles an administrator may set on an account.
func AssignableRoles() []UserRole {
	return []UserRole{RoleAdmin, RoleParent, RoleStudent, RoleStaff}
}

// ParseAssignableRole is ParseUserRole restricted to AssignableRoles; legacy
// roles are readable but never written.
func ParseAssignableRole(s string) (UserRole, error) {
	role, err := ParseUserRole(s)
	if err != nil {
		return "", err
	}
	if !slices.Contains(AssignableRoles(), role) {
		return "", fmt.Errorf("role %q cannot be assigned", role)
	}
	return role, nil
}

type User struct {
	Model
	UserID         string                      `json:"userId" gorm:"uniqueIndex;not null;size:20"`
	FirstName      string                      `json:"firstName" gorm:"not null;size:100"`
	LastName       string                      `json:"lastName" gorm:"not null;size:100"`
	Email          string                      `json:"email" gorm:"index;not null;size:255"`
	Phone          *string                     `json:"phone" gorm:"size:30"`
	DOB            *datatypes.Date             `json:"dob"`
	Gender         *string                     `json:"gender" gorm:"size:30"`
	Details        *string                     `json:"details" gorm:"type:text"`
	SpecialNeeds   bool                        `json:"specialNeeds" gorm:"not null;default:false"`
	Password       string                      `json:"-" gorm:"not null"`
	Role           UserRole                    `json:"role" gorm:"index;not null;size:20"`
	Specialization datatypes.JSONSlice[string] `json:"specialization"`
	GuardianID     *string                     `json:"guardianId" gorm:"index;size:36"`
	PhotoPath      *string                     `json:"photoPath" gorm:"size:500"`
	IsActive       bool                        `json:"isActive" gorm:"index;not null"`
	Audit
}

func (User) TableName() string {
	return "users"
}

// IsDependent reports whether the account is linked to a guardian.
func (u *User) IsDependent() bool {
	return u.GuardianID != nil && *u.GuardianID != ""
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
