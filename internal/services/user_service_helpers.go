package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/events"
	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/utils"
)

// MinimumIndependentAge is the age from which an account may exist without a guardian.
const MinimumIndependentAge = 18

// accountPosition is the place a record holds in a registration batch
type accountPosition int

const (
	positionIndependent accountPosition = iota
	positionGuardian
	positionDependent
	positionStaff
)

func positionFor(flow RegistrationFlow, total, index int) accountPosition {
	switch {
	case flow == FlowAdminStaff:
		return positionStaff
	case total == 1:
		return positionIndependent
	case index == 0:
		return positionGuardian
	default:
		return positionDependent
	}
}

func (p accountPosition) role() models.UserRole {
	switch p {
	case positionGuardian:
		return models.RoleParent
	case positionStaff:
		return models.RoleStaff
	default:
		return models.RoleStudent
	}
}

// requiredFields lists the JSON names a record must carry in this position.
func (p accountPosition) requiredFields() []string {
	fields := []string{"firstName", "lastName", "password"}
	switch p {
	case positionIndependent:
		fields = append(fields, "email", "dob")
	case positionGuardian, positionStaff:
		fields = append(fields, "email")
	case positionDependent:
		fields = append(fields, "dob")
	}
	return fields
}

func contextLabel(p accountPosition, index int) string {
	switch p {
	case positionGuardian:
		return "Parent"
	case positionDependent:
		return fmt.Sprintf("Child %d", index)
	}
	return ""
}

func prefixed(label, message string) string {
	if label == "" {
		return message
	}
	return label + ": " + message
}

// resolveEmail returns the address to store. Dependents without one, or
// with their guardian's, inherit the guardian's address unchecked.
func (s *userService) resolveEmail(ctx context.Context, tx *gorm.DB, raw string, p accountPosition, guardian *models.User) (string, error) {
	email := utils.NormalizeEmail(raw)

	if p == positionDependent && guardian != nil && (email == "" || email == guardian.Email) {
		return guardian.Email, nil
	}

	taken, err := s.repo.User().EmailTaken(ctx, tx, email, "")
	if err != nil {
		return "", fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return "", ErrEmailExists
	}
	return email, nil
}

func checkAgePolicy(p accountPosition, dob *time.Time, label string) error {
	if dob == nil {
		return nil
	}
	age := utils.CalculateAge(*dob)

	switch p {
	case positionIndependent:
		if age < MinimumIndependentAge {
			return utils.BadInput("%s", prefixed(label, "Users under 18 must be registered through a parent or guardian account."))
		}
	case positionDependent:
		if age >= MinimumIndependentAge {
			return utils.BadInput("%s", prefixed(label, "Users aged 18 or over must register independently."))
		}
	}
	return nil
}

func (s *userService) checkDuplicateDependent(ctx context.Context, tx *gorm.DB, guardianID, firstName, lastName string, dob time.Time, excludeID, label string) error {
	exists, err := s.repo.User().DependentExists(ctx, tx, guardianID, firstName, lastName, dob, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check existing children: %w", err)
	}
	if exists {
		who := label
		if who == "" {
			who = "Child"
		}
		return utils.Conflict("%s with name \"%s %s\" and DOB \"%s\" already exists under this guardian.",
			who, firstName, lastName, utils.FormatDate(dob))
	}
	return nil
}

func (s *userService) nextAccountID(ctx context.Context, tx *gorm.DB) (string, error) {
	last, err := s.repo.User().LastAccountID(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("failed to read last account id: %w", err)
	}
	return utils.NextAccountID(last)
}

func buildUser(record *PersonRecord, p accountPosition, accountID, email string, dob *time.Time, hash string, guardian *models.User, actor *Actor) *models.User {
	user := &models.User{
		UserID:         accountID,
		FirstName:      record.FirstName,
		LastName:       record.LastName,
		Email:          email,
		Password:       hash,
		Role:           p.role(),
		DOB:            toDate(dob),
		Specialization: datatypes.JSONSlice[string]{},
		IsActive:       true,
		Audit: models.Audit{
			CreatedBy: actor.AuditID(),
			UpdatedBy: actor.AuditID(),
		},
	}
	applyProfile(user, record.Phone, record.Gender, record.Details, record.SpecialNeeds)

	if p == positionDependent && guardian != nil {
		guardianID := guardian.ID
		user.GuardianID = &guardianID
	}
	if p == positionStaff && len(record.Specialization) > 0 {
		user.Specialization = datatypes.JSONSlice[string](record.Specialization)
	}
	return user
}

func applyProfile(user *models.User, phone, gender, details *string, specialNeeds *bool) {
	if phone != nil {
		user.Phone = nilIfEmpty(*phone)
	}
	if gender != nil {
		user.Gender = nilIfEmpty(*gender)
	}
	if details != nil {
		user.Details = nilIfEmpty(*details)
	}
	if specialNeeds != nil {
		user.SpecialNeeds = *specialNeeds
	}
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(*t)
	return &d
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *userService) publishRegistered(ctx context.Context, primaryID string, accounts []*models.User, flow string, actor *Actor) {
	ids := make([]string, 0, len(accounts))
	for _, u := range accounts {
		ids = append(ids, u.ID)
	}
	publish(ctx, s.publisher, s.logger, events.NewEvent(events.UserRegistered, "user-service", events.UserRegisteredData{
		PrimaryID:  primaryID,
		AccountIDs: ids,
		Flow:       flow,
		ActorID:    actor.AuditID(),
	}))
}

func (s *userService) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}
