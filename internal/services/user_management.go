package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/events"
	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/utils"
)

const (
	DefaultUserPageSize = 50
	MaxUserPageSize     = 200
)

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error) {
	if filters.Limit <= 0 {
		filters.Limit = DefaultUserPageSize
	}
	if filters.Limit > MaxUserPageSize {
		filters.Limit = MaxUserPageSize
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	users, total, err := s.repo.User().List(ctx, s.db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &UserListResponse{
		Users:  users,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) GetFamily(ctx context.Context, guardianID string) (*FamilyResponse, error) {
	guardian, err := s.GetByID(ctx, guardianID)
	if err != nil {
		return nil, err
	}
	if guardian.IsDependent() {
		return nil, ErrNotGuardian
	}

	dependents, err := s.repo.User().ListDependents(ctx, s.db, guardian.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dependents: %w", err)
	}
	return &FamilyResponse{Guardian: guardian, Dependents: dependents}, nil
}

// Update applies a partial profile change. Email and account identifier are
// fixed at creation.
func (s *userService) Update(ctx context.Context, id string, req *UpdateUserRequest, actor *Actor) (*models.User, error) {
	s.logger.Info("Updating user", "id", id, "actor_id", actor.LogID())

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && utils.NormalizeEmail(*req.Email) != user.Email {
		return nil, ErrEmailImmutable
	}
	if req.UserID != nil && *req.UserID != user.UserID {
		return nil, ErrUserIDImmutable
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if req.Role != nil {
		role, err := models.ParseAssignableRole(*req.Role)
		if err != nil {
			return nil, ErrInvalidRole
		}
		if user.IsDependent() && role != models.RoleStudent {
			return nil, utils.BadInput("Accounts linked to a guardian must keep the Student role")
		}
		user.Role = role
	}

	if req.DOB != nil {
		dob, err := utils.ParseDate(*req.DOB, "dob")
		if err != nil {
			return nil, err
		}
		if user.IsDependent() {
			if err := checkAgePolicy(positionDependent, &dob, ""); err != nil {
				return nil, err
			}
		}
		user.DOB = toDate(&dob)
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	applyProfile(user, req.Phone, req.Gender, req.Details, req.SpecialNeeds)
	if req.Specialization != nil {
		user.Specialization = datatypes.JSONSlice[string](req.Specialization)
	}
	if req.PhotoPath != nil {
		user.PhotoPath = nilIfEmpty(*req.PhotoPath)
	}
	user.UpdatedBy = actor.AuditID()

	err = s.withTx(ctx, func(tx *gorm.DB) error {
		if user.IsDependent() && user.DOB != nil {
			if err := s.checkDuplicateDependent(ctx, tx, *user.GuardianID, user.FirstName, user.LastName, time.Time(*user.DOB), user.ID, ""); err != nil {
				return err
			}
		}
		return s.repo.User().Update(ctx, tx, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User updated", "id", id)
	return user, nil
}

// ChangePassword rotates a password. The current password is checked unless
// an administrator resets another account.
func (s *userService) ChangePassword(ctx context.Context, id string, req *ChangePasswordRequest, actor *Actor) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	adminReset := actor.IsAdmin() && actor.ID != user.ID
	if !adminReset {
		if req.CurrentPassword == "" {
			return ErrCurrentPasswordNeeded
		}
		ok, err := utils.ComparePassword(req.CurrentPassword, user.Password)
		if err != nil {
			return utils.Internal(err, "Failed to verify password")
		}
		if !ok {
			return ErrCurrentPasswordWrong
		}
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return utils.Internal(err, "Failed to secure password")
	}
	user.Password = hash
	user.UpdatedBy = actor.AuditID()

	if err := s.repo.User().Update(ctx, s.db, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("Password changed", "id", id, "admin_reset", adminReset)
	return nil
}

// Deactivate soft-deletes an account. A guardian takes its dependents with it.
func (s *userService) Deactivate(ctx context.Context, id string, actor *Actor) (*models.User, error) {
	s.logger.Info("Deactivating user", "id", id, "actor_id", actor.LogID())

	var (
		user       *models.User
		dependents int64
	)
	err := s.withTx(ctx, func(tx *gorm.DB) error {
		var err error
		user, err = s.repo.User().GetByID(ctx, tx, id)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		user.IsActive = false
		user.UpdatedBy = actor.AuditID()
		if err := s.repo.User().Update(ctx, tx, user); err != nil {
			return fmt.Errorf("failed to deactivate user: %w", err)
		}

		if !user.IsDependent() {
			dependents, err = s.repo.User().DeactivateDependents(ctx, tx, user.ID, actor.AuditID())
			if err != nil {
				return fmt.Errorf("failed to deactivate dependents: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, events.NewEvent(events.UserDeactivated, "user-service", events.UserDeactivatedData{
		UserID:             user.ID,
		DeactivatedMembers: dependents,
		ActorID:            actor.AuditID(),
	}))
	s.logger.Info("User deactivated", "id", id, "dependents", dependents)

	return user, nil
}
