package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/events"
	"github.com/aps-academy/admin-service/internal/metrics"
	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/utils"
	"github.com/aps-academy/admin-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	auth      AuthService
	publisher events.EventPublisher
	metrics   *metrics.Metrics
}

func NewUserService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator,
	auth AuthService, publisher events.EventPublisher, m *metrics.Metrics) UserService {
	return &userService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		auth:      auth,
		publisher: publisher,
		metrics:   m,
	}
}

// ===== REGISTRATION =====

// Register creates the accounts described by records in one transaction. A
// single record is an independent account; with more, the first record is
// the guardian and the rest are its dependents.
func (s *userService) Register(ctx context.Context, records []PersonRecord, flow RegistrationFlow, actor *Actor) (*RegistrationResult, error) {
	if !flow.IsValid() {
		return nil, ErrInvalidFlow
	}
	if err := utils.ValidateArrayInput(records, 1, ErrNoRecords.Message); err != nil {
		return nil, err
	}
	if flow == FlowAdminStaff && len(records) > 1 {
		return nil, ErrStaffSingleRecord
	}

	s.logger.Info("Registering accounts", "flow", flow, "records", len(records), "actor_id", actor.LogID())

	result := &RegistrationResult{Accounts: make([]*models.User, 0, len(records))}
	err := s.withTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.User().LockAccountIDs(ctx, tx); err != nil {
			return fmt.Errorf("failed to lock account ids: %w", err)
		}

		var guardian *models.User
		for i := range records {
			position := positionFor(flow, len(records), i)
			user, err := s.createAccount(ctx, tx, &records[i], position, contextLabel(position, i), guardian, actor)
			if err != nil {
				return err
			}

			if i == 0 {
				result.Primary = user
				if position == positionGuardian {
					guardian = user
				}
			}
			result.Accounts = append(result.Accounts, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if flow == FlowSelf {
		session, err := s.auth.IssueSession(result.Primary)
		if err != nil {
			return nil, err
		}
		result.Session = session
	}

	s.metrics.AccountsCreated(string(flow), len(result.Accounts))
	s.publishRegistered(ctx, result.Primary.ID, result.Accounts, string(flow), actor)
	s.logger.Info("Accounts registered", "flow", flow, "primary_id", result.Primary.ID, "user_id", result.Primary.UserID, "count", len(result.Accounts))

	return result, nil
}

// UpsertChildren adds new dependents to a guardian and updates the ones that
// carry an id, all in one transaction.
func (s *userService) UpsertChildren(ctx context.Context, guardianID string, children []PersonRecord, actor *Actor) (*ChildrenResult, error) {
	if err := utils.ValidateArrayInput(children, 1, "At least one child record is required"); err != nil {
		return nil, err
	}

	guardian, err := s.repo.User().GetByID(ctx, s.db, guardianID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get guardian: %w", err)
	}
	if guardian.Role != models.RoleParent || guardian.IsDependent() {
		return nil, ErrNotGuardian
	}

	s.logger.Info("Upserting children", "guardian_id", guardianID, "records", len(children))

	result := &ChildrenResult{Created: []*models.User{}, Updated: []*models.User{}}
	err = s.withTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.User().LockAccountIDs(ctx, tx); err != nil {
			return fmt.Errorf("failed to lock account ids: %w", err)
		}

		for i := range children {
			child := &children[i]
			label := fmt.Sprintf("Child %d", i+1)

			if child.ID != nil && *child.ID != "" {
				updated, err := s.updateChild(ctx, tx, guardian, child, label, actor)
				if err != nil {
					return err
				}
				result.Updated = append(result.Updated, updated)
				continue
			}

			created, err := s.createAccount(ctx, tx, child, positionDependent, label, guardian, actor)
			if err != nil {
				return err
			}
			result.Created = append(result.Created, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result.Created) > 0 {
		s.metrics.AccountsCreated("guardian", len(result.Created))
		s.publishRegistered(ctx, guardian.ID, result.Created, "guardian", actor)
	}
	s.logger.Info("Children upserted", "guardian_id", guardianID, "created", len(result.Created), "updated", len(result.Updated))

	return result, nil
}

// createAccount runs the per-record registration steps: role, required
// fields, email, age policy, duplicate check, identifier and persistence.
func (s *userService) createAccount(ctx context.Context, tx *gorm.DB, record *PersonRecord, position accountPosition,
	label string, guardian *models.User, actor *Actor) (*models.User, error) {
	record.FirstName = strings.TrimSpace(record.FirstName)
	record.LastName = strings.TrimSpace(record.LastName)
	record.Email = strings.TrimSpace(record.Email)

	if err := utils.ValidateRequiredFields(record.Fields(), position.requiredFields(), label); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(record); err != nil {
		return nil, err
	}

	email, err := s.resolveEmail(ctx, tx, record.Email, position, guardian)
	if err != nil {
		return nil, err
	}

	var dob *time.Time
	if record.DOB != "" {
		parsed, err := utils.ParseDate(record.DOB, "dob")
		if err != nil {
			return nil, err
		}
		dob = &parsed
	}

	if err := checkAgePolicy(position, dob, label); err != nil {
		return nil, err
	}

	if position == positionDependent && dob != nil {
		if err := s.checkDuplicateDependent(ctx, tx, guardian.ID, record.FirstName, record.LastName, *dob, "", label); err != nil {
			return nil, err
		}
	}

	accountID, err := s.nextAccountID(ctx, tx)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(record.Password)
	if err != nil {
		return nil, utils.Internal(err, "Failed to secure password")
	}

	user := buildUser(record, position, accountID, email, dob, hash, guardian, actor)
	if err := s.repo.User().Create(ctx, tx, user); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, utils.Conflict("Account identifier %s is already in use, please retry", accountID)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("Account created", "id", user.ID, "user_id", user.UserID, "role", user.Role, "guardian_id", user.GuardianID)
	return user, nil
}

func (s *userService) updateChild(ctx context.Context, tx *gorm.DB, guardian *models.User, record *PersonRecord, label string, actor *Actor) (*models.User, error) {
	child, err := s.repo.User().GetByID(ctx, tx, *record.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child.GuardianID == nil || *child.GuardianID != guardian.ID {
		return nil, ErrChildNotOwned
	}

	record.Email = strings.TrimSpace(record.Email)
	if record.Email != "" && utils.NormalizeEmail(record.Email) != child.Email {
		return nil, ErrEmailImmutable
	}
	if record.UserID != nil && *record.UserID != child.UserID {
		return nil, ErrUserIDImmutable
	}
	if err := s.validator.Validate(record); err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(record.FirstName); v != "" {
		child.FirstName = v
	}
	if v := strings.TrimSpace(record.LastName); v != "" {
		child.LastName = v
	}
	if record.DOB != "" {
		dob, err := utils.ParseDate(record.DOB, "dob")
		if err != nil {
			return nil, err
		}
		if err := checkAgePolicy(positionDependent, &dob, label); err != nil {
			return nil, err
		}
		child.DOB = toDate(&dob)
	}
	applyProfile(child, record.Phone, record.Gender, record.Details, record.SpecialNeeds)

	if child.DOB != nil {
		if err := s.checkDuplicateDependent(ctx, tx, guardian.ID, child.FirstName, child.LastName, time.Time(*child.DOB), child.ID, label); err != nil {
			return nil, err
		}
	}

	if record.Password != "" {
		hash, err := utils.HashPassword(record.Password)
		if err != nil {
			return nil, utils.Internal(err, "Failed to secure password")
		}
		child.Password = hash
	}

	child.UpdatedBy = actor.AuditID()
	if err := s.repo.User().Update(ctx, tx, child); err != nil {
		return nil, fmt.Errorf("failed to update child: %w", err)
	}
	return child, nil
}
