package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/aps-academy/admin-service/internal/auth"
	"github.com/aps-academy/admin-service/internal/models"
	"github.com/aps-academy/admin-service/internal/repositories"
	"github.com/aps-academy/admin-service/internal/utils"
)

type authService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
	tokens *auth.TokenIssuer
}

func NewAuthService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, tokens *auth.TokenIssuer) AuthService {
	return &authService{
		repo:   repo,
		db:     db,
		logger: logger,
		tokens: tokens,
	}
}

// Login checks credentials in a fixed order: presence, account, guardian
// link, password, activation.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	email := utils.NormalizeEmail(req.Email)
	if email == "" || strings.TrimSpace(req.Password) == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.repo.User().GetByEmail(ctx, s.db, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsDependent() {
		return nil, ErrUseGuardianAccount
	}

	ok, err := utils.ComparePassword(req.Password, user.Password)
	if err != nil {
		return nil, utils.Internal(err, "Failed to verify password")
	}
	if !ok {
		s.logger.Warn("Login rejected", "user_id", user.UserID, "reason", "bad_password")
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDeactivated
	}

	session, err := s.IssueSession(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", "id", user.ID, "user_id", user.UserID, "role", user.Role)
	return &LoginResult{User: user, Session: session}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNoToken
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.User().GetByID(ctx, s.db, claims.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInactiveSession
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrInactiveSession
	}
	return user, nil
}

func (s *authService) IssueSession(user *models.User) (*Session, error) {
	if user == nil {
		return nil, utils.Internal(errors.New("nil user"), "Failed to issue session")
	}

	token, err := s.tokens.Issue(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, utils.Internal(err, "Failed to issue session")
	}
	return &Session{
		Token:      token,
		Role:       user.Role,
		CookieName: auth.CookieNameForRole(string(user.Role)),
		ExpiresAt:  timeNow().Add(s.tokens.TTL()),
	}, nil
}
