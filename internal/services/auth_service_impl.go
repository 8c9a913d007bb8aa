package services

import (
	"context"
	"strings"

	"github.com/ajharbinger/lunai-strategist/internal/auth"
	apperrors "github.com/ajharbinger/lunai-strategist/internal/errors"
	"github.com/ajharbinger/lunai-strategist/internal/logger"
	"github.com/ajharbinger/lunai-strategist/internal/models"
	"github.com/ajharbinger/lunai-strategist/internal/repository"
)

// authServiceImpl implements AuthService
type authServiceImpl struct {
	users      repository.UserRepository
	tx         repository.TransactionManager
	jwtService *auth.JWTService
	logger     logger.Logger
}

// NewAuthService creates the auth service
func NewAuthService(users repository.UserRepository, tx repository.TransactionManager, jwtService *auth.JWTService, log logger.Logger) AuthService {
	return &authServiceImpl{
		users:      users,
		tx:         tx,
		jwtService: jwtService,
		logger:     log,
	}
}

// Login authenticates a user and returns a token
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
			s.logger.Error("Failed to look up user", err)
		}
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, apperrors.Unauthorized("invalid credentials", nil)
	}

	token, expiresAt, err := s.jwtService.GenerateToken(auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, apperrors.InternalError("failed to generate token", err)
	}

	user.PasswordHash = ""
	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *user,
	}, nil
}

// ValidateToken validates a token and returns its claims
func (s *authServiceImpl) ValidateToken(token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid token", err)
	}
	return claims, nil
}

// EnsureAdmin creates the bootstrap admin account, or resets its password and role when it exists
func (s *authServiceImpl) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return apperrors.InvalidInput("invalid admin password", err).WithOperation("EnsureAdmin")
	}

	return s.tx.WithTransaction(ctx, func(repos *repository.Repositories) error {
		existing, err := repos.User.GetByEmail(ctx, email)
		switch {
		case err == nil:
			existing.PasswordHash = hash
			existing.Role = string(models.RoleAdmin)
			if err := repos.User.Update(ctx, existing); err != nil {
				return err
			}
			s.logger.Info("Admin account updated", "email", email)
		case apperrors.HasCode(err, apperrors.ErrCodeNotFound):
			if err := repos.User.Create(ctx, &models.User{Email: email, PasswordHash: hash, Role: string(models.RoleAdmin)}); err != nil {
				return err
			}
			s.logger.Info("Admin account created", "email", email)
		default:
			return err
		}
		return nil
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
