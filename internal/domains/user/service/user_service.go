package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"academy-backend/internal/domains/user"
	"academy-backend/internal/shared/authz"
	"academy-backend/pkg/jwt"
	"academy-backend/pkg/logger"
)

// BcryptCost is the work factor for new password hashes
const BcryptCost = 12

type userService struct {
	repo       user.Repository
	jwtManager *jwt.Manager
	accessTTL  time.Duration
	bcryptCost int
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager, accessTTL time.Duration) user.Service {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
		accessTTL:  accessTTL,
		bcryptCost: BcryptCost,
	}
}

// HashPassword is shared with the seed command
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Register creates a regular user account. Admins are only created by the seed command.
func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	newUser := &user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         authz.RoleUser,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	logger.Info("User registered", map[string]interface{}{
		"user_id": newUser.ID.String(),
	})
	return newUser, nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 1. Unknown email and wrong password look the same to the caller
	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Password check
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	// 3. Token with role claim
	token, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.accessTTL.Seconds()),
		User:        u,
	}, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) ListAdmins(ctx context.Context) ([]user.User, error) {
	return s.repo.ListByRoles(ctx, authz.RoleAdmin)
}
