package user

import (
	"context"

	"github.com/google/uuid"

	"academy-backend/internal/shared/authz"
)

type Repository interface {
	Create(ctx context.Context, user *User) error

	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	FindByEmail(ctx context.Context, email string) (*User, error)

	// ListByRoles returns every user holding one of roles, oldest first
	ListByRoles(ctx context.Context, roles ...authz.Role) ([]User, error)
}
