package user

import (
	"context"

	"github.com/google/uuid"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)

	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// ListAdmins is used by the notification fan-out
	ListAdmins(ctx context.Context) ([]User, error)
}
