package service

import (
	"context"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"academy-backend/internal/domains/user"
	"academy-backend/internal/domains/user/repository"
	"academy-backend/internal/shared/authz"
	"academy-backend/pkg/jwt"
)

func newTestService(t *testing.T) (*userService, *repository.MemoryRepository, *jwt.Manager) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	manager := jwt.NewManager("test-secret", time.Hour)
	svc := NewUserService(repo, manager, time.Hour).(*userService)
	svc.bcryptCost = bcrypt.MinCost
	return svc, repo, manager
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, manager := newTestService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, user.RegisterRequest{
		Name:     " Ana ",
		Email:    "Ana@Academy.Local",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", created.Name)
	assert.Equal(t, "ana@academy.local", created.Email)
	assert.Equal(t, authz.RoleUser, created.Role)

	resp, err := svc.Login(ctx, user.LoginRequest{Email: "ana@academy.local", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := manager.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID.String(), claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestRegisterErrors(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, user.RegisterRequest{Name: "Ana", Email: "not-an-email", Password: "short"})
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")

	req := user.RegisterRequest{Name: "Ana", Email: "ana@academy.local", Password: "s3cret-pass"}
	_, err = svc.Register(ctx, req)
	require.NoError(t, err)
	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, user.RegisterRequest{Name: "Ana", Email: "ana@academy.local", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, user.LoginRequest{Email: "ana@academy.local", Password: "wrong-pass"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = svc.Login(ctx, user.LoginRequest{Email: "nobody@academy.local", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestListAdmins(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &user.User{Name: "Root", Email: "root@academy.local", Role: authz.RoleAdmin}))
	require.NoError(t, repo.Create(ctx, &user.User{Name: "Leo", Email: "leo@academy.local", Role: authz.RoleUser}))
	require.NoError(t, repo.Create(ctx, &user.User{Name: "Eva", Email: "eva@academy.local", Role: authz.RoleAdmin}))

	admins, err := svc.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 2)
	assert.Equal(t, "Root", admins[0].Name)
	assert.Equal(t, "Eva", admins[1].Name)
}
