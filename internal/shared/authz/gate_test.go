package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	admin := &Actor{UserID: "a1", Role: RoleAdmin}
	user := &Actor{UserID: "u1", Role: RoleUser}
	var anonymous *Actor

	tests := []struct {
		name   string
		actor  *Actor
		action Action
		want   bool
	}{
		{"anonymous can list", anonymous, ActionViewList, true},
		{"anonymous can view", anonymous, ActionViewOne, true},
		{"anonymous can export", anonymous, ActionExport, true},
		{"anonymous cannot create", anonymous, ActionCreate, false},
		{"user cannot create", user, ActionCreate, false},
		{"user cannot update", user, ActionUpdate, false},
		{"user cannot delete", user, ActionDelete, false},
		{"admin can create", admin, ActionCreate, true},
		{"admin can update", admin, ActionUpdate, true},
		{"admin can delete", admin, ActionDelete, true},
		{"admin role without user id is anonymous", &Actor{Role: RoleAdmin}, ActionCreate, false},
		{"unknown action is denied", admin, Action("publish"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.actor, tt.action))
		})
	}
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize(&Actor{UserID: "a1", Role: RoleAdmin}, ActionDelete))
	assert.ErrorIs(t, Authorize(&Actor{UserID: "u1", Role: RoleUser}, ActionDelete), ErrForbidden)
	assert.ErrorIs(t, Authorize(nil, ActionCreate), ErrForbidden)
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleUser, ParseRole("user"))
	assert.Equal(t, RoleUser, ParseRole("superuser"))
	assert.Equal(t, RoleUser, ParseRole(""))
}
