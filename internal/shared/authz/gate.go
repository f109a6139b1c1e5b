package authz

import "errors"

// Role is the closed set of roles carried by an access token
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// ParseRole maps a token claim to a Role. Unknown values become RoleUser.
func ParseRole(s string) Role {
	if r := Role(s); r.Valid() {
		return r
	}
	return RoleUser
}

type Action string

const (
	ActionViewList Action = "view-list"
	ActionViewOne  Action = "view-one"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionExport   Action = "export"
)

var ErrForbidden = errors.New("you are not allowed to perform this action")

// Actor is whoever sent the request. A nil *Actor is an anonymous visitor.
type Actor struct {
	UserID string
	Email  string
	Role   Role
}

func (a *Actor) IsAuthenticated() bool {
	return a != nil && a.UserID != ""
}

func (a *Actor) IsAdmin() bool {
	return a.IsAuthenticated() && a.Role == RoleAdmin
}

// Can decides whether actor may perform action on courses.
// Reads and exports are public; every mutation needs an authenticated admin.
func Can(actor *Actor, action Action) bool {
	switch action {
	case ActionViewList, ActionViewOne, ActionExport:
		return true
	case ActionCreate, ActionUpdate, ActionDelete:
		return actor.IsAdmin()
	default:
		return false
	}
}

// Authorize is Can with an error result for handler pipelines
func Authorize(actor *Actor, action Action) error {
	if !Can(actor, action) {
		return ErrForbidden
	}
	return nil
}
