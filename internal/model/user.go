package model

import (
	"time"
)

// Roles a user can hold inside an organization.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// RoleFromProvider maps the identity provider's role string to ours.
// The provider sends "org:admin" for admins; everything else is a member.
func RoleFromProvider(role string) string {
	if role == "org:admin" {
		return RoleAdmin
	}
	return RoleMember
}

type User struct {
	ID              string    `db:"id"`
	TokenIdentifier string    `db:"token_identifier"` // issuer|subject from the identity provider
	Name            *string   `db:"name"`
	Image           *string   `db:"image"`
	CreatedAt       time.Time `db:"created_at"`

	// Loaded separately, ordered by grant time
	Memberships []Membership `db:"-"`
}

type Membership struct {
	UserID    string    `db:"user_id"`
	OrgID     string    `db:"org_id"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}

// RoleIn returns the user's role in the given organization, or "" if the
// user has no membership there.
func (u *User) RoleIn(orgID string) string {
	for _, m := range u.Memberships {
		if m.OrgID == orgID {
			return m.Role
		}
	}
	return ""
}
