package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// Role identifies what an actor may do within an organization. Roles are
// issued by the external identity provider; this core only consumes them.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleDirector Role = "DIRECTOR"
	RoleOfficer  Role = "OFFICER"
)

// Valid reports whether the role is one this core recognizes.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDirector, RoleOfficer:
		return true
	}
	return false
}

// Actor is the authenticated identity attached to every request.
type Actor struct {
	UserID         string
	OrganizationID string
	Role           Role
}
