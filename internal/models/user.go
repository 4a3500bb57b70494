package models

import "time"

// Roles assignable to a directory user.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Admission states for a directory user.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// User is the internal directory record mapped from the identity provider.
// Records are created only through the provider's sync webhook; role and
// status are mutated only by an admin.
type User struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	ExternalID string    `bson:"externalId" json:"externalId"` // identity-provider subject
	Email      string    `bson:"email" json:"email"`
	FirstName  string    `bson:"firstName" json:"firstName"`
	LastName   string    `bson:"lastName" json:"lastName"`
	Role       string    `bson:"role" json:"role"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// IsApproved reports whether the user passed admin review.
func (u *User) IsApproved() bool { return u != nil && u.Status == StatusApproved }

// ValidRole reports whether r is an assignable role.
func ValidRole(r string) bool { return r == RoleUser || r == RoleAdmin }

// ValidStatus reports whether s is a known admission state.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}
