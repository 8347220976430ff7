// models/user.go
package models

import "time"

// Roles a user can hold.
const (
	RoleUser  = "user"
	RoleHost  = "host"
	RoleAdmin = "admin"
)

// User represents a platform account (guest, host or admin).
type User struct {
	ID                string     `bson:"id" json:"id"`
	Name              string     `bson:"name" json:"name"`
	Email             string     `bson:"email" json:"email"`
	PasswordHash      string     `bson:"passwordHash,omitempty" json:"-"`
	Role              string     `bson:"role" json:"role"`
	Photo             string     `bson:"photo,omitempty" json:"photo,omitempty"`
	PhotoPublicID     string     `bson:"photoPublicId,omitempty" json:"-"`
	PasswordChangedAt *time.Time `bson:"passwordChangedAt,omitempty" json:"-"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// HostSummary is the public face of a listing's host.
type HostSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo,omitempty"`
}

// Summary returns the host fields shown alongside listings.
func (u *User) Summary() *HostSummary {
	return &HostSummary{ID: u.ID, Name: u.Name, Email: u.Email, Photo: u.Photo}
}

// ChangedPasswordAfter reports whether the password was changed after a token
// issued at iat (unix seconds).
func (u *User) ChangedPasswordAfter(iat int64) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.Unix() > iat
}

// UserUpdate carries the whitelisted profile fields a caller may change.
// Nil fields are left untouched.
type UserUpdate struct {
	Name          *string
	Email         *string
	Role          *string
	Photo         *string
	PhotoPublicID *string
}

// IsEmpty reports whether the update carries no changes.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Role == nil && u.Photo == nil
}
