// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"uniqueIndex;not null;size:64" json:"username"`
	Email          string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password       string    `gorm:"not null" json:"-"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AuthUser is the sanitized user returned by register and login.
type AuthUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Sanitized returns the public fields echoed back by the auth endpoints.
func (u *User) Sanitized() AuthUser {
	return AuthUser{Username: u.Username, Email: u.Email}
}
