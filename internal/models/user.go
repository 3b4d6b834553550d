package models

import (
	"fmt"
	"strings"
	"time"
)

// User represents a library owner. Every Video and Playlist belongs to exactly
// one user, and the owner id is a mandatory partition key on every query.
type User struct {
	id          string
	sequence    int
	email       string
	displayName string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewUser creates a User with the given email and display name.
func NewUser(sequence int, email, displayName string) *User {
	now := time.Now()
	return &User{
		sequence:    sequence,
		email:       email,
		displayName: displayName,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (u *User) ID() string           { return u.id }
func (u *User) Sequence() int        { return u.sequence }
func (u *User) Email() string        { return u.email }
func (u *User) DisplayName() string  { return u.displayName }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

func (u *User) SetID(id string)          { u.id = id }
func (u *User) SetSequence(seq int)      { u.sequence = seq }
func (u *User) SetUpdatedAt(t time.Time) { u.updatedAt = t }
func (u *User) SetCreatedAt(t time.Time) { u.createdAt = t }
func (u *User) SetDisplayName(n string)  { u.displayName = n }

// Validate checks that the email is present and plausibly formed.
func (u *User) Validate() error {
	if u.email == "" {
		return fmt.Errorf("user email is required")
	}
	if !strings.Contains(u.email, "@") {
		return fmt.Errorf("user email is invalid: %s", u.email)
	}
	return nil
}
