// Package model defines the data structures used throughout the application.
package model

import (
	"fmt"
	"strings"

	"github.com/sakif/userdir/internal/apperror"
)

// UserID is the identity the repository assigns at creation time.
// IDs start at 1, only ever grow, and are never handed out twice.
type UserID uint32

// Status is the account state. Any status may move to any other status;
// there is no transition graph.
type Status int

const (
	StatusActive Status = iota
	StatusInactive
	StatusPending
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusInactive:
		return "Inactive"
	case StatusPending:
		return "Pending"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	default:
		return false
	}
}

// ParseStatus is case-insensitive: "active", "Active" and "ACTIVE" all parse.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive, nil
	case "inactive":
		return StatusInactive, nil
	case "pending":
		return StatusPending, nil
	}
	return 0, fmt.Errorf("model: unknown status %q", s)
}

// Preferences are the per-user settings attached to every account.
type Preferences struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	Language      string `json:"language"`
}

// DefaultPreferences returns the settings every new user starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:         "light",
		Notifications: true,
		Language:      "en",
	}
}

// User represents one entry in the directory.
//
// WHY Age *uint8?
// Age is optional: nil means "unknown", which is not the same as 0.
// A pointer keeps that distinction without a separate "has age" flag.
// Use AgeOf to build one inline: model.AgeOf(28).
//
// CreatedAt is Unix seconds, set once in New and never touched again.
type User struct {
	ID          UserID      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Age         *uint8      `json:"age,omitempty"`
	Status      Status      `json:"status"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   uint64      `json:"createdAt"`
}

// New builds a validated User. It is the only path that enforces the email
// rule; the repository calls it from Create after assigning an ID.
func New(id UserID, name, email string, age *uint8, createdAt uint64) (*User, error) {
	if !ValidateEmail(email) {
		return nil, apperror.InvalidEmail(email)
	}

	return &User{
		ID:          id,
		Name:        name,
		Email:       email,
		Age:         age,
		Status:      StatusActive,
		Preferences: DefaultPreferences(),
		CreatedAt:   createdAt,
	}, nil
}

// AgeOf returns a pointer to n for populating User.Age.
func AgeOf(n uint8) *uint8 {
	return &n
}

// IsAdult reports whether the user is known to be 18 or older.
// An unknown age counts as not adult.
func (u *User) IsAdult() bool {
	return u.Age != nil && *u.Age >= 18
}

// UpdateStatus replaces the status unconditionally.
func (u *User) UpdateStatus(status Status) {
	u.Status = status
}

// Clone returns a deep copy, so callers can hold a User without sharing the
// Age pointer with the stored record.
func (u *User) Clone() *User {
	c := *u
	if u.Age != nil {
		c.Age = AgeOf(*u.Age)
	}
	return &c
}

func (u User) String() string {
	return fmt.Sprintf("User { id: %d, name: %s, email: %s, status: %s }",
		u.ID, u.Name, u.Email, u.Status)
}
