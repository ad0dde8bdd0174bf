package models

import "time"

// ResetToken is a single-use, time-limited secret that lets a user change
// their password without knowing the old one. At most one usable token
// exists per user; issuing a new one replaces the old.
type ResetToken struct {
	Token     string    `json:"-"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
