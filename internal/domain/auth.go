package domain

import "time"

// Token describes an issued bearer token. Tokens are never persisted.
type Token struct {
	ID        string
	Value     string
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
