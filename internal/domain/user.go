package domain

import "time"

// User represents a registered member of the welfare group.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	BalanceCents int64
	RegisteredAt time.Time
}
