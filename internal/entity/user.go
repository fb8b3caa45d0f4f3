package entity

import "time"

// User accounts are created out-of-band (cmd/seed); the service only reads
// them during login and token verification.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	Role           string    `json:"role"` // USER, ADMIN
	CreatedAt      time.Time `json:"created_at"`
}
