package models

import (
	"time"
)

// User is a registered account. It is keyed by the lowercase username in the
// backing document; Username keeps the casing given at registration.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"createdAt"`
}
