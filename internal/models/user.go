package models

import (
	"time"
)

// User represents a registered account on the listing site
type User struct {
	ID        string    `json:"_id" db:"id"`
	FullName  string    `json:"fullName" db:"full_name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Address   string    `json:"address" db:"address"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateUserRequest is the body accepted by POST /v1/users
type CreateUserRequest struct {
	ID        string `json:"_id,omitempty"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	CreatedAt string `json:"createdAt,omitempty"` // RFC3339, defaults to now
}
