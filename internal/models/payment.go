package models

import (
	"time"
)

// Payment represents a balance top-up made by a user.
// The sum of a user's payments is reported as totalSpent.
type Payment struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Amount    float64   `json:"amount" db:"amount"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CreatePaymentRequest is the body accepted by POST /v1/payments
type CreatePaymentRequest struct {
	UserID string  `json:"userId"`
	Amount float64 `json:"amount"`
}
