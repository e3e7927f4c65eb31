package models

import (
	"time"
)

// Post represents a rental listing authored by a user
type Post struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CreatePostRequest is the body accepted by POST /v1/posts
type CreatePostRequest struct {
	UserID string  `json:"userId"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
}

// MaxPostTitleLength is the maximum allowed characters in a post title
const MaxPostTitleLength = 200
