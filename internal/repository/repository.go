package repository

import (
	"context"

	"github.com/user-dashboard/internal/database"
	"github.com/user-dashboard/internal/models"
)

// Unique constraints on the users table
const (
	UserIDConstraint    = "users_pkey"
	UserEmailConstraint = "users_email_key"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	BatchInsert(ctx context.Context, users []*models.User) (int, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int, error)
	StreamAggregates(ctx context.Context, callback func(*models.UserAggregateRecord) error) error
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Count(ctx context.Context) (int, error)
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	Count(ctx context.Context) (int, error)
	TotalAmount(ctx context.Context) (float64, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Post    PostRepository
	Payment PaymentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Post:    NewPostRepo(db),
		Payment: NewPaymentRepo(db),
	}
}
