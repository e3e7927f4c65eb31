package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/user-dashboard/internal/config"
	"github.com/user-dashboard/internal/dashboard"
	"github.com/user-dashboard/internal/models"
	"github.com/user-dashboard/internal/repository"
	"github.com/user-dashboard/internal/source"
	"github.com/user-dashboard/internal/stats"
	"github.com/user-dashboard/internal/validation"
)

var (
	// ErrUserNotFound is returned when a referenced user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned when a user's email is already registered
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicateID is returned when a caller-supplied user ID is already taken
	ErrDuplicateID = errors.New("user id already exists")

	// ErrBatchTooLarge is returned when a batch exceeds the configured size
	ErrBatchTooLarge = errors.New("batch too large")
)

// ValidationErrors is returned when a request fails validation
type ValidationErrors struct {
	Errors []validation.ValidationError
}

func (e *ValidationErrors) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for _, ve := range e.Errors {
		fields = append(fields, ve.Field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// UserService defines the interface for user operations
type UserService interface {
	ListAggregates(ctx context.Context) ([]models.UserAggregateRecord, error)
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	ImportUsers(ctx context.Context, reqs []models.CreateUserRequest) (int, error)
	GetCount(ctx context.Context, resource string) (int, error)
}

// PostService defines the interface for post operations
type PostService interface {
	CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error)
}

// PaymentService defines the interface for payment operations
type PaymentService interface {
	CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error)
}

// DashboardService renders the admin users view
type DashboardService interface {
	Render(ctx context.Context, page int) dashboard.Model
}

// Services holds all service interfaces
type Services struct {
	User      UserService
	Post      PostService
	Payment   PaymentService
	Dashboard DashboardService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	fetcher := source.NewClient(cfg.Dashboard.SourceURL, cfg.Dashboard.SourceTimeout, log)

	return &Services{
		User:      newUserService(repos, cfg.Dashboard.MaxBatchSize, log),
		Post:      newPostService(repos, log),
		Payment:   newPaymentService(repos, log),
		Dashboard: NewDashboardService(fetcher, stats.Clock(nowFunc), cfg.Dashboard.Location(), log),
	}
}
