package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/user-dashboard/internal/database"
	"github.com/user-dashboard/internal/models"
	"github.com/user-dashboard/internal/repository"
	"github.com/user-dashboard/internal/validation"
)

// nowFunc is the clock used for timestamps and the dashboard cutoff
var nowFunc = time.Now

// userService is the concrete implementation of UserService
type userService struct {
	repos        *repository.Repositories
	maxBatchSize int
	log          zerolog.Logger
}

// newUserService creates a new UserService
func newUserService(repos *repository.Repositories, maxBatchSize int, log zerolog.Logger) *userService {
	return &userService{
		repos:        repos,
		maxBatchSize: maxBatchSize,
		log:          log.With().Str("service", "user").Logger(),
	}
}

// ListAggregates returns one aggregate record per user, newest first
func (s *userService) ListAggregates(ctx context.Context) ([]models.UserAggregateRecord, error) {
	records := make([]models.UserAggregateRecord, 0)
	err := s.repos.User.StreamAggregates(ctx, func(r *models.UserAggregateRecord) error {
		records = append(records, *r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list user aggregates: %w", err)
	}

	s.log.Debug().Int("count", len(records)).Msg("Listed user aggregates")
	return records, nil
}

// CreateUser validates and stores a single user
func (s *userService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	v := validation.NewValidator()
	if errs := v.ValidateUser(req); len(errs) > 0 {
		return nil, &ValidationErrors{Errors: errs}
	}

	exists, err := s.repos.User.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	if req.ID != "" {
		taken, err := s.repos.User.Exists(ctx, req.ID)
		if err != nil {
			return nil, fmt.Errorf("check id: %w", err)
		}
		if taken {
			return nil, ErrDuplicateID
		}
	}

	user := newUser(req)
	if err := s.repos.User.Create(ctx, user); err != nil {
		if dupErr := duplicateUserError(err); dupErr != nil {
			return nil, dupErr
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("User created")
	return user, nil
}

// ImportUsers validates a batch as a whole and inserts it only if every
// entry is valid and no email is already registered
func (s *userService) ImportUsers(ctx context.Context, reqs []models.CreateUserRequest) (int, error) {
	if len(reqs) == 0 {
		return 0, nil
	}
	if s.maxBatchSize > 0 && len(reqs) > s.maxBatchSize {
		return 0, fmt.Errorf("%w: %d users, limit is %d", ErrBatchTooLarge, len(reqs), s.maxBatchSize)
	}

	v := validation.NewValidator()
	var errs []validation.ValidationError
	users := make([]*models.User, 0, len(reqs))

	for i := range reqs {
		req := &reqs[i]
		for _, e := range v.ValidateUser(req) {
			e.Field = fmt.Sprintf("users[%d].%s", i, e.Field)
			errs = append(errs, e)
		}
		v.AddUserEmail(req.Email)
		if req.ID != "" {
			v.AddUserID(req.ID)
		}

		exists, err := s.repos.User.EmailExists(ctx, req.Email)
		if err != nil {
			return 0, fmt.Errorf("check email: %w", err)
		}
		if exists {
			errs = append(errs, validation.ValidationError{
				Field:   fmt.Sprintf("users[%d].email", i),
				Message: "email already registered",
				Value:   req.Email,
			})
		}

		// Malformed IDs are already reported by ValidateUser
		if _, perr := uuid.Parse(req.ID); req.ID != "" && perr == nil {
			taken, err := s.repos.User.Exists(ctx, req.ID)
			if err != nil {
				return 0, fmt.Errorf("check id: %w", err)
			}
			if taken {
				errs = append(errs, validation.ValidationError{
					Field:   fmt.Sprintf("users[%d]._id", i),
					Message: "user id already exists",
					Value:   req.ID,
				})
			}
		}

		users = append(users, newUser(req))
	}

	if len(errs) > 0 {
		return 0, &ValidationErrors{Errors: errs}
	}

	inserted, err := s.repos.User.BatchInsert(ctx, users)
	if err != nil {
		if dupErr := duplicateUserError(err); dupErr != nil {
			return 0, dupErr
		}
		return 0, fmt.Errorf("batch insert users: %w", err)
	}

	s.log.Info().Int("inserted", inserted).Msg("Users imported")
	return inserted, nil
}

// GetCount returns the row count for a resource
func (s *userService) GetCount(ctx context.Context, resource string) (int, error) {
	switch resource {
	case "users":
		return s.repos.User.Count(ctx)
	case "posts":
		return s.repos.Post.Count(ctx)
	case "payments":
		return s.repos.Payment.Count(ctx)
	default:
		return 0, fmt.Errorf("unknown resource: %s", resource)
	}
}

// duplicateUserError maps a unique violation on the users table to
// ErrDuplicateID or ErrDuplicateEmail. It returns nil for other errors.
func duplicateUserError(err error) error {
	constraint, ok := database.UniqueConstraint(err)
	if !ok {
		return nil
	}
	if constraint == repository.UserIDConstraint {
		return ErrDuplicateID
	}
	return ErrDuplicateEmail
}

// newUser builds a User from a validated request
func newUser(req *models.CreateUserRequest) *models.User {
	now := nowFunc()
	createdAt := now
	if req.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, req.CreatedAt); err == nil {
			createdAt = t
		}
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	return &models.User{
		ID:        id,
		FullName:  strings.TrimSpace(req.FullName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		CreatedAt: createdAt,
		UpdatedAt: now,
	}
}
