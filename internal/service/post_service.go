package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/user-dashboard/internal/models"
	"github.com/user-dashboard/internal/repository"
	"github.com/user-dashboard/internal/validation"
)

// postService is the concrete implementation of PostService
type postService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newPostService creates a new PostService
func newPostService(repos *repository.Repositories, log zerolog.Logger) *postService {
	return &postService{
		repos: repos,
		log:   log.With().Str("service", "post").Logger(),
	}
}

// CreatePost validates and stores a post for an existing user
func (s *postService) CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	if errs := validation.NewValidator().ValidatePost(req); len(errs) > 0 {
		return nil, &ValidationErrors{Errors: errs}
	}

	if err := requireUser(ctx, s.repos.User, req.UserID); err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Title:     strings.TrimSpace(req.Title),
		Price:     req.Price,
		CreatedAt: nowFunc(),
	}
	if err := s.repos.Post.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info().Str("post_id", post.ID).Str("user_id", post.UserID).Msg("Post created")
	return post, nil
}

// requireUser returns ErrUserNotFound unless the user exists
func requireUser(ctx context.Context, users repository.UserRepository, id string) error {
	exists, err := users.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return nil
}
