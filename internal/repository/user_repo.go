package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/user-dashboard/internal/database"
	"github.com/user-dashboard/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// aggregatesQuery joins each user with their post count and payment total
const aggregatesQuery = `
	SELECT u.id, u.full_name, u.email, u.phone, u.address, u.created_at,
		COALESCE(p.total_post, 0), COALESCE(pay.total_spent, 0)
	FROM users u
	LEFT JOIN (
		SELECT user_id, COUNT(*) AS total_post FROM posts GROUP BY user_id
	) p ON p.user_id = u.id
	LEFT JOIN (
		SELECT user_id, SUM(amount) AS total_spent FROM payments GROUP BY user_id
	) pay ON pay.user_id = u.id
	ORDER BY u.created_at DESC
`

// Create inserts a new user
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, full_name, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.FullName, user.Email, user.Phone, user.Address,
		user.CreatedAt, time.Now(),
	)
	return err
}

// BatchInsert inserts multiple users using PostgreSQL COPY for efficiency
func (r *userRepo) BatchInsert(ctx context.Context, users []*models.User) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("users",
		"id", "full_name", "email", "phone", "address", "created_at", "updated_at",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now()
	for _, user := range users {
		_, err := stmt.ExecContext(ctx,
			user.ID, user.FullName, user.Email, user.Phone, user.Address,
			user.CreatedAt, now,
		)
		if err != nil {
			return 0, err
		}
	}

	// Execute the COPY
	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return len(users), nil
}

// GetByID retrieves a user by ID
func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT id, full_name, email, phone, address, created_at, updated_at FROM users WHERE id = $1`

	var user models.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.FullName, &user.Email, &user.Phone, &user.Address,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Exists checks if a user with the given ID exists
func (r *userRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// EmailExists checks if a user with the given email exists
func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))", email).Scan(&exists)
	return exists, err
}

// Count returns the total number of users
func (r *userRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// StreamAggregates streams one aggregate record per user, newest first
func (r *userRepo) StreamAggregates(ctx context.Context, callback func(*models.UserAggregateRecord) error) error {
	rows, err := r.db.QueryContext(ctx, aggregatesQuery)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			user       models.User
			totalPost  int
			totalSpent decimal.Decimal
		)
		err := rows.Scan(
			&user.ID, &user.FullName, &user.Email, &user.Phone, &user.Address,
			&user.CreatedAt, &totalPost, &totalSpent,
		)
		if err != nil {
			return err
		}

		record := models.NewAggregateRecord(&user, totalPost, totalSpent)
		if err := callback(&record); err != nil {
			return err
		}
	}

	return rows.Err()
}
