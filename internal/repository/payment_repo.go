package repository

import (
	"context"

	"github.com/user-dashboard/internal/database"
	"github.com/user-dashboard/internal/models"
)

// paymentRepo is the concrete implementation of PaymentRepository
type paymentRepo struct {
	db *database.DB
}

// NewPaymentRepo creates a new payment repository
func NewPaymentRepo(db *database.DB) PaymentRepository {
	return &paymentRepo{db: db}
}

// Create inserts a new payment
func (r *paymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, user_id, amount, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query,
		payment.ID, payment.UserID, payment.Amount, payment.CreatedAt,
	)
	return err
}

// Count returns the total number of payments
func (r *paymentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM payments").Scan(&count)
	return count, err
}

// TotalAmount returns the sum of all payments
func (r *paymentRepo) TotalAmount(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(amount), 0) FROM payments").Scan(&total)
	return total, err
}
