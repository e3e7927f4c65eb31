package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/user-dashboard/internal/models"
	"github.com/user-dashboard/internal/repository"
	"github.com/user-dashboard/internal/validation"
)

// paymentService is the concrete implementation of PaymentService
type paymentService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newPaymentService creates a new PaymentService
func newPaymentService(repos *repository.Repositories, log zerolog.Logger) *paymentService {
	return &paymentService{
		repos: repos,
		log:   log.With().Str("service", "payment").Logger(),
	}
}

// CreatePayment validates and records a top-up for an existing user
func (s *paymentService) CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error) {
	if errs := validation.NewValidator().ValidatePayment(req); len(errs) > 0 {
		return nil, &ValidationErrors{Errors: errs}
	}

	if err := requireUser(ctx, s.repos.User, req.UserID); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Amount:    req.Amount,
		CreatedAt: nowFunc(),
	}
	if err := s.repos.Payment.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	s.log.Info().
		Str("payment_id", payment.ID).
		Str("user_id", payment.UserID).
		Float64("amount", payment.Amount).
		Msg("Payment recorded")
	return payment, nil
}
