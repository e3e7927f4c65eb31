package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/user-dashboard/internal/models"
)

// Money columns are NUMERIC(15,2)
const moneyScale = 2

var maxMoney = decimal.New(1, 13)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9 .-]{8,20}$`)
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Validator provides validation methods.
// It remembers emails it has accepted so duplicates within one batch are caught.
type Validator struct {
	userEmailCache map[string]bool
	userIDCache    map[string]bool
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		userEmailCache: make(map[string]bool),
		userIDCache:    make(map[string]bool),
	}
}

// AddUserEmail adds an email to the uniqueness cache
func (v *Validator) AddUserEmail(email string) {
	v.userEmailCache[strings.ToLower(email)] = true
}

// AddUserID adds a user ID to the uniqueness cache
func (v *Validator) AddUserID(id string) {
	v.userIDCache[id] = true
}

// ValidateUser validates a user creation request
func (v *Validator) ValidateUser(user *models.CreateUserRequest) []ValidationError {
	var errors []ValidationError

	// ID is optional; the service generates one when absent
	if user.ID != "" {
		if !isValidUUID(user.ID) {
			errors = append(errors, ValidationError{Field: "_id", Message: "invalid UUID format", Value: user.ID})
		} else if v.userIDCache[user.ID] {
			errors = append(errors, ValidationError{Field: "_id", Message: "duplicate id", Value: user.ID})
		}
	}

	// Validate full name
	if strings.TrimSpace(user.FullName) == "" {
		errors = append(errors, ValidationError{Field: "fullName", Message: "fullName is required"})
	}

	// Validate email
	if user.Email == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(user.Email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format", Value: user.Email})
	} else if v.userEmailCache[strings.ToLower(user.Email)] {
		errors = append(errors, ValidationError{Field: "email", Message: "duplicate email", Value: user.Email})
	}

	// Validate phone
	if user.Phone != "" && !phoneRegex.MatchString(user.Phone) {
		errors = append(errors, ValidationError{Field: "phone", Message: "invalid phone number", Value: user.Phone})
	}

	// Validate createdAt
	if user.CreatedAt != "" {
		if _, err := time.Parse(time.RFC3339, user.CreatedAt); err != nil {
			errors = append(errors, ValidationError{Field: "createdAt", Message: "invalid ISO 8601 date format", Value: user.CreatedAt})
		}
	}

	return errors
}

// ValidatePost validates a post creation request
func (v *Validator) ValidatePost(post *models.CreatePostRequest) []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateUserRef(post.UserID)...)

	title := strings.TrimSpace(post.Title)
	if title == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	} else if n := utf8.RuneCountInString(title); n > models.MaxPostTitleLength {
		errors = append(errors, ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title exceeds maximum of %d characters (has %d)", models.MaxPostTitleLength, n),
		})
	}

	if e := validateMoney("price", post.Price, false); e != nil {
		errors = append(errors, *e)
	}

	return errors
}

// ValidatePayment validates a payment creation request
func (v *Validator) ValidatePayment(payment *models.CreatePaymentRequest) []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateUserRef(payment.UserID)...)

	if e := validateMoney("amount", payment.Amount, true); e != nil {
		errors = append(errors, *e)
	}

	return errors
}

func validateUserRef(userID string) []ValidationError {
	if userID == "" {
		return []ValidationError{{Field: "userId", Message: "userId is required"}}
	}
	if !isValidUUID(userID) {
		return []ValidationError{{Field: "userId", Message: "invalid UUID format", Value: userID}}
	}
	return nil
}

// validateMoney checks that v fits a money column: finite, non-negative
// (or positive), below maxMoney and with at most two decimal places
func validateMoney(field string, v float64, positive bool) *ValidationError {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || (positive && v == 0) {
		kind := "non-negative"
		if positive {
			kind = "positive"
		}
		return &ValidationError{Field: field, Message: fmt.Sprintf("%s must be a %s number", field, kind), Value: v}
	}

	d := decimal.NewFromFloat(v)
	if d.GreaterThanOrEqual(maxMoney) {
		return &ValidationError{Field: field, Message: fmt.Sprintf("%s must be less than %s", field, maxMoney.String()), Value: v}
	}
	if !d.Round(moneyScale).Equal(d) {
		return &ValidationError{Field: field, Message: fmt.Sprintf("%s must have at most %d decimal places", field, moneyScale), Value: v}
	}
	return nil
}

// isValidUUID checks if a string is a valid UUID
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
