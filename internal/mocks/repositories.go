package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/user-dashboard/internal/models"
	"github.com/user-dashboard/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
// PostCounts and Spent back the aggregate counters per user ID.
type MockUserRepository struct {
	Users            map[string]*models.User
	EmailToUser      map[string]*models.User
	PostCounts       map[string]int
	Spent            map[string]float64
	InsertError      error
	StreamError      error
	InsertedCount    int
	BatchInsertFunc  func(ctx context.Context, users []*models.User) (int, error)
	BatchInsertCalls int
}

// Verify interface compliance
var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[string]*models.User),
		EmailToUser: make(map[string]*models.User),
		PostCounts:  make(map[string]int),
		Spent:       make(map[string]float64),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Users[user.ID] = user
	m.EmailToUser[strings.ToLower(user.Email)] = user
	return nil
}

func (m *MockUserRepository) BatchInsert(ctx context.Context, users []*models.User) (int, error) {
	m.BatchInsertCalls++
	if m.BatchInsertFunc != nil {
		return m.BatchInsertFunc(ctx, users)
	}
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	for _, u := range users {
		m.Users[u.ID] = u
		m.EmailToUser[strings.ToLower(u.Email)] = u
	}
	m.InsertedCount += len(users)
	return len(users), nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.Users[id], nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, exists := m.Users[id]
	return exists, nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, exists := m.EmailToUser[strings.ToLower(email)]
	return exists, nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), nil
}

func (m *MockUserRepository) StreamAggregates(ctx context.Context, callback func(*models.UserAggregateRecord) error) error {
	if m.StreamError != nil {
		return m.StreamError
	}

	users := make([]*models.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})

	for _, u := range users {
		record := models.NewAggregateRecord(u, m.PostCounts[u.ID], decimal.NewFromFloat(m.Spent[u.ID]))
		if err := callback(&record); err != nil {
			return err
		}
	}
	return nil
}

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	Posts       []*models.Post
	Users       *MockUserRepository
	InsertError error
}

// Verify interface compliance
var _ repository.PostRepository = (*MockPostRepository)(nil)

// NewMockPostRepository creates a post mock that bumps post counts on users
func NewMockPostRepository(users *MockUserRepository) *MockPostRepository {
	return &MockPostRepository{Users: users}
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Posts = append(m.Posts, post)
	if m.Users != nil {
		m.Users.PostCounts[post.UserID]++
	}
	return nil
}

func (m *MockPostRepository) Count(ctx context.Context) (int, error) {
	return len(m.Posts), nil
}

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	Payments    []*models.Payment
	Users       *MockUserRepository
	InsertError error
}

// Verify interface compliance
var _ repository.PaymentRepository = (*MockPaymentRepository)(nil)

// NewMockPaymentRepository creates a payment mock that adds to users' spend
func NewMockPaymentRepository(users *MockUserRepository) *MockPaymentRepository {
	return &MockPaymentRepository{Users: users}
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Payments = append(m.Payments, payment)
	if m.Users != nil {
		m.Users.Spent[payment.UserID] += payment.Amount
	}
	return nil
}

func (m *MockPaymentRepository) Count(ctx context.Context) (int, error) {
	return len(m.Payments), nil
}

func (m *MockPaymentRepository) TotalAmount(ctx context.Context) (float64, error) {
	total := 0.0
	for _, p := range m.Payments {
		total += p.Amount
	}
	return total, nil
}

// NewMockRepositories wires user, post and payment mocks together
func NewMockRepositories() (*repository.Repositories, *MockUserRepository, *MockPostRepository, *MockPaymentRepository) {
	users := NewMockUserRepository()
	posts := NewMockPostRepository(users)
	payments := NewMockPaymentRepository(users)

	repos := &repository.Repositories{
		User:    users,
		Post:    posts,
		Payment: payments,
	}
	return repos, users, posts, payments
}
