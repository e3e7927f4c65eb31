package mocks

import (
	"context"
	"fmt"

	"github.com/user-dashboard/internal/dashboard"
	"github.com/user-dashboard/internal/models"
	"github.com/user-dashboard/internal/service"
)

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	Aggregates    []models.UserAggregateRecord
	ListError     error
	CreateFunc    func(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	ImportFunc    func(ctx context.Context, reqs []models.CreateUserRequest) (int, error)
	CreatedUsers  []*models.User
	ImportedBatch [][]models.CreateUserRequest
	Counts        map[string]int
}

// Verify interface compliance
var _ service.UserService = (*MockUserService)(nil)

func NewMockUserService() *MockUserService {
	return &MockUserService{
		Counts: make(map[string]int),
	}
}

func (m *MockUserService) ListAggregates(ctx context.Context) ([]models.UserAggregateRecord, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	if m.Aggregates == nil {
		return []models.UserAggregateRecord{}, nil
	}
	return m.Aggregates, nil
}

func (m *MockUserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	user := &models.User{
		ID:       fmt.Sprintf("user-%d", len(m.CreatedUsers)+1),
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
	}
	m.CreatedUsers = append(m.CreatedUsers, user)
	return user, nil
}

func (m *MockUserService) ImportUsers(ctx context.Context, reqs []models.CreateUserRequest) (int, error) {
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, reqs)
	}
	m.ImportedBatch = append(m.ImportedBatch, reqs)
	return len(reqs), nil
}

func (m *MockUserService) GetCount(ctx context.Context, resource string) (int, error) {
	return m.Counts[resource], nil
}

// MockPostService is a mock implementation of PostService
type MockPostService struct {
	CreateFunc func(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error)
	Created    []*models.Post
}

// Verify interface compliance
var _ service.PostService = (*MockPostService)(nil)

func NewMockPostService() *MockPostService {
	return &MockPostService{}
}

func (m *MockPostService) CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	post := &models.Post{ID: "post-1", UserID: req.UserID, Title: req.Title, Price: req.Price}
	m.Created = append(m.Created, post)
	return post, nil
}

// MockPaymentService is a mock implementation of PaymentService
type MockPaymentService struct {
	CreateFunc func(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error)
	Created    []*models.Payment
}

// Verify interface compliance
var _ service.PaymentService = (*MockPaymentService)(nil)

func NewMockPaymentService() *MockPaymentService {
	return &MockPaymentService{}
}

func (m *MockPaymentService) CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	payment := &models.Payment{ID: "payment-1", UserID: req.UserID, Amount: req.Amount}
	m.Created = append(m.Created, payment)
	return payment, nil
}

// MockDashboardService is a mock implementation of DashboardService
type MockDashboardService struct {
	Model         dashboard.Model
	RequestedPage []int
}

// Verify interface compliance
var _ service.DashboardService = (*MockDashboardService)(nil)

func NewMockDashboardService() *MockDashboardService {
	return &MockDashboardService{}
}

func (m *MockDashboardService) Render(ctx context.Context, page int) dashboard.Model {
	m.RequestedPage = append(m.RequestedPage, page)
	return m.Model
}
