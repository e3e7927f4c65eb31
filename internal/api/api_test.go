package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/user-dashboard/internal/api"
	"github.com/user-dashboard/internal/config"
	"github.com/user-dashboard/internal/dashboard"
	"github.com/user-dashboard/internal/mocks"
	"github.com/user-dashboard/internal/models"
	"github.com/user-dashboard/internal/service"
	"github.com/user-dashboard/internal/validation"
)

type testServices struct {
	user      *mocks.MockUserService
	post      *mocks.MockPostService
	payment   *mocks.MockPaymentService
	dashboard *mocks.MockDashboardService
}

func setupTestRouter() (*gin.Engine, *testServices) {
	gin.SetMode(gin.TestMode)

	ts := &testServices{
		user:      mocks.NewMockUserService(),
		post:      mocks.NewMockPostService(),
		payment:   mocks.NewMockPaymentService(),
		dashboard: mocks.NewMockDashboardService(),
	}

	services := &service.Services{
		User:      ts.user,
		Post:      ts.post,
		Payment:   ts.payment,
		Dashboard: ts.dashboard,
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080"},
	}

	router := api.NewRouter(services, cfg, zerolog.Nop())
	return router, ts
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	w := doJSON(router, "GET", "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "user-dashboard" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, ts := setupTestRouter()
	ts.user.Counts["users"] = 120
	ts.user.Counts["posts"] = 340
	ts.user.Counts["payments"] = 56

	w := doJSON(router, "GET", "/metrics", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	db := response["database"].(map[string]interface{})
	if db["users"].(float64) != 120 {
		t.Errorf("Expected 120 users, got %v", db["users"])
	}
	if db["posts"].(float64) != 340 {
		t.Errorf("Expected 340 posts, got %v", db["posts"])
	}
}

func TestListUsers_Envelope(t *testing.T) {
	router, ts := setupTestRouter()
	ts.user.Aggregates = []models.UserAggregateRecord{
		models.NewAggregateRecord(&models.User{
			ID:        "65f1",
			FullName:  "Nguyễn Văn A",
			Email:     "a@example.com",
			CreatedAt: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		}, 4, decimal.NewFromInt(250000)),
	}

	w := doJSON(router, "GET", "/v1/users", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var response struct {
		StatusCode int                      `json:"statusCode"`
		Metadata   []map[string]interface{} `json:"metadata"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if response.StatusCode != 200 {
		t.Errorf("Expected statusCode 200, got %d", response.StatusCode)
	}
	if len(response.Metadata) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(response.Metadata))
	}

	rec := response.Metadata[0]
	user := rec["user"].(map[string]interface{})
	if user["_id"] != "65f1" || user["createdAt"] != "2026-10-01T00:00:00Z" {
		t.Errorf("Unexpected user %v", user)
	}
	if rec["totalPost"].(float64) != 4 || rec["totalSpent"].(float64) != 250000 {
		t.Errorf("Unexpected counters %v", rec)
	}
}

func TestListUsers_EmptyIsArray(t *testing.T) {
	router, _ := setupTestRouter()

	w := doJSON(router, "GET", "/v1/users", "")
	if !strings.Contains(w.Body.String(), `"metadata":[]`) {
		t.Errorf("Expected empty metadata array, got %s", w.Body.String())
	}
}

func TestListUsers_Error(t *testing.T) {
	router, ts := setupTestRouter()
	ts.user.ListError = errors.New("db down")

	w := doJSON(router, "GET", "/v1/users", "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}

func TestCreateUser(t *testing.T) {
	router, ts := setupTestRouter()

	w := doJSON(router, "POST", "/v1/users", `{"fullName":"B","email":"b@example.com","phone":"0901234567"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(ts.user.CreatedUsers) != 1 {
		t.Errorf("Expected 1 created user, got %d", len(ts.user.CreatedUsers))
	}
}

func TestCreateUser_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "validation",
			err:        &service.ValidationErrors{Errors: []validation.ValidationError{{Field: "email", Message: "email is required"}}},
			wantStatus: http.StatusBadRequest,
		},
		{name: "duplicate email", err: service.ErrDuplicateEmail, wantStatus: http.StatusConflict},
		{name: "duplicate id", err: service.ErrDuplicateID, wantStatus: http.StatusConflict},
		{name: "internal", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, ts := setupTestRouter()
			ts.user.CreateFunc = func(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
				return nil, tt.err
			}

			w := doJSON(router, "POST", "/v1/users", `{"fullName":"B","email":"b@example.com"}`)
			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestCreateUser_InvalidBody(t *testing.T) {
	router, _ := setupTestRouter()

	w := doJSON(router, "POST", "/v1/users", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestImportUsers(t *testing.T) {
	router, ts := setupTestRouter()

	w := doJSON(router, "POST", "/v1/users/batch", `{"users":[{"fullName":"A","email":"a@example.com"},{"fullName":"B","email":"b@example.com"}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	if response["inserted"].(float64) != 2 {
		t.Errorf("Expected 2 inserted, got %v", response["inserted"])
	}
	if len(ts.user.ImportedBatch) != 1 {
		t.Errorf("Expected one batch, got %d", len(ts.user.ImportedBatch))
	}

	w = doJSON(router, "POST", "/v1/users/batch", `{"users":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for empty batch, got %d", w.Code)
	}
}

func TestCreatePost_UnknownUser(t *testing.T) {
	router, ts := setupTestRouter()
	ts.post.CreateFunc = func(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
		return nil, service.ErrUserNotFound
	}

	w := doJSON(router, "POST", "/v1/posts", `{"userId":"550e8400-e29b-41d4-a716-446655440000","title":"x"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestCreatePayment(t *testing.T) {
	router, ts := setupTestRouter()

	w := doJSON(router, "POST", "/v1/payments", `{"userId":"550e8400-e29b-41d4-a716-446655440000","amount":50000}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", w.Code)
	}
	if len(ts.payment.Created) != 1 || ts.payment.Created[0].Amount != 50000 {
		t.Errorf("Unexpected payments %v", ts.payment.Created)
	}
}

func sampleModel() dashboard.Model {
	snap := dashboard.NewState(func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }).
		Replace([]models.UserAggregateRecord{
			models.NewAggregateRecord(&models.User{
				ID:        "row-1",
				FullName:  "Võ Thị <E>",
				Email:     "e@example.com",
				CreatedAt: time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC),
			}, 2, decimal.NewFromInt(1200000)),
		})
	return dashboard.BuildModel(snap, dashboard.OutcomeLoaded, 1, time.UTC)
}

func TestDashboardPage(t *testing.T) {
	router, ts := setupTestRouter()
	ts.dashboard.Model = sampleModel()

	w := doJSON(router, "GET", "/admin/users?page=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected HTML, got %s", ct)
	}

	body := w.Body.String()
	for _, want := range []string{"Total users", "New users", "Total revenue", "1.200.000 VNĐ", "10/10/2026", `data-row-key="row-1"`, "Võ Thị &lt;E&gt;"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected page to contain %q", want)
		}
	}
	if ts.dashboard.RequestedPage[0] != 2 {
		t.Errorf("Expected page 2 requested, got %d", ts.dashboard.RequestedPage[0])
	}
}

func TestDashboardPage_EmptyState(t *testing.T) {
	router, ts := setupTestRouter()
	ts.dashboard.Model = dashboard.BuildModel(dashboard.Snapshot{Records: dashboard.EmptyCollection}, dashboard.OutcomeFallback, 1, time.UTC)

	w := doJSON(router, "GET", "/admin/users", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Fetch failures must not surface as errors, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No data") {
		t.Error("Expected empty table placeholder")
	}
}

func TestDashboardJSON(t *testing.T) {
	router, ts := setupTestRouter()
	ts.dashboard.Model = sampleModel()

	w := doJSON(router, "GET", "/v1/dashboard/users?page=abc", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ts.dashboard.RequestedPage[0] != 1 {
		t.Errorf("Invalid page should default to 1, got %d", ts.dashboard.RequestedPage[0])
	}

	var response struct {
		Outcome string              `json:"outcome"`
		Stats   models.SummaryStats `json:"stats"`
		Rows    []dashboard.Row     `json:"rows"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if response.Outcome != "loaded" {
		t.Errorf("Expected loaded outcome, got %s", response.Outcome)
	}
	if response.Stats.TotalUsers != 1 || response.Stats.NewUsers != 1 || response.Stats.TotalRevenue.InexactFloat64() != 1200000 {
		t.Errorf("Unexpected stats %+v", response.Stats)
	}
	if len(response.Rows) != 1 || response.Rows[0].Key != "row-1" {
		t.Errorf("Unexpected rows %+v", response.Rows)
	}
}
