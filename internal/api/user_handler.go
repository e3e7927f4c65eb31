package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/user-dashboard/internal/models"
	"github.com/user-dashboard/internal/service"
)

// UserHandler handles user endpoints
type UserHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(services *service.Services, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		services: services,
		log:      log.With().Str("handler", "user").Logger(),
	}
}

// ListUsers handles GET /v1/users
// Returns one aggregate record per user inside the metadata envelope
func (h *UserHandler) ListUsers(c *gin.Context) {
	records, err := h.services.User.ListAggregates(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list users")
		c.JSON(http.StatusInternalServerError, models.UsersEnvelope{
			Message:    "failed to list users",
			StatusCode: http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, models.UsersEnvelope{
		Message:    "Lấy danh sách người dùng thành công",
		StatusCode: http.StatusOK,
		Metadata:   records,
	})
}

// CreateUser handles POST /v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.services.User.CreateUser(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ImportUsers handles POST /v1/users/batch
// The batch is inserted all-or-nothing
func (h *UserHandler) ImportUsers(c *gin.Context) {
	var req struct {
		Users []models.CreateUserRequest `json:"users"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Users) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "users must not be empty"})
		return
	}

	inserted, err := h.services.User.ImportUsers(c.Request.Context(), req.Users)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"inserted": inserted})
}
