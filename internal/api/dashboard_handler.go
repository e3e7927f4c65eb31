package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/user-dashboard/internal/service"
)

// DashboardHandler serves the admin users view
type DashboardHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(services *service.Services, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		services: services,
		log:      log.With().Str("handler", "dashboard").Logger(),
	}
}

// UsersPage handles GET /admin/users?page=N
func (h *DashboardHandler) UsersPage(c *gin.Context) {
	model := h.services.Dashboard.Render(c.Request.Context(), pageParam(c))

	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")
	c.HTML(http.StatusOK, "users.html", model)
}

// UsersJSON handles GET /v1/dashboard/users?page=N
func (h *DashboardHandler) UsersJSON(c *gin.Context) {
	model := h.services.Dashboard.Render(c.Request.Context(), pageParam(c))
	c.JSON(http.StatusOK, model)
}

// pageParam reads the 1-based page number, defaulting to 1
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
