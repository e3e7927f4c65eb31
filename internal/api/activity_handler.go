package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/user-dashboard/internal/models"
	"github.com/user-dashboard/internal/service"
)

// ActivityHandler handles the post and payment endpoints that feed the
// per-user counters
type ActivityHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(services *service.Services, log zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		services: services,
		log:      log.With().Str("handler", "activity").Logger(),
	}
}

// CreatePost handles POST /v1/posts
func (h *ActivityHandler) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	post, err := h.services.Post.CreatePost(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// CreatePayment handles POST /v1/payments
func (h *ActivityHandler) CreatePayment(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	payment, err := h.services.Payment.CreatePayment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, payment)
}
