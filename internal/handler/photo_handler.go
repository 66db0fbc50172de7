package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/daristays/service-booking/internal/application"
	"github.com/daristays/service-booking/internal/auth"
	"github.com/daristays/service-booking/internal/middleware"
	"github.com/daristays/service-booking/internal/response"
)

// PhotoHandler handles HTTP requests for proof photo operations.
type PhotoHandler struct {
	service *application.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(service *application.PhotoService) *PhotoHandler {
	return &PhotoHandler{service: service}
}

// RegisterRoutes registers all photo routes.
func (h *PhotoHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	photos := r.Group("/api/v1/bookings")
	photos.Use(authMW)
	{
		photos.POST("/:id/photo", middleware.RequireRole(auth.RoleHost), h.UploadProof)
		photos.GET("/:id/photos", h.GetBookingProofs)
	}
}

// UploadProof handles POST /api/v1/bookings/:id/photo.
func (h *PhotoHandler) UploadProof(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	hostID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.UploadProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UploadProof(c.Request.Context(), bookingID, hostID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetBookingProofs handles GET /api/v1/bookings/:id/photos.
func (h *PhotoHandler) GetBookingProofs(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.GetBookingProofs(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
