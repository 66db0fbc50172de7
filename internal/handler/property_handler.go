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

// PropertyHandler serves the local property snapshot read model. Snapshots
// are written only by the catalog event consumer, so the routes are read-only.
type PropertyHandler struct {
	service *application.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(service *application.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// RegisterRoutes registers property snapshot routes.
func (h *PropertyHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	properties := r.Group("/api/v1/properties")
	properties.Use(authMW)
	{
		properties.GET("", middleware.RequireRole(auth.RoleHost), h.GetMyProperties)
		properties.GET("/:id", h.GetProperty)
	}
}

// GetMyProperties returns the snapshots for the current host's properties.
func (h *PropertyHandler) GetMyProperties(c *gin.Context) {
	hostID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.GetHostProperties(c.Request.Context(), hostID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetProperty returns a single property snapshot by ID.
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	propertyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid property ID")
		return
	}

	result, err := h.service.GetProperty(c.Request.Context(), propertyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
