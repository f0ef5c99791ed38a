package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealtrack-v2/backend/internal/service"
	"github.com/pageza/mealtrack-v2/backend/internal/types"
)

// ProfileHandler handles user profile requests
type ProfileHandler struct {
	profiles service.IProfileService
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(profiles service.IProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := userIDFromContext(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.profiles.GetProfile(c.Request.Context(), *userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": user})
}

// UpdateProfile handles PUT /profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := userIDFromContext(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.profiles.UpdateProfile(c.Request.Context(), *userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": user})
}
