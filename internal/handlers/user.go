package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/youdeservebetter/backend/internal/middleware"
	"github.com/youdeservebetter/backend/internal/models"
	"github.com/youdeservebetter/backend/internal/repositories"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/users/me", h.GetProfile, requireAuth)
	g.PUT("/users/me", h.UpdateProfile, requireAuth)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	principal := middleware.CurrentPrincipal(c)
	user, err := h.userRepository.GetUserByUID(c.Request().Context(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's display name. Posts and
// comments written earlier keep the name they were created with.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "display_name: cannot be blank")
	}

	ctx := c.Request().Context()
	user, err := h.userRepository.GetUserByUID(ctx, middleware.CurrentPrincipal(c).UserID)
	if err != nil {
		return err
	}
	user.DisplayName = name
	if err := h.userRepository.UpdateUser(ctx, user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
