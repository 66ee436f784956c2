package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/youdeservebetter/backend/internal/middleware"
	"github.com/youdeservebetter/backend/internal/services"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	engagement *services.EngagementService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(engagement *services.EngagementService) *LikeHandler {
	return &LikeHandler{engagement: engagement}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/posts/:id/like", h.ToggleLike, requireAuth)
}

// ToggleLike likes or unlikes the post for the caller
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	user := middleware.CurrentPrincipal(c)
	result, err := h.engagement.ToggleLike(c.Request().Context(), c.Param("id"), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"liked": result.Liked,
		"post":  newPostResponse(result.Post, user),
	})
}
