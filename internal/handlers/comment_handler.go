package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/youdeservebetter/backend/internal/middleware"
	"github.com/youdeservebetter/backend/internal/models"
	"github.com/youdeservebetter/backend/internal/services"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	engagement *services.EngagementService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(engagement *services.EngagementService) *CommentHandler {
	return &CommentHandler{engagement: engagement}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/posts/:id/comments", h.CreateComment, requireAuth)
}

// CreateComment appends a comment to a post and returns the updated post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user := middleware.CurrentPrincipal(c)
	post, err := h.engagement.AddComment(c.Request().Context(), c.Param("id"), user, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newPostResponse(post, user))
}
