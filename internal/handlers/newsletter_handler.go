package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/youdeservebetter/backend/internal/domain"
	"github.com/youdeservebetter/backend/internal/models"
	"github.com/youdeservebetter/backend/internal/services"
)

// NewsletterHandler handles newsletter signups
type NewsletterHandler struct {
	newsletter *services.NewsletterService
}

// NewNewsletterHandler creates a new NewsletterHandler
func NewNewsletterHandler(newsletter *services.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter}
}

// RegisterNewsletterRoutes registers newsletter routes behind the given limiter
func (h *NewsletterHandler) RegisterNewsletterRoutes(g *echo.Group, limiter echo.MiddlewareFunc) {
	g.POST("/newsletter", h.Subscribe, limiter)
}

// Subscribe records a newsletter subscription. The body always carries a
// status so clients can tell a duplicate from a failure.
func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req models.SubscribeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, sub, err := h.newsletter.Subscribe(c.Request().Context(), req.Email, req.Source)
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"status": result, "error": err.Error()})
	case err != nil:
		return err
	}

	if result == models.AlreadySubscribed {
		return c.JSON(http.StatusConflict, echo.Map{
			"status": result,
			"error":  "This email is already subscribed to our newsletter",
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"status":       result,
		"message":      "Successfully subscribed to our newsletter!",
		"subscription": sub,
	})
}
