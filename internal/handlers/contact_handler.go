package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/youdeservebetter/backend/internal/models"
	"github.com/youdeservebetter/backend/internal/repositories"
	"github.com/youdeservebetter/backend/internal/util"
)

// ContactHandler stores messages sent through the contact form
type ContactHandler struct {
	contactRepository repositories.ContactRepository
	clock             util.Clock
	logger            *slog.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactRepo repositories.ContactRepository, clock util.Clock, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contactRepository: contactRepo, clock: clock, logger: logger}
}

// RegisterContactRoutes registers contact routes behind the given limiter
func (h *ContactHandler) RegisterContactRoutes(g *echo.Group, limiter echo.MiddlewareFunc) {
	g.POST("/contact", h.SendMessage, limiter)
}

// SendMessage validates and stores a contact message
func (h *ContactHandler) SendMessage(c echo.Context) error {
	var req models.ContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg := &models.ContactMessage{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		CreatedAt: h.clock.NowUtc(),
	}
	if err := h.contactRepository.CreateMessage(c.Request().Context(), msg); err != nil {
		return err
	}

	h.logger.Info("contact message received", "message_id", msg.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Thank you for reaching out. We will get back to you soon.",
	})
}
