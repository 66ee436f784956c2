package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/youdeservebetter/backend/internal/content"
	"github.com/youdeservebetter/backend/internal/domain"
)

// PageHandler serves static page content
type PageHandler struct {
	library *content.Library
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(library *content.Library) *PageHandler {
	return &PageHandler{library: library}
}

// RegisterPageRoutes registers page routes
func (h *PageHandler) RegisterPageRoutes(g *echo.Group) {
	g.GET("/pages", h.ListPages)
	g.GET("/pages/:slug", h.GetPage)
}

func (h *PageHandler) ListPages(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"pages": h.library.Slugs()})
}

func (h *PageHandler) GetPage(c echo.Context) error {
	page, ok := h.library.Page(c.Param("slug"))
	if !ok {
		return domain.NewNotFound("page")
	}
	return c.JSON(http.StatusOK, page)
}
