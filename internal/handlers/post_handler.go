package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/youdeservebetter/backend/internal/middleware"
	"github.com/youdeservebetter/backend/internal/models"
	"github.com/youdeservebetter/backend/internal/services"
)

// PostHandler handles HTTP requests related to blog posts
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post-related routes. Reads are public,
// creating a post goes through requireAuth.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.POST("/posts", h.CreatePost, requireAuth)
	g.GET("/categories", h.GetCategories)
}

// postResponse is a post as rendered to clients, with derived fields.
type postResponse struct {
	models.Post
	ReadTime  string `json:"readTime"`
	LikedByMe bool   `json:"likedByMe"`
}

func newPostResponse(post *models.Post, viewer *models.Principal) postResponse {
	resp := postResponse{Post: *post, ReadTime: services.ReadTime(post.Content)}
	if viewer != nil {
		resp.LikedByMe = post.IsLikedBy(viewer.UserID)
	}
	return resp
}

func newPostResponses(posts []models.Post, viewer *models.Principal) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for i := range posts {
		out = append(out, newPostResponse(&posts[i], viewer))
	}
	return out
}

// GetPosts lists posts newest first, filtered by ?category= and ?q=.
// With ?limit= or ?cursor= the listing is paged and the filter applies to
// the page.
func (h *PostHandler) GetPosts(c echo.Context) error {
	ctx := c.Request().Context()
	category := c.QueryParam("category")
	search := c.QueryParam("q")
	cursor := c.QueryParam("cursor")

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	viewer := middleware.CurrentPrincipal(c)
	if limit == 0 && cursor == "" {
		posts, err := h.postService.ListPosts(ctx)
		if err != nil {
			return err
		}
		filtered := services.FilterPosts(posts, category, search)
		return c.JSON(http.StatusOK, echo.Map{"posts": newPostResponses(filtered, viewer)})
	}

	page, err := h.postService.ListPostsPage(ctx, limit, cursor)
	if err != nil {
		return err
	}
	filtered := services.FilterPosts(page.Posts, category, search)
	return c.JSON(http.StatusOK, echo.Map{
		"posts":      newPostResponses(filtered, viewer),
		"nextCursor": page.NextCursor,
	})
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postService.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPostResponse(post, middleware.CurrentPrincipal(c)))
}

// CreatePost creates a new post authored by the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	author := middleware.CurrentPrincipal(c)
	post, err := h.postService.CreatePost(c.Request().Context(), req, author)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newPostResponse(post, author))
}

// GetCategories returns the selectable categories, "All" first.
func (h *PostHandler) GetCategories(c echo.Context) error {
	categories := make([]string, 0, len(models.Categories)+1)
	categories = append(categories, models.CategoryAll)
	for _, cat := range models.Categories {
		categories = append(categories, string(cat))
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}
