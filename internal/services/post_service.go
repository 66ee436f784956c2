package services

import (
	"context"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/youdeservebetter/backend/internal/domain"
	"github.com/youdeservebetter/backend/internal/models"
	"github.com/youdeservebetter/backend/internal/repositories"
	"github.com/youdeservebetter/backend/internal/util"
)

const (
	MaxTitleLength   = 200
	MaxExcerptLength = 500
	MaxContentLength = 100000

	DefaultPageSize = 12
	MaxPageSize     = 50
)

// PostService reads and writes blog posts.
type PostService struct {
	posts  repositories.PostRepository
	clock  util.Clock
	logger *slog.Logger
}

// NewPostService creates a new post service
func NewPostService(posts repositories.PostRepository, clock util.Clock, logger *slog.Logger) *PostService {
	return &PostService{posts: posts, clock: clock, logger: logger}
}

// ListPosts returns every post, newest first. The result is a snapshot;
// callers re-invoke it to observe changes.
func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.posts.ListPosts(ctx, repositories.ListOptions{})
}

// PostPage is one page of a cursor-paged listing.
type PostPage struct {
	Posts      []models.Post `json:"posts"`
	NextCursor string        `json:"nextCursor,omitempty"`
}

// ListPostsPage returns up to limit posts after the given cursor.
// NextCursor is empty when the listing is exhausted.
func (s *PostService) ListPostsPage(ctx context.Context, limit int, cursor string) (*PostPage, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	after, err := DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListPosts(ctx, repositories.ListOptions{Limit: limit, After: after})
	if err != nil {
		return nil, err
	}
	page := &PostPage{Posts: posts}
	if len(posts) == limit {
		last := posts[len(posts)-1]
		page.NextCursor = EncodeCursor(repositories.PostCursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return page, nil
}

// GetPost returns the post or an error matching domain.ErrNotFound.
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.posts.GetPostByID(ctx, strings.TrimSpace(id))
}

// CreatePost validates the request, stamps author and creation time and
// stores the post with zero engagement. The stored post is re-read and returned.
func (s *PostService) CreatePost(ctx context.Context, req models.CreatePostRequest, author *models.Principal) (*models.Post, error) {
	if author == nil || author.UserID == "" {
		return nil, domain.NewUnauthorized("you must be signed in to create a post")
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Excerpt = strings.TrimSpace(req.Excerpt)
	req.Content = strings.TrimSpace(req.Content)
	req.Category = strings.TrimSpace(req.Category)
	req.ImageURL = strings.TrimSpace(req.ImageURL)

	if err := validateCreatePost(req); err != nil {
		return nil, err
	}

	imageURL, err := NormalizeImage(req.ImageURL)
	if err != nil {
		return nil, err
	}

	authorName := author.DisplayName
	if authorName == "" {
		authorName = models.DisplayNameFromEmail(author.Email)
	}

	post := &models.Post{
		Title:       req.Title,
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		Category:    models.Category(req.Category),
		ImageURL:    imageURL,
		AuthorID:    author.UserID,
		AuthorName:  authorName,
		AuthorEmail: author.Email,
		CreatedAt:   s.clock.NowUtc(),
		Likes:       0,
		LikedBy:     []string{},
		Comments:    []models.Comment{},
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info("post created",
		"post_id", post.ID,
		"author_id", post.AuthorID,
		"category", post.Category,
	)
	return s.posts.GetPostByID(ctx, post.ID)
}

func categoryValues() []interface{} {
	values := make([]interface{}, 0, len(models.Categories))
	for _, c := range models.Categories {
		values = append(values, string(c))
	}
	return values
}

func validateCreatePost(req models.CreatePostRequest) error {
	err := validation.Errors{
		"title":    validation.Validate(req.Title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		"excerpt":  validation.Validate(req.Excerpt, validation.Required, validation.RuneLength(1, MaxExcerptLength)),
		"content":  validation.Validate(req.Content, validation.Required, validation.RuneLength(1, MaxContentLength)),
		"category": validation.Validate(req.Category, validation.Required, validation.In(categoryValues()...).Error("must be a known category")),
	}.Filter()
	if err != nil {
		return domain.NewValidation(err.Error())
	}
	return nil
}
