package services

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/youdeservebetter/backend/internal/domain"
	"github.com/youdeservebetter/backend/internal/models"
	"github.com/youdeservebetter/backend/internal/repositories"
	"github.com/youdeservebetter/backend/internal/util"
)

const MaxCommentLength = 2000

// EngagementService toggles likes and appends comments on posts.
// Any signed-in user may engage with any post.
type EngagementService struct {
	posts  repositories.PostRepository
	clock  util.Clock
	logger *slog.Logger
}

// NewEngagementService creates a new engagement service
func NewEngagementService(posts repositories.PostRepository, clock util.Clock, logger *slog.Logger) *EngagementService {
	return &EngagementService{posts: posts, clock: clock, logger: logger}
}

// LikeResult reports the caller's like state after a toggle and the re-read post.
type LikeResult struct {
	Liked bool         `json:"liked"`
	Post  *models.Post `json:"post"`
}

// ToggleLike likes the post if the user has not liked it yet, otherwise
// removes the like. The decision comes from a fresh read, and the store
// applies set and counter changes together only when membership changes,
// so overlapping toggles never push likes away from len(likedBy).
func (s *EngagementService) ToggleLike(ctx context.Context, postID string, user *models.Principal) (*LikeResult, error) {
	if user == nil || user.UserID == "" {
		return nil, domain.NewUnauthorized("you must be signed in to like a post")
	}

	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked := post.IsLikedBy(user.UserID)
	if liked {
		err = s.posts.RemoveLike(ctx, postID, user.UserID)
	} else {
		err = s.posts.AddLike(ctx, postID, user.UserID)
	}
	if err != nil {
		return nil, err
	}

	updated, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("like toggled", "post_id", postID, "user_id", user.UserID, "liked", !liked)
	return &LikeResult{Liked: updated.IsLikedBy(user.UserID), Post: updated}, nil
}

// AddComment appends a comment authored by user. Empty text is rejected
// before the store is touched.
func (s *EngagementService) AddComment(ctx context.Context, postID string, user *models.Principal, text string) (*models.Post, error) {
	if user == nil || user.UserID == "" {
		return nil, domain.NewUnauthorized("you must be signed in to comment")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidation("text: cannot be blank")
	}
	if utf8.RuneCountInString(text) > MaxCommentLength {
		return nil, domain.NewValidation("text: comment is too long")
	}

	authorName := user.DisplayName
	if authorName == "" {
		authorName = models.DisplayNameFromEmail(user.Email)
	}
	comment := models.Comment{
		ID:         uuid.NewString(),
		Text:       text,
		AuthorID:   user.UserID,
		AuthorName: authorName,
		CreatedAt:  s.clock.NowUtc(),
	}
	if err := s.posts.AppendComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment added", "post_id", postID, "comment_id", comment.ID, "author_id", user.UserID)
	return s.posts.GetPostByID(ctx, postID)
}
