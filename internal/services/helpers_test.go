package services_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"github.com/youdeservebetter/backend/internal/models"
	"github.com/youdeservebetter/backend/internal/repositories"
	"github.com/youdeservebetter/backend/internal/services"
	"github.com/youdeservebetter/backend/internal/util"
)

func getTestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPrincipal() *models.Principal {
	return &models.Principal{
		UserID:      gofakeit.UUID(),
		Email:       gofakeit.Email(),
		DisplayName: gofakeit.Name(),
	}
}

func validPostRequest() models.CreatePostRequest {
	return models.CreatePostRequest{
		Title:    gofakeit.Paragraph(1, 1, 6, " "),
		Excerpt:  gofakeit.Paragraph(1, 2, 10, " "),
		Content:  gofakeit.Paragraph(1, 4, 10, " "),
		Category: string(models.CategoryMentalHealth),
	}
}

// countingPostRepository records how many writes reach the wrapped store.
type countingPostRepository struct {
	repositories.PostRepository
	writes atomic.Int64
}

func (r *countingPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	r.writes.Add(1)
	return r.PostRepository.CreatePost(ctx, post)
}

func (r *countingPostRepository) AddLike(ctx context.Context, postID, userID string) error {
	r.writes.Add(1)
	return r.PostRepository.AddLike(ctx, postID, userID)
}

func (r *countingPostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	r.writes.Add(1)
	return r.PostRepository.RemoveLike(ctx, postID, userID)
}

func (r *countingPostRepository) AppendComment(ctx context.Context, postID string, comment models.Comment) error {
	r.writes.Add(1)
	return r.PostRepository.AppendComment(ctx, postID, comment)
}

type testEnv struct {
	clock      *util.StubClock
	store      *repositories.MemoryPostRepository
	posts      *countingPostRepository
	postSvc    *services.PostService
	engagement *services.EngagementService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	clock := newStubClock(t)
	store := repositories.NewMemoryPostRepository()
	posts := &countingPostRepository{PostRepository: store}
	return &testEnv{
		clock:      clock,
		store:      store,
		posts:      posts,
		postSvc:    services.NewPostService(posts, clock, discardLogger()),
		engagement: services.NewEngagementService(posts, clock, discardLogger()),
	}
}

// createPost stores a valid post authored by a fresh principal.
func (env *testEnv) createPost(ctx context.Context, t *testing.T) *models.Post {
	t.Helper()
	post, err := env.postSvc.CreatePost(ctx, validPostRequest(), newPrincipal())
	require.NoError(t, err)
	return post
}

func newStubClock(t *testing.T) *util.StubClock {
	t.Helper()
	clock := util.NewStubClock()
	clock.SetNow(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	return clock
}
