package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
	"github.com/youdeservebetter/backend/internal/domain"
	"github.com/youdeservebetter/backend/internal/models"
	"github.com/youdeservebetter/backend/internal/repositories"
)

func getTestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// baseTime has whole-second precision so every store round-trips it exactly.
var baseTime = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

func newPost(createdAt time.Time) *models.Post {
	return &models.Post{
		Title:       gofakeit.Paragraph(1, 1, 5, " "),
		Excerpt:     gofakeit.Paragraph(1, 1, 12, " "),
		Content:     gofakeit.Paragraph(1, 4, 10, " "),
		Category:    models.CategoryWomenEmpowerment,
		AuthorID:    gofakeit.UUID(),
		AuthorName:  gofakeit.Username(),
		AuthorEmail: gofakeit.Email(),
		CreatedAt:   createdAt,
		LikedBy:     []string{},
		Comments:    []models.Comment{},
	}
}

// runPostRepositoryContract checks the behaviour every PostRepository
// implementation must share. newRepo must return an empty repository.
func runPostRepositoryContract(t *testing.T, newRepo func(t *testing.T) repositories.PostRepository) {
	t.Run("CreateAndGet", func(t *testing.T) {
		ctx, cancel := getTestContext()
		defer cancel()
		repo := newRepo(t)

		post := newPost(baseTime)
		require.NoError(t, repo.CreatePost(ctx, post))
		require.NotEmpty(t, post.ID)

		got, err := repo.GetPostByID(ctx, post.ID)
		require.NoError(t, err)
		require.Equal(t, post.ID, got.ID)
		require.Equal(t, post.Title, got.Title)
		require.Equal(t, post.Category, got.Category)
		require.Equal(t, post.AuthorID, got.AuthorID)
		require.True(t, post.CreatedAt.Equal(got.CreatedAt))
		require.Zero(t, got.Likes)
		require.NotNil(t, got.LikedBy)
		require.NotNil(t, got.Comments)
	})

	t.Run("GetMissing", func(t *testing.T) {
		ctx, cancel := getTestContext()
		defer cancel()
		repo := newRepo(t)

		_, err := repo.GetPostByID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("ListNewestFirstWithCursor", func(t *testing.T) {
		ctx, cancel := getTestContext()
		defer cancel()
		repo := newRepo(t)

		var created []string
		for i := 0; i < 4; i++ {
			post := newPost(baseTime.Add(time.Duration(i) * time.Hour))
			require.NoError(t, repo.CreatePost(ctx, post))
			created = append(created, post.ID)
		}

		all, err := repo.ListPosts(ctx, repositories.ListOptions{})
		require.NoError(t, err)
		require.Len(t, all, 4)
		for i := range all {
			require.Equal(t, created[len(created)-1-i], all[i].ID)
		}

		first, err := repo.ListPosts(ctx, repositories.ListOptions{Limit: 2})
		require.NoError(t, err)
		require.Len(t, first, 2)
		last := first[len(first)-1]

		rest, err := repo.ListPosts(ctx, repositories.ListOptions{
			Limit: 10,
			After: &repositories.PostCursor{CreatedAt: last.CreatedAt, ID: last.ID},
		})
		require.NoError(t, err)
		require.Len(t, rest, 2)
		require.Equal(t, all[2].ID, rest[0].ID)
		require.Equal(t, all[3].ID, rest[1].ID)
	})

	t.Run("LikesFollowMembership", func(t *testing.T) {
		ctx, cancel := getTestContext()
		defer cancel()
		repo := newRepo(t)

		post := newPost(baseTime)
		require.NoError(t, repo.CreatePost(ctx, post))
		user := gofakeit.UUID()

		require.NoError(t, repo.AddLike(ctx, post.ID, user))
		require.NoError(t, repo.AddLike(ctx, post.ID, user))
		got, err := repo.GetPostByID(ctx, post.ID)
		require.NoError(t, err)
		require.Equal(t, 1, got.Likes)
		require.Equal(t, []string{user}, got.LikedBy)

		require.NoError(t, repo.RemoveLike(ctx, post.ID, gofakeit.UUID()))
		require.NoError(t, repo.RemoveLike(ctx, post.ID, user))
		require.NoError(t, repo.RemoveLike(ctx, post.ID, user))
		got, err = repo.GetPostByID(ctx, post.ID)
		require.NoError(t, err)
		require.Zero(t, got.Likes)
		require.Empty(t, got.LikedBy)

		require.ErrorIs(t, repo.AddLike(ctx, "missing", user), domain.ErrNotFound)
		require.ErrorIs(t, repo.RemoveLike(ctx, "missing", user), domain.ErrNotFound)
	})

	t.Run("AppendComment", func(t *testing.T) {
		ctx, cancel := getTestContext()
		defer cancel()
		repo := newRepo(t)

		post := newPost(baseTime)
		require.NoError(t, repo.CreatePost(ctx, post))

		for i := 0; i < 2; i++ {
			require.NoError(t, repo.AppendComment(ctx, post.ID, models.Comment{
				ID:         gofakeit.UUID(),
				Text:       "same text",
				AuthorID:   "u-1",
				AuthorName: "u",
				CreatedAt:  baseTime.Add(time.Duration(i) * time.Minute),
			}))
		}
		got, err := repo.GetPostByID(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, got.Comments, 2)
		require.True(t, got.Comments[0].CreatedAt.Before(got.Comments[1].CreatedAt))

		err = repo.AppendComment(ctx, "missing", models.Comment{ID: gofakeit.UUID(), Text: "x"})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// runSubscriptionRepositoryContract checks duplicate rejection by key.
func runSubscriptionRepositoryContract(t *testing.T, newRepo func(t *testing.T) repositories.SubscriptionRepository) {
	ctx, cancel := getTestContext()
	defer cancel()
	repo := newRepo(t)

	sub := &models.Subscription{
		Email:        gofakeit.Email(),
		SubscribedAt: baseTime,
		Status:       models.SubscriptionStatusActive,
		Source:       "footer",
	}
	require.NoError(t, repo.CreateSubscription(ctx, sub))

	dup := *sub
	dup.Source = "blog"
	require.ErrorIs(t, repo.CreateSubscription(ctx, &dup), domain.ErrConflict)

	got, err := repo.GetSubscription(ctx, sub.Email)
	require.NoError(t, err)
	require.Equal(t, "footer", got.Source)
	require.True(t, baseTime.Equal(got.SubscribedAt))

	_, err = repo.GetSubscription(ctx, "nobody@example.com")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryPostRepository(t *testing.T) {
	runPostRepositoryContract(t, func(t *testing.T) repositories.PostRepository {
		return repositories.NewMemoryPostRepository()
	})
}

func TestMemorySubscriptionRepository(t *testing.T) {
	runSubscriptionRepositoryContract(t, func(t *testing.T) repositories.SubscriptionRepository {
		return repositories.NewMemorySubscriptionRepository()
	})
}

func TestMemoryPostRepositoryReturnsCopies(t *testing.T) {
	ctx, cancel := getTestContext()
	defer cancel()
	repo := repositories.NewMemoryPostRepository()

	post := newPost(baseTime)
	require.NoError(t, repo.CreatePost(ctx, post))

	got, err := repo.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	got.LikedBy = append(got.LikedBy, "intruder")
	got.Title = "changed"

	again, err := repo.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	require.Empty(t, again.LikedBy)
	require.Equal(t, post.Title, again.Title)
}

func TestMemoryUserRepository(t *testing.T) {
	ctx, cancel := getTestContext()
	defer cancel()
	repo := repositories.NewMemoryUserRepository()

	firebaseUID := gofakeit.UUID()
	user := &models.User{UID: gofakeit.UUID(), Email: gofakeit.Email(), DisplayName: gofakeit.Name(), FirebaseUID: &firebaseUID}
	require.NoError(t, repo.CreateUser(ctx, user))
	require.NotZero(t, user.ID)

	dup := &models.User{UID: gofakeit.UUID(), Email: user.Email}
	require.ErrorIs(t, repo.CreateUser(ctx, dup), domain.ErrConflict)

	byEmail, err := repo.GetUserByEmail(ctx, user.Email)
	require.NoError(t, err)
	require.Equal(t, user.UID, byEmail.UID)

	byFirebase, err := repo.GetUserByFirebaseUID(ctx, firebaseUID)
	require.NoError(t, err)
	require.Equal(t, user.UID, byFirebase.UID)

	byFirebase.DisplayName = "renamed"
	require.NoError(t, repo.UpdateUser(ctx, byFirebase))
	byUID, err := repo.GetUserByUID(ctx, user.UID)
	require.NoError(t, err)
	require.Equal(t, "renamed", byUID.DisplayName)

	_, err = repo.GetUserByUID(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, repo.UpdateUser(ctx, &models.User{ID: 999}), domain.ErrNotFound)
}

func TestMemoryContactRepository(t *testing.T) {
	ctx, cancel := getTestContext()
	defer cancel()
	repo := repositories.NewMemoryContactRepository()

	msg := &models.ContactMessage{Name: gofakeit.Name(), Email: gofakeit.Email(), Subject: "Hi", Message: "Hello"}
	require.NoError(t, repo.CreateMessage(ctx, msg))
	require.Equal(t, uint(1), msg.ID)
	require.Len(t, repo.Messages(), 1)
}
