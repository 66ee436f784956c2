package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/youdeservebetter/backend/internal/domain"
	"github.com/youdeservebetter/backend/internal/models"
	"github.com/youdeservebetter/backend/internal/repositories"
	"github.com/youdeservebetter/backend/internal/services"
)

func filterFixture() []models.Post {
	return []models.Post{
		{ID: "1", Title: "Quiet mornings", Excerpt: "Start the day with breath work", Category: models.CategoryMentalHealth},
		{ID: "2", Title: "Leading with care", Excerpt: "Stories of women in leadership", Category: models.CategoryWomenEmpowerment},
		{ID: "3", Title: "Reading labels", Excerpt: "What your supplements contain", Category: models.CategoryPharmaceuticalWellness},
		{ID: "4", Title: "Anxiety and sleep", Excerpt: "Small habits, better nights", Category: models.CategoryMentalHealth},
	}
}

func ids(posts []models.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterPosts(t *testing.T) {
	posts := filterFixture()
	tests := []struct {
		name     string
		category string
		search   string
		want     []string
	}{
		{"no filter", "", "", []string{"1", "2", "3", "4"}},
		{"all category", models.CategoryAll, "", []string{"1", "2", "3", "4"}},
		{"category only", string(models.CategoryMentalHealth), "", []string{"1", "4"}},
		{"title search is case insensitive", "", "QUIET", []string{"1"}},
		{"search matches excerpt", "", "supplements", []string{"3"}},
		{"category and search", string(models.CategoryMentalHealth), "sleep", []string{"4"}},
		{"search outside category", string(models.CategoryWomenEmpowerment), "sleep", []string{}},
		{"whitespace search keeps all", "", "   ", []string{"1", "2", "3", "4"}},
		{"unknown category", "Gardening", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.FilterPosts(posts, tt.category, tt.search)
			require.NotNil(t, got)
			require.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterPostsDoesNotModifyInput(t *testing.T) {
	posts := filterFixture()
	_ = services.FilterPosts(posts, string(models.CategoryMentalHealth), "sleep")
	require.Equal(t, filterFixture(), posts)
}

func TestReadTime(t *testing.T) {
	require.Equal(t, "1 min read", services.ReadTime(""))
	require.Equal(t, "1 min read", services.ReadTime("a few words"))
	require.Equal(t, "1 min read", services.ReadTime(strings.Repeat("word ", 200)))
	require.Equal(t, "2 min read", services.ReadTime(strings.Repeat("word ", 201)))
	require.Equal(t, "5 min read", services.ReadTime(strings.Repeat("word ", 1000)))
}

func TestCursorRoundTrip(t *testing.T) {
	c := repositories.PostCursor{CreatedAt: time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.UTC), ID: "abc"}
	decoded, err := services.DecodeCursor(services.EncodeCursor(c))
	require.NoError(t, err)
	require.True(t, c.CreatedAt.Equal(decoded.CreatedAt))
	require.Equal(t, c.ID, decoded.ID)

	empty, err := services.DecodeCursor("")
	require.NoError(t, err)
	require.Nil(t, empty)

	_, err = services.DecodeCursor("e30") // {}
	require.ErrorIs(t, err, domain.ErrValidation)
}
