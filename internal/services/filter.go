package services

import (
	"fmt"
	"strings"

	"github.com/youdeservebetter/backend/internal/models"
)

const wordsPerMinute = 200

// FilterPosts narrows a listing by category and a case-insensitive search
// over title and excerpt. An empty category or "All" keeps every category;
// an empty search keeps every post. The input order is preserved.
func FilterPosts(posts []models.Post, category, search string) []models.Post {
	category = strings.TrimSpace(category)
	needle := strings.ToLower(strings.TrimSpace(search))

	filtered := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if category != "" && category != models.CategoryAll && string(p.Category) != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Excerpt), needle) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// ReadTime estimates reading time for content, never less than one minute.
func ReadTime(content string) string {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
