package models

import (
	"time"
)

// Category is one of the fixed blog categories.
type Category string

const (
	CategoryMentalHealth           Category = "Mental Health"
	CategoryWomenEmpowerment       Category = "Women Empowerment"
	CategoryPharmaceuticalWellness Category = "Pharmaceutical Wellness"
)

// CategoryAll is the listing filter value that matches every category.
const CategoryAll = "All"

// Categories lists the valid categories in display order.
var Categories = []Category{
	CategoryMentalHealth,
	CategoryWomenEmpowerment,
	CategoryPharmaceuticalWellness,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Post is a blog post document in the "blogs" collection.
// Author fields are a snapshot of the creating user and never change.
type Post struct {
	ID          string    `json:"id" bson:"-" firestore:"-"`
	Title       string    `json:"title" bson:"title" firestore:"title"`
	Excerpt     string    `json:"excerpt" bson:"excerpt" firestore:"excerpt"`
	Content     string    `json:"content" bson:"content" firestore:"content"`
	Category    Category  `json:"category" bson:"category" firestore:"category"`
	ImageURL    string    `json:"imageUrl" bson:"imageUrl" firestore:"imageUrl"`
	AuthorID    string    `json:"authorId" bson:"authorId" firestore:"authorId"`
	AuthorName  string    `json:"authorName" bson:"authorName" firestore:"authorName"`
	AuthorEmail string    `json:"authorEmail" bson:"authorEmail" firestore:"authorEmail"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
	Likes       int       `json:"likes" bson:"likes" firestore:"likes"`
	LikedBy     []string  `json:"likedBy" bson:"likedBy" firestore:"likedBy"`
	Comments    []Comment `json:"comments" bson:"comments" firestore:"comments"`
}

// IsLikedBy reports whether userID is in LikedBy.
func (p *Post) IsLikedBy(userID string) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Normalize fills nil slices and recomputes Likes from LikedBy so the
// counter reported to callers always equals the number of distinct likers.
func (p *Post) Normalize() {
	if p.LikedBy == nil {
		p.LikedBy = []string{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
	p.Likes = len(p.LikedBy)
}

// Clone returns a deep copy of p.
func (p Post) Clone() Post {
	out := p
	out.LikedBy = append([]string(nil), p.LikedBy...)
	out.Comments = append([]Comment(nil), p.Comments...)
	return out
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Excerpt  string `json:"excerpt" validate:"required,max=500"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required"`
	ImageURL string `json:"imageUrl,omitempty"`
}
