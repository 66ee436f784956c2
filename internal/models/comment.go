package models

import "time"

// Comment is embedded in Post.Comments. The sequence is append-only.
type Comment struct {
	ID         string    `json:"id" bson:"id" firestore:"id"`
	Text       string    `json:"text" bson:"text" firestore:"text"`
	AuthorID   string    `json:"authorId" bson:"authorId" firestore:"authorId"`
	AuthorName string    `json:"authorName" bson:"authorName" firestore:"authorName"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}
