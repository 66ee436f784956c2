package models

import "time"

const SubscriptionStatusActive = "active"

// Subscription is a newsletter entry. Email is normalized (trimmed,
// lowercased) and doubles as the document key.
type Subscription struct {
	Email        string    `json:"email" bson:"email" firestore:"email"`
	SubscribedAt time.Time `json:"subscribedAt" bson:"subscribedAt" firestore:"subscribedAt"`
	Status       string    `json:"status" bson:"status" firestore:"status"`
	Source       string    `json:"source,omitempty" bson:"source,omitempty" firestore:"source,omitempty"`
}

// SubscribeResult is the outcome of a subscribe call.
type SubscribeResult string

const (
	Subscribed        SubscribeResult = "subscribed"
	AlreadySubscribed SubscribeResult = "already_subscribed"
	InvalidEmail      SubscribeResult = "invalid_email"
)

// SubscribeRequest defines the request body for a newsletter signup
type SubscribeRequest struct {
	Email  string `json:"email" validate:"max=254"`
	Source string `json:"source,omitempty" validate:"omitempty,max=50"`
}
