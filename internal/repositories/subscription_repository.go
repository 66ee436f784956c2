package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/youdeservebetter/backend/internal/domain"
	"github.com/youdeservebetter/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewsletterCollection holds newsletter subscriptions keyed by normalized email.
const NewsletterCollection = "newsletter"

// SubscriptionRepository defines the interface for newsletter subscriptions.
// CreateSubscription fails with a domain.ConflictError when the email is
// already present; the insert itself is the uniqueness check.
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub *models.Subscription) error
	GetSubscription(ctx context.Context, email string) (*models.Subscription, error)
}

func errSubscriptionExists(email string) error {
	return &domain.ConflictError{
		Message:      "This email is already subscribed to our newsletter",
		ResourceType: "subscription",
		ResourceID:   email,
	}
}

type mongoSubscription struct {
	ID                  string `bson:"_id"`
	models.Subscription `bson:",inline"`
}

// MongoSubscriptionRepository implements SubscriptionRepository for MongoDB
type MongoSubscriptionRepository struct {
	collection *mongo.Collection
}

// NewMongoSubscriptionRepository creates a new MongoSubscriptionRepository
func NewMongoSubscriptionRepository(db *mongo.Database) *MongoSubscriptionRepository {
	return &MongoSubscriptionRepository{collection: db.Collection(NewsletterCollection)}
}

// CreateSubscription inserts with _id set to the email
func (r *MongoSubscriptionRepository) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	_, err := r.collection.InsertOne(ctx, mongoSubscription{ID: sub.Email, Subscription: *sub})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errSubscriptionExists(sub.Email)
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetSubscription looks a subscription up by email
func (r *MongoSubscriptionRepository) GetSubscription(ctx context.Context, email string) (*models.Subscription, error) {
	var doc mongoSubscription
	if err := r.collection.FindOne(ctx, bson.M{"_id": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound("subscription")
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return &doc.Subscription, nil
}
