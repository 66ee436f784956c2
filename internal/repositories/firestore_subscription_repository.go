package repositories

import (
	"context"
	"fmt"
	"net/url"

	"cloud.google.com/go/firestore"
	"github.com/youdeservebetter/backend/internal/domain"
	"github.com/youdeservebetter/backend/internal/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreSubscriptionRepository implements SubscriptionRepository for Cloud Firestore
type FirestoreSubscriptionRepository struct {
	collection *firestore.CollectionRef
}

// NewFirestoreSubscriptionRepository creates a new FirestoreSubscriptionRepository
func NewFirestoreSubscriptionRepository(client *firestore.Client) *FirestoreSubscriptionRepository {
	return &FirestoreSubscriptionRepository{collection: client.Collection(NewsletterCollection)}
}

// subscriptionDocID escapes the email so it is a legal document ID ("/" is not).
func subscriptionDocID(email string) string {
	return url.PathEscape(email)
}

// CreateSubscription uses DocumentRef.Create, which fails if the document exists
func (r *FirestoreSubscriptionRepository) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	_, err := r.collection.Doc(subscriptionDocID(sub.Email)).Create(ctx, sub)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errSubscriptionExists(sub.Email)
		}
		return fmt.Errorf("create subscription: %w", err)
	}
	return nil
}

// GetSubscription looks a subscription up by email
func (r *FirestoreSubscriptionRepository) GetSubscription(ctx context.Context, email string) (*models.Subscription, error) {
	snap, err := r.collection.Doc(subscriptionDocID(email)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.NewNotFound("subscription")
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	var sub models.Subscription
	if err := snap.DataTo(&sub); err != nil {
		return nil, fmt.Errorf("decode subscription: %w", err)
	}
	return &sub, nil
}
