package repositories

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/youdeservebetter/backend/internal/models"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestorePostRepository implements PostRepository for Cloud Firestore
type FirestorePostRepository struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
}

// NewFirestorePostRepository creates a new FirestorePostRepository
func NewFirestorePostRepository(client *firestore.Client) *FirestorePostRepository {
	return &FirestorePostRepository{client: client, collection: client.Collection(PostsCollection)}
}

func decodePostSnapshot(snap *firestore.DocumentSnapshot) (models.Post, error) {
	var post models.Post
	if err := snap.DataTo(&post); err != nil {
		return models.Post{}, fmt.Errorf("decode post %s: %w", snap.Ref.ID, err)
	}
	post.ID = snap.Ref.ID
	post.Normalize()
	return post, nil
}

// CreatePost creates the document under a generated ID
func (r *FirestorePostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	ref := r.collection.NewDoc()
	doc := post.Clone()
	doc.Normalize()
	if _, err := ref.Create(ctx, doc); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	post.ID = ref.ID
	return nil
}

// GetPostByID retrieves a post by document ID
func (r *FirestorePostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	if id == "" {
		return nil, errPostNotFound
	}
	snap, err := r.collection.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errPostNotFound
		}
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	post, err := decodePostSnapshot(snap)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns posts ordered by createdAt, then document ID, descending
func (r *FirestorePostRepository) ListPosts(ctx context.Context, opts ListOptions) ([]models.Post, error) {
	q := r.collection.OrderBy("createdAt", firestore.Desc).OrderBy(firestore.DocumentID, firestore.Desc)
	if opts.After != nil {
		q = q.StartAfter(opts.After.CreatedAt, opts.After.ID)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	posts := []models.Post{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		post, err := decodePostSnapshot(snap)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// AddLike unions userID into likedBy and increments likes inside a transaction
func (r *FirestorePostRepository) AddLike(ctx context.Context, postID, userID string) error {
	return r.updateLike(ctx, postID, userID, true)
}

// RemoveLike removes userID from likedBy and decrements likes inside a transaction
func (r *FirestorePostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	return r.updateLike(ctx, postID, userID, false)
}

func (r *FirestorePostRepository) updateLike(ctx context.Context, postID, userID string, like bool) error {
	if postID == "" {
		return errPostNotFound
	}
	ref := r.collection.Doc(postID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		post, err := decodePostSnapshot(snap)
		if err != nil {
			return err
		}
		if post.IsLikedBy(userID) == like {
			return nil
		}
		if like {
			return tx.Update(ref, []firestore.Update{
				{Path: "likedBy", Value: firestore.ArrayUnion(userID)},
				{Path: "likes", Value: firestore.Increment(1)},
			})
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "likedBy", Value: firestore.ArrayRemove(userID)},
			{Path: "likes", Value: firestore.Increment(-1)},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errPostNotFound
		}
		return fmt.Errorf("update likes on %s: %w", postID, err)
	}
	return nil
}

// AppendComment adds the comment with ArrayUnion; comment IDs are unique so
// the union always appends.
func (r *FirestorePostRepository) AppendComment(ctx context.Context, postID string, comment models.Comment) error {
	if postID == "" {
		return errPostNotFound
	}
	_, err := r.collection.Doc(postID).Update(ctx, []firestore.Update{
		{Path: "comments", Value: firestore.ArrayUnion(comment)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errPostNotFound
		}
		return fmt.Errorf("append comment to %s: %w", postID, err)
	}
	return nil
}
