package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/youdeservebetter/backend/internal/domain"
	"github.com/youdeservebetter/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostsCollection is the collection (or Mongo collection) holding blog posts.
const PostsCollection = "blogs"

// PostCursor marks the last post of a page. Listings are ordered by
// (CreatedAt, ID) descending, so the next page starts strictly after it.
type PostCursor struct {
	CreatedAt time.Time
	ID        string
}

// ListOptions narrows a listing. A zero value returns every post.
type ListOptions struct {
	Limit int
	After *PostCursor
}

// PostRepository defines the interface for post data operations.
//
// Reads always report Likes == len(LikedBy). AddLike and RemoveLike change
// the set and the counter together and only when membership actually changes,
// so repeated or concurrent calls for the same user are no-ops.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	ListPosts(ctx context.Context, opts ListOptions) ([]models.Post, error)
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
	AppendComment(ctx context.Context, postID string, comment models.Comment) error
}

var errPostNotFound = domain.NewNotFound("post")

// mongoPost is the stored shape of a post: the model plus its ObjectID.
type mongoPost struct {
	ID          primitive.ObjectID `bson:"_id"`
	models.Post `bson:",inline"`
}

func (d *mongoPost) toModel() models.Post {
	p := d.Post
	p.ID = d.ID.Hex()
	p.Normalize()
	return p
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection(PostsCollection)}
}

// EnsureIndexes creates the index backing the newest-first listing.
func (r *MongoPostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create posts index: %w", err)
	}
	return nil
}

// CreatePost inserts the post and assigns its ID
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	doc := mongoPost{ID: primitive.NewObjectID(), Post: *post}
	doc.Post.Normalize()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	post.ID = doc.ID.Hex()
	return nil
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// a malformed id can never resolve to a post
		return nil, errPostNotFound
	}

	var doc mongoPost
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errPostNotFound
		}
		return nil, fmt.Errorf("find post %s: %w", id, err)
	}
	post := doc.toModel()
	return &post, nil
}

// ListPosts retrieves posts newest first
func (r *MongoPostRepository) ListPosts(ctx context.Context, opts ListOptions) ([]models.Post, error) {
	filter := bson.M{}
	if opts.After != nil {
		afterID, err := primitive.ObjectIDFromHex(opts.After.ID)
		if err != nil {
			return nil, domain.NewValidation("invalid cursor")
		}
		filter = bson.M{"$or": bson.A{
			bson.M{"createdAt": bson.M{"$lt": opts.After.CreatedAt}},
			bson.M{"createdAt": opts.After.CreatedAt, "_id": bson.M{"$lt": afterID}},
		}}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoPost
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	posts := make([]models.Post, 0, len(docs))
	for i := range docs {
		posts = append(posts, docs[i].toModel())
	}
	return posts, nil
}

// AddLike adds userID to likedBy and increments likes in one update,
// matching only when the user has not liked the post yet.
func (r *MongoPostRepository) AddLike(ctx context.Context, postID, userID string) error {
	return r.updateLike(ctx, postID,
		bson.M{"likedBy": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likedBy": userID}, "$inc": bson.M{"likes": 1}},
	)
}

// RemoveLike removes userID from likedBy and decrements likes in one update,
// matching only when the user currently likes the post.
func (r *MongoPostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	return r.updateLike(ctx, postID,
		bson.M{"likedBy": userID},
		bson.M{"$pull": bson.M{"likedBy": userID}, "$inc": bson.M{"likes": -1}},
	)
}

func (r *MongoPostRepository) updateLike(ctx context.Context, postID string, membership bson.M, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return errPostNotFound
	}
	filter := bson.M{"_id": objID}
	for k, v := range membership {
		filter[k] = v
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update likes on %s: %w", postID, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	// Either the post is gone or membership already matches.
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("count post %s: %w", postID, err)
	}
	if count == 0 {
		return errPostNotFound
	}
	return nil
}

// AppendComment pushes the comment onto the post's comments array
func (r *MongoPostRepository) AppendComment(ctx context.Context, postID string, comment models.Comment) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return errPostNotFound
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$push": bson.M{"comments": comment}})
	if err != nil {
		return fmt.Errorf("append comment to %s: %w", postID, err)
	}
	if res.MatchedCount == 0 {
		return errPostNotFound
	}
	return nil
}
