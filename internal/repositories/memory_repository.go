package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/youdeservebetter/backend/internal/domain"
	"github.com/youdeservebetter/backend/internal/models"
)

// MemoryPostRepository keeps posts in process memory. It backs the
// "memory" store backend and the tests.
type MemoryPostRepository struct {
	mu    sync.RWMutex
	posts map[string]*models.Post
}

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{posts: make(map[string]*models.Post)}
}

func (r *MemoryPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	stored := post.Clone()
	stored.ID = uuid.NewString()
	stored.Normalize()

	r.mu.Lock()
	r.posts[stored.ID] = &stored
	r.mu.Unlock()

	post.ID = stored.ID
	return nil
}

func (r *MemoryPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.posts[id]
	if !ok {
		return nil, errPostNotFound
	}
	post := stored.Clone()
	post.Normalize()
	return &post, nil
}

func (r *MemoryPostRepository) ListPosts(ctx context.Context, opts ListOptions) ([]models.Post, error) {
	r.mu.RLock()
	posts := make([]models.Post, 0, len(r.posts))
	for _, stored := range r.posts {
		post := stored.Clone()
		post.Normalize()
		posts = append(posts, post)
	}
	r.mu.RUnlock()

	sort.Slice(posts, func(i, j int) bool {
		return postBefore(posts[i].CreatedAt, posts[i].ID, posts[j].CreatedAt, posts[j].ID)
	})

	if opts.After != nil {
		start := len(posts)
		for i, p := range posts {
			if postBefore(opts.After.CreatedAt, opts.After.ID, p.CreatedAt, p.ID) {
				start = i
				break
			}
		}
		posts = posts[start:]
	}
	if opts.Limit > 0 && len(posts) > opts.Limit {
		posts = posts[:opts.Limit]
	}
	return posts, nil
}

// postBefore reports whether (ta, ida) sorts ahead of (tb, idb) in a
// newest-first listing.
func postBefore(ta time.Time, ida string, tb time.Time, idb string) bool {
	if !ta.Equal(tb) {
		return ta.After(tb)
	}
	return strings.Compare(ida, idb) > 0
}

func (r *MemoryPostRepository) AddLike(ctx context.Context, postID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.posts[postID]
	if !ok {
		return errPostNotFound
	}
	if stored.IsLikedBy(userID) {
		return nil
	}
	stored.LikedBy = append(stored.LikedBy, userID)
	stored.Likes++
	return nil
}

func (r *MemoryPostRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.posts[postID]
	if !ok {
		return errPostNotFound
	}
	kept := stored.LikedBy[:0]
	removed := false
	for _, id := range stored.LikedBy {
		if id == userID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	stored.LikedBy = kept
	if removed {
		stored.Likes--
	}
	return nil
}

func (r *MemoryPostRepository) AppendComment(ctx context.Context, postID string, comment models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.posts[postID]
	if !ok {
		return errPostNotFound
	}
	stored.Comments = append(stored.Comments, comment)
	return nil
}

// StoredLikes returns the raw stored counter, bypassing read normalization.
func (r *MemoryPostRepository) StoredLikes(postID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if stored, ok := r.posts[postID]; ok {
		return stored.Likes
	}
	return 0
}

// MemorySubscriptionRepository keys subscriptions by normalized email.
type MemorySubscriptionRepository struct {
	mu   sync.RWMutex
	subs map[string]models.Subscription
}

func NewMemorySubscriptionRepository() *MemorySubscriptionRepository {
	return &MemorySubscriptionRepository{subs: make(map[string]models.Subscription)}
}

func (r *MemorySubscriptionRepository) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.subs[sub.Email]; exists {
		return errSubscriptionExists(sub.Email)
	}
	r.subs[sub.Email] = *sub
	return nil
}

func (r *MemorySubscriptionRepository) GetSubscription(ctx context.Context, email string) (*models.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subs[email]
	if !ok {
		return nil, domain.NewNotFound("subscription")
	}
	return &sub, nil
}

// Count returns the number of stored subscriptions.
func (r *MemorySubscriptionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}

// MemoryUserRepository is the in-process UserRepository.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	nextID uint
	users  map[uint]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uint]*models.User)}
}

func (r *MemoryUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email || u.UID == user.UID {
			return &domain.ConflictError{Message: "user already exists", ResourceType: "user", ResourceID: u.UID}
		}
		if user.FirebaseUID != nil && u.FirebaseUID != nil && *u.FirebaseUID == *user.FirebaseUID {
			return &domain.ConflictError{Message: "user already exists", ResourceType: "user", ResourceID: u.UID}
		}
	}
	r.nextID++
	user.ID = r.nextID
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *MemoryUserRepository) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			found := *u
			return &found, nil
		}
	}
	return nil, domain.NewNotFound("user")
}

func (r *MemoryUserRepository) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.UID == uid })
}

func (r *MemoryUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *MemoryUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.FirebaseUID != nil && *u.FirebaseUID == firebaseUID })
}

func (r *MemoryUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.NewNotFound("user")
	}
	user.UpdatedAt = time.Now().UTC()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

// MemoryContactRepository is the in-process ContactRepository.
type MemoryContactRepository struct {
	mu       sync.Mutex
	messages []models.ContactMessage
}

func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{}
}

func (r *MemoryContactRepository) CreateMessage(ctx context.Context, msg *models.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg.ID = uint(len(r.messages) + 1)
	r.messages = append(r.messages, *msg)
	return nil
}

// Messages returns a copy of the stored messages.
func (r *MemoryContactRepository) Messages() []models.ContactMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.ContactMessage(nil), r.messages...)
}
