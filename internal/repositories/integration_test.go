package repositories_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/youdeservebetter/backend/internal/domain"
	"github.com/youdeservebetter/backend/internal/models"
	"github.com/youdeservebetter/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"google.golang.org/api/iterator"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMongoDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := getTestContext()
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	db := client.Database("ydb_test_" + strings.ReplaceAll(uuid.NewString(), "-", ""))
	t.Cleanup(func() {
		ctx, cancel := getTestContext()
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestMongoPostRepository(t *testing.T) {
	runPostRepositoryContract(t, func(t *testing.T) repositories.PostRepository {
		repo := repositories.NewMongoPostRepository(newMongoDatabase(t))
		ctx, cancel := getTestContext()
		defer cancel()
		require.NoError(t, repo.EnsureIndexes(ctx))
		return repo
	})
}

func TestMongoSubscriptionRepository(t *testing.T) {
	runSubscriptionRepositoryContract(t, func(t *testing.T) repositories.SubscriptionRepository {
		return repositories.NewMongoSubscriptionRepository(newMongoDatabase(t))
	})
}

// newFirestoreClient connects to the emulator and empties the collections
// the repositories use.
func newFirestoreClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx, cancel := getTestContext()
	defer cancel()

	client, err := firestore.NewClient(ctx, "demo-youdeservebetter")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	for _, name := range []string{repositories.PostsCollection, repositories.NewsletterCollection} {
		clearCollection(ctx, t, client.Collection(name))
	}
	return client
}

func clearCollection(ctx context.Context, t *testing.T, col *firestore.CollectionRef) {
	t.Helper()
	iter := col.Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			return
		}
		require.NoError(t, err)
		_, err = snap.Ref.Delete(ctx)
		require.NoError(t, err)
	}
}

func TestFirestorePostRepository(t *testing.T) {
	runPostRepositoryContract(t, func(t *testing.T) repositories.PostRepository {
		return repositories.NewFirestorePostRepository(newFirestoreClient(t))
	})
}

func TestFirestoreSubscriptionRepository(t *testing.T) {
	runSubscriptionRepositoryContract(t, func(t *testing.T) repositories.SubscriptionRepository {
		return repositories.NewFirestoreSubscriptionRepository(newFirestoreClient(t))
	})
}

func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	connStr := os.Getenv("POSTGRES_TEST_CONN_STR")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_CONN_STR not set")
	}
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, repositories.AutoMigrate(db))
	require.NoError(t, db.Exec("TRUNCATE TABLE users, contact_messages RESTART IDENTITY").Error)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresUserRepository(t *testing.T) {
	ctx, cancel := getTestContext()
	defer cancel()
	repo := repositories.NewPostgresUserRepository(newPostgresDB(t))

	user := &models.User{UID: gofakeit.UUID(), Email: gofakeit.Email(), DisplayName: gofakeit.Name()}
	require.NoError(t, repo.CreateUser(ctx, user))
	require.NotZero(t, user.ID)

	err := repo.CreateUser(ctx, &models.User{UID: gofakeit.UUID(), Email: user.Email})
	require.ErrorIs(t, err, domain.ErrConflict)

	firebaseUID := gofakeit.UUID()
	user.FirebaseUID = &firebaseUID
	require.NoError(t, repo.UpdateUser(ctx, user))

	got, err := repo.GetUserByFirebaseUID(ctx, firebaseUID)
	require.NoError(t, err)
	require.Equal(t, user.UID, got.UID)

	_, err = repo.GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresContactRepository(t *testing.T) {
	ctx, cancel := getTestContext()
	defer cancel()
	repo := repositories.NewPostgresContactRepository(newPostgresDB(t))

	msg := &models.ContactMessage{Name: gofakeit.Name(), Email: gofakeit.Email(), Subject: "Hello", Message: "Hi there"}
	require.NoError(t, repo.CreateMessage(ctx, msg))
	require.NotZero(t, msg.ID)
}
