package firebase

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// IdentityProvider is the part of the Firebase Auth client this service
// uses. *auth.Client satisfies it.
type IdentityProvider interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// App holds the initialized Firebase app and its clients
type App struct {
	FirebaseApp *firebase.App
	AuthClient  *auth.Client
	Firestore   *firestore.Client
}

// Options selects credentials and which clients to create.
type Options struct {
	CredentialsPath string
	ProjectID       string
	WithFirestore   bool
}

// InitFirebase initializes the Firebase application, the authentication
// client and, when requested, the Firestore client. An empty credentials
// path falls back to application default credentials.
func InitFirebase(ctx context.Context, opts Options) (*App, error) {
	var clientOpts []option.ClientOption
	if opts.CredentialsPath != "" {
		if _, err := os.Stat(opts.CredentialsPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("Firebase credentials file not found at %s", opts.CredentialsPath)
		}
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsPath))
	}

	var fbConfig *firebase.Config
	if opts.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: opts.ProjectID}
	}

	firebaseApp, err := firebase.NewApp(ctx, fbConfig, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}
	app := &App{FirebaseApp: firebaseApp, AuthClient: authClient}

	if opts.WithFirestore {
		fs, err := firebaseApp.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("error getting firestore client: %w", err)
		}
		app.Firestore = fs
	}

	log.Println("Firebase app and auth client initialized successfully!")
	return app, nil
}

// Close releases the Firestore client, if any.
func (a *App) Close() error {
	if a.Firestore != nil {
		return a.Firestore.Close()
	}
	return nil
}
