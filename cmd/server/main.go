package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/youdeservebetter/backend/internal/content"
	"github.com/youdeservebetter/backend/internal/repositories"
	"github.com/youdeservebetter/backend/internal/router"
	"github.com/youdeservebetter/backend/internal/util"
	"github.com/youdeservebetter/backend/pkg/config"
	"github.com/youdeservebetter/backend/pkg/firebase"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if !cfg.IsProduction() {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Env,
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
	)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set unless ENV=development")
	}

	ctx := context.Background()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Initialize Firebase. The memory backend runs without it unless
	// credentials are configured.
	var fbApp *firebase.App
	if cfg.StoreBackend == config.BackendFirestore || cfg.FirebaseCredentialsPath != "" {
		fbApp, err = firebase.InitFirebase(ctx, firebase.Options{
			CredentialsPath: cfg.FirebaseCredentialsPath,
			ProjectID:       cfg.FirebaseProjectID,
			WithFirestore:   cfg.StoreBackend == config.BackendFirestore,
		})
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		defer fbApp.Close()
	}

	deps := router.Dependencies{
		Clock:              util.NewRealClock(),
		Logger:             logger,
		JWTSecret:          cfg.JWTSecret,
		SiteURL:            cfg.SiteURL,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}
	if fbApp != nil {
		deps.Identity = fbApp.AuthClient
	}

	switch cfg.StoreBackend {
	case config.BackendFirestore:
		deps.Posts = repositories.NewFirestorePostRepository(fbApp.Firestore)
		deps.Subscriptions = repositories.NewFirestoreSubscriptionRepository(fbApp.Firestore)
	case config.BackendMongo:
		mongoDB := db.Mongo.Database(cfg.MongoDatabase)
		posts := repositories.NewMongoPostRepository(mongoDB)
		if err := posts.EnsureIndexes(ctx); err != nil {
			log.Fatalf("Failed to create MongoDB indexes: %v", err)
		}
		deps.Posts = posts
		deps.Subscriptions = repositories.NewMongoSubscriptionRepository(mongoDB)
	case config.BackendMemory:
		deps.Posts = repositories.NewMemoryPostRepository()
		deps.Subscriptions = repositories.NewMemorySubscriptionRepository()
	default:
		log.Fatalf("Unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	if db.Postgres != nil {
		if err := repositories.AutoMigrate(db.Postgres); err != nil {
			log.Fatalf("Failed to auto migrate models: %v", err)
		}
		log.Println("PostgreSQL auto-migrations completed.")
		deps.Users = repositories.NewPostgresUserRepository(db.Postgres)
		deps.Contacts = repositories.NewPostgresContactRepository(db.Postgres)
	} else {
		deps.Users = repositories.NewMemoryUserRepository()
		deps.Contacts = repositories.NewMemoryContactRepository()
	}

	pages, err := content.Load()
	if err != nil {
		log.Fatalf("Failed to load page content: %v", err)
	}
	deps.Pages = pages

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Setup global middleware
	router.SetupMiddleware(e, logger, cfg.CORSOrigins)

	// Setup routes and dependencies
	router.SetupRoutes(e, deps)

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
}
