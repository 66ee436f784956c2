package router

import (
	"log"
	"log/slog"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/youdeservebetter/backend/internal/content"
	"github.com/youdeservebetter/backend/internal/handlers"
	"github.com/youdeservebetter/backend/internal/middleware"
	"github.com/youdeservebetter/backend/internal/repositories"
	"github.com/youdeservebetter/backend/internal/services"
	"github.com/youdeservebetter/backend/internal/util"
	"github.com/youdeservebetter/backend/internal/validators"
	"github.com/youdeservebetter/backend/pkg/firebase"
)

// Dependencies are the stores and settings the routes are wired with.
// Identity may be nil.
type Dependencies struct {
	Posts         repositories.PostRepository
	Subscriptions repositories.SubscriptionRepository
	Users         repositories.UserRepository
	Contacts      repositories.ContactRepository
	Identity      firebase.IdentityProvider
	Pages         *content.Library
	Clock         util.Clock
	Logger        *slog.Logger

	JWTSecret          string
	SiteURL            string
	RateLimitPerMinute int
}

// SetupMiddleware configures global Echo middleware, the validator and the error handler
func SetupMiddleware(e *echo.Echo, logger *slog.Logger, corsOrigins []string) {
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler(logger)

	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	}))
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.RequestID())
	e.Use(eMiddleware.CORSWithConfig(eMiddleware.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(eMiddleware.SecureWithConfig(eMiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(eMiddleware.BodyLimit("15M"))
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Dependencies) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	postService := services.NewPostService(deps.Posts, deps.Clock, deps.Logger)
	engagementService := services.NewEngagementService(deps.Posts, deps.Clock, deps.Logger)
	newsletterService := services.NewNewsletterService(deps.Subscriptions, deps.Clock, deps.Logger)

	authenticator := middleware.NewAuthenticator(deps.JWTSecret, deps.Identity, deps.Users, deps.Clock)
	requireAuth := middleware.RequireAuth()

	api := e.Group("/api/v1")
	api.Use(authenticator.Authenticate())
	log.Println("Authentication middleware applied to /api/v1 group.")

	// Auth routes
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Identity, deps.JWTSecret, deps.Clock)
	authHandler.RegisterAuthRoutes(api.Group("/auth"), middleware.RateLimit(deps.RateLimitPerMinute), requireAuth)
	log.Println("Auth routes configured.")

	// User profile routes
	userHandler := handlers.NewUserHandler(deps.Users)
	userHandler.RegisterProfileRoutes(api, requireAuth)
	log.Println("User profile routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postService)
	postHandler.RegisterPostRoutes(api, requireAuth)
	log.Println("Post routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(engagementService)
	likeHandler.RegisterLikeRoutes(api, requireAuth)
	log.Println("Like routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(engagementService)
	commentHandler.RegisterCommentRoutes(api, requireAuth)
	log.Println("Comment routes configured.")

	// Newsletter routes
	newsletterHandler := handlers.NewNewsletterHandler(newsletterService)
	newsletterHandler.RegisterNewsletterRoutes(api, middleware.RateLimit(deps.RateLimitPerMinute))
	log.Println("Newsletter routes configured.")

	// Contact routes
	contactHandler := handlers.NewContactHandler(deps.Contacts, deps.Clock, deps.Logger)
	contactHandler.RegisterContactRoutes(api, middleware.RateLimit(deps.RateLimitPerMinute))
	log.Println("Contact routes configured.")

	// Static pages
	pageHandler := handlers.NewPageHandler(deps.Pages)
	pageHandler.RegisterPageRoutes(api)

	// RSS feed
	feedHandler := handlers.NewFeedHandler(postService, deps.SiteURL)
	feedHandler.RegisterFeedRoutes(e)
	log.Println("Page and feed routes configured.")

	log.Println("All routes configured.")
}
