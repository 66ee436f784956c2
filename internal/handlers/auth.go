package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/youdeservebetter/backend/internal/domain"
	"github.com/youdeservebetter/backend/internal/middleware"
	"github.com/youdeservebetter/backend/internal/models"
	"github.com/youdeservebetter/backend/internal/repositories"
	"github.com/youdeservebetter/backend/internal/util"
	"github.com/youdeservebetter/backend/pkg/firebase"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	identity       firebase.IdentityProvider
	jwtSecret      []byte
	clock          util.Clock
}

// NewAuthHandler creates a new AuthHandler. identity may be nil, in which
// case Firebase sign-in is unavailable.
func NewAuthHandler(userRepo repositories.UserRepository, identity firebase.IdentityProvider, jwtSecret string, clock util.Clock) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		identity:       identity,
		jwtSecret:      []byte(jwtSecret),
		clock:          clock,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, limiter, requireAuth echo.MiddlewareFunc) {
	g.POST("/signup", h.Signup, limiter)
	g.POST("/signin", h.SignIn, limiter)
	g.POST("/firebase-login", h.FirebaseLogin, limiter)
	g.POST("/signout", h.SignOut, requireAuth)
}

// Signup handles local user registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Check if user with this email already exists
	_, err := h.userRepository.GetUserByEmail(ctx, email)
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, "User with this email already registered")
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = models.DisplayNameFromEmail(email)
	}
	user := &models.User{
		UID:         uuid.NewString(),
		DisplayName: displayName,
		Email:       email,
		Password:    string(hashedPassword),
	}
	if err := h.userRepository.CreateUser(ctx, user); err != nil {
		return err
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token after signup")
	}
	return c.JSON(http.StatusCreated, echo.Map{"token": token, "user": user})
}

// SignIn handles local user authentication with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SigninRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	user, err := h.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
		}
		return err
	}

	// Accounts created through Firebase have no local password.
	if user.Password == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token, "user": user})
}

// FirebaseLogin verifies a Firebase ID token, links or creates the local
// account and issues a local JWT
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.identity == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Firebase sign-in is not configured")
	}

	var req models.FirebaseLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	token, err := h.identity.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	firebaseUID := token.UID
	email, _ := token.Claims["email"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Firebase account has no email address")
	}
	name, _ := token.Claims["name"].(string)

	// Try to find user by Firebase UID
	user, err := h.userRepository.GetUserByFirebaseUID(ctx, firebaseUID)
	switch {
	case err == nil:
		if name != "" {
			user.DisplayName = name
		}
		if err := h.userRepository.UpdateUser(ctx, user); err != nil {
			return err
		}
	case errors.Is(err, domain.ErrNotFound):
		// Not linked yet, try by email
		user, err = h.userRepository.GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			user.FirebaseUID = &firebaseUID
			if err := h.userRepository.UpdateUser(ctx, user); err != nil {
				return err
			}
		case errors.Is(err, domain.ErrNotFound):
			if name == "" {
				name = models.DisplayNameFromEmail(email)
			}
			user = &models.User{
				UID:         firebaseUID,
				DisplayName: name,
				Email:       email,
				FirebaseUID: &firebaseUID,
			}
			if err := h.userRepository.CreateUser(ctx, user); err != nil {
				return err
			}
		default:
			return err
		}
	default:
		return err
	}

	localJWT, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate local JWT")
	}
	return c.JSON(http.StatusOK, echo.Map{"token": localJWT, "user": user})
}

// SignOut ends the session. Local tokens are stateless and simply dropped by
// the client; Firebase refresh tokens of a linked account are revoked.
func (h *AuthHandler) SignOut(c echo.Context) error {
	principal := middleware.CurrentPrincipal(c)
	if h.identity == nil {
		return c.NoContent(http.StatusNoContent)
	}

	ctx := c.Request().Context()
	user, err := h.userRepository.GetUserByUID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.NoContent(http.StatusNoContent)
		}
		return err
	}
	if user.FirebaseUID != nil {
		if err := h.identity.RevokeRefreshTokens(ctx, *user.FirebaseUID); err != nil {
			return echo.NewHTTPError(http.StatusBadGateway, "Failed to revoke Firebase session")
		}
	}
	return c.NoContent(http.StatusNoContent)
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	now := h.clock.NowUtc()
	claims := &models.JwtCustomClaims{
		UID:         user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.jwtSecret)
}
