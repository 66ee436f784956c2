package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/youdeservebetter/backend/internal/domain"
	"github.com/youdeservebetter/backend/internal/models"
	"github.com/youdeservebetter/backend/internal/repositories"
	"github.com/youdeservebetter/backend/internal/util"
	"github.com/youdeservebetter/backend/pkg/firebase"
)

const principalKey = "principal"

// Authenticator resolves bearer tokens into request principals. Tokens are
// tried as locally issued JWTs first and then, when an identity provider is
// configured, as Firebase ID tokens.
type Authenticator struct {
	jwtSecret []byte
	identity  firebase.IdentityProvider
	users     repositories.UserRepository
	clock     util.Clock
}

// NewAuthenticator creates an Authenticator. identity may be nil. Token
// expiry is checked against clock, the same clock that issues tokens.
func NewAuthenticator(jwtSecret string, identity firebase.IdentityProvider, users repositories.UserRepository, clock util.Clock) *Authenticator {
	return &Authenticator{jwtSecret: []byte(jwtSecret), identity: identity, users: users, clock: clock}
}

// Authenticate attaches the caller's principal to the context when a bearer
// token is present. Requests without an Authorization header pass through
// anonymously; a header carrying an invalid token is rejected.
func (a *Authenticator) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			principal, err := a.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				return err
			}
			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// Resolve turns a bearer token into a principal.
func (a *Authenticator) Resolve(ctx context.Context, token string) (*models.Principal, error) {
	claims, err := a.ParseToken(token)
	if err == nil {
		return claims.Principal(), nil
	}
	if a.identity == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	idToken, err := a.identity.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
	}
	user, err := a.users.GetUserByFirebaseUID(ctx, idToken.UID)
	if err == nil {
		return user.Principal(), nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	email, _ := idToken.Claims["email"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	verified, _ := idToken.Claims["email_verified"].(bool)
	if verified && email != "" {
		user, err := a.users.GetUserByEmail(ctx, email)
		if err == nil {
			return user.Principal(), nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	// No local account yet, so the token claims stand in.
	name, _ := idToken.Claims["name"].(string)
	return &models.Principal{UserID: idToken.UID, Email: email, DisplayName: name}, nil
}

// ParseToken validates a locally issued HS256 token.
func (a *Authenticator) ParseToken(tokenString string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.jwtSecret, nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UID == "" {
		return nil, errors.New("invalid token")
	}

	now := a.clock.NowUtc()
	if !claims.VerifyExpiresAt(now, true) {
		return nil, errors.New("token is expired")
	}
	if !claims.VerifyNotBefore(now, false) {
		return nil, errors.New("token is not valid yet")
	}
	return claims, nil
}

// RequireAuth rejects requests that Authenticate left anonymous.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentPrincipal(c) == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}
			return next(c)
		}
	}
}

// CurrentPrincipal returns the authenticated caller, or nil.
func CurrentPrincipal(c echo.Context) *models.Principal {
	p, _ := c.Get(principalKey).(*models.Principal)
	return p
}
