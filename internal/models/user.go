package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account record. UID is the public identifier stamped on
// posts, likes and comments; FirebaseUID links the account to Firebase Auth.
type User struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	UID         string    `json:"uid" gorm:"uniqueIndex;not null"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	Password    string    `json:"-"`
	FirebaseUID *string   `json:"-" gorm:"uniqueIndex"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SignupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"omitempty,max=50"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest defines the request body for Firebase login
type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=50"`
}

// JwtCustomClaims are the claims of a locally issued session token
type JwtCustomClaims struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"name"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID      string
	Email       string
	DisplayName string
}

// Principal converts the claims into the request principal.
func (c *JwtCustomClaims) Principal() *Principal {
	return &Principal{UserID: c.UID, Email: c.Email, DisplayName: c.DisplayName}
}

// Principal returns the principal for the user record.
func (u *User) Principal() *Principal {
	return &Principal{UserID: u.UID, Email: u.Email, DisplayName: u.DisplayName}
}

// DisplayNameFromEmail returns the local part of email, or "Anonymous".
func DisplayNameFromEmail(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return "Anonymous"
	}
	return local
}
