package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for local authentication. ID is the
// role-scoped identifier (student_id or teacher_id).
type LoginRequest struct {
	ID       string `json:"id" form:"id" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// FederatedLoginRequest is the Google sign-in payload the browser forwards
// after authenticating with Firebase. Only email is hard-required; a
// missing token fails verification when the verifier is enabled.
type FederatedLoginRequest struct {
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
	UID         string `json:"uid"`
	IDToken     string `json:"idToken"`
}

// Identity describes the authenticated account in responses and request
// context.
type Identity struct {
	Role       Role   `json:"role"`
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Department string `json:"department,omitempty"`
	Federated  bool   `json:"federated,omitempty"`
}

// LoginResponse returns the issued session token and identity.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in"`
	User      Identity  `json:"user"`
	IssuedAt  time.Time `json:"issued_at"`
}

// SessionClaims is the JWT payload for session tokens. Subject carries the
// role-scoped account id.
type SessionClaims struct {
	Role       Role   `json:"role"`
	FullName   string `json:"full_name"`
	Department string `json:"department,omitempty"`
	Federated  bool   `json:"federated,omitempty"`
	jwt.RegisteredClaims
}

// Identity converts claims back into the context identity.
func (c *SessionClaims) Identity() Identity {
	return Identity{
		Role:       c.Role,
		ID:         c.Subject,
		FullName:   c.FullName,
		Department: c.Department,
		Federated:  c.Federated,
	}
}
