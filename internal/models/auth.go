package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims is the token payload issued by the external auth service. The
// engine only needs the subject to key per-user timelines.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
