package models

import "github.com/golang-jwt/jwt/v5"

// TokenRequest is the identity payload the front end trades for a signed
// bearer credential.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// TokenResponse carries the issued credential.
type TokenResponse struct {
	Token string `json:"token"`
}

// JWTClaims is the decoded payload of a bearer credential. Email is the
// caller identity; role gating always re-reads the stored user record
// rather than trusting a role baked into the token.
type JWTClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
