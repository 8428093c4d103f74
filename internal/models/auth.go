package models

import "github.com/golang-jwt/jwt/v5"

// Identity is the result of verifying a bearer credential against the
// identity provider.
type Identity struct {
	SubjectID string
	Email     string
	Name      string
}

// AccessTokenClaims mirrors the provider-issued access token payload. Tokens
// are HS256-signed with the project's shared JWT secret, so they can be
// verified locally without a round trip to the provider.
type AccessTokenClaims struct {
	Email        string `json:"email"`
	UserMetadata struct {
		Name string `json:"name"`
	} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// SignupRequest is the self-service account creation payload.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}
