package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the custom claims for the JWT tokens.
// The user ID travels in the registered "sub" claim.
type Claims struct {
	UserName string   `json:"username"`
	Roles    []string `json:"roles,omitempty"`
	Type     string   `json:"type"`
	jwt.RegisteredClaims
}

// UserID returns the subject of the token.
func (c *Claims) UserID() string {
	return c.Subject
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a given user.
	GenerateTokens(userID, userName string, roles []string) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken parses an access token and returns its claims.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken parses a refresh token and returns its claims.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// AccessTokenDuration returns the configured lifetime of access tokens.
	AccessTokenDuration() time.Duration
}
