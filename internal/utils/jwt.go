package utils

import (
	"errors" // Error values
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
	"github.com/google/uuid"       // Token identifiers
)

// SessionTTL is how long a session token stays valid
const SessionTTL = time.Hour

// Claims carried by the session token
type Claims struct {
	UserID               uint   `json:"id"`       // Custom claim for user ID
	Username             string `json:"username"` // Custom claim for username
	Role                 string `json:"role"`     // Custom claim for role
	jwt.RegisteredClaims                          // Standard JWT claims
}

// GenerateJWT creates a signed session token for a user
func GenerateJWT(userID uint, username, role, secret string) (string, *Claims, error) {
	now := time.Now()
	// Set token claims
	claims := &Claims{
		UserID:   userID,   // Custom claim for user ID
		Username: username, // Custom claim for username
		Role:     role,     // Custom claim for role
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),                        // Unique token id, used for revocation
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)), // Token expires in 1 hour
			IssuedAt:  jwt.NewNumericDate(now),                 // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	signed, err := token.SignedString([]byte(secret))          // Sign the token with the secret
	if err != nil {
		return "", nil, err // Return error if signing fails
	}
	return signed, claims, nil
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		if claims.UserID == 0 {
			return nil, errors.New("token has no user") // Reject tokens without a subject
		}
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}

// Remaining returns how long the claims stay valid
func (c *Claims) Remaining() time.Duration {
	if c.ExpiresAt == nil {
		return 0 // No expiry recorded
	}
	return time.Until(c.ExpiresAt.Time)
}
