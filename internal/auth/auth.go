// internal/auth/auth.go
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// JWTClaims defines the payload for the JWT.
type JWTClaims struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	ExternalID string `json:"externalId"`
	jwt.RegisteredClaims
}

// Identity is the resolved caller passed explicitly into every workflow
// function. A nil *Identity means the caller is anonymous.
type Identity struct {
	ExternalID string
	Email      string
	Name       string
	Role       string
}

// Hashing
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// JWT generation. The secret defaults to a dev value and is replaced
// from configuration at startup.
var JwtSecret = []byte("dev-only-insecure-secret")

var tokenTTL = 24 * time.Hour

// Configure applies the JWT settings from configuration. An empty
// secret or unparsable expiration keeps the current value.
func Configure(secret, expiration string) {
	if secret != "" {
		JwtSecret = []byte(secret)
	}
	if d, err := time.ParseDuration(expiration); err == nil && d > 0 {
		tokenTTL = d
	}
}

func GenerateJWT(email, name, role, externalID string) (string, error) {
	expirationTime := time.Now().Add(tokenTTL)
	claims := &JWTClaims{
		Email:      email,
		Name:       name,
		Role:       role,
		ExternalID: externalID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtSecret)
}
