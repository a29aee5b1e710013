package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"rentflow-backend/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// UserClaims defines the access-token claims the identity collaborator
// issues for the storefront.
type UserClaims struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email,omitempty"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	// GenerateAccessToken mints a signed access token for local
	// development and test fixtures; production credentials are issued
	// by the external identity collaborator and only validated here.
	GenerateAccessToken(userID, email string, role domain.Role) (string, error)
	ValidateToken(tokenString string) (*UserClaims, error)
}

type tokenManager struct {
	secret []byte
	expiry time.Duration
}

func NewTokenManager(secret string, expiry time.Duration) TokenManager {
	return &tokenManager{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// GenerateAccessToken mints a signed access token. Production tokens
// come from the external identity collaborator; this issuer exists for
// local development and test fixtures that need a valid credential.
func (m *tokenManager) GenerateAccessToken(userID, email string, role domain.Role) (string, error) {
	claims := UserClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "rentflow-auth",
			Audience:  jwt.ClaimStrings{"rentflow-api"},
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// UnverifiedClaims decodes token claims without verifying the
// signature or validity. Only safe for tearing down local state tied
// to a credential that already failed validation; never use the result
// to grant access.
func UnverifiedClaims(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *tokenManager) ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
