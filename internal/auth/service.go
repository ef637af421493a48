package auth

import (
	"errors"
	"time"

	"github.com/babo072/my-shopping-mall/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for a missing, malformed or expired token.
var ErrInvalidToken = errors.New("invalid token")

const tokenLifetime = 24 * time.Hour

// Service issues and validates session tokens. Credential checks live in the
// user service; this type only deals with the JWT itself.
type Service struct {
	secret []byte
}

// NewService creates a token service signing with secret.
func NewService(secret []byte) *Service {
	return &Service{secret: secret}
}

// IssueToken creates a signed session token for the given profile.
func (s *Service) IssueToken(profile *model.Profile) (string, error) {
	claims := &model.JWTClaims{
		UserID: profile.UserID,
		Email:  profile.Email,
		Role:   profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses and verifies a session token.
func (s *Service) ValidateToken(tokenString string) (*model.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
