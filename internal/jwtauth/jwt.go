// Package jwtauth is the session/identity collaborator boundary: it turns a
// bearer token into the authenticated user's id, username, and discriminator.
package jwtauth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "warden/pkg/domain-errors"
	"warden/pkg/requestcontext"
)

// Claims are the JWT claims carried by warden session tokens.
type Claims struct {
	UserID        string `json:"user_id"`
	Username      string `json:"username"`
	Discriminator int    `json:"discriminator"`
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
}

func NewService(signingKey string) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     "warden",
	}
}

// GenerateToken mints a session token for the given identity.
func (s *Service) GenerateToken(identity requestcontext.Identity, expiresIn time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:        identity.UserID,
		Username:      identity.Username,
		Discriminator: identity.Discriminator,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
		},
	})
	return token.SignedString(s.signingKey)
}

// ValidateToken parses and verifies a session token, returning the identity.
func (s *Service) ValidateToken(tokenString string) (requestcontext.Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return requestcontext.Identity{}, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return requestcontext.Identity{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return requestcontext.Identity{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if claims.UserID == "" {
		return requestcontext.Identity{}, dErrors.New(dErrors.CodeUnauthorized, "token missing user identity")
	}

	return requestcontext.Identity{
		UserID:        claims.UserID,
		Username:      claims.Username,
		Discriminator: claims.Discriminator,
	}, nil
}
