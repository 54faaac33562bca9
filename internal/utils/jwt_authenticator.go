package utils

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// AuthenticatedUser holds the claims of a validated bearer token
type AuthenticatedUser struct {
	Sub    string   `json:"sub"`
	Iss    string   `json:"iss"`
	Aud    []string `json:"aud"`
	Scopes []string `json:"scopes"`
}

type userClaims struct {
	Scopes []string `json:"scopes,omitempty"`
	jwt.RegisteredClaims
}

// JwtAuthenticator validates HS256 tokens signed with a shared secret
type JwtAuthenticator struct {
	secret []byte
}

func NewJwtAuthenticator(secret string) *JwtAuthenticator {
	return &JwtAuthenticator{secret: []byte(secret)}
}

// ValidateToken verifies the signature and expiry of tokenString
func (a *JwtAuthenticator) ValidateToken(tokenString string) (*AuthenticatedUser, error) {
	if len(a.secret) == 0 {
		return nil, errors.New("JWT secret not configured")
	}

	claims := &userClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}

	return &AuthenticatedUser{
		Sub:    claims.Subject,
		Iss:    claims.Issuer,
		Aud:    claims.Audience,
		Scopes: claims.Scopes,
	}, nil
}

// GenerateToken signs a token for sub; used by the CLI to mint client tokens
func (a *JwtAuthenticator) GenerateToken(sub string, audience []string, claims jwt.RegisteredClaims) (string, error) {
	if len(a.secret) == 0 {
		return "", errors.New("JWT secret not configured")
	}
	claims.Subject = sub
	claims.Audience = audience
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, userClaims{RegisteredClaims: claims})
	return token.SignedString(a.secret)
}
