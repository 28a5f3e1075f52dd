package auth

import (
	"errors"
	"fmt"

	"article-search/domain"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret = errors.New("jwt secret not configured")
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
)

type Config struct {
	Secret   string
	Issuer   string
	Audience string
}

// userClaims carries the numeric user id under "id".
type userClaims struct {
	ID int64 `json:"id"`
	jwt.RegisteredClaims
}

// TokenValidator validates HS256 user tokens.
type TokenValidator struct {
	cfg    Config
	secret []byte
}

func NewTokenValidator(cfg Config) *TokenValidator {
	return &TokenValidator{
		cfg:    cfg,
		secret: []byte(cfg.Secret),
	}
}

// Validate parses tokenString and returns the user it identifies. Issuer and
// audience are only checked when configured.
func (v *TokenValidator) Validate(tokenString string) (*domain.CurrentUser, error) {
	if len(v.secret) == 0 {
		return nil, ErrMissingSecret
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.cfg.Issuer))
	}
	if v.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.cfg.Audience))
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &userClaims{}, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*userClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.ID <= 0 {
		return nil, ErrInvalidClaims
	}

	return &domain.CurrentUser{ID: claims.ID}, nil
}
