package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iwsanren/comp47360-team9/config"
)

// Tokens are issued by the webapp backend against the same shared secret;
// this service only validates them.
type AuthService struct {
	jwtSecret []byte
}

func NewAuthService(cfg config.JWTConfig) *AuthService {
	return &AuthService{jwtSecret: []byte(cfg.Secret)}
}

type Claims struct {
	User string `json:"user"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for the given user, valid for ttl. Used by
// development tooling and tests; production tokens come from the webapp.
func (s *AuthService) GenerateToken(user string, ttl time.Duration) (string, error) {
	claims := Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.jwtSecret, nil
		},
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
