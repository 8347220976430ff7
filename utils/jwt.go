package utils

import (
	"errors"
	"fmt"
	"time"

	"staybook/config"

	"github.com/golang-jwt/jwt"
)

var (
	ErrTokenExpired = errors.New("your token has expired, please log in again")
	ErrTokenInvalid = errors.New("invalid token, please log in again")
)

// devSecret signs tokens outside production when JWT_SECRET is unset.
const devSecret = "staybook-dev-secret"

func secretKey() ([]byte, error) {
	if s := config.AppConfig.JWTSecret; s != "" {
		return []byte(s), nil
	}
	if config.IsProduction() {
		return nil, config.ErrMissingJWTSecret
	}
	return []byte(devSecret), nil
}

// TokenClaims is the verified content of an access token.
type TokenClaims struct {
	Subject  string
	IssuedAt int64
}

// GenerateToken creates a signed JWT for subject that expires after duration.
func GenerateToken(subject string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(duration).Unix(),
	}
	key, err := secretKey()
	if err != nil {
		return "", err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature and expiry and returns the claims.
func ParseToken(tokenString string) (*TokenClaims, error) {
	key, err := secretKey()
	if err != nil {
		return nil, err
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, ErrTokenInvalid
	}
	var iat int64
	if v, ok := claims["iat"].(float64); ok {
		iat = int64(v)
	}
	return &TokenClaims{Subject: sub, IssuedAt: iat}, nil
}
