package utils

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"hotelhub-backend/config"
	"hotelhub-backend/services"

	"github.com/golang-jwt/jwt/v4"
)

var bgContext = context.Background()

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// AccessClaims carry the request principal: user id and role.
type AccessClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

func accessSecret() []byte {
	return []byte(os.Getenv("ACCESS_TOKEN_SECRET"))
}

func refreshSecret() []byte {
	if s := os.Getenv("REFRESH_TOKEN_SECRET"); s != "" {
		return []byte(s)
	}
	return accessSecret()
}

// CreateTokenPair signs a short-lived access token carrying the role and a
// rotating refresh token. When redis is configured the refresh token joins the
// allowlist; without redis refresh stays stateless.
func CreateTokenPair(userID uint, role string) (*TokenPair, error) {
	now := time.Now()
	subject := strconv.FormatUint(uint64(userID), 10)

	accessClaims := AccessClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTokenTTL)),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(accessSecret())
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshClaims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(refreshTokenTTL)),
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(refreshSecret())
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if config.Redis != nil {
		config.Redis.Set(bgContext, "refresh:"+refresh, "true", refreshTokenTTL+5*time.Minute)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseAccessToken validates a bearer token and returns its claims.
func ParseAccessToken(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return accessSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, services.ErrInvalidToken
	}
	return claims, nil
}

// ConsumeRefreshToken validates a refresh token, removes it from the redis
// allowlist (single use) and returns the user id it was issued for.
func ConsumeRefreshToken(tokenStr string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return refreshSecret(), nil
	})
	if err != nil || !token.Valid {
		return 0, services.ErrInvalidToken
	}

	if config.Redis != nil {
		key := "refresh:" + tokenStr
		valid, rErr := config.Redis.Get(bgContext, key).Result()
		if rErr != nil || valid != "true" {
			return 0, services.ErrInvalidToken
		}
		config.Redis.Del(bgContext, key)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return 0, services.ErrInvalidToken
	}
	return uint(userID), nil
}
