package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 30 * 24 * time.Hour

var (
	ErrTokenSecretMissing = errors.New("token secret is not configured")
	ErrInvalidToken       = errors.New("invalid token")
)

type tokenClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (service *TokenService) Enabled() bool {
	return len(service.secret) > 0
}

func (service *TokenService) Issue(userID uint) (string, error) {
	if !service.Enabled() {
		return "", ErrTokenSecretMissing
	}
	now := service.now()

	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(service.secret)
}

// Parse validates the signature and expiry and returns the user id claim.
func (service *TokenService) Parse(raw string) (uint, error) {
	if !service.Enabled() {
		return 0, ErrTokenSecretMissing
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return service.secret, nil
	}, jwt.WithTimeFunc(service.now))
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	if claims.ExpiresAt == nil || claims.UserID == 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
