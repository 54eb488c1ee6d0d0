package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionIssuer = "quicknotes"

var ErrInvalidSession = errors.New("invalid session cookie")

// SessionCodec turns a user id into a cookie value and back.
type SessionCodec interface {
	Encode(userID string) (string, error)
	Decode(value string) (string, error)
}

// PlainCodec stores the user id verbatim. It offers no tamper protection.
type PlainCodec struct{}

func (PlainCodec) Encode(userID string) (string, error) {
	return userID, nil
}

func (PlainCodec) Decode(value string) (string, error) {
	if value == "" {
		return "", ErrInvalidSession
	}
	return value, nil
}

// JWTCodec wraps the user id in an HS256 token that expires with the cookie.
type JWTCodec struct {
	Key []byte
	TTL time.Duration
	Now func() time.Time
}

func NewJWTCodec(key string, ttl time.Duration) *JWTCodec {
	return &JWTCodec{Key: []byte(key), TTL: ttl, Now: time.Now}
}

func (j *JWTCodec) Encode(userID string) (string, error) {
	now := j.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(j.TTL).Unix(),
		"iss":     sessionIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.Key)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

func (j *JWTCodec) Decode(value string) (string, error) {
	token, err := jwt.Parse(value, func(token *jwt.Token) (interface{}, error) {
		return j.Key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.Now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSession
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidSession
	}
	return userID, nil
}
