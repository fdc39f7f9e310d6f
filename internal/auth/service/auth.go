package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	autherrors "github.com/Farhatmahi/dentist-spa-server/internal/auth/errors"
	userserrors "github.com/Farhatmahi/dentist-spa-server/internal/users/errors"
	"github.com/Farhatmahi/dentist-spa-server/pkg/config"
	apperrors "github.com/Farhatmahi/dentist-spa-server/pkg/errors"
	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
	"github.com/golang-jwt/jwt/v5"
)

// UserSource is the slice of the user repository the token service needs.
type UserSource interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type TokenService interface {
	// IssueToken returns a signed token for email, or "" without error when
	// no user record exists. An empty token means "not authenticated yet";
	// it is not an exceptional condition.
	IssueToken(ctx context.Context, email string) (string, error)
	// VerifyToken returns the embedded identity, or ErrInvalidToken for any
	// signature mismatch, malformed token, or expiry.
	VerifyToken(tokenString string) (string, error)
}

type tokenService struct {
	users  UserSource
	secret []byte
	ttl    time.Duration
	cfg    *config.Config
}

func NewTokenService(users UserSource, cfg *config.Config) TokenService {
	return &tokenService{
		users:  users,
		secret: []byte(cfg.AccessTokenSecret),
		ttl:    cfg.AccessTokenTTL,
		cfg:    cfg,
	}
}

func (s *tokenService) IssueToken(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", apperrors.InvalidInput("Email cannot be empty")
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			s.cfg.Log.Info("Refusing token for unregistered email", "email", email)
			return "", nil
		}
		return "", apperrors.Unavailable("document store", err)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apperrors.Internal("Failed to sign token", err)
	}

	s.cfg.Log.Info("Access token issued", "email", email, "expires_in", s.ttl)
	return signed, nil
}

func (s *tokenService) VerifyToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", autherrors.ErrInvalidToken
	}

	return claims.Subject, nil
}
