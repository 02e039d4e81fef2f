// Package auth verifies user credentials and hands out session tokens. The
// booking core trusts the username this package resolves; it performs no
// credential checks of its own.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/railbooking/internal/domain"
	"github.com/Domenick1991/railbooking/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
}

type SessionStore interface {
	PutSession(ctx context.Context, token, username string) error
	GetSession(ctx context.Context, token string) (string, error)
	DeleteSession(ctx context.Context, token string) error
}

type AuthService struct {
	users    repository.UserRepository
	sessions SessionStore
}

func NewAuthService(users repository.UserRepository, sessions SessionStore) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", domain.ErrInvalidRequest)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.Create(ctx, username, string(hash))
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	hash, err := s.users.GetPasswordHash(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("%w: invalid credentials", domain.ErrInvalidRequest)
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: invalid credentials", domain.ErrInvalidRequest)
	}

	token := uuid.NewString()
	if err := s.sessions.PutSession(ctx, token, username); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the username behind a session token, or ErrNotFound when the
// token is unknown or expired.
func (s *AuthService) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrNotFound
	}
	username, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		return "", err
	}
	if username == "" {
		return "", domain.ErrNotFound
	}
	return username, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}

var _ AuthUseCase = (*AuthService)(nil)
