package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker-api/internal/auth"
	"github.com/BuzzLyutic/task-tracker-api/internal/model"
	"github.com/BuzzLyutic/task-tracker-api/internal/repo"
)

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	Token string
	User  model.UserSummary
}

// AuthService registers and logs in users and verifies their session tokens.
type AuthService struct {
	users  repo.UserRepository
	tokens *auth.TokenManager
	hasher *auth.PasswordHasher
	logger *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users repo.UserRepository, tokens *auth.TokenManager, hasher *auth.PasswordHasher, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		logger: logger,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (AuthResult, error) {
	username, email = strings.TrimSpace(username), strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return AuthResult{}, invalid("All fields are required")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return AuthResult{}, invalid("Password is too long")
		}
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, repo.ErrorConflict) {
			return AuthResult{}, ErrDuplicateIdentity
		}
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return s.issue(user)
}

// Login accepts a username or an email as login. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, login, password string) (AuthResult, error) {
	if login == "" || password == "" {
		return AuthResult{}, invalid("Username and password are required")
	}

	user, err := s.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			// same bcrypt cost as a real mismatch
			_ = s.hasher.Compare(s.placeholderHash(), password)
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("find user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Authenticate verifies a bearer token. It does not touch storage.
func (s *AuthService) Authenticate(token string) (auth.Identity, error) {
	return s.tokens.Verify(token)
}

func (s *AuthService) issue(user model.User) (AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: user.Summary()}, nil
}

func (s *AuthService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("placeholder-password")
	})
	return s.dummyHash
}
