// Package identity implements registration, login, and user administration.
package identity

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/fabyoh/storefront/internal/domain"
	"github.com/fabyoh/storefront/internal/pkg/ctxlog"
)

// bcryptCost matches the work factor existing password hashes were
// created with.
const bcryptCost = 10

// TokenIssuer creates signed access tokens for authenticated users.
type TokenIssuer interface {
	IssueToken(user *domain.User) (string, error)
}

// Service implements identity business logic.
type Service struct {
	repo   Repository
	tokens TokenIssuer
}

// NewService creates a new identity service.
func NewService(repo Repository, tokens TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// RegisterInput contains data for user registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new user with the default role.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return user, nil
}

// LoginInput contains user credentials.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and issues an access token. An unknown
// email and a wrong password return the same error.
func (s *Service) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	ctxlog.FromContext(ctx).Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// GetUserByID returns a single user.
func (s *Service) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

// UpdateRole changes a user's role.
func (s *Service) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	user, err := s.repo.UpdateUserRole(ctx, id, role)
	if err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Info("user role updated", "user_id", id, "role", role)
	return user, nil
}

// DeleteUser removes a user account.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Info("user deleted", "user_id", id)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
