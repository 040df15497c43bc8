package identity

import (
	"context"

	"github.com/fabyoh/storefront/internal/domain"
)

// Repository defines the interface for user data operations.
type Repository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUserRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
