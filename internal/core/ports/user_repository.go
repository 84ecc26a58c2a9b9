package ports

import (
	"context"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Create must enforce username and email uniqueness atomically and report
// collisions as *domain.DuplicateIdentityError.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	UpdatePhoneNumber(ctx context.Context, id int64, phone string) error
}
