package ports

import (
	"context"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// UserService covers operations a user performs on their own account.
type UserService interface {
	Me(ctx context.Context, id *domain.Identity) (*domain.User, error)
	ChangePassword(ctx context.Context, id *domain.Identity, current, next, remoteIP string) error
	UpdatePhoneNumber(ctx context.Context, id *domain.Identity, phone string) error
}
