package ports

import (
	"context"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// TodoInput is the writable part of a todo.
type TodoInput struct {
	Title       string
	Description string
	Priority    int
	Complete    bool
}

// TodoService exposes self-scoped todo operations. Every call is evaluated
// against the acting identity; todos owned by someone else behave as absent.
type TodoService interface {
	List(ctx context.Context, id *domain.Identity) ([]*domain.Todo, error)
	Get(ctx context.Context, id *domain.Identity, todoID int64) (*domain.Todo, error)
	Create(ctx context.Context, id *domain.Identity, in TodoInput) (*domain.Todo, error)
	Update(ctx context.Context, id *domain.Identity, todoID int64, in TodoInput) error
	Delete(ctx context.Context, id *domain.Identity, todoID int64) error
}

// AdminService exposes admin-only operations across all owners.
type AdminService interface {
	ListAll(ctx context.Context, id *domain.Identity) ([]*domain.Todo, error)
	Delete(ctx context.Context, id *domain.Identity, todoID int64) error
}
