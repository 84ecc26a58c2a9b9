package ports

import (
	"context"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// TodoRepository defines persistence operations for todos.
//
// Methods taking an ownerID scope the query to that owner; a record owned by
// someone else is reported as domain.ErrTodoNotFound.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Todo, error)
	ListAll(ctx context.Context) ([]*domain.Todo, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Todo, error)
	UpdateByIDAndOwner(ctx context.Context, todo *domain.Todo) error
	DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) error
	// DeleteByID removes a todo regardless of owner (admin path).
	DeleteByID(ctx context.Context, id int64) error
}
