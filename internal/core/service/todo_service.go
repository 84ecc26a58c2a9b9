package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
	"github.com/todoapp/todo-service/internal/core/security"
)

// TodoService implements self-scoped todo operations.
type TodoService struct {
	repo   ports.TodoRepository
	gate   security.Gate
	logger zerolog.Logger
}

func NewTodoService(repo ports.TodoRepository, logger zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, logger: logger}
}

func (s *TodoService) List(ctx context.Context, id *domain.Identity) ([]*domain.Todo, error) {
	if err := s.gate.Authorize(id, security.OpSelfScoped); err != nil {
		return nil, err
	}
	todos, err := s.repo.ListByOwner(ctx, id.ID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Get returns the caller's todo. A todo owned by someone else is reported
// as domain.ErrTodoNotFound.
func (s *TodoService) Get(ctx context.Context, id *domain.Identity, todoID int64) (*domain.Todo, error) {
	if err := s.gate.Authorize(id, security.OpSelfScoped); err != nil {
		return nil, err
	}
	todo, err := s.repo.FindByIDAndOwner(ctx, todoID, id.ID)
	if err != nil {
		return nil, fmt.Errorf("get todo: %w", err)
	}
	if err := s.gate.AuthorizeOwner(id, todo.OwnerID); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) Create(ctx context.Context, id *domain.Identity, in ports.TodoInput) (*domain.Todo, error) {
	if err := s.gate.Authorize(id, security.OpSelfScoped); err != nil {
		return nil, err
	}
	todo, err := s.repo.Create(ctx, &domain.Todo{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Complete:    in.Complete,
		OwnerID:     id.ID,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", id.ID).Msg("failed to create todo")
		return nil, fmt.Errorf("create todo: %w", err)
	}
	s.logger.Info().Int64("todo_id", todo.ID).Int64("owner_id", id.ID).Msg("todo created")
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, id *domain.Identity, todoID int64, in ports.TodoInput) error {
	todo, err := s.Get(ctx, id, todoID)
	if err != nil {
		return err
	}

	todo.Title = in.Title
	todo.Description = in.Description
	todo.Priority = in.Priority
	todo.Complete = in.Complete

	if err := s.repo.UpdateByIDAndOwner(ctx, todo); err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	return nil
}

func (s *TodoService) Delete(ctx context.Context, id *domain.Identity, todoID int64) error {
	if _, err := s.Get(ctx, id, todoID); err != nil {
		return err
	}
	if err := s.repo.DeleteByIDAndOwner(ctx, todoID, id.ID); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	s.logger.Info().Int64("todo_id", todoID).Int64("owner_id", id.ID).Msg("todo deleted")
	return nil
}
