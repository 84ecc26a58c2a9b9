package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
	"github.com/todoapp/todo-service/internal/core/security"
)

// AdminService implements operations reserved for the admin role.
type AdminService struct {
	repo   ports.TodoRepository
	gate   security.Gate
	logger zerolog.Logger
}

func NewAdminService(repo ports.TodoRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, logger: logger}
}

func (s *AdminService) ListAll(ctx context.Context, id *domain.Identity) ([]*domain.Todo, error) {
	if err := s.gate.Authorize(id, security.OpAdminOnly); err != nil {
		return nil, err
	}
	todos, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all todos: %w", err)
	}
	return todos, nil
}

func (s *AdminService) Delete(ctx context.Context, id *domain.Identity, todoID int64) error {
	if err := s.gate.Authorize(id, security.OpAdminOnly); err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, todoID); err != nil {
		return fmt.Errorf("admin delete todo: %w", err)
	}
	s.logger.Info().Int64("todo_id", todoID).Str("admin", id.Subject).Msg("todo deleted by admin")
	return nil
}
