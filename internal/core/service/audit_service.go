package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

type auditService struct {
	repo ports.AuthEventRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService writing to repo.
func NewAuditService(repo ports.AuthEventRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists a single authentication event.
func (s *auditService) Record(ctx context.Context, in ports.AuthEventInput) error {
	event := &domain.AuthEvent{
		ID:         uuid.NewString(),
		Username:   in.Username,
		Kind:       in.Kind,
		Outcome:    in.Outcome,
		RemoteIP:   in.RemoteIP,
		OccurredAt: in.OccurredAt.UTC(),
	}
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		return fmt.Errorf("record auth event: %w", err)
	}

	s.log.Debug().
		Str("username", in.Username).
		Str("kind", string(in.Kind)).
		Str("outcome", in.Outcome).
		Msg("auth event recorded")
	return nil
}
