package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
	"github.com/todoapp/todo-service/internal/core/security"
)

// UserService implements self-service account operations.
type UserService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	audit  ports.AuditSink
	gate   security.Gate
	log    zerolog.Logger
}

// NewUserService returns a UserService. audit may be nil.
func NewUserService(users ports.UserRepository, hasher ports.PasswordHasher, audit ports.AuditSink, log zerolog.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, audit: audit, log: log}
}

func (s *UserService) Me(ctx context.Context, id *domain.Identity) (*domain.User, error) {
	if err := s.gate.Authorize(id, security.OpSelfScoped); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, id.ID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the caller's password after checking current.
// A wrong current password fails with domain.ErrInvalidCredential.
func (s *UserService) ChangePassword(ctx context.Context, id *domain.Identity, current, next, remoteIP string) error {
	if err := s.gate.Authorize(id, security.OpSelfScoped); err != nil {
		return err
	}
	if len(next) > maxPasswordBytes {
		return fmt.Errorf("change password: %w", domain.InvalidInput("new password must be at most %d bytes", maxPasswordBytes))
	}
	user, err := s.users.FindByID(ctx, id.ID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	ok, err := s.hasher.Verify(current, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if !ok {
		s.emit(user.Username, outcomeInvalid, remoteIP)
		return domain.ErrInvalidCredential
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.emit(user.Username, outcomeSuccess, remoteIP)
	s.log.Info().Int64("user_id", user.ID).Msg("password changed")
	return nil
}

func (s *UserService) UpdatePhoneNumber(ctx context.Context, id *domain.Identity, phone string) error {
	if err := s.gate.Authorize(id, security.OpSelfScoped); err != nil {
		return err
	}
	if err := s.users.UpdatePhoneNumber(ctx, id.ID, phone); err != nil {
		return fmt.Errorf("update phone number: %w", err)
	}
	return nil
}

func (s *UserService) emit(username, outcome, remoteIP string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuthEventInput{
		Username:   username,
		Kind:       domain.EventPasswordChange,
		Outcome:    outcome,
		RemoteIP:   remoteIP,
		OccurredAt: time.Now().UTC(),
	})
}
