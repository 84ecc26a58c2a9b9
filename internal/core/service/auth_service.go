package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

const (
	outcomeSuccess   = "success"
	outcomeInvalid   = "invalid_credential"
	outcomeDuplicate = "duplicate_identity"
	outcomeThrottled = "throttled"
	outcomeError     = "error"

	// maxPasswordBytes is the longest input bcrypt accepts.
	maxPasswordBytes = 72
)

// AuthService implements registration and login.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	issuer   ports.TokenIssuer
	throttle ports.LoginThrottle
	audit    ports.AuditSink
	tokenTTL time.Duration
	log      zerolog.Logger

	// dummyHash is compared against when the username is unknown so both
	// failure paths spend the same time in bcrypt.
	dummyHash string
}

// AuthOption configures optional AuthService collaborators.
type AuthOption func(*AuthService)

// WithLoginThrottle enables failed-login throttling.
func WithLoginThrottle(t ports.LoginThrottle) AuthOption {
	return func(s *AuthService) { s.throttle = t }
}

// WithAuditSink sends register and login outcomes to sink.
func WithAuditSink(sink ports.AuditSink) AuthOption {
	return func(s *AuthService) { s.audit = sink }
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
	tokenTTL time.Duration,
	log zerolog.Logger,
	opts ...AuthOption,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 20 * time.Minute
	}
	s := &AuthService{
		users:    users,
		hasher:   hasher,
		issuer:   issuer,
		tokenTTL: tokenTTL,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	if h, err := hasher.Hash("dummy-password-for-timing"); err == nil {
		s.dummyHash = h
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	in.Username = normalizeUsername(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("register: %w", domain.InvalidInput("username, email and password are required"))
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("register: %w", domain.InvalidInput("password must be at most %d bytes", maxPasswordBytes))
	}

	// Fast-path checks for a friendly message; the unique indexes behind
	// Create are what actually guarantee uniqueness.
	if err := s.ensureAvailable(ctx, domain.FieldUsername, in.Username, s.users.FindByUsername); err != nil {
		s.emit(in.Username, domain.EventRegister, outcomeFor(err), in.RemoteIP)
		return nil, err
	}
	if err := s.ensureAvailable(ctx, domain.FieldEmail, in.Email, s.users.FindByEmail); err != nil {
		s.emit(in.Username, domain.EventRegister, outcomeFor(err), in.RemoteIP)
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		PhoneNumber:  in.PhoneNumber,
		IsActive:     true,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.emit(in.Username, domain.EventRegister, outcomeFor(err), in.RemoteIP)
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			s.log.Info().Err(err).Str("username", in.Username).Msg("registration lost uniqueness race")
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.emit(created.Username, domain.EventRegister, outcomeSuccess, in.RemoteIP)
	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

func (s *AuthService) ensureAvailable(
	ctx context.Context,
	field, value string,
	find func(context.Context, string) (*domain.User, error),
) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return &domain.DuplicateIdentityError{Field: field, Value: value}
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	default:
		return fmt.Errorf("register: lookup %s: %w", field, err)
	}
}

func (s *AuthService) Login(ctx context.Context, username, password, remoteIP string) (string, *domain.User, error) {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredential
	}

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("throttle check failed, continuing")
		} else if blocked {
			s.emit(username, domain.EventLogin, outcomeThrottled, remoteIP)
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, fmt.Errorf("login: %w", err)
		}
		if s.dummyHash != "" {
			_, _ = s.hasher.Verify(password, s.dummyHash)
		}
		s.fail(ctx, username, remoteIP)
		return "", nil, domain.ErrInvalidCredential
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("stored password hash is unusable")
		s.emit(username, domain.EventLogin, outcomeError, remoteIP)
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if !ok || !user.IsActive {
		s.fail(ctx, username, remoteIP)
		return "", nil, domain.ErrInvalidCredential
	}

	token, err := s.issuer.Issue(user.Username, user.ID, user.Role, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login throttle")
		}
	}
	s.emit(username, domain.EventLogin, outcomeSuccess, remoteIP)
	return token, user, nil
}

func (s *AuthService) fail(ctx context.Context, username, remoteIP string) {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
		}
	}
	s.emit(username, domain.EventLogin, outcomeInvalid, remoteIP)
}

func (s *AuthService) emit(username string, kind domain.AuthEventKind, outcome, remoteIP string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuthEventInput{
		Username:   username,
		Kind:       kind,
		Outcome:    outcome,
		RemoteIP:   remoteIP,
		OccurredAt: time.Now().UTC(),
	})
}

// normalizeUsername is applied on both register and login so the stored
// username and the lookup key always agree. Case is preserved.
func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return outcomeDuplicate
	case errors.Is(err, domain.ErrInvalidCredential):
		return outcomeInvalid
	default:
		return outcomeError
	}
}
