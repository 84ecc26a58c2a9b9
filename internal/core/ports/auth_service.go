package ports

import (
	"context"
	"time"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// RegisterInput carries the fields of a create-user request.
type RegisterInput struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Role        string
	PhoneNumber string
	Password    string
	RemoteIP    string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns a signed access token for valid credentials. Unknown
	// usernames and wrong passwords both fail with domain.ErrInvalidCredential.
	Login(ctx context.Context, username, password, remoteIP string) (string, *domain.User, error)
}

// TokenIssuer mints signed access tokens.
type TokenIssuer interface {
	Issue(subject string, id int64, role string, validity time.Duration) (string, error)
}

// TokenVerifier validates access tokens and recovers the identity they carry.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) (bool, error)
}

// LoginThrottle tracks failed login attempts per username.
type LoginThrottle interface {
	// Blocked reports whether further attempts are currently refused.
	Blocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
