package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

func registerInput(username, email string) ports.RegisterInput {
	return ports.RegisterInput{
		Username:    username,
		Email:       email,
		FirstName:   "Nikolas",
		LastName:    "Theofanis",
		Role:        domain.RoleUser,
		PhoneNumber: "(111)-111-1111",
		Password:    "testpassword",
	}
}

func newAuthSvc(repo *stubUserRepo, opts ...AuthOption) (*AuthService, *stubIssuer) {
	iss := &stubIssuer{}
	return NewAuthService(repo, testHasher(), iss, 20*time.Minute, discardLogger, opts...), iss
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	sink := &stubSink{}
	svc, _ := newAuthSvc(repo, WithAuditSink(sink))

	user, err := svc.Register(context.Background(), registerInput("theofann", "theofann@example.com"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected an assigned id")
	}
	if user.PasswordHash == "testpassword" || user.PasswordHash == "" {
		t.Fatalf("expected password to be hashed, got %q", user.PasswordHash)
	}
	if ok, _ := testHasher().Verify("testpassword", user.PasswordHash); !ok {
		t.Fatalf("stored hash does not match password")
	}
	if !user.IsActive {
		t.Fatalf("new users must be active")
	}
	if ev := sink.last(); ev.Kind != domain.EventRegister || ev.Outcome != outcomeSuccess {
		t.Fatalf("unexpected audit event: %+v", ev)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newAuthSvc(newStubUserRepo())

	in := registerInput("", "a@example.com")
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	in = registerInput("alice", "a@example.com")
	in.Password = ""
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
	in.Password = strings.Repeat("é", 40)
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for an 80-byte password, got %v", err)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, _ := newAuthSvc(newStubUserRepo())

	if _, err := svc.Register(context.Background(), registerInput("bob", "bob@example.com")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), registerInput("bob", "other@example.com"))

	var dup *domain.DuplicateIdentityError
	if !errors.As(err, &dup) || dup.Field != domain.FieldUsername {
		t.Fatalf("expected username DuplicateIdentityError, got %v", err)
	}
	if !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected error to match ErrDuplicateIdentity")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthSvc(newStubUserRepo())

	_, _ = svc.Register(context.Background(), registerInput("bob", "bob@example.com"))
	_, err := svc.Register(context.Background(), registerInput("robert", "bob@example.com"))

	var dup *domain.DuplicateIdentityError
	if !errors.As(err, &dup) || dup.Field != domain.FieldEmail {
		t.Fatalf("expected email DuplicateIdentityError, got %v", err)
	}
}

func TestAuthService_Register_RaceResolvedByStore(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(repo)

	_, _ = svc.Register(context.Background(), registerInput("bob", "bob@example.com"))
	repo.skipPrecheck = true

	_, err := svc.Register(context.Background(), registerInput("bob", "bob2@example.com"))
	if !errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected store-level ErrDuplicateIdentity, got %v", err)
	}
}

func TestAuthService_Register_LookupError(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("mongo down")
	svc, _ := newAuthSvc(repo)

	_, err := svc.Register(context.Background(), registerInput("bob", "bob@example.com"))
	if err == nil || errors.Is(err, domain.ErrDuplicateIdentity) {
		t.Fatalf("expected wrapped lookup error, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle()
	svc, iss := newAuthSvc(repo, WithLoginThrottle(throttle))

	in := registerInput("carol", "carol@example.com")
	in.Role = domain.RoleAdmin
	registered, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol", "testpassword", "10.0.0.1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token != "signed.carol" {
		t.Fatalf("unexpected token %q", token)
	}
	if user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if iss.subject != "carol" || iss.id != registered.ID || iss.role != domain.RoleAdmin {
		t.Fatalf("issuer received wrong claims: %+v", iss)
	}
	if iss.validity != 20*time.Minute {
		t.Fatalf("expected 20m validity, got %v", iss.validity)
	}
	if len(throttle.resets) != 1 {
		t.Fatalf("expected throttle reset on success")
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle()
	svc, _ := newAuthSvc(repo, WithLoginThrottle(throttle))
	_, _ = svc.Register(context.Background(), registerInput("dave", "dave@example.com"))

	_, _, wrongPwd := svc.Login(context.Background(), "dave", "badpass", "")
	_, _, unknown := svc.Login(context.Background(), "ghost", "badpass", "")

	if wrongPwd != domain.ErrInvalidCredential {
		t.Fatalf("expected ErrInvalidCredential for wrong password, got %v", wrongPwd)
	}
	if unknown != domain.ErrInvalidCredential {
		t.Fatalf("expected ErrInvalidCredential for unknown user, got %v", unknown)
	}
	if throttle.failures["dave"] != 1 || throttle.failures["ghost"] != 1 {
		t.Fatalf("expected both failures recorded, got %v", throttle.failures)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle()
	throttle.blocked = true
	sink := &stubSink{}
	svc, _ := newAuthSvc(repo, WithLoginThrottle(throttle), WithAuditSink(sink))
	_, _ = svc.Register(context.Background(), registerInput("erin", "erin@example.com"))

	if _, _, err := svc.Login(context.Background(), "erin", "testpassword", ""); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if ev := sink.last(); ev.Outcome != outcomeThrottled {
		t.Fatalf("expected throttled audit event, got %+v", ev)
	}
}

func TestAuthService_Login_ThrottleErrorDoesNotBlock(t *testing.T) {
	repo := newStubUserRepo()
	throttle := newStubThrottle()
	throttle.blockedErr = errors.New("redis timeout")
	svc, _ := newAuthSvc(repo, WithLoginThrottle(throttle))
	_, _ = svc.Register(context.Background(), registerInput("frank", "frank@example.com"))

	if _, _, err := svc.Login(context.Background(), "frank", "testpassword", ""); err != nil {
		t.Fatalf("throttle failure must not block login, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(repo)
	u, _ := svc.Register(context.Background(), registerInput("gina", "gina@example.com"))
	repo.users[u.ID].IsActive = false

	if _, _, err := svc.Login(context.Background(), "gina", "testpassword", ""); err != domain.ErrInvalidCredential {
		t.Fatalf("expected ErrInvalidCredential for inactive user, got %v", err)
	}
}

func TestAuthService_Login_MalformedStoredHash(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(repo)
	u, _ := svc.Register(context.Background(), registerInput("hank", "hank@example.com"))
	repo.users[u.ID].PasswordHash = "garbage"

	_, _, err := svc.Login(context.Background(), "hank", "testpassword", "")
	if err == nil || errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc, _ := newAuthSvc(newStubUserRepo())
	if _, _, err := svc.Login(context.Background(), "", "", ""); err != domain.ErrInvalidCredential {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestAuthService_UsernameNormalizedOnBothPaths(t *testing.T) {
	svc, _ := newAuthSvc(newStubUserRepo())

	user, err := svc.Register(context.Background(), registerInput("  bob  ", "bob@example.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Username != "bob" {
		t.Fatalf("expected stored username %q, got %q", "bob", user.Username)
	}

	for _, name := range []string{"  bob  ", "bob"} {
		if _, _, err := svc.Login(context.Background(), name, "testpassword", ""); err != nil {
			t.Fatalf("login as %q failed: %v", name, err)
		}
	}
	if _, _, err := svc.Login(context.Background(), "Bob", "testpassword", ""); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("usernames are case-sensitive, expected ErrInvalidCredential, got %v", err)
	}
}

func TestAuthService_Register_InvalidInputReason(t *testing.T) {
	svc, _ := newAuthSvc(newStubUserRepo())

	in := registerInput("alice", "a@example.com")
	in.Password = strings.Repeat("x", 73)
	_, err := svc.Register(context.Background(), in)

	var invalid *domain.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidInputError, got %v", err)
	}
	if invalid.Reason != "password must be at most 72 bytes" {
		t.Fatalf("unexpected reason %q", invalid.Reason)
	}
}
