package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
	"github.com/todoapp/todo-service/internal/core/security"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
	// skipPrecheck makes FindBy* report not-found so Create's uniqueness
	// enforcement is exercised, as in a registration race.
	skipPrecheck bool
	findErr      error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.skipPrecheck {
		return nil, domain.ErrUserNotFound
	}
	for _, u := range r.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, &domain.DuplicateIdentityError{Field: domain.FieldUsername, Value: user.Username}
		}
		if u.Email == user.Email {
			return nil, &domain.DuplicateIdentityError{Field: domain.FieldEmail, Value: user.Email}
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) UpdatePhoneNumber(_ context.Context, id int64, phone string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PhoneNumber = phone
	return nil
}

// ---------------------------------------------------------------------------
// In-memory todo repository (mirrors the owner filters of the Mongo repo)
// ---------------------------------------------------------------------------

type stubTodoRepo struct {
	todos     map[int64]*domain.Todo
	nextID    int64
	lastOwner int64
}

func newStubTodoRepo() *stubTodoRepo {
	return &stubTodoRepo{todos: make(map[int64]*domain.Todo)}
}

func (r *stubTodoRepo) seed(ownerID int64, title string) *domain.Todo {
	r.nextID++
	t := &domain.Todo{ID: r.nextID, Title: title, Description: "seeded", Priority: 3, OwnerID: ownerID}
	r.todos[t.ID] = t
	clone := *t
	return &clone
}

func (r *stubTodoRepo) sorted(match func(*domain.Todo) bool) []*domain.Todo {
	out := make([]*domain.Todo, 0)
	for _, t := range r.todos {
		if match(t) {
			clone := *t
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubTodoRepo) Create(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
	r.nextID++
	clone := *todo
	clone.ID = r.nextID
	r.todos[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTodoRepo) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Todo, error) {
	r.lastOwner = ownerID
	return r.sorted(func(t *domain.Todo) bool { return t.OwnerID == ownerID }), nil
}

func (r *stubTodoRepo) ListAll(_ context.Context) ([]*domain.Todo, error) {
	return r.sorted(func(*domain.Todo) bool { return true }), nil
}

func (r *stubTodoRepo) FindByIDAndOwner(_ context.Context, id, ownerID int64) (*domain.Todo, error) {
	r.lastOwner = ownerID
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return nil, domain.ErrTodoNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTodoRepo) UpdateByIDAndOwner(_ context.Context, todo *domain.Todo) error {
	t, ok := r.todos[todo.ID]
	if !ok || t.OwnerID != todo.OwnerID {
		return domain.ErrTodoNotFound
	}
	clone := *todo
	r.todos[todo.ID] = &clone
	return nil
}

func (r *stubTodoRepo) DeleteByIDAndOwner(_ context.Context, id, ownerID int64) error {
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *stubTodoRepo) DeleteByID(_ context.Context, id int64) error {
	if _, ok := r.todos[id]; !ok {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}

// ---------------------------------------------------------------------------
// Token, throttle and audit stubs
// ---------------------------------------------------------------------------

type stubIssuer struct {
	subject  string
	id       int64
	role     string
	validity time.Duration
}

func (s *stubIssuer) Issue(subject string, id int64, role string, validity time.Duration) (string, error) {
	s.subject, s.id, s.role, s.validity = subject, id, role, validity
	return "signed." + subject, nil
}

type stubThrottle struct {
	blocked    bool
	blockedErr error
	failures   map[string]int
	resets     []string
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{failures: make(map[string]int)}
}

func (t *stubThrottle) Blocked(_ context.Context, _ string) (bool, error) {
	return t.blocked, t.blockedErr
}

func (t *stubThrottle) RecordFailure(_ context.Context, username string) error {
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	t.resets = append(t.resets, username)
	delete(t.failures, username)
	return nil
}

type stubSink struct {
	mu     sync.Mutex
	events []ports.AuthEventInput
}

func (s *stubSink) Enqueue(e ports.AuthEventInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *stubSink) last() ports.AuthEventInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return ports.AuthEventInput{}
	}
	return s.events[len(s.events)-1]
}

func testHasher() *security.Hasher {
	return security.NewHasher(bcrypt.MinCost)
}
