// Package memory holds process-local repositories with the same semantics as
// the MongoDB ones: numeric ids, unique username and email, owner filters.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/todoapp/todo-service/internal/core/domain"
)

type UserRepository struct {
	mu     sync.RWMutex
	users  map[int64]domain.User
	nextID int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, &domain.DuplicateIdentityError{Field: domain.FieldUsername, Value: user.Username}
		}
		if u.Email == user.Email {
			return nil, &domain.DuplicateIdentityError{Field: domain.FieldEmail, Value: user.Email}
		}
	}
	r.nextID++
	stored := *user
	stored.ID = r.nextID
	r.users[stored.ID] = stored
	return &stored, nil
}

func (r *UserRepository) find(match func(domain.User) bool) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Username == username })
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Email == email })
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	return r.update(id, func(u *domain.User) { u.PasswordHash = hash })
}

func (r *UserRepository) UpdatePhoneNumber(_ context.Context, id int64, phone string) error {
	return r.update(id, func(u *domain.User) { u.PhoneNumber = phone })
}

func (r *UserRepository) update(id int64, mutate func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	mutate(&u)
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	return nil
}

type TodoRepository struct {
	mu     sync.RWMutex
	todos  map[int64]domain.Todo
	nextID int64
}

func NewTodoRepository() *TodoRepository {
	return &TodoRepository{todos: make(map[int64]domain.Todo)}
}

func (r *TodoRepository) Create(_ context.Context, t *domain.Todo) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	stored := *t
	stored.ID = r.nextID
	r.todos[stored.ID] = stored
	return &stored, nil
}

func (r *TodoRepository) list(match func(domain.Todo) bool) []*domain.Todo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Todo, 0)
	for _, t := range r.todos {
		if match(t) {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *TodoRepository) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Todo, error) {
	return r.list(func(t domain.Todo) bool { return t.OwnerID == ownerID }), nil
}

func (r *TodoRepository) ListAll(_ context.Context) ([]*domain.Todo, error) {
	return r.list(func(domain.Todo) bool { return true }), nil
}

func (r *TodoRepository) FindByIDAndOwner(_ context.Context, id, ownerID int64) (*domain.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return nil, domain.ErrTodoNotFound
	}
	return &t, nil
}

func (r *TodoRepository) UpdateByIDAndOwner(_ context.Context, t *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.todos[t.ID]
	if !ok || cur.OwnerID != t.OwnerID {
		return domain.ErrTodoNotFound
	}
	r.todos[t.ID] = *t
	return nil
}

func (r *TodoRepository) DeleteByIDAndOwner(_ context.Context, id, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *TodoRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.todos[id]; !ok {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}

// AuthEventRepository keeps the audit trail in a slice.
type AuthEventRepository struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func NewAuthEventRepository() *AuthEventRepository {
	return &AuthEventRepository{}
}

func (r *AuthEventRepository) InsertEvent(_ context.Context, e *domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *e)
	return nil
}

// Events returns a copy of everything recorded so far.
func (r *AuthEventRepository) Events() []domain.AuthEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuthEvent(nil), r.events...)
}
