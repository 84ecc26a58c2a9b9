package security

import (
	"errors"
	"testing"

	"github.com/todoapp/todo-service/internal/core/domain"
)

func TestGate_Authorize(t *testing.T) {
	admin := &domain.Identity{Subject: "root", ID: 1, Role: domain.RoleAdmin}
	user := &domain.Identity{Subject: "alice", ID: 2, Role: domain.RoleUser}
	noRole := &domain.Identity{Subject: "bob", ID: 3}

	cases := []struct {
		name string
		id   *domain.Identity
		op   Operation
		want error
	}{
		{"public without identity", nil, OpPublic, nil},
		{"self-scoped without identity", nil, OpSelfScoped, domain.ErrUnauthenticated},
		{"admin-only without identity", nil, OpAdminOnly, domain.ErrUnauthenticated},
		{"self-scoped user", user, OpSelfScoped, nil},
		{"admin-only admin", admin, OpAdminOnly, nil},
		{"admin-only user", user, OpAdminOnly, domain.ErrInsufficientRole},
		{"admin-only without role", noRole, OpAdminOnly, domain.ErrInsufficientRole},
	}

	var g Gate
	for _, tc := range cases {
		err := g.Authorize(tc.id, tc.op)
		if tc.want == nil {
			if err != nil {
				t.Errorf("%s: expected nil, got %v", tc.name, err)
			}
			continue
		}
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
		// Insufficient role reports as unauthenticated at the boundary.
		if !errors.Is(err, domain.ErrUnauthenticated) {
			t.Errorf("%s: expected error to match ErrUnauthenticated, got %v", tc.name, err)
		}
	}
}

func TestGate_AuthorizeOwner(t *testing.T) {
	var g Gate
	alice := &domain.Identity{Subject: "alice", ID: 2, Role: domain.RoleUser}

	if err := g.AuthorizeOwner(alice, 2); err != nil {
		t.Fatalf("owner should be allowed, got %v", err)
	}
	if err := g.AuthorizeOwner(alice, 9); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound for other owner, got %v", err)
	}
	if err := g.AuthorizeOwner(nil, 2); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated without identity, got %v", err)
	}
}
