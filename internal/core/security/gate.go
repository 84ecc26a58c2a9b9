package security

import "github.com/todoapp/todo-service/internal/core/domain"

// Operation classifies a request for authorization.
type Operation int

const (
	// OpPublic is always permitted (login, register).
	OpPublic Operation = iota
	// OpSelfScoped requires an identity; targets are further checked with
	// AuthorizeOwner.
	OpSelfScoped
	// OpAdminOnly requires an identity carrying the admin role.
	OpAdminOnly
)

func (o Operation) String() string {
	switch o {
	case OpPublic:
		return "public"
	case OpSelfScoped:
		return "self_scoped"
	case OpAdminOnly:
		return "admin_only"
	default:
		return "unknown"
	}
}

// Gate decides whether an identity may perform an operation. It holds no
// state and is safe for concurrent use.
type Gate struct{}

// Authorize checks op against id. A nil id means the caller is unauthenticated.
func (Gate) Authorize(id *domain.Identity, op Operation) error {
	if op == OpPublic {
		return nil
	}
	if id == nil {
		return domain.ErrUnauthenticated
	}
	if op == OpAdminOnly && !id.IsAdmin() {
		return domain.ErrInsufficientRole
	}
	return nil
}

// AuthorizeOwner permits a self-scoped operation on a record owned by
// ownerID. A mismatch is reported as domain.ErrTodoNotFound so callers cannot
// probe for records they do not own.
func (g Gate) AuthorizeOwner(id *domain.Identity, ownerID int64) error {
	if err := g.Authorize(id, OpSelfScoped); err != nil {
		return err
	}
	if id.ID != ownerID {
		return domain.ErrTodoNotFound
	}
	return nil
}
