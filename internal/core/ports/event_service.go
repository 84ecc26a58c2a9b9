package ports

import (
	"context"
	"time"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// AuthEventInput is the DTO handed to the audit pipeline.
type AuthEventInput struct {
	Username   string
	Kind       domain.AuthEventKind
	Outcome    string
	RemoteIP   string
	OccurredAt time.Time
}

// AuditService persists authentication events.
type AuditService interface {
	Record(ctx context.Context, event AuthEventInput) error
}

// AuditSink accepts events for asynchronous recording. Implementations must
// not block the caller.
type AuditSink interface {
	Enqueue(event AuthEventInput)
}
