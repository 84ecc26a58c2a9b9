package domain

import "time"

// AuthEventKind names the authentication action an audit event records.
type AuthEventKind string

const (
	EventLogin          AuthEventKind = "login"
	EventRegister       AuthEventKind = "register"
	EventPasswordChange AuthEventKind = "password_change"
)

// AuthEvent is one entry in the authentication audit trail.
type AuthEvent struct {
	ID         string        `json:"id" bson:"_id"`
	Username   string        `json:"username" bson:"username"`
	Kind       AuthEventKind `json:"kind" bson:"kind"`
	Outcome    string        `json:"outcome" bson:"outcome"`
	RemoteIP   string        `json:"remote_ip,omitempty" bson:"remote_ip,omitempty"`
	OccurredAt time.Time     `json:"occurred_at" bson:"occurred_at"`
}
