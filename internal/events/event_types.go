package events

import (
	"time"

	"github.com/spec-kit/user-admin-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventUserActivated   EventType = "user_activated"
	EventUserDeactivated EventType = "user_deactivated"
	EventUserDeleted     EventType = "user_deleted"
	EventLoginThrottled  EventType = "login_throttled"
)

// Actor identifies who triggered the event; nil fields mean an anonymous
// caller (public registration, login).
type Actor struct {
	UserID   *string `json:"user_id,omitempty"`
	Username *string `json:"username,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string        `json:"user_id"`
	Email  string        `json:"email"`
	RoleID domain.RoleID `json:"role_id"`
}

// UserStateChangedPayload payload for activate/deactivate/delete.
type UserStateChangedPayload struct {
	UserID   string `json:"user_id"`
	IsActive bool   `json:"is_active"`
}

// LoginThrottledPayload payload.
type LoginThrottledPayload struct {
	Attempts int `json:"attempts"`
}

// ActorFromIdentity builds an actor from an authenticated identity.
func ActorFromIdentity(identity *domain.Identity) Actor {
	if identity == nil {
		return Actor{}
	}
	return Actor{UserID: &identity.UserID, Username: &identity.Username}
}
