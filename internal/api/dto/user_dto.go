package dto

import (
	"time"

	"github.com/spec-kit/user-admin-service/internal/domain"
)

// RegisterUserRequest payload for new accounts.
type RegisterUserRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Contact   *string `json:"contact,omitempty"`
	Password  string  `json:"password"`
	RoleID    int     `json:"role_id,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateUserRequest payload for partial account updates.
type UpdateUserRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Contact   *string `json:"contact,omitempty"`
	Password  *string `json:"password,omitempty"`
}

// PasswordChangeRequest payload for authenticated password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// PasswordResetRequest payload to initiate a reset.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest payload to consume a reset token.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SafeUser is the public projection of an account. It lists exactly the
// fields safe to expose; the password hash and soft-delete timestamp are
// dropped here and nowhere else.
type SafeUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Contact   *string   `json:"contact,omitempty"`
	IsActive  bool      `json:"is_active"`
	RoleID    int       `json:"role_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSafeUser maps a full account record to its public projection.
func NewSafeUser(user *domain.User) SafeUser {
	return SafeUser{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Contact:   user.Contact,
		IsActive:  user.IsActive,
		RoleID:    int(user.RoleID),
		Role:      user.RoleID.Label(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewSafeUsers maps a slice of accounts.
func NewSafeUsers(users []*domain.User) []SafeUser {
	out := make([]SafeUser, 0, len(users))
	for _, user := range users {
		out = append(out, NewSafeUser(user))
	}
	return out
}
