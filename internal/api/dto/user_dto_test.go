package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-admin-service/internal/api/dto"
	"github.com/spec-kit/user-admin-service/internal/domain"
)

func TestNewSafeUser(t *testing.T) {
	deleted := time.Now()
	contact := "+911234567890"
	user := &domain.User{
		ID:           "u-1",
		Username:     "admin",
		Email:        "admin@example.com",
		FirstName:    "Ada",
		LastName:     "Admin",
		Contact:      &contact,
		PasswordHash: "$2a$12$notarealhashnotarealhash",
		IsActive:     true,
		RoleID:       domain.RoleAdmin,
		DeletedAt:    &deleted,
	}

	safe := dto.NewSafeUser(user)
	assert.Equal(t, "admin", safe.Username)
	assert.Equal(t, "ADMIN", safe.Role)
	assert.Equal(t, 1, safe.RoleID)

	// The serialized projection must expose neither the password hash nor
	// the soft-delete timestamp.
	raw, err := json.Marshal(safe)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "notarealhash")
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "deleted")
}

func TestNewSafeUsers(t *testing.T) {
	users := []*domain.User{
		{ID: "u-1", Username: "a", RoleID: domain.RoleSubAdmin},
		{ID: "u-2", Username: "b", RoleID: domain.RoleSubAdmin},
	}
	safe := dto.NewSafeUsers(users)
	require.Len(t, safe, 2)
	assert.Equal(t, "SUB ADMIN", safe[0].Role)

	assert.NotNil(t, dto.NewSafeUsers(nil))
	assert.Empty(t, dto.NewSafeUsers(nil))
}
