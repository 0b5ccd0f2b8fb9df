package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/events"
	"github.com/spec-kit/user-admin-service/internal/service"
	apperrors "github.com/spec-kit/user-admin-service/pkg/util"
)

func newUserService(repo *fakeUserRepo) *service.UserService {
	return service.NewUserService(testConfig(), repo, events.NewInMemoryDispatcher(zap.NewNop()))
}

func registerInput(username string) service.CreateUserInput {
	return service.CreateUserInput{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Password:  "Secret123",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults role to sub-admin and hashes password", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newUserService(repo)

		user, err := svc.Register(ctx, registerInput("newbie"))
		require.NoError(t, err)
		assert.Equal(t, domain.RoleSubAdmin, user.RoleID)
		assert.True(t, user.IsActive)
		assert.NotEqual(t, "Secret123", user.PasswordHash)
		assert.NoError(t, auth.ComparePassword(user.PasswordHash, "Secret123"))
	})

	t.Run("explicit admin role", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newUserService(repo)

		input := registerInput("root")
		input.RoleID = domain.RoleAdmin
		user, err := svc.Register(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, user.RoleID)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newUserService(repo)

		input := registerInput("weird")
		input.RoleID = 9
		_, err := svc.Register(ctx, input)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newUserService(repo)

		_, err := svc.Register(ctx, registerInput("dup"))
		require.NoError(t, err)

		input := registerInput("dup")
		input.Email = "different@example.com"
		_, err = svc.Register(ctx, input)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newUserService(repo)

		_, err := svc.Register(ctx, registerInput("first"))
		require.NoError(t, err)

		input := registerInput("second")
		input.Email = "first@example.com"
		_, err = svc.Register(ctx, input)
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
	})
}

func TestListSubAdmins(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newUserService(repo)

	seedUser(t, repo, "admin", "pw", true, domain.RoleAdmin)
	seedUser(t, repo, "sub1", "pw", true, domain.RoleSubAdmin)
	seedUser(t, repo, "sub2", "pw", false, domain.RoleSubAdmin)

	users, err := svc.ListSubAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, user := range users {
		assert.Equal(t, domain.RoleSubAdmin, user.RoleID)
	}
}

func TestGetSubAdmin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newUserService(repo)

	seedUser(t, repo, "admin", "pw", true, domain.RoleAdmin)
	seedUser(t, repo, "sub", "pw", true, domain.RoleSubAdmin)

	t.Run("sub-admin is returned", func(t *testing.T) {
		user, err := svc.GetSubAdmin(ctx, "sub")
		require.NoError(t, err)
		assert.Equal(t, "sub", user.Username)
	})

	t.Run("admin accounts are not disclosed", func(t *testing.T) {
		_, err := svc.GetSubAdmin(ctx, "admin")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
	})

	t.Run("missing user is not found", func(t *testing.T) {
		_, err := svc.GetSubAdmin(ctx, "ghost")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newUserService(repo)

	seedUser(t, repo, "sub", "old-pw", true, domain.RoleSubAdmin)

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		first := "Renamed"
		user, err := svc.Update(ctx, "sub", service.UpdateUserInput{FirstName: &first})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", user.FirstName)
		assert.Equal(t, "sub@example.com", user.Email)
	})

	t.Run("password update re-hashes", func(t *testing.T) {
		newPw := "NewSecret1"
		user, err := svc.Update(ctx, "sub", service.UpdateUserInput{Password: &newPw})
		require.NoError(t, err)
		assert.NotEqual(t, newPw, user.PasswordHash)
		assert.NoError(t, auth.ComparePassword(user.PasswordHash, newPw))
		assert.Error(t, auth.ComparePassword(user.PasswordHash, "old-pw"))
	})
}

func TestSetActiveAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newUserService(repo)

	seedUser(t, repo, "sub", "pw", true, domain.RoleSubAdmin)
	actor := &domain.Identity{UserID: "u-0", Username: "admin", RoleID: domain.RoleAdmin}

	t.Run("deactivate then activate", func(t *testing.T) {
		user, err := svc.SetActive(ctx, "sub", false, actor)
		require.NoError(t, err)
		assert.False(t, user.IsActive)

		user, err = svc.SetActive(ctx, "sub", true, actor)
		require.NoError(t, err)
		assert.True(t, user.IsActive)
	})

	t.Run("soft delete hides the account", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "sub", actor))

		_, err := svc.GetByUsername(ctx, "sub")
		var domainErr *apperrors.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)

		err = svc.Delete(ctx, "sub", actor)
		assert.Error(t, err)
	})
}

func TestRegisterPasswordNeverStoredPlain(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := newUserService(repo)

	user, err := svc.Register(ctx, registerInput("safe"))
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotContains(t, stored.PasswordHash, "Secret123")
	_, err = bcrypt.Cost([]byte(stored.PasswordHash))
	assert.NoError(t, err)
}
