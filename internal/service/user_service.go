package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/user-admin-service/internal/auth"
	"github.com/spec-kit/user-admin-service/internal/config"
	"github.com/spec-kit/user-admin-service/internal/domain"
	"github.com/spec-kit/user-admin-service/internal/events"
	"github.com/spec-kit/user-admin-service/internal/repository"
	apperrors "github.com/spec-kit/user-admin-service/pkg/util"
)

// UserService coordinates account CRUD on top of the user repository.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{
		users:      users,
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// CreateUserInput carries registration data.
type CreateUserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Contact   *string
	Password  string
	RoleID    domain.RoleID
	IsActive  *bool
}

// UpdateUserInput carries partial updates; nil fields are left unchanged.
// Role and soft-delete state are not updatable through this path.
type UpdateUserInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Contact   *string
	Password  *string
}

// Register creates a new account. Role defaults to sub-admin when omitted.
func (s *UserService) Register(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if input.RoleID == 0 {
		input.RoleID = domain.RoleSubAdmin
	}
	if !input.RoleID.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role_id": input.RoleID})
	}

	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewConflict("username already taken", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Contact:      input.Contact,
		PasswordHash: hash,
		IsActive:     active,
		RoleID:       input.RoleID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.Username, nil, events.UserRegisteredPayload{
		UserID: user.ID,
		Email:  user.Email,
		RoleID: user.RoleID,
	})
	return user, nil
}

// ListSubAdmins returns every non-deleted sub-admin account.
func (s *UserService) ListSubAdmins(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListByRole(ctx, domain.RoleSubAdmin)
}

// GetByUsername returns the account regardless of role. Used for the
// caller's own profile.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// GetSubAdmin looks up an account for admin inspection. Admin accounts are
// never disclosed through this path.
func (s *UserService) GetSubAdmin(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.RoleID == domain.RoleAdmin {
		return nil, apperrors.NewForbidden("admin accounts are not disclosed")
	}
	return user, nil
}

// Update applies a partial update to the named account.
func (s *UserService) Update(ctx context.Context, username string, input UpdateUserInput) (*domain.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Contact != nil {
		user.Contact = input.Contact
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetActive activates or deactivates the named account.
func (s *UserService) SetActive(ctx context.Context, username string, active bool, actor *domain.Identity) (*domain.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.IsActive == active {
		return user, nil
	}

	user.IsActive = active
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	eventType := events.EventUserDeactivated
	if active {
		eventType = events.EventUserActivated
	}
	s.publish(ctx, eventType, user.Username, actor, events.UserStateChangedPayload{
		UserID:   user.ID,
		IsActive: active,
	})
	return user, nil
}

// Delete soft-deletes the named account.
func (s *UserService) Delete(ctx context.Context, username string, actor *domain.Identity) error {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.users.SoftDelete(ctx, user.ID); err != nil {
		return err
	}

	s.publish(ctx, events.EventUserDeleted, user.Username, actor, events.UserStateChangedPayload{
		UserID:   user.ID,
		IsActive: false,
	})
	return nil
}

func (s *UserService) publish(ctx context.Context, eventType events.EventType, subject string, actor *domain.Identity, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Actor:     events.ActorFromIdentity(actor),
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
