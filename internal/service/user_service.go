package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/user-directory/internal/auth"
	"github.com/spec-kit/user-directory/internal/domain"
	"github.com/spec-kit/user-directory/internal/events"
	"github.com/spec-kit/user-directory/internal/repository"
	apperrors "github.com/spec-kit/user-directory/pkg/util"
)

// CreateInput carries the fields needed to create an account. Email is
// expected to be normalized (trimmed, lowercased) by the transport layer.
type CreateInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *domain.Role
}

// UserService implements the user directory: creation, credential checks and
// role-gated CRUD against the store.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, bcryptCost int, logger *zap.Logger) *UserService {
	return &UserService{users: users, dispatcher: dispatcher, bcryptCost: bcryptCost, logger: logger}
}

// Create registers a new account. The email pre-check gives a friendly
// conflict error; the unique index on users.email catches the race where two
// requests pass the pre-check concurrently, and both paths surface the same
// duplicate-email error.
func (s *UserService) Create(ctx context.Context, input CreateInput) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewDuplicateEmail()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewHashingError(err)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewDuplicateEmail()
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("user created", zap.Int64("id", user.ID), zap.String("email", user.Email))
	s.publish(ctx, events.EventUserRegistered, user, events.UserRegisteredPayload{Role: user.Role})
	return user, nil
}

// Authenticate verifies credentials by email. Unknown email and wrong
// password collapse into one generic error so callers cannot enumerate
// accounts.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, apperrors.NewInternalError(err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return nil, apperrors.NewHashingError(err)
	}
	if !ok {
		return nil, apperrors.NewInvalidCredentials()
	}

	s.publish(ctx, events.EventUserSignedIn, user, nil)
	return user, nil
}

// List returns every account.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return users, nil
}

// GetByID returns a single account.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// Update applies a partial update. A new password is rehashed before
// persisting and updated_at is stamped by the store on every update.
func (s *UserService) Update(ctx context.Context, id int64, updates UpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.NewInternalError(err)
	}

	var changed []string
	if updates.Name != nil {
		user.Name = *updates.Name
		changed = append(changed, "name")
	}
	if updates.Email != nil {
		user.Email = *updates.Email
		changed = append(changed, "email")
	}
	if updates.Password != nil {
		hash, err := auth.HashPassword(*updates.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewHashingError(err)
		}
		user.PasswordHash = hash
		changed = append(changed, "password")
	}
	if updates.Role != nil {
		user.Role = *updates.Role
		changed = append(changed, "role")
	}

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, apperrors.NewDuplicateEmail()
		case errors.Is(err, pgx.ErrNoRows):
			return nil, apperrors.NewNotFound("user")
		default:
			return nil, apperrors.NewInternalError(err)
		}
	}

	s.logger.Info("user updated", zap.Int64("id", user.ID), zap.Strings("fields", changed))
	s.publish(ctx, events.EventUserUpdated, user, events.UserUpdatedPayload{Fields: changed})
	return user, nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return apperrors.NewInternalError(err)
	}

	s.logger.Info("user deleted", zap.Int64("id", id))
	s.publish(ctx, events.EventUserDeleted, &domain.User{ID: id}, nil)
	return nil
}

func (s *UserService) publish(ctx context.Context, eventType events.EventType, user *domain.User, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    eventType,
		UserID:  user.ID,
		Email:   user.Email,
		Payload: payload,
	})
}
