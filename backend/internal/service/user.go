package service

import (
	"context"

	"github.com/studyhub-dev/studyhub/shared/domain"
	"github.com/studyhub-dev/studyhub/shared/errors"
	"github.com/studyhub-dev/studyhub/shared/logger"
)

var (
	ErrSelfAdminToggle = errors.Forbidden("You cannot toggle your own admin status")
	ErrTargetNotFound  = errors.NotFound("User Not Found")
	ErrUserNotFound    = errors.NotFound("User not found")
)

type UserService interface {
	Me(ctx context.Context, id domain.UserId) (*domain.User, error)
	Update(ctx context.Context, id domain.UserId, update domain.UserUpdate) (*domain.User, error)
	SetAdmin(ctx context.Context, actor, target domain.UserId, isAdmin bool) (*domain.User, error)
}

type UserStorage interface {
	UserById(ctx context.Context, id domain.UserId) (*domain.User, error)
	UpdateUser(ctx context.Context, user domain.User) (*domain.User, error)
	SetAdmin(ctx context.Context, id domain.UserId, isAdmin bool) (*domain.User, error)
}

type User struct {
	storage UserStorage
	hasher  PasswordHasher
}

func NewUser(storage UserStorage, hasher PasswordHasher) *User {
	return &User{storage: storage, hasher: hasher}
}

func (u *User) Me(ctx context.Context, id domain.UserId) (*domain.User, error) {
	user, err := u.storage.UserById(ctx, id)
	if errors.IsNotFound(err) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// Update changes the caller's own name, email or password. Empty fields are left unchanged.
func (u *User) Update(ctx context.Context, id domain.UserId, update domain.UserUpdate) (*domain.User, error) {
	patch := domain.User{Id: id, Name: update.Name, Email: update.Email}
	if update.Password != "" {
		passHash, err := u.hasher.Hash(update.Password)
		if err != nil {
			return nil, err
		}
		patch.PassHash = passHash
	}

	user, err := u.storage.UpdateUser(ctx, patch)
	if errors.IsNotFound(err) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// SetAdmin grants or revokes the admin role. An admin can never change their own role.
func (u *User) SetAdmin(ctx context.Context, actor, target domain.UserId, isAdmin bool) (*domain.User, error) {
	if actor == target {
		return nil, ErrSelfAdminToggle
	}

	user, err := u.storage.SetAdmin(ctx, target, isAdmin)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}
	logger.Log.Info("admin role changed", "actor", actor, "target", target, "is_admin", isAdmin)
	return user, nil
}
