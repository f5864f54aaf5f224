package service

import (
	"context"

	"github.com/studyhub-dev/studyhub/shared/config"
	"github.com/studyhub-dev/studyhub/shared/domain"
	"github.com/studyhub-dev/studyhub/shared/errors"
	"github.com/studyhub-dev/studyhub/shared/logger"
	"github.com/studyhub-dev/studyhub/shared/utils"
)

var (
	ErrUserExists         = errors.Validation("User Already Exists")
	ErrInvalidCredentials = errors.Validation("Invalid Credentials")
	// Unknown email and wrong password are reported differently.
	ErrInvalidPassword = errors.Validation("Invalid Password")
)

type AuthService interface {
	Register(ctx context.Context, reg domain.Registration) error
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	SeedAdmin(ctx context.Context, admin config.Admin) error
}

type AuthStorage interface {
	SaveUser(ctx context.Context, user domain.User) (domain.UserId, error)
	UserByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
	SetAdmin(ctx context.Context, id domain.UserId, isAdmin bool) (*domain.User, error)
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type Jwt interface {
	NewToken(identity domain.Identity) (string, error)
}

type Auth struct {
	storage AuthStorage
	hasher  PasswordHasher
	jwt     Jwt
}

func NewAuth(storage AuthStorage, hasher PasswordHasher, jwt Jwt) *Auth {
	return &Auth{
		storage: storage,
		hasher:  hasher,
		jwt:     jwt,
	}
}

// Register creates a non-admin account. It does not log the user in.
func (a *Auth) Register(ctx context.Context, reg domain.Registration) error {
	_, err := a.storage.UserByEmail(ctx, reg.Email)
	if err == nil {
		return ErrUserExists
	}
	if !errors.IsNotFound(err) {
		return err
	}

	passHash, err := a.hasher.Hash(reg.Password)
	if err != nil {
		return err
	}

	// Hash and record are persisted in one call; a concurrent duplicate hits the unique index.
	_, err = a.storage.SaveUser(ctx, domain.User{
		Name:     reg.Name,
		Email:    reg.Email,
		PassHash: passHash,
		Avatar:   utils.GravatarURL(reg.Email),
		Admin:    false,
	})
	if err != nil {
		return err
	}
	logger.Log.Info("user registered", "email", reg.Email)
	return nil
}

func (a *Auth) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	user, err := a.storage.UserByEmail(ctx, creds.Email)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !a.hasher.Verify(creds.Password, user.PassHash) {
		return "", ErrInvalidPassword
	}

	token, err := a.jwt.NewToken(domain.Identity{Id: user.Id, Name: user.Name})
	if err != nil {
		logger.Log.Error("failed to issue token", "user_id", user.Id, "error", err)
		return "", err
	}
	return token, nil
}

// SeedAdmin makes sure the configured administrator exists. An empty email is a no-op.
func (a *Auth) SeedAdmin(ctx context.Context, admin config.Admin) error {
	if admin.Email == "" {
		return nil
	}

	existing, err := a.storage.UserByEmail(ctx, admin.Email)
	switch {
	case err == nil && existing.Admin:
		return nil
	case err == nil:
		if _, err := a.storage.SetAdmin(ctx, existing.Id, true); err != nil {
			return err
		}
		logger.Log.Info("promoted existing user to admin", "email", admin.Email)
		return nil
	case !errors.IsNotFound(err):
		return err
	}

	passHash, err := a.hasher.Hash(admin.Password)
	if err != nil {
		return err
	}
	name := admin.Name
	if name == "" {
		name = "Admin"
	}
	_, err = a.storage.SaveUser(ctx, domain.User{
		Name:     name,
		Email:    admin.Email,
		PassHash: passHash,
		Avatar:   utils.GravatarURL(admin.Email),
		Admin:    true,
	})
	if err != nil {
		return err
	}
	logger.Log.Info("admin account created", "email", admin.Email)
	return nil
}
