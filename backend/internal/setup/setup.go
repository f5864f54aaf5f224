package setup

import (
	"context"
	"fmt"

	"github.com/studyhub-dev/studyhub/backend/internal/handler"
	"github.com/studyhub-dev/studyhub/backend/internal/service"
	"github.com/studyhub-dev/studyhub/backend/internal/storage/fs"
	"github.com/studyhub-dev/studyhub/backend/internal/storage/pg"
	"github.com/studyhub-dev/studyhub/shared/config"
	"github.com/studyhub-dev/studyhub/shared/jwt"
	"github.com/studyhub-dev/studyhub/shared/markdown"
	mw "github.com/studyhub-dev/studyhub/shared/middleware"
	"github.com/studyhub-dev/studyhub/shared/password"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config      *config.Config
	Storage     *pg.Storage
	Handler     *handler.Handler
	Auth        *mw.Auth
	AuthService service.AuthService
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	jwtService, err := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	if err != nil {
		return nil, fmt.Errorf("failed to init token issuer: %w", err)
	}
	hasher, err := password.New(cfg.Public.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to init password hasher: %w", err)
	}

	media, err := fs.New(cfg.Public.MediaPath)
	if err != nil {
		return nil, err
	}

	storage, err := pg.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mediaService := service.NewMedia(media, service.DefaultMaxDecodedImageSize)
	services := handler.Services{
		Auth:    service.NewAuth(storage, hasher, jwtService),
		User:    service.NewUser(storage, hasher),
		Profile: service.NewProfile(storage, mediaService),
		Group:   service.NewGroup(storage),
		Post:    service.NewPost(storage, markdown.New(), mediaService),
		Event:   service.NewEvent(storage, mediaService),
	}

	return &Dependencies{
		Config:      cfg,
		Storage:     storage,
		Handler:     handler.New(services, storage, cfg),
		Auth:        mw.NewAuth(jwtService, storage),
		AuthService: services.Auth,
	}, nil
}

// Bootstrap applies the schema and makes sure the configured administrator exists.
func (d *Dependencies) Bootstrap(ctx context.Context) error {
	if err := d.Storage.Migrate(ctx); err != nil {
		return err
	}
	return d.AuthService.SeedAdmin(ctx, d.Config.Private.Admin)
}
