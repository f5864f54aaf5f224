package handler

import (
	"context"

	"github.com/studyhub-dev/studyhub/backend/internal/service"
	"github.com/studyhub-dev/studyhub/shared/config"
)

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Services groups the business services the handlers call into.
type Services struct {
	Auth    service.AuthService
	User    service.UserService
	Profile service.ProfileService
	Group   service.GroupService
	Post    service.PostService
	Event   service.EventService
}

type Handler struct {
	auth    service.AuthService
	user    service.UserService
	profile service.ProfileService
	group   service.GroupService
	post    service.PostService
	event   service.EventService
	health  HealthChecker
	cfg     *config.Config
}

func New(services Services, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		auth:    services.Auth,
		user:    services.User,
		profile: services.Profile,
		group:   services.Group,
		post:    services.Post,
		event:   services.Event,
		health:  health,
		cfg:     cfg,
	}
}
