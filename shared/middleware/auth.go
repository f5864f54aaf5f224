package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/studyhub-dev/studyhub/shared/domain"
	"github.com/studyhub-dev/studyhub/shared/errors"
	jwt_internal "github.com/studyhub-dev/studyhub/shared/jwt"
	"github.com/studyhub-dev/studyhub/shared/logger"
	"github.com/studyhub-dev/studyhub/shared/utils"
)

// UserLoader is the slice of the credential store the role gate needs.
type UserLoader interface {
	UserById(ctx context.Context, id domain.UserId) (*domain.User, error)
}

// Key to store the verified identity in the request context
type key int

const IdentityKey key = 0

const legacyTokenHeader = "x-auth-token"

var (
	errNoToken      = errors.Unauthenticated("No token, authorization denied")
	errUserNotFound = errors.NotFound("User not found")
	errNotAdmin     = errors.Forbidden("You are not an admin")
	errServer       = &errors.ErrorWithStatusCode{Message: "Server error", StatusCode: http.StatusInternalServerError}
)

type Auth struct {
	jwtService jwt_internal.JwtService
	users      UserLoader
}

func NewAuth(jwtService jwt_internal.JwtService, users UserLoader) *Auth {
	return &Auth{
		jwtService: jwtService,
		users:      users,
	}
}

// NeedAuth verifies the request token and attaches the identity to the context.
// It never reads the credential store.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := a.extractIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly authenticates like NeedAuth and then re-reads the user on every
// request, so a revoked role takes effect on the next call.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return a.NeedAuth()(a.RequireAdmin(next))
	}
}

// RequireAdmin is the role gate alone. It expects NeedAuth to have run.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := GetUserFromContext(r)
		if identity == nil {
			utils.WriteErrorAndStatusCode(w, errNoToken)
			return
		}

		user, err := a.users.UserById(r.Context(), identity.Id)
		switch {
		case errors.IsNotFound(err):
			utils.WriteErrorAndStatusCode(w, errUserNotFound)
			return
		case err != nil:
			logger.Log.Error("role gate failed to load user", "user_id", identity.Id, "error", err)
			utils.WriteErrorAndStatusCode(w, errServer)
			return
		case !user.Admin:
			utils.WriteErrorAndStatusCode(w, errNotAdmin)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// extractIdentity reads the token from "Authorization: Bearer" and falls back
// to the x-auth-token header used by older clients.
func (a *Auth) extractIdentity(r *http.Request) (*domain.Identity, error) {
	tokenString, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || tokenString == "" {
		tokenString = r.Header.Get(legacyTokenHeader)
	}
	if tokenString == "" {
		return nil, errNoToken
	}
	return a.jwtService.DecodeToken(tokenString)
}

// GetUserFromContext retrieves the verified identity, or nil outside NeedAuth.
func GetUserFromContext(r *http.Request) *domain.Identity {
	identity, ok := r.Context().Value(IdentityKey).(*domain.Identity)
	if !ok {
		return nil
	}
	return identity
}
