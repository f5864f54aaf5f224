package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/studyhub-dev/studyhub/backend/internal/handler"
	"github.com/studyhub-dev/studyhub/shared/config"
	mw "github.com/studyhub-dev/studyhub/shared/middleware"
	"github.com/studyhub-dev/studyhub/shared/middleware/metrics"
	"github.com/studyhub-dev/studyhub/shared/middleware/ratelimiter"
)

// Deps is what the route table needs from the wired application.
type Deps struct {
	Config  *config.Config
	Handler *handler.Handler
	Auth    *mw.Auth
}

// New creates the chi router with the middleware chain and all routes.
func New(deps Deps) http.Handler {
	cfg := deps.Config
	h := deps.Handler
	auth := deps.Auth

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Public.CorsAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "x-auth-token"},
		MaxAge:         300,
	}))
	r.Use(mw.SecurityHeaders(cfg.Public.HTTPS))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", metrics.Handler())
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", noDirListing(http.FileServer(http.Dir(cfg.Public.MediaPath)))))

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.With(loginLimit(cfg)...).Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.NeedAuth())
			r.Get("/me", h.Me)
			r.Put("/me", h.UpdateMe)
		})
		r.With(auth.AdminOnly()).Put("/{userId}", h.SetAdmin)
	})

	r.Route("/api/profile", func(r chi.Router) {
		r.Get("/", h.Profiles)
		r.Get("/user/{profileId}", h.ProfileById)

		r.Group(func(r chi.Router) {
			r.Use(auth.NeedAuth())
			r.Post("/create", h.CreateProfile)
			r.Get("/me", h.MyProfile)
			r.Put("/update", h.UpdateProfile)
			r.Delete("/delete", h.DeleteProfile)
			r.Put("/experience", h.AddExperience)
			r.Delete("/experience/{expId}", h.DeleteExperience)
			r.Put("/education", h.AddEducation)
			r.Delete("/education/{eduId}", h.DeleteEducation)
			r.Put("/course", h.AddCourse)
			r.Delete("/course/{courseId}", h.DeleteCourse)
		})
	})

	r.Route("/api/studygroups", func(r chi.Router) {
		r.Use(auth.NeedAuth())
		r.Get("/", h.Groups)
		r.Get("/joined", h.JoinedGroups)
		r.Get("/{groupId}", h.Group)
		r.Post("/join-study-group/{groupId}", h.JoinGroup)
		r.Post("/leave-study-group/{groupId}", h.LeaveGroup)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Post("/create-study-group", h.CreateGroup)
			r.Put("/update-study-group/{groupId}", h.UpdateGroup)
			r.Delete("/delete-study-group/{groupId}", h.DeleteGroup)
		})
	})

	r.Route("/api/posts", func(r chi.Router) {
		r.Use(auth.NeedAuth())
		r.Post("/new", h.CreatePost)
		r.Delete("/delete/{postId}", h.DeletePost)
		r.Get("/", h.Posts)
		r.Get("/{postId}", h.Post)
		r.Get("/studyGroup/{studyGroupId}", h.PostsByGroup)
		r.Get("/user/{userId}", h.PostsByUser)
		r.Put("/like/{postId}", h.LikePost)
		r.Put("/unlike/{postId}", h.UnlikePost)
		r.Put("/comment/{postId}", h.CommentPost)
		r.Delete("/comment/{postId}/{commentId}", h.DeleteComment)
	})

	r.Route("/api/events", func(r chi.Router) {
		r.Use(auth.NeedAuth())
		r.Get("/all", h.Events)
		r.Get("/group/{groupId}", h.EventsByGroup)
		r.Get("/{eventId}", h.Event)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Post("/create", h.CreateEvent)
			r.Delete("/{eventId}", h.DeleteEvent)
		})
	})

	return r
}

// loginLimit throttles login attempts per client IP when configured.
func loginLimit(cfg *config.Config) []func(http.Handler) http.Handler {
	if cfg.Public.LoginAttemptsPerMinute <= 0 {
		return nil
	}
	return []func(http.Handler) http.Handler{
		mw.RateLimit(ratelimiter.PerMinute(cfg.Public.LoginAttemptsPerMinute), mw.GetIP),
	}
}

// noDirListing hides the directory indexes http.FileServer would otherwise render.
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
