package api

import (
	"net/http"

	"github.com/dom/kpitter/internal/api/handlers"
	"github.com/dom/kpitter/internal/api/middleware"
	"github.com/dom/kpitter/internal/config"
	"github.com/dom/kpitter/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const indexHTML = `<html><head><title>kpitter</title></head>
<body><h1>kpitter</h1>
<p>A little social-posting API. All endpoints live under <code>/api</code>.</p>
</body></html>`

func NewRouter(services *service.Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(indexHTML))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	userHandler := handlers.NewUserHandler(services.Auth)
	postHandler := handlers.NewPostHandler(services.Auth, services.Post)

	r.Route("/api", func(r chi.Router) {
		// Credentials are checked per request; a missing Authorization
		// header just means the caller is anonymous.
		r.Use(middleware.BasicAuth(services.Auth))

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/me", authHandler.Me)

		r.Route("/users/{username}", func(r chi.Router) {
			r.Get("/", userHandler.Get)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", postHandler.List)
				r.Post("/", postHandler.Create)

				r.Route("/{postID}", func(r chi.Router) {
					r.Get("/", postHandler.Get)
					r.Put("/like", postHandler.Like)
					r.Delete("/like", postHandler.Unlike)
				})
			})
		})
	})

	return r
}
