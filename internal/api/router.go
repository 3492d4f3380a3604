package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/maren/taskhive/internal/api/handlers"
	"github.com/maren/taskhive/internal/api/middleware"
	"github.com/maren/taskhive/internal/auth"
	"github.com/maren/taskhive/internal/dashboard"
	"github.com/maren/taskhive/internal/members"
	"github.com/maren/taskhive/internal/projects"
	"github.com/maren/taskhive/internal/workitems"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *slog.Logger
	JWTService     *auth.JWTService
	AuthService    *auth.Service
	Passwords      *members.PasswordGenerator
	AllowedOrigins []string // CORS allowed origins
	RateLimitReqs  int      // Rate limit requests per window
	RateLimitSecs  int      // Rate limit window in seconds
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware. The access context is resolved before logging so
	// request lines carry the tenant; protected groups additionally require
	// it to be authenticated.
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.AccessContext(cfg.JWTService))
	r.Use(middleware.Logging(cfg.Logger))

	// Rate limiting - applied globally to prevent abuse
	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	// CORS - restrict to configured origins, or allow localhost in development
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize services
	projectService := projects.NewService(cfg.DB)
	workItemService := workitems.NewService(cfg.DB)
	memberService := members.NewService(cfg.DB, cfg.Passwords)
	dashboardService := dashboard.NewService(cfg.DB)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	memberHandler := handlers.NewMemberHandler(memberService)
	projectHandler := handlers.NewProjectHandler(projectService)
	workItemHandler := handlers.NewWorkItemHandler(workItemService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/dashboard/summary", dashboardHandler.Summary)

			r.Route("/members", func(r chi.Router) {
				r.Get("/", memberHandler.List)
				r.Post("/", memberHandler.Add)
				r.Delete("/{id}", memberHandler.Remove)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", projectHandler.List)
				r.Get("/completed", projectHandler.ListCompleted)
				r.Post("/", projectHandler.Create)
				r.Delete("/{id}", projectHandler.Delete)
				r.Patch("/{id}/complete", projectHandler.Complete)
			})

			r.Route("/work-items", func(r chi.Router) {
				r.Get("/project/{projectId}", workItemHandler.ListByProject)
				r.Post("/", workItemHandler.Create)
				r.Patch("/{id}/status", workItemHandler.UpdateStatus)
				r.Patch("/{id}/assignee", workItemHandler.UpdateAssignee)
				r.Get("/{id}/comments", workItemHandler.ListComments)
				r.Post("/{id}/comments", workItemHandler.AddComment)
			})
		})
	})

	return &Router{r}
}
