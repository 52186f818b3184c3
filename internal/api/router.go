package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/medrounds/sccprompts/internal/api/handlers"
	"github.com/medrounds/sccprompts/internal/api/middleware"
	"github.com/medrounds/sccprompts/internal/audit"
	"github.com/medrounds/sccprompts/internal/auth"
	"github.com/medrounds/sccprompts/internal/cache"
	"github.com/medrounds/sccprompts/internal/complaint"
	"github.com/medrounds/sccprompts/internal/config"
	"github.com/medrounds/sccprompts/internal/generator"
	"github.com/medrounds/sccprompts/internal/identity"
	"github.com/medrounds/sccprompts/internal/template"
	"github.com/medrounds/sccprompts/internal/webhook"
)

type Router struct {
	mux    *chi.Mux
	db     *pgxpool.Pool
	redis  *redis.Client
	cfg    *config.Config
	ids    *identity.Service
	jwt    *auth.JWTMiddleware
	apikey *auth.APIKeyMiddleware
	rbac   *auth.RBAC
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	ids := identity.NewService(db)
	return &Router{
		mux:    chi.NewRouter(),
		db:     db,
		redis:  rdb,
		cfg:    cfg,
		ids:    ids,
		jwt:    auth.NewJWTMiddleware(cfg.Auth.JWTSecret, ids),
		apikey: auth.NewAPIKeyMiddleware(db, cfg.Auth.APIKeyHeader, ids),
		rbac:   auth.NewRBAC(db),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Initialize services
	complaintSvc := complaint.NewService(rt.db)
	genSvc := generator.NewService(generator.NewPgStore(rt.db))
	templateSvc := template.NewService(rt.db, cache.NewCache(rt.redis),
		time.Duration(rt.cfg.Template.CacheTTLSeconds)*time.Second)
	auditSvc := audit.NewService(rt.db)
	dispatcher := webhook.NewDispatcher(rt.db)
	webhookSvc := webhook.NewService(rt.db, dispatcher)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Auth: try API key first, then JWT
		r.Use(rt.apikey.Authenticate)
		r.Use(rt.jwt.Authenticate)

		// Complaint routes
		complaintH := handlers.NewComplaintHandler(complaintSvc, genSvc, auditSvc, webhookSvc)
		r.Route("/complaints", func(r chi.Router) {
			r.Post("/", complaintH.Create)
			r.Get("/", complaintH.List)
			r.Get("/{id}", complaintH.Get)
			r.Put("/{id}", complaintH.Update)
			r.Patch("/{id}", complaintH.Update)
			r.Delete("/{id}", complaintH.Delete)
			r.Post("/{id}/generate_prompt", complaintH.GeneratePrompt)
		})

		// Prompt routes (read-only)
		promptH := handlers.NewPromptHandler(genSvc)
		r.Route("/prompts", func(r chi.Router) {
			r.Get("/", promptH.List)
			r.Get("/{id}", promptH.Get)
		})

		// Template routes: reads for everyone, writes for administrators
		templateH := handlers.NewTemplateHandler(templateSvc)
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", templateH.List)
			r.Get("/{id}", templateH.Get)

			r.Group(func(r chi.Router) {
				r.Use(rt.rbac.RequirePermission(auth.PermTemplatesWrite))
				r.Post("/", templateH.Create)
				r.Put("/{id}", templateH.Update)
			})
		})

		// Webhook routes
		webhookH := handlers.NewWebhookHandler(webhookSvc)
		r.Route("/webhooks", func(r chi.Router) {
			r.Post("/", webhookH.Create)
			r.Get("/", webhookH.List)
			r.Delete("/{id}", webhookH.Delete)
		})

		// Admin routes
		adminH := handlers.NewAdminHandler(auditSvc)
		r.Route("/admin", func(r chi.Router) {
			r.Use(rt.rbac.RequirePermission(auth.PermAdminRead))
			r.Get("/audit", adminH.AuditLogs)
		})
	})

	return r
}
