package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/projectify-backend/internal/api/handlers"
	"github.com/baharkarakas/projectify-backend/internal/api/httpx"
	"github.com/baharkarakas/projectify-backend/internal/auth"
	"github.com/baharkarakas/projectify-backend/internal/config"
	"github.com/baharkarakas/projectify-backend/internal/metrics"
	"github.com/baharkarakas/projectify-backend/internal/middleware"
	"github.com/baharkarakas/projectify-backend/internal/services"
)

type RouterDeps struct {
	Cfg        config.Config
	TM         *auth.TokenManager
	UserSvc    *services.UserService
	ProjectSvc *services.ProjectService
	ReportSvc  *services.ReportService
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	authMW := middleware.NewAuthMiddleware(d.TM)
	users := handlers.NewUserHandler(d.UserSvc)
	authH := handlers.NewAuthHandler(d.UserSvc)
	projects := handlers.NewProjectHandler(d.ProjectSvc)
	reports := handlers.NewReportHandler(d.ReportSvc)

	r.Route("/user", func(r chi.Router) {
		r.Post("/create", users.Create)
		r.Post("/login", authH.Login)
		r.Post("/refresh", authH.Refresh)
	})

	r.Route("/projects", func(r chi.Router) {
		r.Post("/create", projects.Create)
		r.With(authMW.Auth).Get("/all", projects.List)
	})

	r.Route("/reports", func(r chi.Router) {
		r.Use(authMW.Auth)
		r.Get("/", reports.List)
		r.Post("/create", reports.Create)
		r.Put("/update", reports.Update)
		r.Post("/reconcile", reports.Reconcile)
	})

	return r
}
