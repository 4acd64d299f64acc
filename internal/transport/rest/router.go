package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/warehouse-productivity/internal/auth"
	"github.com/frahmantamala/warehouse-productivity/internal/dashboard"
	"github.com/frahmantamala/warehouse-productivity/internal/entry"
	"github.com/frahmantamala/warehouse-productivity/internal/section"
	"github.com/frahmantamala/warehouse-productivity/internal/transport/middleware"
	"github.com/frahmantamala/warehouse-productivity/internal/transport/swagger"
	"github.com/frahmantamala/warehouse-productivity/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/jmoiron/sqlx"
)

func RegisterAllRoutes(router *chi.Mux, dbx *sqlx.DB, authHandler *auth.Handler, userHandler *user.Handler, dashboardHandler *dashboard.Handler, sectionHandler *section.Handler, entryHandler *entry.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(dbx)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if authHandler != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", authHandler.Login)
				sr.Post("/refresh", authHandler.RefreshToken)
				sr.Post("/logout", authHandler.Logout)
			})
		}

		if authHandler != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				if userHandler != nil {
					pr.Get("/users/me", userHandler.GetMe)
					pr.Get("/users/leads", userHandler.ListLeads)
					pr.Post("/users", userHandler.CreateUser)
				}

				if dashboardHandler != nil {
					pr.Get("/dashboard", dashboardHandler.GetDashboard)
				}

				if sectionHandler != nil {
					pr.Route("/sections", func(sr chi.Router) {
						sr.Get("/", sectionHandler.ListSections)
						sr.Post("/", sectionHandler.CreateSection)
						sr.Put("/{id}", sectionHandler.UpdateSection)
						sr.Delete("/{id}", sectionHandler.DeleteSection)
					})
				}

				if entryHandler != nil {
					pr.Route("/entries", func(er chi.Router) {
						er.Get("/", entryHandler.ListEntries)
						er.Post("/", entryHandler.CreateEntry)
						er.Get("/{id}", entryHandler.GetEntry)
						er.Put("/{id}", entryHandler.UpdateEntry)

						// Inline field patch is guarded by ownership, not
						// role: the entry's own lead may always pass.
						er.Group(func(gr chi.Router) {
							gr.Use(auth.RequireCanPatchEntry(dbx))
							gr.Patch("/{id}/fields", entryHandler.PatchEntryFields)
						})
					})
				}
			})
		}
	})
}
