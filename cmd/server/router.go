package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/memo-api/internal/api"
	apiMiddleware "github.com/phrazzld/memo-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	memoHandler := api.NewMemoHandler(app.memoService, app.logger)
	groupHandler := api.NewGroupHandler(app.groupService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Memo endpoints
		r.Post("/memos", memoHandler.CreateMemo)
		r.Get("/memos", memoHandler.ListMemos)
		r.Get("/memos/{id}", memoHandler.GetMemo)
		r.Put("/memos/{id}", memoHandler.UpdateMemo)
		r.Delete("/memos/{id}", memoHandler.DeleteMemo)

		// Tag endpoints
		r.Get("/tags", memoHandler.ListTags)

		// Group endpoints
		r.Post("/groups", groupHandler.CreateGroup)
		r.Get("/groups", groupHandler.ListGroups)
		r.Get("/groups/{id}", groupHandler.GetGroup)
		r.Patch("/groups/{id}", groupHandler.UpdateGroup)
		r.Delete("/groups/{id}", groupHandler.DeleteGroup)

		// Group-scoped memo endpoints
		r.Post("/groups/{id}/memos", groupHandler.AddGroupMemo)
		r.Get("/groups/{id}/memos", groupHandler.ListGroupMemos)
		r.Put("/groups/{id}/memos/{memoID}", groupHandler.UpdateGroupMemo)
		r.Delete("/groups/{id}/memos/{memoID}", groupHandler.RemoveGroupMemo)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
