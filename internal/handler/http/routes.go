package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const compressLevel = 5

// Init builds the REST router. Everything under /api/docs, /api/collections
// and /api/batch needs a bearer token.
func (h *Handler) Init() *chi.Mux {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		h.withTraceID,
		h.withLogging,
		middleware.Compress(compressLevel, "application/json"),
	)

	r.Route("/api", func(api chi.Router) {
		api.Get("/version", h.getServerVersion)
		api.Route("/user", func(user chi.Router) {
			user.Post("/register", h.register)
			user.Post("/login", h.login)
		})

		api.Group(func(docs chi.Router) {
			docs.Use(h.auth)

			docs.Route("/docs", func(d chi.Router) {
				d.Get("/*", h.getDocument)
				d.Put("/*", h.setDocument)
				d.Patch("/*", h.updateDocument)
				d.Delete("/*", h.deleteDocument)
			})
			docs.Route("/collections", func(c chi.Router) {
				c.Get("/*", h.listDocuments)
				c.Post("/*", h.addDocument)
			})
			docs.Post("/batch", h.batchWrite)
		})
	})

	r.MethodNotAllowed(methodNotAllowed(r))
	return r
}
