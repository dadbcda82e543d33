package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bmbat/go_backend/internal/app/config"
	"bmbat/go_backend/internal/app/http/handlers"
	"bmbat/go_backend/internal/app/http/middleware"
)

func NewRouter(cfg config.Config, store handlers.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	h := handlers.New(store, cfg)

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.InternalAuth(cfg.InternalToken))

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", h.ListDocuments)
			r.Post("/", h.CreateDocument)
			r.Put("/{id}", h.SaveDocument)
			r.Delete("/{id}", h.DeleteDocument)
			r.Get("/{id}/totals", h.GetTotals)
			r.Post("/{id}/sign", h.SignDocument)
			r.Post("/{id}/pay", h.PayDocument)
			r.Post("/{id}/type", h.ChangeDocumentType)
			r.Get("/{id}/pdf", h.DocumentPDF)
			r.Get("/{id}/epc", h.DocumentEPC)
		})

		r.Post("/generate", h.Generate)
		r.Post("/audit", h.Audit)
		r.Post("/email", h.DraftEmail)

		r.Get("/branding", h.GetBranding)
		r.Put("/branding", h.PutBranding)
	})

	return r
}
