package handlers

import (
	"github.com/go-chi/chi"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Get("/", h.UploadView)
	r.Post("/upload", h.HandleUpload)
	r.Post("/manual", h.HandleManualCreate)

	r.Get("/cards", h.CardsView)
	r.Post("/cards/save", h.HandleSave)

	r.Get("/download/card/{token}", h.DownloadCard)
	r.Get("/download/all", h.DownloadAll)

	r.Get("/ws/progress", h.HandleWebSocket)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthHandler)
	})
}
