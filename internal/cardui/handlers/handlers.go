package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/service"
	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/ws"
	"github.com/vigneshcj001/Business-Card-Scanner/web"
)

type Handler struct {
	svc   *service.CardService
	hub   *ws.Hub
	stash *resultStash
	tpl   *template.Template
}

func NewHandler(svc *service.CardService, hub *ws.Hub) *Handler {
	return &Handler{
		svc:   svc,
		hub:   hub,
		stash: newResultStash(15 * time.Minute),
		tpl:   template.Must(template.ParseFS(web.Templates, "templates/*.html")),
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "card ui service is running at port " + os.Getenv("UI_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode health response: %v", err)
	}
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tpl.ExecuteTemplate(w, name, data); err != nil {
		log.Errorf("Failed to render template %s: %v", name, err)
	}
}
