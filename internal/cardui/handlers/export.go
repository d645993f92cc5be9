package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/export"
	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/grid"
	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/models"
)

// DownloadCard serves the spreadsheet for one just-created record, looked
// up by its stash token. Expired tokens 404; the record itself still exists
// on the backend.
func (h *Handler) DownloadCard(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	card, kind, ok := h.stash.Get(token)
	if !ok {
		http.Error(w, "download expired, re-open the card from View All Cards", http.StatusNotFound)
		return
	}

	filename := "business_card.xlsx"
	if kind == kindManual {
		filename = "business_card_manual.xlsx"
	}

	h.serveExcel(w, grid.FromCards([]models.Card{card}), filename)
}

// DownloadAll re-fetches the full listing and serves it as one spreadsheet.
func (h *Handler) DownloadAll(w http.ResponseWriter, r *http.Request) {
	cards, err := h.svc.Browse(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch cards: "+err.Error(), http.StatusBadGateway)
		return
	}

	h.serveExcel(w, grid.FromCards(cards), "all_business_cards.xlsx")
}

func (h *Handler) serveExcel(w http.ResponseWriter, t *grid.Table, filename string) {
	data, err := export.ExcelBytes(t)
	if err != nil {
		log.Errorf("Failed to build spreadsheet %s: %v", filename, err)
		http.Error(w, "failed to build spreadsheet", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		log.Warnf("Failed to stream spreadsheet %s: %v", filename, err)
	}
}
