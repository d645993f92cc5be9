package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/backend"
	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/grid"
	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/models"
	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/ws"
)

// Browser side upload limit; the backend enforces its own transport cap.
const maxUploadBytes = 200 << 20

type uploadPage struct {
	Notices      []Notice
	Session      string
	Result       *grid.Table
	DownloadHref string
	UploadTab    bool
}

// UploadView renders the upload tab: image upload form, manual entry form
// and, after a successful create, the one row result table with its
// download link.
func (h *Handler) UploadView(w http.ResponseWriter, r *http.Request) {
	page := uploadPage{
		Notices:   popFlash(w, r),
		Session:   uuid.New().String(),
		UploadTab: true,
	}

	if token := r.URL.Query().Get("result"); token != "" {
		if card, _, ok := h.stash.Get(token); ok {
			page.Result = grid.FromCards([]models.Card{card})
			page.DownloadHref = "/download/card/" + token
		}
	}

	h.render(w, "upload.html", page)
}

// HandleUpload forwards the posted image to the backend OCR endpoint and
// redirects back with the created record. No retry on failure; the user
// re-triggers the upload manually.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		pushFlash(w, errorNotice("Invalid upload: "+err.Error()))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	session := r.FormValue("session")

	file, header, err := r.FormFile("file")
	if err != nil {
		pushFlash(w, errorNotice("No file selected."))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		pushFlash(w, errorNotice("Failed to read uploaded file: "+err.Error()))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.hub.Publish(session, ws.Event{Type: "progress", Message: "Processing image with OCR and uploading..."})

	card, err := h.svc.Upload(r.Context(), header.Filename, content)
	if err != nil {
		h.hub.Publish(session, ws.Event{Type: "done", Message: "Upload failed.", Failed: 1})
		pushFlash(w, noticeForError("Upload", err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.hub.Publish(session, ws.Event{Type: "done", Message: "Inserted Successfully!", Updated: 1})

	token := h.stash.Put(*card, kindUpload)
	log.Infof("card %s created from image %s", card.ID, header.Filename)

	pushFlash(w, successNotice("Inserted Successfully!"))
	http.Redirect(w, r, "/?result="+token, http.StatusSeeOther)
}

// HandleManualCreate submits the manual entry form as JSON.
func (h *Handler) HandleManualCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		pushFlash(w, errorNotice("Invalid form: "+err.Error()))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	fields := map[string]string{}
	for _, col := range models.ExpectedColumns {
		switch col {
		case "_id", "created_at", "edited_at":
			continue
		}
		fields[col] = r.PostFormValue(col)
	}

	card, err := h.svc.CreateManual(r.Context(), fields)
	if err != nil {
		pushFlash(w, noticeForError("Create", err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	token := h.stash.Put(*card, kindManual)
	log.Infof("card %s created manually", card.ID)

	pushFlash(w, successNotice("Inserted Successfully!"))
	http.Redirect(w, r, "/?result="+token, http.StatusSeeOther)
}

// noticeForError maps the backend error taxonomy to a user notice:
// transport failure, non success status, success without payload.
func noticeForError(action string, err error) Notice {
	if errors.Is(err, backend.ErrNoData) {
		return warningNotice("Backend returned success but no data payload.")
	}
	var se *backend.StatusError
	if errors.As(err, &se) {
		return errorNotice(action + " failed: " + se.Error())
	}
	return errorNotice(err.Error())
}
