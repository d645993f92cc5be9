package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/grid"
	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/ws"
)

type cardsPage struct {
	Notices   []Notice
	Session   string
	Table     *grid.Table
	Empty     bool
	UploadTab bool
}

// CardsView fetches all cards and renders them as an editable grid. A fetch
// failure shows an error and an empty listing; zero records show the empty
// state notice.
func (h *Handler) CardsView(w http.ResponseWriter, r *http.Request) {
	notices := popFlash(w, r)

	cards, err := h.svc.Browse(r.Context())
	if err != nil {
		notices = append(notices, errorNotice("Failed to fetch cards: "+err.Error()))
	}

	h.render(w, "cards.html", cardsPage{
		Notices: notices,
		Session: uuid.New().String(),
		Table:   grid.FromCards(cards),
		Empty:   len(cards) == 0,
	})
}

// HandleSave diffs the posted grid against the original values carried in
// the form, patches each changed row sequentially and redirects back to the
// listing so the view reflects server truth.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		pushFlash(w, errorNotice("Invalid form: "+err.Error()))
		http.Redirect(w, r, "/cards", http.StatusSeeOther)
		return
	}

	session := r.PostFormValue("session")

	table := &grid.Table{Columns: grid.EditableColumns()}
	var edited []map[string]string

	for i := 0; ; i++ {
		ids, ok := r.PostForm[fmt.Sprintf("id.%d", i)]
		if !ok || len(ids) == 0 {
			break
		}
		table.IDs = append(table.IDs, ids[0])

		orig := map[string]string{}
		row := map[string]string{}
		for _, col := range table.Columns {
			orig[col] = r.PostFormValue(fmt.Sprintf("orig.%d.%s", i, col))
			row[col] = r.PostFormValue(fmt.Sprintf("cell.%d.%s", i, col))
		}
		table.Rows = append(table.Rows, orig)
		edited = append(edited, row)
	}

	changes := table.Diff(edited)
	if len(changes) == 0 {
		pushFlash(w, infoNotice("No changes detected."))
		http.Redirect(w, r, "/cards", http.StatusSeeOther)
		return
	}

	res := h.svc.SaveChanges(r.Context(), changes, func(done, total int, id string, err error) {
		ev := ws.Event{
			Type:    "progress",
			Message: fmt.Sprintf("Saved %d of %d changed card(s)", done, total),
			Done:    done,
			Total:   total,
		}
		if err != nil {
			ev.Message = fmt.Sprintf("Failed to update %s", id)
		}
		h.hub.Publish(session, ev)
	})

	h.hub.Publish(session, ws.Event{
		Type:    "done",
		Message: "Save completed",
		Done:    len(changes),
		Total:   len(changes),
		Updated: res.Updated,
		Failed:  res.Failed,
	})

	var notices []Notice
	for _, f := range res.Failures {
		notices = append(notices, errorNotice(fmt.Sprintf("Failed to update %s: %v", f.ID, f.Err)))
	}

	switch {
	case res.Updated > 0:
		notices = append(notices, successNotice(fmt.Sprintf("Updated %d card(s). Refreshing...", res.Updated)))
	default:
		notices = append(notices, warningNotice(fmt.Sprintf("Save completed with %d failures.", res.Failed)))
	}

	log.Infof("bulk save finished: %d updated, %d failed", res.Updated, res.Failed)

	pushFlash(w, notices...)
	http.Redirect(w, r, "/cards", http.StatusSeeOther)
}
