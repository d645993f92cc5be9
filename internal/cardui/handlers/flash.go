package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

const flashCookie = "cardui_flash"

// Notice is one user visible message surviving a redirect.
type Notice struct {
	Level string `json:"level"` // "success", "info", "warning", "error"
	Text  string `json:"text"`
}

func successNotice(text string) Notice { return Notice{Level: "success", Text: text} }
func infoNotice(text string) Notice    { return Notice{Level: "info", Text: text} }
func warningNotice(text string) Notice { return Notice{Level: "warning", Text: text} }
func errorNotice(text string) Notice   { return Notice{Level: "error", Text: text} }

// pushFlash stores the notices of one completed action in a cookie so the
// page after the redirect can show them.
func pushFlash(w http.ResponseWriter, notices ...Notice) {
	if len(notices) == 0 {
		return
	}
	data, err := json.Marshal(notices)
	if err != nil {
		log.Errorf("Failed to encode flash notices: %v", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlash reads and clears any pending notices.
func popFlash(w http.ResponseWriter, r *http.Request) []Notice {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	data, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	var notices []Notice
	if err := json.Unmarshal(data, &notices); err != nil {
		return nil
	}
	return notices
}
