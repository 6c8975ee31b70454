package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/diewo77/go-freelance/i18n"
)

const flashCookie = "flash"

// Flash levels, mapped to alert styles by the layout.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// FlashMessage is one translated notice shown on the next rendered page.
type FlashMessage struct {
	Level string `json:"l"`
	Text  string `json:"t"`
}

// AddFlash queues a translated message for the next page. Messages set
// earlier in the same response are kept.
func AddFlash(w http.ResponseWriter, r *http.Request, level, code string) {
	msgs := pending(w, r)
	msgs = append(msgs, FlashMessage{Level: level, Text: i18n.T(LangFrom(r), code)})
	b, err := json.Marshal(msgs)
	if err != nil {
		return
	}
	c := &http.Cookie{Name: flashCookie, Value: base64.RawURLEncoding.EncodeToString(b), Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}
	http.SetCookie(w, c)
}

// pending takes the messages already queued on w in this response, so several
// AddFlash calls before a redirect all survive. The previous flash
// Set-Cookie line is dropped; other cookies are kept.
func pending(w http.ResponseWriter, _ *http.Request) []FlashMessage {
	var out []FlashMessage
	lines := w.Header().Values("Set-Cookie")
	kept := lines[:0:0]
	for _, line := range lines {
		c, err := http.ParseSetCookie(line)
		if err == nil && c.Name == flashCookie {
			if c.Value != "" {
				out = decodeFlash(c.Value)
			}
			continue
		}
		kept = append(kept, line)
	}
	if len(kept) != len(lines) {
		w.Header()["Set-Cookie"] = kept
	}
	return out
}

// PopFlash returns the queued messages and clears the cookie.
func PopFlash(w http.ResponseWriter, r *http.Request) []FlashMessage {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	return decodeFlash(c.Value)
}

func decodeFlash(v string) []FlashMessage {
	b, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil {
		return nil
	}
	var msgs []FlashMessage
	if err := json.Unmarshal(b, &msgs); err != nil {
		return nil
	}
	return msgs
}
