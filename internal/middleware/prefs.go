// Package middleware holds the HTTP middleware chain of the server.
package middleware

import (
	"net/http"

	"github.com/diewo77/go-freelance/i18n"
)

const langCookie = "lang"

// Prefs resolves the language (cookie > query > Accept-Language) and stores it in the
// request context. A supported ?lang= value is persisted in a cookie for ~30 days.
func Prefs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := ""
		if c, err := r.Cookie(langCookie); err == nil && i18n.Supported(c.Value) {
			lang = c.Value
		}
		if ql := r.URL.Query().Get("lang"); i18n.Supported(ql) {
			lang = ql
			http.SetCookie(w, &http.Cookie{Name: langCookie, Value: lang, Path: "/", MaxAge: 86400 * 30, SameSite: http.SameSiteLaxMode})
		}
		if lang == "" {
			lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		}
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}

// LangFrom returns the language preference of r.
func LangFrom(r *http.Request) string {
	return i18n.LangFromContext(r.Context())
}
