package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/go-freelance/i18n"
	"github.com/diewo77/go-freelance/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+"-begin")
				next.ServeHTTP(w, r)
				order = append(order, name+"-end")
			})
		}
	}
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusTeapot)
	})
	rec := httptest.NewRecorder()
	Chain(final, mw("m1"), mw("m2")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"m1-begin", "m2-begin", "handler", "m2-end", "m1-end"}, order)
	require.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, seen, 36)
	require.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "given-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "given-id", seen)
}

func TestLoggingAndMetrics_UseRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Chain(mux, RequestID, Logging(logger), Metrics)

	before := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET /projects/{id}", "GET", "404"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/projects/7", nil))
	after := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET /projects/{id}", "GET", "404"))
	require.Equal(t, before+1, after)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "GET /projects/{id}", line["route"])
	require.EqualValues(t, 404, line["status"])
	require.NotEmpty(t, line["request_id"])
}

func TestRecover(t *testing.T) {
	h := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPrefs(t *testing.T) {
	var lang string
	h := Prefs(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang = LangFrom(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "en", lang)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: langCookie, Value: "en"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "en", lang)

	rec := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/?lang=es", nil)
	req.AddCookie(&http.Cookie{Name: langCookie, Value: "en"})
	h.ServeHTTP(rec, req)
	require.Equal(t, "es", lang)
	require.Contains(t, rec.Header().Get("Set-Cookie"), "lang=es")

	// Unsupported values are ignored.
	req = httptest.NewRequest(http.MethodGet, "/?lang=xx", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, i18n.Default, lang)
}

func TestFlash_QueueAndPop(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(i18n.WithLang(req.Context(), "en"))
	rec := httptest.NewRecorder()
	http.SetCookie(rec, &http.Cookie{Name: "session", Value: "keep"})
	AddFlash(rec, req, LevelSuccess, "flash.applied")
	AddFlash(rec, req, LevelInfo, "flash.owner_notified")

	var flash *http.Cookie
	var sessionKept bool
	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case flashCookie:
			require.Nil(t, flash, "flash cookie set twice")
			flash = c
		case "session":
			sessionKept = true
		}
	}
	require.True(t, sessionKept)
	require.NotNil(t, flash)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(flash)
	rec = httptest.NewRecorder()
	msgs := PopFlash(rec, next)
	require.Equal(t, []FlashMessage{
		{Level: LevelSuccess, Text: "You applied to the project"},
		{Level: LevelInfo, Text: "The project owner has been notified"},
	}, msgs)
	require.True(t, strings.HasPrefix(rec.Header().Get("Set-Cookie"), "flash=;"))

	require.Nil(t, PopFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)))
}
