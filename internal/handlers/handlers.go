// Package handlers holds the HTML handlers. They parse the request, call a
// service and render a page or redirect.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/diewo77/go-freelance/auth"
	"github.com/diewo77/go-freelance/httpx"
	"github.com/diewo77/go-freelance/internal/middleware"
	"github.com/diewo77/go-freelance/internal/services"
	"github.com/diewo77/go-freelance/view"
)

// render executes a page and answers 500 when the template fails.
func render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	renderStatus(w, r, http.StatusOK, name, data)
}

func renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	if err := view.RenderStatus(w, r, status, name, data); err != nil {
		slog.ErrorContext(r.Context(), "render_failed",
			slog.String("template", name),
			slog.String("err", err.Error()),
			slog.String("request_id", middleware.RequestIDFrom(r.Context())),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// errorPage renders the shared error template with a translated message.
func errorPage(w http.ResponseWriter, r *http.Request, status int, code string) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, status, code, nil)
		return
	}
	renderStatus(w, r, status, "error.html", map[string]any{"Status": status, "Message": code})
}

// NotFound renders the 404 page. It is also the mux fallback for unknown paths.
func NotFound(w http.ResponseWriter, r *http.Request) {
	errorPage(w, r, http.StatusNotFound, "error.not_found")
}

// fail maps a service error that the handler did not handle itself.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		NotFound(w, r)
	case errors.Is(err, services.ErrNotification):
		errorPage(w, r, http.StatusBadGateway, "error.mail")
	case errors.Is(err, services.ErrPermissionDenied):
		errorPage(w, r, http.StatusForbidden, "flash.permission_denied")
	default:
		slog.ErrorContext(r.Context(), "request_failed",
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
			slog.String("request_id", middleware.RequestIDFrom(r.Context())),
		)
		errorPage(w, r, http.StatusInternalServerError, "error.internal")
	}
}

// currentUser returns the signed-in user id. Routes behind RequireAuth always have one.
func currentUser(r *http.Request) uint {
	uid, _ := auth.UserIDFromContext(r.Context())
	return uid
}

// pathID parses a positive numeric path value.
func pathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// safeNext keeps only local absolute paths as post-login targets.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
