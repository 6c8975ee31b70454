package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/go-freelance/internal/middleware"
	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/services"
)

type ApplicationHandler struct {
	applications *services.ApplicationService
}

func NewApplicationHandler(applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

// Manage lists the applications received on the user's projects.
func (h *ApplicationHandler) Manage(w http.ResponseWriter, r *http.Request) {
	apps, err := h.applications.ListForOwner(r.Context(), currentUser(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	render(w, r, "applications/manage.html", map[string]any{
		"Applications": apps,
		"Statuses":     models.ApplicationStatuses,
	})
}

// Mine lists the applications the user sent.
func (h *ApplicationHandler) Mine(w http.ResponseWriter, r *http.Request) {
	apps, err := h.applications.ListForUser(r.Context(), currentUser(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	render(w, r, "applications/mine.html", map[string]any{"Applications": apps})
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		NotFound(w, r)
		return
	}
	status := models.ApplicationStatus(r.PathValue("status"))
	_, err := h.applications.UpdateStatus(r.Context(), currentUser(r), id, status)
	switch {
	case err == nil:
		middleware.AddFlash(w, r, middleware.LevelSuccess, "flash.status_updated")
	case errors.Is(err, services.ErrPermissionDenied):
		middleware.AddFlash(w, r, middleware.LevelError, "flash.permission_denied")
	case services.Violations(err) != nil:
		middleware.AddFlash(w, r, middleware.LevelError, "invalid_choice")
	default:
		fail(w, r, err)
		return
	}
	redirect(w, r, "/applications/manage")
}
