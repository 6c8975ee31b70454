package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/diewo77/go-freelance/httpx"
	"github.com/diewo77/go-freelance/internal/middleware"
	"github.com/diewo77/go-freelance/internal/models"
	"github.com/diewo77/go-freelance/internal/services"
	"github.com/diewo77/go-freelance/validation"
)

type ProjectHandler struct {
	catalog      *services.CatalogService
	applications *services.ApplicationService
	maxUpload    int64
}

func NewProjectHandler(catalog *services.CatalogService, applications *services.ApplicationService, maxUpload int64) *ProjectHandler {
	return &ProjectHandler{catalog: catalog, applications: applications, maxUpload: maxUpload}
}

// listPage renders the shared project list template or its JSON form.
func (h *ProjectHandler) listPage(w http.ResponseWriter, r *http.Request, projects []models.Project, data map[string]any) {
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, projects)
		return
	}
	data["Projects"] = projects
	render(w, r, "projects/list.html", data)
}

func (h *ProjectHandler) lookups(r *http.Request, data map[string]any) error {
	modalities, err := h.catalog.Modalities(r.Context())
	if err != nil {
		return err
	}
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		return err
	}
	data["Modalities"] = modalities
	data["Categories"] = categories
	return nil
}

// Search lists projects filtered by the query string. Invalid filters are
// shown next to the form and the whole catalog is listed instead.
func (h *ProjectHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := services.SearchInput{
		Name:     q.Get("name"),
		Modality: q.Get("modality"),
		Category: q.Get("category"),
		Salary:   q.Get("salary"),
	}
	data := map[string]any{"Title": "project.list_title", "Search": in, "ShowSearch": true}
	if err := h.lookups(r, data); err != nil {
		fail(w, r, err)
		return
	}

	criteria, err := h.catalog.ParseSearch(r.Context(), in)
	if v := services.Violations(err); v != nil {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_filters", v)
			return
		}
		data["Errors"] = v
		data["SearchInvalid"] = true
		criteria = services.Criteria{}
	} else if err != nil {
		fail(w, r, err)
		return
	}
	projects, err := h.catalog.Search(r.Context(), criteria)
	if err != nil {
		fail(w, r, err)
		return
	}
	h.listPage(w, r, projects, data)
}

func (h *ProjectHandler) Mine(w http.ResponseWriter, r *http.Request) {
	projects, err := h.catalog.ListByOwner(r.Context(), currentUser(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	h.listPage(w, r, projects, map[string]any{"Title": "project.mine_title"})
}

func (h *ProjectHandler) All(w http.ResponseWriter, r *http.Request) {
	projects, err := h.catalog.ListAll(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	h.listPage(w, r, projects, map[string]any{"Title": "project.all_title"})
}

// project loads the {id} project, answering 404 itself when it is missing.
func (h *ProjectHandler) project(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	id, ok := pathID(r, "id")
	if !ok {
		NotFound(w, r)
		return nil, false
	}
	p, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		fail(w, r, err)
		return nil, false
	}
	return p, true
}

// applyState fills IsOwner and HasApplied for the signed-in user.
func (h *ProjectHandler) applyState(r *http.Request, p *models.Project, data map[string]any) error {
	uid := currentUser(r)
	data["IsOwner"] = uid != 0 && uid == p.UserID
	applied := false
	if uid != 0 {
		var err error
		if applied, err = h.applications.HasApplied(r.Context(), uid, p.ID); err != nil {
			return err
		}
	}
	data["HasApplied"] = applied
	return nil
}

func (h *ProjectHandler) Detail(w http.ResponseWriter, r *http.Request) {
	p, ok := h.project(w, r)
	if !ok {
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, p)
		return
	}
	data := map[string]any{"Project": p}
	if err := h.applyState(r, p, data); err != nil {
		fail(w, r, err)
		return
	}
	render(w, r, "projects/detail.html", data)
}

func (h *ProjectHandler) newPage(w http.ResponseWriter, r *http.Request, form services.ProjectInput, v validation.Violations) {
	data := map[string]any{"Form": form, "Currencies": services.Currencies}
	if v != nil {
		data["Errors"] = v
	}
	if err := h.lookups(r, data); err != nil {
		fail(w, r, err)
		return
	}
	render(w, r, "projects/new.html", data)
}

func (h *ProjectHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.newPage(w, r, services.ProjectInput{Currency: models.DefaultCurrency}, nil)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	attachment, err := uploadedFile(w, r, "attachment", h.maxUpload)
	if errors.Is(err, errUploadTooLarge) {
		h.newPage(w, r, services.ProjectInput{Currency: models.DefaultCurrency}, validation.Violations{"attachment": "file_too_large"})
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	in := services.ProjectInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Modality:    r.FormValue("modality"),
		Category:    r.FormValue("category"),
		Salary:      r.FormValue("salary"),
		Currency:    r.FormValue("currency"),
		Attachment:  attachment,
	}
	p, err := h.catalog.Create(r.Context(), currentUser(r), in)
	if v := services.Violations(err); v != nil {
		in.Attachment = nil
		h.newPage(w, r, in, v)
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	middleware.AddFlash(w, r, middleware.LevelSuccess, "flash.project_saved")
	redirect(w, r, "/projects/"+strconv.FormatUint(uint64(p.ID), 10))
}

// ApplyForm shows the confirmation page, or the already-applied state.
func (h *ProjectHandler) ApplyForm(w http.ResponseWriter, r *http.Request) {
	p, ok := h.project(w, r)
	if !ok {
		return
	}
	data := map[string]any{"Project": p}
	if err := h.applyState(r, p, data); err != nil {
		fail(w, r, err)
		return
	}
	render(w, r, "projects/apply.html", data)
}

// Apply records the application and notifies the owner. Duplicates and
// self-applications are reported with a flash and change nothing.
func (h *ProjectHandler) Apply(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		NotFound(w, r)
		return
	}
	back := "/projects/" + strconv.FormatUint(uint64(id), 10)
	_, err := h.applications.Apply(r.Context(), currentUser(r), id)
	switch {
	case err == nil:
		middleware.AddFlash(w, r, middleware.LevelSuccess, "flash.applied")
		middleware.AddFlash(w, r, middleware.LevelInfo, "flash.owner_notified")
	case errors.Is(err, services.ErrAlreadyApplied):
		middleware.AddFlash(w, r, middleware.LevelWarning, "flash.already_applied")
	case services.Violations(err) != nil:
		middleware.AddFlash(w, r, middleware.LevelError, services.Violations(err)["project"])
	default:
		fail(w, r, err)
		return
	}
	redirect(w, r, back)
}
