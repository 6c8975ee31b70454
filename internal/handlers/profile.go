package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/diewo77/go-freelance/internal/middleware"
	"github.com/diewo77/go-freelance/internal/services"
	"github.com/diewo77/go-freelance/validation"
)

type ProfileHandler struct {
	profiles  *services.ProfileService
	maxUpload int64
}

func NewProfileHandler(profiles *services.ProfileService, maxUpload int64) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, maxUpload: maxUpload}
}

// Show renders the profile page, creating the profile on first visit.
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	page, err := h.profiles.Page(r.Context(), currentUser(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	render(w, r, "profile/show.html", map[string]any{"Page": page})
}

func (h *ProfileHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	page, err := h.profiles.Page(r.Context(), currentUser(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	acc, prof := services.ProfileForm(page.User, page.Profile)
	render(w, r, "profile/edit.html", map[string]any{
		"Page":       page,
		"Account":    acc,
		"Profile":    prof,
		"Currencies": services.Currencies,
	})
}

func (h *ProfileHandler) Edit(w http.ResponseWriter, r *http.Request) {
	uid := currentUser(r)
	avatar, err := uploadedFile(w, r, "avatar", h.maxUpload)
	if errors.Is(err, errUploadTooLarge) {
		h.editInvalid(w, r, nil, validation.Violations{"avatar": "file_too_large"})
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	acc := services.AccountInput{
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Email:     r.FormValue("email"),
	}
	prof := services.ProfileInput{
		HourlyRate: r.FormValue("hourly_rate"),
		Currency:   r.FormValue("currency"),
		Avatar:     avatar,
	}
	err = h.profiles.Update(r.Context(), uid, acc, prof)
	if v := services.Violations(err); v != nil {
		h.editInvalid(w, r, &editForm{acc, prof}, v)
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	middleware.AddFlash(w, r, middleware.LevelSuccess, "flash.profile_saved")
	redirect(w, r, "/profile")
}

type editForm struct {
	account services.AccountInput
	profile services.ProfileInput
}

// editInvalid re-renders the edit page with violations. A nil form falls
// back to the stored values, for posts whose body could not be read.
func (h *ProfileHandler) editInvalid(w http.ResponseWriter, r *http.Request, form *editForm, v validation.Violations) {
	page, err := h.profiles.Page(r.Context(), currentUser(r))
	if err != nil {
		fail(w, r, err)
		return
	}
	if form == nil {
		acc, prof := services.ProfileForm(page.User, page.Profile)
		form = &editForm{acc, prof}
	}
	render(w, r, "profile/edit.html", map[string]any{
		"Page":       page,
		"Account":    form.account,
		"Profile":    form.profile,
		"Currencies": services.Currencies,
		"Errors":     v,
	})
}

// ExperienceForm renders the experience form: empty without {id}, prefilled with it.
func (h *ProfileHandler) ExperienceForm(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Form": services.ExperienceInput{}}
	if r.PathValue("id") != "" {
		id, ok := pathID(r, "id")
		if !ok {
			NotFound(w, r)
			return
		}
		e, err := h.profiles.Experience(r.Context(), currentUser(r), id)
		if err != nil {
			fail(w, r, err)
			return
		}
		data["Form"] = services.ExperienceForm(e)
		data["ID"] = e.ID
	}
	render(w, r, "profile/experience.html", data)
}

func (h *ProfileHandler) SaveExperience(w http.ResponseWriter, r *http.Request) {
	var id uint
	if r.PathValue("id") != "" {
		var ok bool
		if id, ok = pathID(r, "id"); !ok {
			NotFound(w, r)
			return
		}
	}
	in := services.ExperienceInput{
		Title:       r.FormValue("title"),
		Company:     r.FormValue("company"),
		Description: r.FormValue("description"),
		StartDate:   r.FormValue("start_date"),
		EndDate:     r.FormValue("end_date"),
	}
	_, err := h.profiles.SaveExperience(r.Context(), currentUser(r), id, in)
	if v := services.Violations(err); v != nil {
		data := map[string]any{"Form": in, "Errors": v}
		if id != 0 {
			data["ID"] = id
		}
		render(w, r, "profile/experience.html", data)
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	middleware.AddFlash(w, r, middleware.LevelSuccess, "flash.experience_saved")
	redirect(w, r, "/profile")
}

func (h *ProfileHandler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		NotFound(w, r)
		return
	}
	if err := h.profiles.DeleteExperience(r.Context(), currentUser(r), id); err != nil {
		fail(w, r, err)
		return
	}
	middleware.AddFlash(w, r, middleware.LevelSuccess, "flash.experience_deleted")
	redirect(w, r, "/profile")
}

var errUploadTooLarge = errors.New("upload exceeds size limit")

// uploadedFile parses a multipart form capped at maxUpload plus room for the
// text fields, and returns the named file or nil when none was sent.
// Plain urlencoded posts are accepted and yield no file.
func uploadedFile(w http.ResponseWriter, r *http.Request, field string, maxUpload int64) (*multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+1<<20)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, errUploadTooLarge
		}
		return nil, err
	}
	_, fh, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fh.Size == 0 && fh.Filename == "" {
		return nil, nil
	}
	return fh, nil
}
