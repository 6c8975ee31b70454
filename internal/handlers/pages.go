package handlers

import (
	"net/http"

	"github.com/diewo77/go-freelance/internal/middleware"
	"github.com/diewo77/go-freelance/internal/services"
)

// Pages serves the static pages and the contact form.
type Pages struct {
	contact *services.ContactService
}

func NewPages(contact *services.ContactService) *Pages {
	return &Pages{contact: contact}
}

func (h *Pages) Home(w http.ResponseWriter, r *http.Request)  { render(w, r, "index.html", nil) }
func (h *Pages) About(w http.ResponseWriter, r *http.Request) { render(w, r, "about.html", nil) }
func (h *Pages) Chat(w http.ResponseWriter, r *http.Request)  { render(w, r, "chat.html", nil) }

func (h *Pages) ContactForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, "contact.html", map[string]any{"Form": services.ContactInput{}})
}

func (h *Pages) Contact(w http.ResponseWriter, r *http.Request) {
	in := services.ContactInput{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Message: r.FormValue("message"),
	}
	err := h.contact.Submit(r.Context(), in)
	if v := services.Violations(err); v != nil {
		render(w, r, "contact.html", map[string]any{"Form": in, "Errors": v})
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	middleware.AddFlash(w, r, middleware.LevelSuccess, "flash.contact_sent")
	redirect(w, r, "/contact")
}
