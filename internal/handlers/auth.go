package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/diewo77/go-freelance/auth"
	"github.com/diewo77/go-freelance/internal/middleware"
	"github.com/diewo77/go-freelance/internal/services"
	"github.com/diewo77/go-freelance/validation"
)

type AuthHandler struct {
	accounts *services.AccountService
}

func NewAuthHandler(accounts *services.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

func (h *AuthHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, "auth/register.html", map[string]any{"Form": services.RegisterInput{}})
}

// Signup creates the account and signs the new user in.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	in := services.RegisterInput{
		Username:        r.FormValue("username"),
		Email:           r.FormValue("email"),
		FirstName:       r.FormValue("first_name"),
		LastName:        r.FormValue("last_name"),
		Password:        r.FormValue("password"),
		PasswordConfirm: r.FormValue("password_confirm"),
	}
	user, err := h.accounts.Register(r.Context(), in)
	if v := services.Violations(err); v != nil {
		in.Password, in.PasswordConfirm = "", ""
		render(w, r, "auth/register.html", map[string]any{"Form": in, "Errors": v})
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "user_registered", slog.Uint64("user_id", uint64(user.ID)))
	auth.CreateSession(w, user.ID)
	middleware.AddFlash(w, r, middleware.LevelSuccess, "flash.registered")
	redirect(w, r, "/")
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, "auth/login.html", map[string]any{"Next": r.URL.Query().Get("next")})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	next := r.FormValue("next")
	user, err := h.accounts.Authenticate(r.Context(), username, r.FormValue("password"))
	if errors.Is(err, services.ErrInvalidCredentials) {
		render(w, r, "auth/login.html", map[string]any{
			"Username": username,
			"Next":     next,
			"Errors":   validation.Violations{"credentials": "invalid_credentials"},
		})
		return
	}
	if err != nil {
		fail(w, r, err)
		return
	}
	auth.CreateSession(w, user.ID)
	middleware.AddFlash(w, r, middleware.LevelSuccess, "flash.logged_in")
	redirect(w, r, safeNext(next))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	middleware.AddFlash(w, r, middleware.LevelInfo, "flash.logged_out")
	redirect(w, r, "/")
}
