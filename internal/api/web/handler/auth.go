package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dkozyrev/sneakershop/internal/api/web/middleware"
	"github.com/dkozyrev/sneakershop/internal/model"
	"github.com/dkozyrev/sneakershop/internal/service"
)

// SignupForm renders the registration page.
func (h *Handler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render.Page(w, "registration.html", map[string]any{"Email": "", "Name": "", "Avatar": ""})
}

// Signup registers a new user, logs them in and queues the verification
// email. Validation failures re-render the form with the accumulated
// messages.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	form := service.RegisterForm{
		Email:           r.PostFormValue("email"),
		Name:            r.PostFormValue("name"),
		Password:        r.PostFormValue("password"),
		PasswordConfirm: r.PostFormValue("password_confirm"),
		Avatar:          r.PostFormValue("avatar"),
	}

	_, err := h.auth.Register(r.Context(), form)
	if err != nil {
		data := map[string]any{"Email": form.Email, "Name": form.Name, "Avatar": form.Avatar}
		if fieldErrors, ok := model.AsFieldErrors(err); ok {
			data["Errors"] = fieldErrors
		} else if errors.Is(err, model.ErrConflict) {
			data["Errors"] = model.FieldErrors{"user with this email already exists"}
		} else {
			h.logger.Error("failed to register user", "error", err.Error())
			data["Errors"] = model.FieldErrors{"something went wrong, please try again"}
		}
		h.render.Page(w, "registration.html", data)
		return
	}

	user, pair, err := h.auth.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		h.logger.Error("failed to log in after signup", "error", err.Error())
		redirect(w, r, "/login")
		return
	}

	h.setSession(w, pair)
	h.logger.Info("user signed up", "user_id", user.ID)
	redirect(w, r, "/")
}

// LoginForm renders the login page.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render.Page(w, "login.html", map[string]any{})
}

// Login authenticates the user and issues session cookies.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("login")
	password := r.PostFormValue("password")

	_, pair, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		if !errors.Is(err, model.ErrInvalidCredentials) {
			h.logger.Error("failed to log user in", "error", err.Error())
		}
		h.render.Page(w, "login.html", map[string]any{"Error": "invalid email or password"})
		return
	}

	h.setSession(w, pair)
	redirect(w, r, "/")
}

// Logout revokes the refresh token and clears session cookies.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.RefreshCookie); err == nil {
		if err := h.session.Revoke(r.Context(), cookie.Value); err != nil {
			h.logger.Error("failed to revoke refresh token", "error", err.Error())
		}
	}

	middleware.ClearSessionCookies(w)
	redirect(w, r, "/login")
}

// Activate marks an account verified via the emailed link.
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(mux.Vars(r)["user_id"])
	if err != nil {
		redirect(w, r, "/")
		return
	}

	if _, err := h.auth.Activate(r.Context(), userID); err != nil {
		h.logger.Error("failed to activate account", "user_id", userID, "error", err.Error())
	}

	redirect(w, r, "/login")
}

// ProfileForm renders the account update page.
func (h *Handler) ProfileForm(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/login")
		return
	}

	h.render.Page(w, "profile.html", map[string]any{"User": user})
}

// ProfileUpdate applies profile changes for the signed-in user.
func (h *Handler) ProfileUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(r)
	if !ok {
		redirect(w, r, "/login")
		return
	}

	form := service.RegisterForm{
		Name:            r.PostFormValue("name"),
		Password:        r.PostFormValue("password"),
		PasswordConfirm: r.PostFormValue("password_confirm"),
		Avatar:          r.PostFormValue("avatar"),
	}

	if _, err := h.auth.UpdateProfile(r.Context(), user.ID, form); err != nil {
		data := map[string]any{"User": user}
		if fieldErrors, ok := model.AsFieldErrors(err); ok {
			data["Errors"] = fieldErrors
		} else {
			h.logger.Error("failed to update profile", "user_id", user.ID, "error", err.Error())
			data["Errors"] = model.FieldErrors{"something went wrong, please try again"}
		}
		h.render.Page(w, "profile.html", data)
		return
	}

	redirect(w, r, "/")
}

func (h *Handler) setSession(w http.ResponseWriter, pair service.TokenPair) {
	middleware.SetAccessCookie(w, pair.AccessToken)
	middleware.SetRefreshCookie(w, pair.RefreshToken)
}
