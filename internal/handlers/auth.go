package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/diewo77/go-commandes/httpx"
	"github.com/diewo77/go-commandes/internal/apperr"
	"github.com/diewo77/go-commandes/internal/identity"
	"github.com/diewo77/go-commandes/internal/services"
	"github.com/diewo77/go-commandes/internal/session"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth         identity.Authenticator
	router       *services.RoleRouter
	secureCookie bool
	log          *zap.Logger
}

func NewAuthHandler(auth identity.Authenticator, router *services.RoleRouter, secureCookie bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, router: router, secureCookie: secureCookie, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPage answers GET /login. Page rendering lives in the frontend.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"page":          "login",
		"authenticated": session.FromContext(r.Context()) != nil,
		"error":         r.URL.Query().Get("error"),
	})
}

// Login signs in with email and password (JSON or form body), stores the
// access token in the session cookie and sends the user to their area.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := httpx.DecodeJSON(r, &in); err != nil {
			apperr.Write(r.Context(), w, apperr.Wrap(apperr.KindInvalidRequest, "invalid_body", err))
			return
		}
	} else {
		in.Email = r.FormValue("email")
		in.Password = r.FormValue("password")
	}
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		h.fail(w, r, apperr.New(apperr.KindInvalidRequest, "missing_fields", nil))
		return
	}

	s, err := h.auth.SignInWithPassword(r.Context(), in.Email, in.Password)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		h.fail(w, r, apperr.New(apperr.KindUnauthorized, "invalid_login", nil))
		return
	}
	if err != nil {
		h.log.Error("sign in failed", zap.Error(err))
		h.fail(w, r, apperr.Wrap(apperr.KindUpstreamAuth, "auth_error", err))
		return
	}

	session.SetCookie(w, s.AccessToken, s.ExpiresAt, h.secureCookie)
	d := h.router.Route(r.Context(), &session.Session{UserID: s.User.ID, Email: s.User.Email, AccessToken: s.AccessToken, ExpiresAt: s.ExpiresAt})
	if httpx.WantsJSON(r) {
		httpx.Success(w, map[string]any{"redirect": d.Target})
		return
	}
	http.Redirect(w, r, d.Target, http.StatusSeeOther)
}

// Logout revokes the token when the provider supports it and clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if s := session.FromContext(r.Context()); s != nil {
		if err := h.auth.SignOut(r.Context(), s.AccessToken); err != nil {
			h.log.Warn("sign out failed", zap.String("user_id", s.UserID), zap.Error(err))
		}
	}
	session.ClearCookie(w)
	if httpx.WantsJSON(r) {
		httpx.Success(w, map[string]any{"redirect": "/login"})
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// fail answers JSON clients with the error and sends browsers back to the
// login page.
func (h *AuthHandler) fail(w http.ResponseWriter, r *http.Request, err *apperr.Error) {
	if httpx.WantsJSON(r) {
		apperr.Write(r.Context(), w, err)
		return
	}
	http.Redirect(w, r, "/login?error="+err.Message, http.StatusSeeOther)
}
