package handlers

import (
	"net/http"

	"github.com/diewo77/go-commandes/internal/services"
	"github.com/diewo77/go-commandes/internal/session"
)

type HomeHandler struct {
	router *services.RoleRouter
}

func NewHomeHandler(router *services.RoleRouter) *HomeHandler {
	return &HomeHandler{router: router}
}

// Dashboard redirects the caller to the area of their role, or to /login.
func (h *HomeHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d := h.router.Route(r.Context(), session.FromContext(r.Context()))
	http.Redirect(w, r, d.Target, http.StatusSeeOther)
}
