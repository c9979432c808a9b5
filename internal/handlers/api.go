// Package handlers exposes the HTTP surface: JSON API routes, the login
// flow and the role areas.
package handlers

import (
	"net/http"

	"github.com/diewo77/go-commandes/httpx"
	"github.com/diewo77/go-commandes/internal/apperr"
	"github.com/diewo77/go-commandes/internal/mailer"
	"github.com/diewo77/go-commandes/internal/services"
)

// APIHandler serves the /api JSON routes.
type APIHandler struct {
	provisioner *services.Provisioner
	lines       *services.OrderLines
	mailer      *services.Mailer
}

func NewAPIHandler(provisioner *services.Provisioner, lines *services.OrderLines, m *services.Mailer) *APIHandler {
	return &APIHandler{provisioner: provisioner, lines: lines, mailer: m}
}

// CreateStoreUser handles POST /api/admin/create-store-user.
func (h *APIHandler) CreateStoreUser(w http.ResponseWriter, r *http.Request) {
	var in services.ProvisionInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		apperr.Write(r.Context(), w, apperr.Wrap(apperr.KindInvalidRequest, "invalid_body", err))
		return
	}
	res, err := h.provisioner.CreateStoreUser(r.Context(), in)
	if err != nil {
		apperr.Write(r.Context(), w, err)
		return
	}
	httpx.Success(w, map[string]any{"id": res.ID, "email": res.Email, "role": res.Role})
}

// UpdateQuantity handles POST /api/commandes/update-quantity.
func (h *APIHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var in services.UpsertInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		apperr.Write(r.Context(), w, apperr.Wrap(apperr.KindInvalidRequest, "invalid_body", err))
		return
	}
	row, err := h.lines.UpsertQuantity(r.Context(), in)
	if err != nil {
		apperr.Write(r.Context(), w, err)
		return
	}
	httpx.Success(w, map[string]any{"data": row})
}

// SendEmail handles POST /api/send-email.
func (h *APIHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var msg mailer.Message
	if err := httpx.DecodeJSON(r, &msg); err != nil {
		apperr.Write(r.Context(), w, apperr.Wrap(apperr.KindInvalidRequest, "invalid_body", err))
		return
	}
	resp, err := h.mailer.Dispatch(r.Context(), msg)
	if err != nil {
		apperr.Write(r.Context(), w, err)
		return
	}
	httpx.Success(w, map[string]any{"data": resp})
}
