package apperr

import (
	"context"
	"net/http"

	"github.com/diewo77/go-commandes/httpx"
	"github.com/diewo77/go-commandes/i18n"
)

// Write renders err as {error, details?}. Unknown errors never leak their
// cause to the client.
func Write(ctx context.Context, w http.ResponseWriter, err error) {
	e := From(err)
	lang := i18n.LangFromContext(ctx)
	msg := i18n.T(lang, e.Message)
	if msg == "" {
		msg = i18n.T(lang, "unknown_error")
	}
	var details any
	if e.Kind != KindUnknown {
		details = e.Details
	}
	httpx.JSONError(w, e.Kind.Status(), msg, details)
}
