package services

import (
	"context"
	"errors"
	"strings"

	"github.com/diewo77/go-commandes/internal/apperr"
	"github.com/diewo77/go-commandes/internal/mailer"
	"github.com/diewo77/go-commandes/validation"
	"go.uber.org/zap"
)

// Mailer validates email requests and forwards them to the provider.
type Mailer struct {
	sender      mailer.Sender
	defaultFrom string
	log         *zap.Logger
}

func NewMailer(sender mailer.Sender, defaultFrom string, log *zap.Logger) *Mailer {
	return &Mailer{sender: sender, defaultFrom: defaultFrom, log: log}
}

// Dispatch sends msg, filling From with the configured sender when empty.
func (m *Mailer) Dispatch(ctx context.Context, msg mailer.Message) (mailer.Response, error) {
	v := validation.Violations{}
	msg.To = msg.To.Compact()
	if len(msg.To) == 0 {
		v["to"] = "required"
	}
	validation.Required("subject", msg.Subject, v)
	validation.Required("html", msg.HTML, v)
	if !v.Empty() {
		return mailer.Response{}, apperr.New(apperr.KindInvalidRequest, "missing_fields", v.Fields())
	}
	if strings.TrimSpace(msg.From) == "" {
		msg.From = m.defaultFrom
	}

	resp, err := m.sender.Send(ctx, msg)
	if errors.Is(err, mailer.ErrNotConfigured) {
		return mailer.Response{}, apperr.New(apperr.KindConfig, "email_config", nil)
	}
	if err != nil {
		m.log.Error("email send failed", zap.Strings("to", msg.To), zap.Error(err))
		return mailer.Response{}, apperr.Wrap(apperr.KindUpstreamEmail, "email_error", err)
	}
	return resp, nil
}
