package services

import (
	"context"
	"errors"
	"testing"

	"github.com/diewo77/go-commandes/internal/apperr"
	"github.com/diewo77/go-commandes/internal/mailer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent []mailer.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg mailer.Message) (mailer.Response, error) {
	if f.err != nil {
		return mailer.Response{}, f.err
	}
	f.sent = append(f.sent, msg)
	return mailer.Response{ID: "email-1"}, nil
}

func TestDispatch_DefaultFrom(t *testing.T) {
	s := &fakeSender{}
	m := NewMailer(s, "Commandes <noreply@example.com>", zap.NewNop())
	resp, err := m.Dispatch(context.Background(), mailer.Message{To: mailer.Recipients{"a@b.fr"}, Subject: "Hi", HTML: "<p>x</p>"})
	require.NoError(t, err)
	assert.Equal(t, "email-1", resp.ID)
	require.Len(t, s.sent, 1)
	assert.Equal(t, "Commandes <noreply@example.com>", s.sent[0].From)

	_, err = m.Dispatch(context.Background(), mailer.Message{From: "ops@example.fr", To: mailer.Recipients{"a@b.fr"}, Subject: "Hi", HTML: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ops@example.fr", s.sent[1].From)
}

func TestDispatch_Errors(t *testing.T) {
	m := NewMailer(&fakeSender{}, "x@y.fr", zap.NewNop())
	_, err := m.Dispatch(context.Background(), mailer.Message{Subject: "s", HTML: "h"})
	requireKind(t, err, apperr.KindInvalidRequest)

	blank := &fakeSender{}
	m = NewMailer(blank, "x@y.fr", zap.NewNop())
	_, err = m.Dispatch(context.Background(), mailer.Message{To: mailer.Recipients{"  "}, Subject: "s", HTML: "h"})
	e := requireKind(t, err, apperr.KindInvalidRequest)
	assert.Equal(t, []string{"to"}, e.Details)
	assert.Empty(t, blank.sent)

	m = NewMailer(&fakeSender{err: mailer.ErrNotConfigured}, "x@y.fr", zap.NewNop())
	_, err = m.Dispatch(context.Background(), mailer.Message{To: mailer.Recipients{"a@b.fr"}, Subject: "s", HTML: "h"})
	requireKind(t, err, apperr.KindConfig)

	m = NewMailer(&fakeSender{err: &mailer.ProviderError{Message: "domain not verified"}}, "x@y.fr", zap.NewNop())
	_, err = m.Dispatch(context.Background(), mailer.Message{To: mailer.Recipients{"a@b.fr"}, Subject: "s", HTML: "h"})
	e = requireKind(t, err, apperr.KindUpstreamEmail)
	assert.Equal(t, "domain not verified", e.Details)

	m = NewMailer(&fakeSender{err: errors.New("dial tcp: timeout")}, "x@y.fr", zap.NewNop())
	_, err = m.Dispatch(context.Background(), mailer.Message{To: mailer.Recipients{"a@b.fr"}, Subject: "s", HTML: "h"})
	requireKind(t, err, apperr.KindUpstreamEmail)
}
