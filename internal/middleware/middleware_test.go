package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diewo77/go-commandes/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLang(t *testing.T) {
	var got string
	h := Lang(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = i18n.LangFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "en", got)
	require.Len(t, rr.Result().Cookies(), 1)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-GB")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "en", got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "lang", Value: "xx"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "fr", got)
}

func TestRecover(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := RequestID(Recover(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/send-email", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Erreur interne du serveur", body["error"])
	assert.NotContains(t, body, "details")
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := RequestID(Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"x"}`))
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/commandes/update-quantity", nil)
	req.Header.Set("X-Request-Id", "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 400, fields["status"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.EqualValues(t, 13, fields["bytes"])
}
