package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSuccessMergesFlag(t *testing.T) {
	rr := httptest.NewRecorder()
	Success(rr, map[string]any{"id": "u1"})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["success"] != true || body["id"] != "u1" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestJSONErrorOmitsEmptyDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	JSONError(rr, http.StatusBadRequest, "bad", nil)
	if got := strings.TrimSpace(rr.Body.String()); got != `{"error":"bad"}` {
		t.Fatalf("unexpected body %s", got)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Email string `json:"email"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.fr","extra":1}`))
	if err := DecodeJSON(req, &dst); err != nil || dst.Email != "a@b.fr" {
		t.Fatalf("decode failed: %v %v", dst, err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	if err := DecodeJSON(req, &dst); !errors.Is(err, ErrEmptyBody) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	if err := DecodeJSON(req, &dst); err == nil || errors.Is(err, ErrEmptyBody) {
		t.Fatalf("expected syntax error, got %v", err)
	}
}

func TestWantsJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if WantsJSON(req) {
		t.Fatal("plain request should not want JSON")
	}
	req.Header.Set("Accept", "application/json")
	if !WantsJSON(req) {
		t.Fatal("Accept application/json should want JSON")
	}
	req.Header.Set("Accept", "text/html,application/json")
	if WantsJSON(req) {
		t.Fatal("browsers accepting html should get html")
	}
}
