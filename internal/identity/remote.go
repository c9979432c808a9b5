package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// RemoteProvider calls a hosted auth service exposing the admin user API
// under /auth/v1.
type RemoteProvider struct {
	baseURL    string
	serviceKey string
	anonKey    string
	client     *http.Client
}

// NewRemoteProvider creates a client for the hosted auth service.
func NewRemoteProvider(baseURL, serviceKey, anonKey string) *RemoteProvider {
	return &RemoteProvider{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		anonKey:    anonKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type createUserRequest struct {
	Email        string            `json:"email"`
	Password     string            `json:"password"`
	EmailConfirm bool              `json:"email_confirm"`
	UserMetadata map[string]string `json:"user_metadata,omitempty"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
}

// errorPayload covers the shapes the auth service uses for errors.
type errorPayload struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (p errorPayload) text() string {
	for _, s := range []string{p.Msg, p.Message, p.ErrorDescription, p.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

func (p *RemoteProvider) CreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	var user User
	err := p.do(ctx, http.MethodPost, "/auth/v1/admin/users", p.serviceKey, p.serviceKey, createUserRequest{
		Email:        params.Email,
		Password:     params.Password,
		EmailConfirm: params.EmailConfirm,
		UserMetadata: params.Metadata,
	}, &user)
	if err != nil {
		return User{}, err
	}
	if user.ID == "" {
		return User{}, &ProviderError{Status: http.StatusBadGateway, Message: "auth service returned a user without id"}
	}
	return user, nil
}

func (p *RemoteProvider) DeleteUser(ctx context.Context, id string) error {
	return p.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+url.PathEscape(id), p.serviceKey, p.serviceKey, nil, nil)
}

func (p *RemoteProvider) SignInWithPassword(ctx context.Context, email, password string) (Session, error) {
	var tok tokenResponse
	err := p.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", p.anonKey, p.anonKey,
		map[string]string{"email": email, "password": password}, &tok)
	if err != nil {
		var pe *ProviderError
		if errors.As(err, &pe) && pe.Status == http.StatusBadRequest {
			return Session{}, fmt.Errorf("%w: %s", ErrInvalidCredentials, pe.Message)
		}
		return Session{}, err
	}
	return Session{
		AccessToken: tok.AccessToken,
		ExpiresAt:   time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second),
		User:        tok.User,
	}, nil
}

func (p *RemoteProvider) SignOut(ctx context.Context, accessToken string) error {
	return p.do(ctx, http.MethodPost, "/auth/v1/logout", p.anonKey, accessToken, nil, nil)
}

func (p *RemoteProvider) do(ctx context.Context, method, path, apiKey, bearer string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var payload errorPayload
		msg := ""
		if json.Unmarshal(raw, &payload) == nil {
			msg = payload.text()
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &ProviderError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
