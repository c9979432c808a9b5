// Package mailer sends transactional email through the Resend REST API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("email provider api key not configured")

// Recipients accepts either a single address or a list in JSON.
type Recipients []string

func (r *Recipients) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*r = Recipients{one}.Compact()
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("to must be a string or an array of strings")
	}
	*r = Recipients(many).Compact()
	return nil
}

// Compact returns the trimmed, non-blank addresses.
func (r Recipients) Compact() Recipients {
	var out Recipients
	for _, addr := range r {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// Message is a single email.
type Message struct {
	From    string     `json:"from"`
	To      Recipients `json:"to"`
	Subject string     `json:"subject"`
	HTML    string     `json:"html"`
}

// Response is the provider acknowledgement.
type Response struct {
	ID string `json:"id"`
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) (Response, error)
}

// ProviderError is an error payload returned by the provider.
type ProviderError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

func (e *ProviderError) Error() string { return e.Message }

// ResendClient implements Sender.
type ResendClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewResendClient(apiKey, baseURL string) *ResendClient {
	if baseURL == "" {
		baseURL = "https://api.resend.com"
	}
	return &ResendClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *ResendClient) Send(ctx context.Context, msg Message) (Response, error) {
	if c.apiKey == "" {
		return Response{}, ErrNotConfigured
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return Response{}, fmt.Errorf("failed to marshal email: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		pe := &ProviderError{}
		if json.Unmarshal(raw, pe) != nil || pe.Message == "" {
			pe.Message = strings.TrimSpace(string(raw))
			if pe.Message == "" {
				pe.Message = http.StatusText(resp.StatusCode)
			}
		}
		pe.StatusCode = resp.StatusCode
		return Response{}, pe
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}
