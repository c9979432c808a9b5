// Package identity talks to the identity provider that owns accounts and
// passwords. Profiles live in the application database and are paired with
// identities by id.
package identity

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidCredentials is returned by SignInWithPassword for a wrong
// email or password.
var ErrInvalidCredentials = errors.New("invalid login credentials")

// CreateUserParams describes an account to create through the elevated path.
type CreateUserParams struct {
	Email        string
	Password     string
	EmailConfirm bool
	Metadata     map[string]string
}

// User is an identity record.
type User struct {
	ID       string            `json:"id"`
	Email    string            `json:"email"`
	Metadata map[string]string `json:"user_metadata,omitempty"`
}

// Session is the result of a successful sign-in.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	User        User
}

// Admin is the elevated credential path, used server side only.
type Admin interface {
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Authenticator is the restricted credential path.
type Authenticator interface {
	SignInWithPassword(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// Provider is implemented by both the remote and the local store.
type Provider interface {
	Admin
	Authenticator
}

// ProviderError is an error reported by the identity provider.
type ProviderError struct {
	Status  int
	Message string
}

// Error returns the provider message unchanged so it can reach the client.
func (e *ProviderError) Error() string { return e.Message }
