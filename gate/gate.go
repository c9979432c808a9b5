// Package gate is a small permission gate: users resolve to a profile and
// the profile's permissions decide what the user may do. It has no
// dependency on domain models.
package gate

import "context"

// Gate checks profile permissions for a user of type U.
type Gate[U comparable] struct {
	resolver ProfileResolver[U]
}

// New creates a gate backed by resolver.
func New[U comparable](resolver ProfileResolver[U]) *Gate[U] {
	return &Gate[U]{resolver: resolver}
}

// Authorize returns ErrUnauthorized for a zero-value user and ErrForbidden
// when the user's profile is missing or lacks perm.
func (g *Gate[U]) Authorize(ctx context.Context, user U, perm Permission) error {
	var zero U
	if user == zero {
		return ErrUnauthorized
	}
	profile, err := g.resolver.Resolve(ctx, user)
	if err != nil || profile == nil {
		return ErrForbidden
	}
	if !profile.HasPermission(perm) {
		return ErrForbidden
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate[U]) Can(ctx context.Context, user U, perm Permission) bool {
	return g.Authorize(ctx, user, perm) == nil
}

// Profile exposes the resolved profile, nil when absent.
func (g *Gate[U]) Profile(ctx context.Context, user U) (Profile, error) {
	return g.resolver.Resolve(ctx, user)
}
