// Package policy binds the gate to application roles and sessions.
package policy

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/diewo77/go-commandes/gate"
	"github.com/diewo77/go-commandes/httpx"
	"github.com/diewo77/go-commandes/internal/apperr"
	"github.com/diewo77/go-commandes/internal/models"
	"github.com/diewo77/go-commandes/internal/session"
	"gorm.io/gorm"
)

// AuthGate is the central authorization point: a gate over cached role
// profiles.
type AuthGate struct {
	Gate          *gate.Gate[string]
	CacheResolver *gate.CachedResolver[string]
}

// NewAuthGate creates a gate over profile rows, cached for cacheTTL.
func NewAuthGate(db *gorm.DB, cacheTTL time.Duration) *AuthGate {
	return NewAuthGateWith(NewRoleResolver(db), cacheTTL)
}

// NewAuthGateWith creates a gate over any resolver keyed by user id.
func NewAuthGateWith(resolver gate.ProfileResolver[string], cacheTTL time.Duration) *AuthGate {
	cached := gate.NewCachedResolver[string](resolver, cacheTTL)
	return &AuthGate{
		Gate:          gate.New[string](cached),
		CacheResolver: cached,
	}
}

// Authorize checks perm for the session carried by ctx.
func (ag *AuthGate) Authorize(ctx context.Context, perm gate.Permission) error {
	s := session.FromContext(ctx)
	if s == nil {
		return gate.ErrUnauthorized
	}
	return ag.Gate.Authorize(ctx, s.UserID, perm)
}

func (ag *AuthGate) Can(ctx context.Context, perm gate.Permission) bool {
	return ag.Authorize(ctx, perm) == nil
}

// InvalidateUser drops the cached profile of a user.
// Call this when a profile is created or its role changes.
func (ag *AuthGate) InvalidateUser(userID string) {
	ag.CacheResolver.Invalidate(userID)
}

func (ag *AuthGate) InvalidateAll() {
	ag.CacheResolver.InvalidateAll()
}

// RequireArea guards an area page. Anonymous callers go to /login and
// callers of another role go to their own area. JSON clients get 401/403
// instead of a redirect.
func (ag *AuthGate) RequireArea(area string) func(http.Handler) http.Handler {
	perm := AreaPermission(area)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := ag.Authorize(r.Context(), perm)
			if err == nil {
				next.ServeHTTP(w, r)
				return
			}

			target := "/login"
			kind := apperr.KindUnauthorized
			if errors.Is(err, gate.ErrForbidden) {
				kind = apperr.KindForbidden
				if prof, _ := ag.CacheResolver.Resolve(r.Context(), session.FromContext(r.Context()).UserID); prof != nil {
					target = models.Role(prof.Name()).Home()
				}
			}
			if httpx.WantsJSON(r) {
				apperr.Write(r.Context(), w, apperr.New(kind, string(kind), nil))
				return
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
		})
	}
}
