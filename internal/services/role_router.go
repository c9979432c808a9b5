package services

import (
	"context"

	"github.com/diewo77/go-commandes/internal/models"
	"github.com/diewo77/go-commandes/internal/session"
	"go.uber.org/zap"
)

// State is the page state of the role router.
type State int

const (
	StateLoading State = iota
	StateRedirecting
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateRedirecting:
		return "redirecting"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Decision is the terminal state of a routing pass.
type Decision struct {
	State   State
	Target  string
	Profile *models.Profile
}

// RoleRouter sends a signed-in user to the area of their role.
type RoleRouter struct {
	profiles ProfileStore
	log      *zap.Logger
}

func NewRoleRouter(profiles ProfileStore, log *zap.Logger) *RoleRouter {
	return &RoleRouter{profiles: profiles, log: log}
}

// Route makes a single pass, with no retry. Every failure lands on /login.
func (r *RoleRouter) Route(ctx context.Context, s *session.Session) Decision {
	if s == nil || s.UserID == "" {
		return Decision{State: StateRedirecting, Target: "/login"}
	}
	profile, err := r.profiles.Get(ctx, s.UserID)
	if err != nil {
		r.log.Warn("profile lookup failed", zap.String("user_id", s.UserID), zap.Error(err))
		return Decision{State: StateError, Target: "/login"}
	}
	return Decision{State: StateRedirecting, Target: profile.Role.Home(), Profile: profile}
}
