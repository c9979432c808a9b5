package services

import (
	"context"
	"strings"
	"time"

	"github.com/diewo77/go-commandes/internal/apperr"
	"github.com/diewo77/go-commandes/internal/identity"
	"github.com/diewo77/go-commandes/internal/models"
	"github.com/diewo77/go-commandes/validation"
	"go.uber.org/zap"
)

// cleanupTimeout bounds the compensating identity delete.
const cleanupTimeout = 10 * time.Second

// ProvisionInput is the body of a store user creation request.
type ProvisionInput struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	MagasinID *string `json:"magasin_id"`
	Nom       string  `json:"nom"`
	Prenom    string  `json:"prenom"`
	Telephone string  `json:"telephone"`
	Perimetre string  `json:"perimetre"`
}

// ProvisionResult describes the created user.
type ProvisionResult struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Provisioner creates an identity and its profile row as a two step saga.
// If the profile insert fails the identity is deleted again, best effort:
// a failed delete leaves an orphaned identity that is only logged.
type Provisioner struct {
	admin    identity.Admin
	profiles ProfileStore
	log      *zap.Logger

	// OnCreated, when set, is called with the new user id after success.
	OnCreated func(userID string)
}

func NewProvisioner(admin identity.Admin, profiles ProfileStore, log *zap.Logger) *Provisioner {
	return &Provisioner{admin: admin, profiles: profiles, log: log}
}

// CreateStoreUser runs the saga and returns the new user.
func (p *Provisioner) CreateStoreUser(ctx context.Context, in ProvisionInput) (*ProvisionResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	v := validation.Violations{}
	validation.Required("email", in.Email, v)
	validation.Required("password", in.Password, v)
	validation.Required("role", in.Role, v)
	if !v.Empty() {
		return nil, apperr.New(apperr.KindInvalidRequest, "missing_fields", v.Fields())
	}
	validation.OneOf("role", in.Role, models.Roles(), v)
	if !v.Empty() {
		return nil, apperr.New(apperr.KindInvalidRequest, "invalid_role", v)
	}

	user, err := p.admin.CreateUser(ctx, identity.CreateUserParams{
		Email:        in.Email,
		Password:     in.Password,
		EmailConfirm: true,
		Metadata: map[string]string{
			"prenom": in.Prenom,
			"nom":    in.Nom,
			"role":   in.Role,
		},
	})
	if err != nil {
		p.log.Error("identity creation failed", zap.String("email", in.Email), zap.Error(err))
		return nil, apperr.Wrap(apperr.KindUpstreamAuth, "auth_create_error", err)
	}

	profile := &models.Profile{
		ID:        user.ID,
		Email:     in.Email,
		Role:      models.Role(in.Role),
		MagasinID: nonEmpty(in.MagasinID),
		Prenom:    in.Prenom,
		Nom:       in.Nom,
		Telephone: in.Telephone,
		Perimetre: in.Perimetre,
	}
	if err := p.profiles.Create(ctx, profile); err != nil {
		p.log.Error("profile insert failed, deleting identity", zap.String("identity_id", user.ID), zap.Error(err))
		p.deleteIdentity(ctx, user.ID)
		return nil, apperr.Wrap(apperr.KindUpstreamDB, "profile_error", err)
	}

	if p.OnCreated != nil {
		p.OnCreated(user.ID)
	}
	p.log.Info("store user provisioned", zap.String("id", user.ID), zap.String("role", in.Role))
	return &ProvisionResult{ID: user.ID, Email: in.Email, Role: in.Role}, nil
}

// deleteIdentity survives cancellation of the request context.
func (p *Provisioner) deleteIdentity(ctx context.Context, id string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	if err := p.admin.DeleteUser(ctx, id); err != nil {
		p.log.Error("compensating identity delete failed, identity orphaned",
			zap.String("identity_id", id), zap.Error(err))
	}
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
