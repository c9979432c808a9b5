package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diewo77/go-commandes/internal/apperr"
	"github.com/diewo77/go-commandes/internal/identity"
	"github.com/diewo77/go-commandes/internal/models"
	"github.com/diewo77/go-commandes/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func validInput() ProvisionInput {
	magasin := "11111111-1111-1111-1111-111111111111"
	return ProvisionInput{
		Email: "store@example.fr", Password: "s3cret", Role: "magasin",
		MagasinID: &magasin, Prenom: "Jeanne", Nom: "Martin",
	}
}

func TestCreateStoreUser_Success(t *testing.T) {
	admin := newFakeAdmin()
	profiles := newFakeProfiles()
	var invalidated string
	p := NewProvisioner(admin, profiles, zaptest.NewLogger(t))
	p.OnCreated = func(id string) { invalidated = id }

	res, err := p.CreateStoreUser(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, "store@example.fr", res.Email)
	assert.Equal(t, "magasin", res.Role)

	row, ok := profiles.rows[res.ID]
	require.True(t, ok, "profile row must use the identity id")
	assert.Equal(t, res.ID, row.ID)
	assert.Contains(t, admin.users, res.ID)
	assert.Equal(t, "magasin", admin.users[res.ID].Metadata["role"])
	assert.Equal(t, res.ID, invalidated)
}

func TestCreateStoreUser_MissingFields(t *testing.T) {
	p := NewProvisioner(newFakeAdmin(), newFakeProfiles(), zap.NewNop())
	for name, in := range map[string]ProvisionInput{
		"email":    {Password: "x", Role: "admin"},
		"password": {Email: "a@b.fr", Role: "admin"},
		"role":     {Email: "a@b.fr", Password: "x"},
	} {
		_, err := p.CreateStoreUser(context.Background(), in)
		e := requireKind(t, err, apperr.KindInvalidRequest)
		assert.Contains(t, e.Details, name)
	}
}

func TestCreateStoreUser_UnknownRole(t *testing.T) {
	admin := newFakeAdmin()
	p := NewProvisioner(admin, newFakeProfiles(), zap.NewNop())
	in := validInput()
	in.Role = "root"
	_, err := p.CreateStoreUser(context.Background(), in)
	requireKind(t, err, apperr.KindInvalidRequest)
	assert.Empty(t, admin.users)
}

func TestCreateStoreUser_IdentityFailure(t *testing.T) {
	admin := newFakeAdmin()
	admin.createErr = &identity.ProviderError{Status: 422, Message: "already registered"}
	profiles := newFakeProfiles()
	p := NewProvisioner(admin, profiles, zap.NewNop())

	_, err := p.CreateStoreUser(context.Background(), validInput())
	e := requireKind(t, err, apperr.KindUpstreamAuth)
	assert.Equal(t, "already registered", e.Details)
	assert.Empty(t, profiles.rows)
}

func TestCreateStoreUser_ProfileFailureDeletesIdentity(t *testing.T) {
	admin := newFakeAdmin()
	profiles := newFakeProfiles()
	profiles.createErr = errors.New("insert failed")
	p := NewProvisioner(admin, profiles, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.CreateStoreUser(ctx, validInput())
	requireKind(t, err, apperr.KindUpstreamDB)

	assert.Empty(t, admin.users, "identity must be deleted again")
	require.Len(t, admin.deleteCtx, 1)
	assert.NoError(t, admin.deleteCtx[0], "compensating delete must not inherit request cancellation")
}

func TestCreateStoreUser_FailedCompensationIsLogged(t *testing.T) {
	admin := newFakeAdmin()
	admin.deleteErr = errors.New("provider down")
	profiles := newFakeProfiles()
	profiles.createErr = errors.New("insert failed")
	core, logs := observer.New(zapcore.ErrorLevel)
	p := NewProvisioner(admin, profiles, zap.New(core))

	_, err := p.CreateStoreUser(context.Background(), validInput())
	requireKind(t, err, apperr.KindUpstreamDB)

	orphaned := logs.FilterMessage("compensating identity delete failed, identity orphaned").All()
	require.Len(t, orphaned, 1)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", orphaned[0].ContextMap()["identity_id"])
}

func TestCreateStoreUser_LocalStoreRollsBackOnDuplicateProfile(t *testing.T) {
	db := setupTestDB(t)
	provider := identity.NewLocalProvider(db, session.NewTokens("secret", time.Hour))
	p := NewProvisioner(provider, NewProfileStore(db), zap.NewNop())

	require.NoError(t, db.Create(&models.Profile{ID: "22222222-2222-2222-2222-222222222222", Email: "store@example.fr", Role: models.RoleMagasin}).Error)

	in := validInput()
	in.MagasinID = nil
	_, err := p.CreateStoreUser(context.Background(), in)
	requireKind(t, err, apperr.KindUpstreamDB)

	var count int64
	require.NoError(t, db.Model(&models.Identity{}).Where("email = ?", "store@example.fr").Count(&count).Error)
	assert.Zero(t, count, "identity must no longer be retrievable")
}

func TestCreateStoreUser_LocalStore(t *testing.T) {
	db := setupTestDB(t)
	provider := identity.NewLocalProvider(db, session.NewTokens("secret", time.Hour))
	p := NewProvisioner(provider, NewProfileStore(db), zap.NewNop())

	in := validInput()
	in.MagasinID = nil
	in.Role = "la_redoute"
	res, err := p.CreateStoreUser(context.Background(), in)
	require.NoError(t, err)

	var ident models.Identity
	require.NoError(t, db.First(&ident, "id = ?", res.ID).Error)
	var profile models.Profile
	require.NoError(t, db.First(&profile, "id = ?", res.ID).Error)
	assert.Equal(t, models.RoleLaRedoute, profile.Role)
	assert.Nil(t, profile.MagasinID)

	_, err = NewProfileStore(db).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
