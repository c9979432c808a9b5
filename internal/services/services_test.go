package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/diewo77/go-commandes/internal/apperr"
	"github.com/diewo77/go-commandes/internal/identity"
	"github.com/diewo77/go-commandes/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

type fakeAdmin struct {
	mu        sync.Mutex
	users     map[string]identity.User
	createErr error
	deleteErr error
	deleteCtx []error
	nextID    int
}

func newFakeAdmin() *fakeAdmin {
	return &fakeAdmin{users: map[string]identity.User{}}
}

func (f *fakeAdmin) CreateUser(_ context.Context, p identity.CreateUserParams) (identity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return identity.User{}, f.createErr
	}
	f.nextID++
	u := identity.User{ID: fmt.Sprintf("00000000-0000-0000-0000-%012d", f.nextID), Email: p.Email, Metadata: p.Metadata}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeAdmin) DeleteUser(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCtx = append(f.deleteCtx, ctx.Err())
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.users, id)
	return nil
}

type fakeProfiles struct {
	rows      map[string]*models.Profile
	createErr error
	getErr    error
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{rows: map[string]*models.Profile{}}
}

func (f *fakeProfiles) Create(_ context.Context, p *models.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.rows[p.ID] = p
	return nil
}

func (f *fakeProfiles) Get(_ context.Context, id string) (*models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func intPtr(i int) *int { return &i }

func requireKind(t *testing.T, err error, kind apperr.Kind) *apperr.Error {
	t.Helper()
	var e *apperr.Error
	require.True(t, errors.As(err, &e), "expected *apperr.Error, got %v", err)
	require.Equal(t, kind, e.Kind)
	return e
}

