package services

import (
	"context"

	"github.com/diewo77/go-commandes/internal/models"
	"gorm.io/gorm"
)

// ProfileStore reads and writes profile rows.
type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile) error
	Get(ctx context.Context, id string) (*models.Profile, error)
}

// GormProfileStore is the ProfileStore backed by the profiles table.
type GormProfileStore struct {
	db *gorm.DB
}

func NewProfileStore(db *gorm.DB) *GormProfileStore {
	return &GormProfileStore{db: db}
}

func (s *GormProfileStore) Create(ctx context.Context, p *models.Profile) error {
	return s.db.WithContext(ctx).Create(p).Error
}

// Get loads the profile with its store.
func (s *GormProfileStore) Get(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).Preload("Magasin").First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
