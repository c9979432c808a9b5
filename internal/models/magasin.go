package models

import (
	"time"

	"gorm.io/gorm"
)

// Magasin is a physical store.
type Magasin struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Code      string    `gorm:"uniqueIndex;size:20;not null" json:"code" yaml:"code"`
	Nom       string    `gorm:"size:255;not null" json:"nom" yaml:"nom"`
	Ville     string    `gorm:"size:100" json:"ville,omitempty" yaml:"ville"`
}

func (m *Magasin) BeforeCreate(_ *gorm.DB) error {
	newID(&m.ID)
	return nil
}

// Produit is a catalogue item that stores can order.
type Produit struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Reference string    `gorm:"uniqueIndex;size:50;not null" json:"reference" yaml:"reference"`
	Libelle   string    `gorm:"size:255;not null" json:"libelle" yaml:"libelle"`
}

func (p *Produit) BeforeCreate(_ *gorm.DB) error {
	newID(&p.ID)
	return nil
}
