package models

import (
	"time"

	"gorm.io/gorm"
)

// Statut is the lifecycle status of a commande.
type Statut string

const (
	StatutEnAttente     Statut = "en_attente"
	StatutEnCours       Statut = "en_cours"
	StatutValidee       Statut = "validee"
	StatutEnPreparation Statut = "en_preparation"
	StatutExpediee      Statut = "expediee"
	StatutLivree        Statut = "livree"
	StatutAnnulee       Statut = "annulee"
)

// Commande is an order campaign that stores report quantities against.
type Commande struct {
	ID            string     `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Reference     string     `gorm:"uniqueIndex;size:50;not null" json:"reference" yaml:"reference"`
	Statut        Statut     `gorm:"size:20;not null;default:'en_attente'" json:"statut" yaml:"statut"`
	DateLivraison *time.Time `json:"date_livraison,omitempty" yaml:"date_livraison"`
}

func (c *Commande) BeforeCreate(_ *gorm.DB) error {
	newID(&c.ID)
	if c.Statut == "" {
		c.Statut = StatutEnAttente
	}
	return nil
}

// IsOpen reports whether stores may still change quantities.
func (c *Commande) IsOpen() bool {
	return c.Statut == StatutEnAttente || c.Statut == StatutEnCours
}

// CommandeMagasinProduit is an order line: the quantity one store wants of
// one product in one commande. The unique index keeps a single row per
// (commande, magasin, produit).
type CommandeMagasinProduit struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	CommandeID string    `gorm:"type:uuid;not null;uniqueIndex:idx_commande_magasin_produit,priority:1" json:"commande_id"`
	MagasinID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_commande_magasin_produit,priority:2" json:"magasin_id"`
	ProduitID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_commande_magasin_produit,priority:3" json:"produit_id"`
	Quantite   int       `gorm:"not null;check:quantite >= 1" json:"quantite"`
}

func (CommandeMagasinProduit) TableName() string { return "commande_magasin_produits" }

func (l *CommandeMagasinProduit) BeforeCreate(_ *gorm.DB) error {
	newID(&l.ID)
	return nil
}
