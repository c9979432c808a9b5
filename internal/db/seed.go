package db

import (
	_ "embed"
	"fmt"

	"github.com/diewo77/go-commandes/internal/models"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed.yaml
var seedYAML []byte

type seedData struct {
	Magasins  []models.Magasin  `yaml:"magasins"`
	Produits  []models.Produit  `yaml:"produits"`
	Commandes []models.Commande `yaml:"commandes"`
}

// Seed inserts the reference stores, products and commandes. Rows are
// matched on their natural key so running it twice is harmless.
func Seed(conn *gorm.DB) error {
	var data seedData
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return fmt.Errorf("parse seed.yaml: %w", err)
	}
	return conn.Transaction(func(tx *gorm.DB) error {
		for _, m := range data.Magasins {
			if err := tx.Where(models.Magasin{Code: m.Code}).FirstOrCreate(&m).Error; err != nil {
				return fmt.Errorf("seed magasin %s: %w", m.Code, err)
			}
		}
		for _, p := range data.Produits {
			if err := tx.Where(models.Produit{Reference: p.Reference}).FirstOrCreate(&p).Error; err != nil {
				return fmt.Errorf("seed produit %s: %w", p.Reference, err)
			}
		}
		for _, c := range data.Commandes {
			if err := tx.Where(models.Commande{Reference: c.Reference}).FirstOrCreate(&c).Error; err != nil {
				return fmt.Errorf("seed commande %s: %w", c.Reference, err)
			}
		}
		return nil
	})
}
