package services

import (
	"context"

	"github.com/diewo77/go-commandes/internal/apperr"
	"github.com/diewo77/go-commandes/internal/models"
	"github.com/diewo77/go-commandes/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertInput is the body of a quantity report. Quantite is a pointer so
// an absent value can be told apart from zero.
type UpsertInput struct {
	CommandeID string `json:"commande_id"`
	MagasinID  string `json:"magasin_id"`
	ProduitID  string `json:"produit_id"`
	Quantite   *int   `json:"quantite"`
}

// OrderLines maintains commande_magasin_produits rows.
type OrderLines struct {
	db *gorm.DB
}

func NewOrderLines(db *gorm.DB) *OrderLines {
	return &OrderLines{db: db}
}

var lineKey = []clause.Column{{Name: "commande_id"}, {Name: "magasin_id"}, {Name: "produit_id"}}

// UpsertQuantity sets the quantity for the (commande, magasin, produit)
// triple, inserting the line on first report. The write is a single
// INSERT ... ON CONFLICT so concurrent reports converge on one row.
func (o *OrderLines) UpsertQuantity(ctx context.Context, in UpsertInput) (*models.CommandeMagasinProduit, error) {
	v := validation.Violations{}
	validation.Required("commande_id", in.CommandeID, v)
	validation.Required("magasin_id", in.MagasinID, v)
	validation.Required("produit_id", in.ProduitID, v)
	validation.RequiredPtr("quantite", in.Quantite, v)
	if !v.Empty() {
		return nil, apperr.New(apperr.KindInvalidRequest, "missing_fields", v.Fields())
	}
	validation.MinInt("quantite", *in.Quantite, 1, v)
	if !v.Empty() {
		return nil, apperr.New(apperr.KindInvalidQuantity, "invalid_quantity", v)
	}

	var out models.CommandeMagasinProduit
	err := o.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		line := models.CommandeMagasinProduit{
			CommandeID: in.CommandeID,
			MagasinID:  in.MagasinID,
			ProduitID:  in.ProduitID,
			Quantite:   *in.Quantite,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   lineKey,
			DoUpdates: clause.AssignmentColumns([]string{"quantite", "updated_at"}),
		}).Create(&line).Error
		if err != nil {
			return err
		}
		return tx.Where("commande_id = ? AND magasin_id = ? AND produit_id = ?",
			in.CommandeID, in.MagasinID, in.ProduitID).First(&out).Error
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstreamDB, "db_error", err)
	}
	return &out, nil
}
