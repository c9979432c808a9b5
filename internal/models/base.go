package models

import "github.com/google/uuid"

// newID fills an empty string primary key with a random UUID.
func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// All lists every model handled by AutoMigrate, parents first.
func All() []any {
	return []any{
		&Magasin{},
		&Produit{},
		&Commande{},
		&Identity{},
		&Profile{},
		&CommandeMagasinProduit{},
	}
}
