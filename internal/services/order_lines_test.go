package services

import (
	"context"
	"sync"
	"testing"

	"github.com/diewo77/go-commandes/internal/apperr"
	"github.com/diewo77/go-commandes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineCount(t *testing.T, o *OrderLines, in UpsertInput) int64 {
	t.Helper()
	var n int64
	require.NoError(t, o.db.Model(&models.CommandeMagasinProduit{}).
		Where("commande_id = ? AND magasin_id = ? AND produit_id = ?", in.CommandeID, in.MagasinID, in.ProduitID).
		Count(&n).Error)
	return n
}

func TestUpsertQuantity_InsertThenUpdate(t *testing.T) {
	o := NewOrderLines(setupTestDB(t))
	ctx := context.Background()
	in := UpsertInput{CommandeID: "c1", MagasinID: "m1", ProduitID: "p1", Quantite: intPtr(3)}

	first, err := o.UpsertQuantity(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Quantite)
	assert.NotEmpty(t, first.ID)
	assert.EqualValues(t, 1, lineCount(t, o, in))

	in.Quantite = intPtr(7)
	second, err := o.UpsertQuantity(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 7, second.Quantite)
	assert.Equal(t, first.ID, second.ID, "update must keep the existing row")
	assert.EqualValues(t, 1, lineCount(t, o, in))

	other := UpsertInput{CommandeID: "c1", MagasinID: "m2", ProduitID: "p1", Quantite: intPtr(1)}
	_, err = o.UpsertQuantity(ctx, other)
	require.NoError(t, err)
	assert.EqualValues(t, 1, lineCount(t, o, other))
	assert.EqualValues(t, 1, lineCount(t, o, in))
}

func TestUpsertQuantity_RejectsQuantityBelowOne(t *testing.T) {
	o := NewOrderLines(setupTestDB(t))
	for _, q := range []int{0, -1} {
		in := UpsertInput{CommandeID: "c1", MagasinID: "m1", ProduitID: "p1", Quantite: intPtr(q)}
		_, err := o.UpsertQuantity(context.Background(), in)
		requireKind(t, err, apperr.KindInvalidQuantity)
		assert.ErrorIs(t, err, apperr.InvalidQuantity)
		assert.Zero(t, lineCount(t, o, in))
	}
}

func TestUpsertQuantity_MissingFields(t *testing.T) {
	o := NewOrderLines(setupTestDB(t))
	tests := []struct {
		name string
		in   UpsertInput
	}{
		{"no quantite", UpsertInput{CommandeID: "c", MagasinID: "m", ProduitID: "p"}},
		{"no commande", UpsertInput{MagasinID: "m", ProduitID: "p", Quantite: intPtr(1)}},
		{"no magasin", UpsertInput{CommandeID: "c", ProduitID: "p", Quantite: intPtr(1)}},
		{"no produit", UpsertInput{CommandeID: "c", MagasinID: "m", Quantite: intPtr(1)}},
	}
	for _, tt := range tests {
		_, err := o.UpsertQuantity(context.Background(), tt.in)
		requireKind(t, err, apperr.KindInvalidRequest)
	}
}

func TestUpsertQuantity_StoreFailure(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&models.CommandeMagasinProduit{}))
	o := NewOrderLines(db)
	_, err := o.UpsertQuantity(context.Background(), UpsertInput{CommandeID: "c", MagasinID: "m", ProduitID: "p", Quantite: intPtr(2)})
	e := requireKind(t, err, apperr.KindUpstreamDB)
	assert.NotEmpty(t, e.Details)
}

func TestUpsertQuantity_Concurrent(t *testing.T) {
	o := NewOrderLines(setupTestDB(t))
	const workers = 20

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 1; i <= workers; i++ {
		wg.Add(1)
		go func(q int) {
			defer wg.Done()
			_, err := o.UpsertQuantity(context.Background(), UpsertInput{CommandeID: "c1", MagasinID: "m1", ProduitID: "p1", Quantite: intPtr(q)})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var lines []models.CommandeMagasinProduit
	require.NoError(t, o.db.Where("commande_id = ? AND magasin_id = ? AND produit_id = ?", "c1", "m1", "p1").Find(&lines).Error)
	require.Len(t, lines, 1)
	assert.GreaterOrEqual(t, lines[0].Quantite, 1)
	assert.LessOrEqual(t, lines[0].Quantite, workers)
}
