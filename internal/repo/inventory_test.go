package repo

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecrementStock_AppliesEachDecrement(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	product := createProduct(t, r, "productA", 10.00, 5)

	// The decrement is one guarded UPDATE against the stored value, so
	// consecutive decrements compound instead of overwriting each other.
	require.NoError(t, decrementStock(r.DB, product.ID, 2))
	require.NoError(t, decrementStock(r.DB, product.ID, 2))

	inv, err := r.GetInventory(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), inv.Stock)

	require.NoError(t, decrementStock(r.DB, product.ID, 5))

	inv, err = r.GetInventory(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(0), inv.Stock)
}

func TestDecrementStock_UntrackedProduct(t *testing.T) {
	r := newTestRepo(t)

	require.NoError(t, decrementStock(r.DB, uuid.New(), 3))
}
