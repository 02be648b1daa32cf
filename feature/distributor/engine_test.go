package distributor

import (
	"context"
	"errors"
	"testing"

	"catalog-sync/core/delim"
	catalog "catalog-sync/feature/catalog/models"
	"catalog-sync/feature/distributor/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore records partial updates without a real database.
type fakeStore struct {
	products  []catalog.Product
	updates   map[string][]map[string]any
	failIDs   map[string]error
	fetchErr  error
	fetchCall int
}

func newFakeStore(products ...catalog.Product) *fakeStore {
	return &fakeStore{
		products: products,
		updates:  make(map[string][]map[string]any),
		failIDs:  make(map[string]error),
	}
}

func (s *fakeStore) FetchAll(ctx context.Context) ([]catalog.Product, error) {
	s.fetchCall++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.products, nil
}

func (s *fakeStore) UpdateByID(ctx context.Context, id string, fields map[string]any) error {
	if err, ok := s.failIDs[id]; ok {
		return err
	}
	s.updates[id] = append(s.updates[id], fields)
	return nil
}

func mustParse(t *testing.T, raw string) []delim.Record {
	t.Helper()
	records, err := delim.ParseString(raw, ',')
	require.NoError(t, err)
	return records
}

func reconcile(store *fakeStore, records []delim.Record) *models.SyncResult {
	engine := NewEngine(store, zap.NewNop())
	return engine.Reconcile(context.Background(), records, store.products, models.NewSyncResult())
}

func TestReconcile_WellFormedRows(t *testing.T) {
	store := newFakeStore(
		catalog.Product{ID: "id-1", SKU: "SKU-1", Cost: decimal.RequireFromString("10.00")},
		catalog.Product{ID: "id-2", SKU: "SKU-2"},
		catalog.Product{ID: "id-3", SKU: "SKU-3"},
	)
	records := mustParse(t, "sku,qtyfl,qtynj,price\nSKU-1,5,3,12.50\nSKU-2,1,0,8.00\nSKU-3,0,0,2.25\n")

	result := reconcile(store, records)

	assert.True(t, result.Success)
	assert.Equal(t, 3, result.TotalRecords)
	assert.Equal(t, 3, result.UpdatedProducts)
	assert.Equal(t, 0, result.NewProducts)
	assert.Empty(t, result.Errors)
	assert.False(t, result.Timestamp.IsZero())

	// Example scenario: cost becomes 12.50 alongside the refreshed timestamp.
	require.Len(t, store.updates["id-1"], 1)
	fields := store.updates["id-1"][0]
	assert.Contains(t, fields, "updated_at")
	assert.True(t, fields["cost"].(decimal.Decimal).Equal(decimal.RequireFromString("12.50")))
}

func TestReconcile_MissingBusinessKey(t *testing.T) {
	store := newFakeStore(catalog.Product{ID: "id-1", SKU: "SKU-1"})
	records := mustParse(t, "sku,qtyfl,price\n,5,9.99\n")

	result := reconcile(store, records)

	// Neither counted nor logged.
	assert.Equal(t, 1, result.TotalRecords)
	assert.Equal(t, 0, result.UpdatedProducts)
	assert.Equal(t, 0, result.NewProducts)
	assert.Empty(t, result.Errors)
	assert.Empty(t, store.updates)
}

func TestReconcile_UnknownKey(t *testing.T) {
	t.Run("ZeroQuantityIsNoop", func(t *testing.T) {
		store := newFakeStore()
		records := mustParse(t, "sku,qtyfl,qtynj,price\nSKU-2,0,0,0\n")

		result := reconcile(store, records)

		assert.Equal(t, 0, result.UpdatedProducts)
		assert.Equal(t, 0, result.NewProducts)
		assert.Empty(t, result.Errors)
		assert.Empty(t, store.updates)
	})

	t.Run("PositiveQuantityCountsAsNew", func(t *testing.T) {
		store := newFakeStore()
		records := mustParse(t, "sku,qtyfl,qtynj,price\nSKU-9,4,2,5.00\n")

		result := reconcile(store, records)

		assert.Equal(t, 1, result.NewProducts)
		assert.Equal(t, 0, result.UpdatedProducts)
		// Informational only: no store write.
		assert.Empty(t, store.updates)
	})
}

func TestReconcile_CostGuard(t *testing.T) {
	tests := []struct {
		name      string
		price     string
		wantCost  bool
	}{
		{"PositiveCostWritten", "12.50", true},
		{"ZeroCostSkipped", "0", false},
		{"UnparsableCostSkipped", "call-for-price", false},
		{"NegativeCostSkipped", "-4.00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore(catalog.Product{ID: "id-1", SKU: "SKU-1", Cost: decimal.RequireFromString("10.00")})
			records := mustParse(t, "sku,qtyfl,price\nSKU-1,5,"+tt.price+"\n")

			result := reconcile(store, records)

			assert.Equal(t, 1, result.UpdatedProducts)
			require.Len(t, store.updates["id-1"], 1)
			fields := store.updates["id-1"][0]
			assert.Contains(t, fields, "updated_at")
			if tt.wantCost {
				assert.Contains(t, fields, "cost")
			} else {
				// A zero or bad cost never clobbers the stored one.
				assert.NotContains(t, fields, "cost")
			}
		})
	}
}

func TestReconcile_RecordFaultIsolation(t *testing.T) {
	t.Run("StoreWriteFailure", func(t *testing.T) {
		store := newFakeStore(
			catalog.Product{ID: "id-1", SKU: "SKU-1"},
			catalog.Product{ID: "id-2", SKU: "SKU-2"},
		)
		store.failIDs["id-1"] = errors.New("deadlock")
		records := mustParse(t, "sku,qtyfl,price\nSKU-1,1,1.00\nSKU-2,1,1.00\n")

		result := reconcile(store, records)

		// The bad record is recorded; the run keeps going.
		assert.True(t, result.Success)
		assert.Equal(t, 1, result.UpdatedProducts)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "SKU-1")
		assert.Len(t, store.updates["id-2"], 1)
	})

	t.Run("NonNumericQuantity", func(t *testing.T) {
		store := newFakeStore(
			catalog.Product{ID: "id-1", SKU: "SKU-1"},
			catalog.Product{ID: "id-2", SKU: "SKU-2"},
		)
		records := mustParse(t, "sku,qtyfl,price\nSKU-1,lots,1.00\nSKU-2,3,1.00\n")

		result := reconcile(store, records)

		// The malformed record's key shows up in errors and the batch
		// still completes.
		require.NotEmpty(t, result.Errors)
		assert.Contains(t, result.Errors[0], "SKU-1")
		assert.Len(t, store.updates["id-2"], 1)
	})
}

func TestReconcile_KeyMatching(t *testing.T) {
	t.Run("CaseInsensitive", func(t *testing.T) {
		store := newFakeStore(catalog.Product{ID: "id-1", SKU: "sku-1"})
		records := mustParse(t, "sku,qtyfl,price\nSKU-1,1,1.00\n")

		result := reconcile(store, records)
		assert.Equal(t, 1, result.UpdatedProducts)
	})

	t.Run("FallbackPartNumberColumn", func(t *testing.T) {
		store := newFakeStore(catalog.Product{ID: "id-1", SKU: "MPN-77"})
		records := mustParse(t, "mfg_part_no,qtyfl,price\nMPN-77,1,1.00\n")

		result := reconcile(store, records)
		assert.Equal(t, 1, result.UpdatedProducts)
	})

	t.Run("DuplicateSnapshotKeysLastWins", func(t *testing.T) {
		store := newFakeStore(
			catalog.Product{ID: "id-old", SKU: "SKU-1"},
			catalog.Product{ID: "id-new", SKU: "SKU-1"},
		)
		records := mustParse(t, "sku,qtyfl,price\nSKU-1,1,1.00\n")

		result := reconcile(store, records)
		assert.Equal(t, 1, result.UpdatedProducts)
		assert.Empty(t, store.updates["id-old"])
		assert.Len(t, store.updates["id-new"], 1)
	})
}

func TestReconcile_Idempotent(t *testing.T) {
	records := mustParse(t, "sku,qtyfl,qtynj,price\nSKU-1,5,3,12.50\nSKU-9,2,0,4.00\n")

	run := func() *models.SyncResult {
		store := newFakeStore(catalog.Product{ID: "id-1", SKU: "SKU-1"})
		return reconcile(store, records)
	}

	first := run()
	second := run()

	assert.Equal(t, first.UpdatedProducts, second.UpdatedProducts)
	assert.Equal(t, first.NewProducts, second.NewProducts)
	assert.Equal(t, first.TotalRecords, second.TotalRecords)
	assert.Equal(t, len(first.Errors), len(second.Errors))
}
