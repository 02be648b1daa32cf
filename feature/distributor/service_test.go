package distributor

import (
	"context"
	"errors"
	"testing"

	"catalog-sync/core/remote"
	catalog "catalog-sync/feature/catalog/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeRemote serves a canned feed without a real SFTP server.
type fakeRemote struct {
	feed       []byte
	connectErr error
	fetchErr   error
	closed     int
}

type fakeRemoteSession struct {
	parent *fakeRemote
}

func (f *fakeRemote) Connect(ctx context.Context) (remote.Session, error) {
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	return &fakeRemoteSession{parent: f}, nil
}

func (s *fakeRemoteSession) Fetch(path string) ([]byte, error) {
	if s.parent.fetchErr != nil {
		return nil, s.parent.fetchErr
	}
	return s.parent.feed, nil
}

func (s *fakeRemoteSession) Close() error {
	s.parent.closed++
	return nil
}

func newService(client remote.Client, store ProductStore) *Service {
	return &Service{
		client: client,
		engine: NewEngine(store, zap.NewNop()),
		store:  store,
		cfg:    remote.Config{RemotePath: "/outbound/inventory.csv", Delimiter: ","},
		logger: zap.NewNop(),
	}
}

func TestRunSync(t *testing.T) {
	t.Run("HappyPath", func(t *testing.T) {
		client := &fakeRemote{feed: []byte("sku,qtyfl,qtynj,price\nSKU-1,5,3,12.50\n")}
		store := newFakeStore(catalog.Product{ID: "id-1", SKU: "SKU-1", Cost: decimal.RequireFromString("10.00")})

		result := newService(client, store).RunSync(context.Background())

		assert.True(t, result.Success)
		assert.Equal(t, 1, result.TotalRecords)
		assert.Equal(t, 1, result.UpdatedProducts)
		assert.Empty(t, result.Errors)
		assert.Equal(t, 1, client.closed)
	})

	t.Run("ConnectionFailureIsFatal", func(t *testing.T) {
		client := &fakeRemote{connectErr: &remote.ConnectionError{Host: "h:22", Err: errors.New("refused")}}
		store := newFakeStore(catalog.Product{ID: "id-1", SKU: "SKU-1"})

		result := newService(client, store).RunSync(context.Background())

		assert.False(t, result.Success)
		assert.Equal(t, 0, result.TotalRecords)
		assert.Equal(t, 0, result.UpdatedProducts)
		require.NotEmpty(t, result.Errors)
		// No updates were attempted.
		assert.Empty(t, store.updates)
		assert.Equal(t, 0, store.fetchCall)
	})

	t.Run("TransferFailureIsFatalAndClosesSession", func(t *testing.T) {
		client := &fakeRemote{fetchErr: &remote.TransferError{Path: "/x", Err: errors.New("gone")}}
		store := newFakeStore()

		result := newService(client, store).RunSync(context.Background())

		assert.False(t, result.Success)
		require.NotEmpty(t, result.Errors)
		assert.Equal(t, 1, client.closed)
	})

	t.Run("ParseFailureIsFatal", func(t *testing.T) {
		client := &fakeRemote{feed: []byte("sku,qty,price\nSKU-1,5\n")}
		store := newFakeStore(catalog.Product{ID: "id-1", SKU: "SKU-1"})

		result := newService(client, store).RunSync(context.Background())

		assert.False(t, result.Success)
		require.NotEmpty(t, result.Errors)
		assert.Empty(t, store.updates)
	})

	t.Run("SnapshotFailureIsFatal", func(t *testing.T) {
		client := &fakeRemote{feed: []byte("sku,qty,price\nSKU-1,5,1.00\n")}
		store := newFakeStore()
		store.fetchErr = errors.New("db down")

		result := newService(client, store).RunSync(context.Background())

		assert.False(t, result.Success)
		require.NotEmpty(t, result.Errors)
	})
}

func TestLookup(t *testing.T) {
	feed := []byte("sku,qtyfl,qtynj,price\nSKU-1,5,3,12.50\nSKU-2,0,0,0\n")

	t.Run("Found", func(t *testing.T) {
		client := &fakeRemote{feed: feed}
		svc := newService(client, newFakeStore())

		result, err := svc.Lookup(context.Background(), "sku-1")
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, "SKU-1", result.SKU)
		assert.Equal(t, map[string]int{"fl": 5, "nj": 3}, result.Quantities)
		assert.Equal(t, 8, result.TotalQuantity())
		assert.True(t, result.Cost.Equal(decimal.RequireFromString("12.50")))
		assert.Equal(t, 1, client.closed)
	})

	t.Run("Absent", func(t *testing.T) {
		client := &fakeRemote{feed: feed}
		svc := newService(client, newFakeStore())

		result, err := svc.Lookup(context.Background(), "SKU-404")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("NoCachingAcrossCalls", func(t *testing.T) {
		client := &fakeRemote{feed: feed}
		svc := newService(client, newFakeStore())

		_, err := svc.Lookup(context.Background(), "SKU-1")
		require.NoError(t, err)
		_, err = svc.Lookup(context.Background(), "SKU-1")
		require.NoError(t, err)

		// Each lookup opens and tears down its own session.
		assert.Equal(t, 2, client.closed)
	})

	t.Run("ConnectionFailure", func(t *testing.T) {
		client := &fakeRemote{connectErr: &remote.ConnectionError{Host: "h:22", Err: errors.New("refused")}}
		svc := newService(client, newFakeStore())

		result, err := svc.Lookup(context.Background(), "SKU-1")
		require.Error(t, err)
		assert.Nil(t, result)
	})
}
