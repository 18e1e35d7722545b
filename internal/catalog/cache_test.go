package catalog_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinova/clinic-core/internal/catalog"
	"github.com/clinova/clinic-core/internal/model"
	"github.com/clinova/clinic-core/internal/repository"
	"github.com/clinova/clinic-core/internal/testdb"
)

// fakeKV is an in-memory KVStore; TTLs are recorded but never expire.
type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", catalog.ErrCacheMiss
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func newCache(db *gorm.DB, kv catalog.KVStore) *catalog.Cache {
	return catalog.NewCache(
		kv,
		repository.NewGormServiceRepository(db),
		repository.NewGormMedicationRepository(db),
		time.Minute,
		zap.NewNop(),
	)
}

func seedCatalogService(t *testing.T, db *gorm.DB, code string, active bool) *model.Service {
	t.Helper()
	s := &model.Service{ID: uuid.New(), Code: code, Name: "Service " + code, Price: 50, IsActive: active}
	require.NoError(t, db.Create(s).Error)
	return s
}

func TestServicesReadThrough(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	kv := newFakeKV()
	cache := newCache(db, kv)

	seedCatalogService(t, db, "CONS", true)
	seedCatalogService(t, db, "OLD", false)

	// First read comes from the database and only sees active entries.
	services, err := cache.Services(ctx)
	require.NoError(t, err)
	require.Len(t, services, 1)
	require.Equal(t, "CONS", services[0].Code)

	// Drop the table row; a cached second read still serves the entry.
	require.NoError(t, db.Exec("DELETE FROM services").Error)
	services, err = cache.Services(ctx)
	require.NoError(t, err)
	require.Len(t, services, 1)

	// Until the cache is invalidated.
	cache.Invalidate(ctx)
	services, err = cache.Services(ctx)
	require.NoError(t, err)
	require.Empty(t, services)
}

func TestMedicationsReadThrough(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	kv := newFakeKV()
	cache := newCache(db, kv)

	m := &model.Medication{ID: uuid.New(), Name: "Amoxicillin", Strength: "500mg"}
	require.NoError(t, db.Create(m).Error)

	medications, err := cache.Medications(ctx)
	require.NoError(t, err)
	require.Len(t, medications, 1)

	require.NoError(t, db.Exec("DELETE FROM medications").Error)
	medications, err = cache.Medications(ctx)
	require.NoError(t, err)
	require.Len(t, medications, 1, "cached list expected")
}

func TestCorruptCacheEntryFallsBack(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	kv := newFakeKV()
	cache := newCache(db, kv)

	seedCatalogService(t, db, "CONS", true)
	require.NoError(t, kv.Set(ctx, "clinic:catalog:services", "{not json", 0))

	services, err := cache.Services(ctx)
	require.NoError(t, err)
	require.Len(t, services, 1, "database fallback expected")
}

func TestZeroTTLDisablesCaching(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	kv := newFakeKV()
	cache := catalog.NewCache(
		kv,
		repository.NewGormServiceRepository(db),
		repository.NewGormMedicationRepository(db),
		0,
		zap.NewNop(),
	)

	seedCatalogService(t, db, "CONS", true)
	_, err := cache.Services(ctx)
	require.NoError(t, err)
	require.Empty(t, kv.data, "nothing should be cached with ttl 0")
}
