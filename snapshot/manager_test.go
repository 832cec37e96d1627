package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/hupe1980/slotvec"
	"github.com/hupe1980/slotvec/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	metrics := &slotvec.BasicMetricsCollector{}

	mgr := NewManager[user](store,
		WithPrefix("users/"),
		WithCompression(CompressionLZ4),
		WithMetricsCollector(metrics),
	)

	v := sample(slotvec.LastFreed)
	require.NoError(t, mgr.Save(ctx, "0001", v))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"users/0001" + Ext}, names)

	got, err := mgr.Load(ctx, "0001")
	require.NoError(t, err)
	assert.Equal(t, entries(v), entries(got))
	assert.Equal(t, v.FreeIndices(), got.FreeIndices())

	_, err = mgr.Load(ctx, "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.SaveCount)
	assert.Equal(t, int64(0), stats.SaveErrors)
	assert.Positive(t, stats.SaveBytes)
	assert.Equal(t, int64(2), stats.LoadCount)
	assert.Equal(t, int64(1), stats.LoadErrors)
	assert.Equal(t, stats.SaveBytes, stats.LoadBytes)
}

func TestManager_ListAndLatest(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	mgr := NewManager[int](store, WithPrefix("a/"))
	other := NewManager[int](store, WithPrefix("b/"))

	_, err := mgr.LoadLatest(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i := range 3 {
		v := slotvec.New[int]()
		v.Insert(i)
		require.NoError(t, mgr.Save(ctx, NameAt(base.Add(time.Duration(i)*time.Second)), v))
	}
	require.NoError(t, other.Save(ctx, NameAt(base.Add(time.Hour)), slotvec.New[int]()))

	names, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"20260102T030405.000000000Z",
		"20260102T030406.000000000Z",
		"20260102T030407.000000000Z",
	}, names)

	latest, err := mgr.LoadLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, latest.MustGet(0))
}

func TestManager_IgnoresForeignBlobs(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	mgr := NewManager[int](store, WithPrefix("vec/"))

	v := slotvec.New[int]()
	v.Insert(42)
	require.NoError(t, mgr.Save(ctx, "0001", v))
	require.NoError(t, store.Put(ctx, "vec/zzz-notes.txt", []byte("not a snapshot")))
	require.NoError(t, store.Put(ctx, "vec/"+Ext, []byte("x")))

	names, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001"}, names)

	latest, err := mgr.LoadLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, latest.MustGet(0))

	n, err := mgr.Prune(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, store.Len())
}

func TestManager_Prune(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	metrics := &slotvec.BasicMetricsCollector{}
	mgr := NewManager[int](store, WithMetricsCollector(metrics), WithPruneParallelism(2))

	for i := range 5 {
		require.NoError(t, mgr.Save(ctx, fmt.Sprintf("%04d", i), slotvec.New[int]()))
	}

	n, err := mgr.Prune(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	names, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"0003", "0004"}, names)

	n, err = mgr.Prune(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = mgr.Prune(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, store.Len())

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.PruneCount)
	assert.Equal(t, int64(5), stats.PrunedBlobs)
}

func TestManager_KeepPrunesOnSave(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	mgr := NewManager[string](store, WithKeep(2))

	for i := range 4 {
		v := slotvec.New[string]()
		v.Insert(fmt.Sprint(i))
		require.NoError(t, mgr.Save(ctx, fmt.Sprintf("snap-%d", i), v))
	}

	names, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"snap-2", "snap-3"}, names)
}

type failingStore struct {
	*blobstore.MemoryStore
	err error
}

func (f failingStore) Put(context.Context, string, []byte) error { return f.err }
func (f failingStore) Delete(context.Context, string) error      { return f.err }

func TestManager_StoreErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	mem := blobstore.NewMemoryStore()
	require.NoError(t, mem.Put(ctx, "old"+Ext, []byte("x")))
	require.NoError(t, mem.Put(ctx, "new"+Ext, []byte("x")))

	var logs bytes.Buffer
	logger := slotvec.NewLogger(slog.NewTextHandler(&logs, nil))
	metrics := &slotvec.BasicMetricsCollector{}
	mgr := NewManager[int](failingStore{mem, boom}, WithLogger(logger), WithMetricsCollector(metrics))

	err := mgr.Save(ctx, "x", slotvec.New[int]())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, logs.String(), "snapshot save failed")
	assert.Contains(t, logs.String(), "name=x")

	n, err := mgr.Prune(ctx, 1)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, n)
	assert.Contains(t, logs.String(), "snapshot prune failed")

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.SaveErrors)
	assert.Equal(t, int64(1), stats.PruneErrors)
}

func TestManager_LocalStore(t *testing.T) {
	ctx := context.Background()
	mgr := NewManager[user](blobstore.NewLocalStore(t.TempDir()),
		WithPrefix("vec/"),
		WithCompression(CompressionZSTD),
		WithKeep(1),
	)

	v := sample(slotvec.LowestIndex)
	require.NoError(t, mgr.Save(ctx, NameAt(time.Now()), v))

	got, err := mgr.LoadLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries(v), entries(got))
}

func TestManager_RateLimitedStore(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewRateLimitedStore(blobstore.NewMemoryStore(), blobstore.RateLimitConfig{
		OpsPerSec:     500,
		MaxConcurrent: 1,
	})
	mgr := NewManager[int](store)

	for i := range 6 {
		require.NoError(t, mgr.Save(ctx, fmt.Sprintf("%d", i), slotvec.Collect(func(yield func(int) bool) { yield(i) })))
	}
	n, err := mgr.Prune(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	latest, err := mgr.LoadLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, latest.MustGet(0))
}
