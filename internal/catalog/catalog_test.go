package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo/internal/model"
	"catalogo/internal/source"
)

type countingLoader struct {
	mu       sync.Mutex
	calls    int
	products []model.Product
	err      error
}

func (l *countingLoader) Load(context.Context) ([]model.Product, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	return l.products, l.err
}

type memStore struct {
	snap Snapshot
	sets int
}

func (m *memStore) Get(context.Context) (Snapshot, bool, error) {
	return m.snap, m.snap.Products != nil, nil
}

func (m *memStore) Set(_ context.Context, snap Snapshot, _ time.Duration) error {
	m.snap = snap
	m.sets++
	return nil
}

var sample = []model.Product{
	{ID: "T1", Name: "Soaking Tub", Category: "Bathtubs", Description: "Acrylic deep soak"},
	{ID: "WF-100", Name: "Wall Faucet", Code: "WF-100", Category: "Faucets"},
	{ID: "D2", Name: "Ducha Higiênica", Category: "Duchas"},
	{ID: "L4", Name: "Lavatory Faucet", Category: "faucets "},
}

func TestCacheLoadsOnceUntilStale(t *testing.T) {
	loader := &countingLoader{products: sample}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := &Cache{Loader: loader, TTL: time.Minute, now: func() time.Time { return now }}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := c.Products(context.Background())
			assert.NoError(t, err)
			assert.Len(t, p, len(sample))
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, loader.calls)

	now = now.Add(2 * time.Minute)
	_, err := c.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, loader.calls)

	_, err = c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, loader.calls)
}

func TestCacheUsesSharedStore(t *testing.T) {
	store := &memStore{}
	loader := &countingLoader{products: sample}

	first := &Cache{Loader: loader, Store: store}
	_, err := first.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.sets)

	second := &Cache{Loader: loader, Store: store}
	p, err := second.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, p, len(sample))
	assert.Equal(t, 1, loader.calls)

	_, err = second.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, loader.calls)
}

func TestCacheKeepsStoreLoadTime(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	loader := &countingLoader{products: sample}
	store := &memStore{snap: Snapshot{Products: sample[:1], LoadedAt: now.Add(-50 * time.Second)}}

	c := &Cache{Loader: loader, Store: store, TTL: time.Minute, now: clock}
	p, err := c.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, p, 1)
	assert.Zero(t, loader.calls)

	// 70s desde a carga original: expirou, mesmo tendo chegado do store há 20s
	now = now.Add(20 * time.Second)
	p, err = c.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, p, len(sample))
	assert.Equal(t, 1, loader.calls)
	assert.Equal(t, now, store.snap.LoadedAt)

	stale := &memStore{snap: Snapshot{Products: sample[:1], LoadedAt: now.Add(-2 * time.Minute)}}
	c = &Cache{Loader: loader, Store: stale, TTL: time.Minute, now: clock}
	p, err = c.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, p, len(sample))
	assert.Equal(t, 2, loader.calls)
}

func TestCacheErrors(t *testing.T) {
	_, err := (&Cache{}).Products(context.Background())
	assert.ErrorIs(t, err, source.ErrNotConfigured)

	boom := errors.New("sheet offline")
	_, err = (&Cache{Loader: &countingLoader{err: boom}}).Products(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSourceLoader(t *testing.T) {
	l := &SourceLoader{Source: source.Static{Label: "mem", Grid: [][]any{{"Name", "SKU"}, {"Tub", "S1"}, {}, {"Sink", ""}}}}
	p, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, p, 2)
	assert.Equal(t, "S1", p[0].ID)
	assert.Equal(t, "Sink", p[1].ID)
}

func TestLookupKeepsRequestOrder(t *testing.T) {
	c := &Cache{Loader: &countingLoader{products: sample}}
	got, missing, err := c.Lookup(context.Background(), []string{"D2", "nope", "T1", "D2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"D2", "T1"}, []string{got[0].ID, got[1].ID})
	assert.Len(t, got, 2)
	assert.Equal(t, []string{"nope"}, missing)
}

func TestSelectionDuplicateKeepsFirstPosition(t *testing.T) {
	s := NewSelection(
		model.Product{ID: "a", Name: "first"},
		model.Product{ID: "b"},
		model.Product{ID: "a", Name: "second"},
	)
	assert.Equal(t, []string{"a", "b"}, s.IDs())
	assert.Equal(t, "second", s.Products()[0].Name)

	s.Remove("a")
	s.Remove("zzz")
	assert.Equal(t, 1, s.Len())
	_, ok := s.Get("a")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	ids := func(p []model.Product) []string {
		var out []string
		for _, x := range p {
			out = append(out, x.ID)
		}
		return out
	}
	assert.Equal(t, []string{"WF-100", "L4"}, ids(Search(sample, Query{Text: "faucet"})))
	assert.Equal(t, []string{"D2"}, ids(Search(sample, Query{Text: "higienica"})))
	assert.Equal(t, []string{"T1"}, ids(Search(sample, Query{Text: "deep ACRYLIC"})))
	assert.Equal(t, []string{"WF-100", "L4"}, ids(Search(sample, Query{Category: "FAUCETS"})))
	assert.Equal(t, []string{"L4"}, ids(Search(sample, Query{Text: "lavatory", Category: "faucets"})))
	assert.Len(t, Search(sample, Query{}), len(sample))
	assert.Empty(t, Search(sample, Query{Text: "toilet"}))
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Bathtubs", "Duchas", "Faucets"}, Categories(sample))
	assert.Empty(t, Categories(nil))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store := &RedisStore{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	ctx := context.Background()

	_, hit, err := store.Get(ctx)
	require.NoError(t, err)
	assert.False(t, hit)

	loadedAt := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, store.Set(ctx, Snapshot{Products: sample[:2], LoadedAt: loadedAt}, time.Minute))
	got, hit, err := store.Get(ctx)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, sample[:2], got.Products)
	assert.True(t, loadedAt.Equal(got.LoadedAt))

	mr.FastForward(2 * time.Minute)
	_, hit, err = store.Get(ctx)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, store.Set(ctx, Snapshot{Products: sample}, 0))
	require.NoError(t, store.Clear(ctx))
	_, hit, _ = store.Get(ctx)
	assert.False(t, hit)
}
