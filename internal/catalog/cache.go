package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"catalogo/internal/model"
	"catalogo/internal/normalizer"
	"catalogo/internal/observability"
	"catalogo/internal/source"
)

// Loader produces the full, normalized product list.
type Loader interface {
	Load(ctx context.Context) ([]model.Product, error)
}

// SourceLoader reads a raw grid and normalizes it.
type SourceLoader struct {
	Source     source.Source
	Normalizer *normalizer.Normalizer
}

func (l *SourceLoader) Load(ctx context.Context) ([]model.Product, error) {
	grid, err := l.Source.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Source.Name(), err)
	}
	n := l.Normalizer
	if n == nil {
		n = normalizer.Default
	}
	return n.NormalizeGrid(grid), nil
}

// Cache keeps the last product list in memory. The list is replaced
// wholesale on refresh and never mutated in place; callers must treat the
// returned slice as read-only. TTL 0 keeps it until Refresh.
type Cache struct {
	Loader Loader
	Store  Store
	TTL    time.Duration
	Logger *zap.Logger

	now func() time.Time

	loadMu   sync.Mutex
	mu       sync.RWMutex
	products []model.Product
	loadedAt time.Time
	loaded   bool
}

func (c *Cache) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

func (c *Cache) expired(loadedAt time.Time) bool {
	return c.TTL > 0 && c.clock().Sub(loadedAt) > c.TTL
}

func (c *Cache) fresh() ([]model.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded || c.expired(c.loadedAt) {
		return nil, false
	}
	return c.products, true
}

// Products returns the cached list, loading it when missing or stale.
func (c *Cache) Products(ctx context.Context) ([]model.Product, error) {
	if p, ok := c.fresh(); ok {
		return p, nil
	}
	return c.load(ctx, false)
}

// Refresh reloads from the source, skipping the shared store.
func (c *Cache) Refresh(ctx context.Context) ([]model.Product, error) {
	return c.load(ctx, true)
}

func (c *Cache) load(ctx context.Context, force bool) ([]model.Product, error) {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	log := observability.OrNop(c.Logger)
	if !force {
		if p, ok := c.fresh(); ok {
			return p, nil
		}
		if c.Store != nil {
			snap, hit, err := c.Store.Get(ctx)
			switch {
			case err != nil:
				log.Warn("[cache] falha ao ler store", zap.Error(err))
			case hit && !snap.LoadedAt.IsZero() && c.expired(snap.LoadedAt):
				log.Debug("[cache] store expirado", zap.Time("loadedAt", snap.LoadedAt))
			case hit:
				// mantém a hora da carga original para o TTL não recomeçar
				if snap.LoadedAt.IsZero() {
					snap.LoadedAt = c.clock()
				}
				c.swap(snap.Products, snap.LoadedAt)
				observability.CacheRefreshes.WithLabelValues("store").Inc()
				return snap.Products, nil
			}
		}
	}

	if c.Loader == nil {
		return nil, source.ErrNotConfigured
	}
	p, err := c.Loader.Load(ctx)
	if err != nil {
		observability.CacheRefreshes.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("carregar produtos: %w", err)
	}
	loadedAt := c.clock()
	c.swap(p, loadedAt)
	observability.CacheRefreshes.WithLabelValues("source").Inc()
	log.Info("[cache] produtos carregados", zap.Int("total", len(p)))

	if c.Store != nil {
		if err := c.Store.Set(ctx, Snapshot{Products: p, LoadedAt: loadedAt}, c.TTL); err != nil {
			log.Warn("[cache] falha ao gravar store", zap.Error(err))
		}
	}
	return p, nil
}

func (c *Cache) swap(p []model.Product, loadedAt time.Time) {
	c.mu.Lock()
	c.products, c.loadedAt, c.loaded = p, loadedAt, true
	c.mu.Unlock()
}

// Lookup returns the products with the given ids in the order asked, plus
// the ids that matched nothing.
func (c *Cache) Lookup(ctx context.Context, ids []string) ([]model.Product, []string, error) {
	all, err := c.Products(ctx)
	if err != nil {
		return nil, nil, err
	}
	index := NewSelection(all...)

	sel := NewSelection()
	var missing []string
	for _, id := range ids {
		if p, ok := index.Get(id); ok {
			sel.Add(p)
		} else {
			missing = append(missing, id)
		}
	}
	return sel.Products(), missing, nil
}
