package menu

import (
	"context"
	"fmt"

	"github.com/slice-labs/backend-pizzeria/internal/obs"
)

const (
	cacheKeyAll  = "menu:all"
	cacheKeyItem = "menu:item:%d"
)

type queryProvider interface {
	ListItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id int64) (Item, error)
}

// Service orchestrates menu queries and caching. Reads go through Redis
// first; cache failures fall back to the database.
type Service struct {
	queries queryProvider
	cache   *Cache
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Queries queryProvider
	Cache   *Cache
}

// NewService constructs a Service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{queries: cfg.Queries, cache: cfg.Cache}
}

// List returns the full menu.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	var cached []Item
	if hit, err := s.cache.GetJSON(ctx, cacheKeyAll, &cached); err == nil && hit {
		s.observeCache("hit")
		return cached, nil
	}
	s.observeCache("miss")
	items, err := s.queries.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.cache.SetJSON(ctx, cacheKeyAll, items)
	return items, nil
}

// Get returns one menu item by id.
func (s *Service) Get(ctx context.Context, id int64) (Item, error) {
	key := fmt.Sprintf(cacheKeyItem, id)
	var cached Item
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		s.observeCache("hit")
		return cached, nil
	}
	s.observeCache("miss")
	item, err := s.queries.GetItem(ctx, id)
	if err != nil {
		return Item{}, err
	}
	_ = s.cache.SetJSON(ctx, key, item)
	return item, nil
}

func (s *Service) observeCache(result string) {
	if obs.MenuCacheTotal != nil {
		obs.MenuCacheTotal.WithLabelValues(result).Inc()
	}
}
