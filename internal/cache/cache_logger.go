package cache

import (
	"context"
	"log/slog"
)

// InvalidateCatalog drops every cached list of the given kind, e.g. "banners".
// A failure only logs: the stale list still expires with CatalogCacheConfig.TTL.
func InvalidateCatalog(ctx context.Context, cm *CacheManager, kind string) {
	if err := cm.Catalog.InvalidatePattern(ctx, kind+":*"); err != nil {
		slog.WarnContext(ctx, "Catalog cache not invalidated", "kind", kind, "error", err)
	}
}

// DropReviews removes the cached review snapshot stored under key so the next
// read goes back to the database.
func DropReviews(ctx context.Context, cm *CacheManager, key string) {
	if err := cm.Reviews.Delete(ctx, key); err != nil {
		slog.WarnContext(ctx, "Review cache not cleared", "key", key, "error", err)
	}
}
