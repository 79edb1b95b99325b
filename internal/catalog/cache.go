package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradehub/marketplace-backend/internal/pricing"
	"github.com/tradehub/marketplace-backend/pkg/logger"
	"github.com/tradehub/marketplace-backend/pkg/redis"
)

// CachedProductReader is a read-through cache for product snapshots. Cache
// failures are logged and fall through to the wrapped reader. Missing products
// are not cached.
type CachedProductReader struct {
	next  pricing.ProductReader
	store redis.Store
	ttl   time.Duration
	logg  *logger.Logger
}

var _ pricing.ProductReader = (*CachedProductReader)(nil)

type cachedProduct struct {
	ID                uuid.UUID       `json:"id"`
	SupplierID        uuid.UUID       `json:"supplier_id"`
	Name              string          `json:"name"`
	BasePrice         decimal.Decimal `json:"base_price"`
	MinimumOrderCount int             `json:"minimum_order_count"`
	Unit              string          `json:"unit"`
}

// NewCachedProductReader wraps next. A nil store or non-positive ttl returns
// next unchanged.
func NewCachedProductReader(next pricing.ProductReader, store redis.Store, ttl time.Duration, logg *logger.Logger) pricing.ProductReader {
	if store == nil || ttl <= 0 {
		return next
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &CachedProductReader{next: next, store: store, ttl: ttl, logg: logg}
}

func (c *CachedProductReader) FindProduct(ctx context.Context, id uuid.UUID) (*pricing.Product, error) {
	key := redis.ProductKey(id.String())
	ctx = c.logg.WithField(ctx, "product_id", id.String())

	raw, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var snapshot cachedProduct
		jsonErr := json.Unmarshal([]byte(raw), &snapshot)
		if jsonErr == nil {
			return fromSnapshot(snapshot), nil
		}
		c.logg.Warn(c.logg.WithField(ctx, "error", jsonErr.Error()), "pricing.product_cache.decode_failed")
	case !redis.IsMiss(err):
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "pricing.product_cache.get_failed")
	}

	product, err := c.next.FindProduct(ctx, id)
	if err != nil || product == nil {
		return product, err
	}

	payload, err := json.Marshal(toSnapshot(product))
	if err != nil {
		return product, nil
	}
	if err := c.store.Set(ctx, key, string(payload), c.ttl); err != nil {
		c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "pricing.product_cache.set_failed")
	}
	return product, nil
}

func toSnapshot(p *pricing.Product) cachedProduct {
	return cachedProduct{
		ID:                p.ID,
		SupplierID:        p.SupplierID,
		Name:              p.Name,
		BasePrice:         p.BasePrice,
		MinimumOrderCount: p.MinimumOrderCount,
		Unit:              p.Unit,
	}
}

func fromSnapshot(s cachedProduct) *pricing.Product {
	return &pricing.Product{
		ID:                s.ID,
		SupplierID:        s.SupplierID,
		Name:              s.Name,
		BasePrice:         s.BasePrice,
		MinimumOrderCount: s.MinimumOrderCount,
		Unit:              s.Unit,
	}
}
