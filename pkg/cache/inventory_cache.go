package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// InventoryCacheTTL bounds staleness if an invalidation is ever missed.
	InventoryCacheTTL = 10 * time.Minute

	inventoryCacheKeyPrefix = "inventory:item"
)

// CachedItem is the read model of an inventory item stored in Redis as a hash.
type CachedItem struct {
	ID        uuid.UUID `json:"id"`
	Caliber   string    `json:"caliber"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryCache provides read/write operations for inventory item cache entries.
// Key format: "inventory:item:{itemID}"
//
// Entries are written on read misses and deleted after every committed stock
// change, so a hit may lag a concurrent write only until that delete lands.
// Never use a cached quantity to decide whether stock can be issued.
type InventoryCache struct {
	client *RedisClient
}

// NewInventoryCache creates a new InventoryCache backed by the given RedisClient.
func NewInventoryCache(r *RedisClient) *InventoryCache {
	return &InventoryCache{client: r}
}

// Get retrieves a cached item by ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *InventoryCache) Get(ctx context.Context, itemID uuid.UUID) (*CachedItem, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	qty, err := strconv.Atoi(vals["quantity"])
	if err != nil {
		return nil, fmt.Errorf("cache parse quantity: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}

	return &CachedItem{
		ID:        id,
		Caliber:   vals["caliber"],
		Quantity:  qty,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// Set writes a cached item as a Redis hash with InventoryCacheTTL.
// Uses a transactional pipeline so fields and TTL land together.
func (c *InventoryCache) Set(ctx context.Context, item *CachedItem) error {
	key := c.key(item.ID)
	pipe := c.client.Client().TxPipeline()
	pipe.HSet(ctx, key,
		"id", item.ID.String(),
		"caliber", item.Caliber,
		"quantity", strconv.Itoa(item.Quantity),
		"created_at", item.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updated_at", item.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, InventoryCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached item.
func (c *InventoryCache) Delete(ctx context.Context, itemID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "inventory:item:{itemID}"
func (c *InventoryCache) key(itemID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", inventoryCacheKeyPrefix, itemID)
}
