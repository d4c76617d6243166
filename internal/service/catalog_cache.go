package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/grocerease/backend/internal/model"
)

const (
	catalogVersionKey = "recipes:catalog:version"
	catalogKeyPrefix  = "recipes:catalog:v"
)

// CatalogCache keeps the full recipe catalog in Redis so ingredient searches
// do not reload every recipe from the database.
//
// Entries are stored under a generation number. Invalidate bumps the
// generation, so a fill computed before a write lands under a key no reader
// looks at anymore.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

func catalogKey(version int64) string {
	return catalogKeyPrefix + strconv.FormatInt(version, 10)
}

// Get returns the cached catalog and the generation it was looked up under.
// ok is false on a miss; version is still valid then and should be passed
// to Set.
func (c *CatalogCache) Get(ctx context.Context) (recipes []model.Recipe, version int64, ok bool, err error) {
	version, err = c.client.Get(ctx, catalogVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, 0, false, fmt.Errorf("read catalog version: %w", err)
	}

	data, err := c.client.Get(ctx, catalogKey(version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, version, false, fmt.Errorf("read catalog cache: %w", err)
	}
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, version, false, fmt.Errorf("decode catalog cache: %w", err)
	}
	return recipes, version, true, nil
}

// Set stores recipes under the generation returned by the Get that missed.
func (c *CatalogCache) Set(ctx context.Context, version int64, recipes []model.Recipe) error {
	data, err := json.Marshal(recipes)
	if err != nil {
		return fmt.Errorf("encode catalog cache: %w", err)
	}
	if err := c.client.Set(ctx, catalogKey(version), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("write catalog cache: %w", err)
	}
	return nil
}

// Invalidate starts a new generation. Older entries expire on their TTL.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, catalogVersionKey).Err(); err != nil {
		return fmt.Errorf("invalidate catalog cache: %w", err)
	}
	return nil
}
