package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jofra02/proyecto-ventas/internal/application/analytics"
	"github.com/jofra02/proyecto-ventas/internal/application/ports"
	"github.com/redis/go-redis/v9"
)

const (
	versionKey  = "analytics:version"
	bumpChannel = "analytics.bump"
	DefaultTTL  = 5 * time.Minute
)

var (
	_ analytics.Cache            = (*AnalyticsCache)(nil)
	_ ports.AnalyticsInvalidator = (*AnalyticsCache)(nil)
)

// AnalyticsCache guarda respuestas JSON bajo claves versionadas.
// Invalidar incrementa la versión global: las claves anteriores quedan huérfanas y expiran por TTL.
type AnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalyticsCache construye la caché. ttl <= 0 usa DefaultTTL.
func NewAnalyticsCache(client *redis.Client, ttl time.Duration) *AnalyticsCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &AnalyticsCache{client: client, ttl: ttl}
}

// Version devuelve la versión actual, inicializándola en 1 si no existe.
func (c *AnalyticsCache) Version(ctx context.Context) (int64, error) {
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, versionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
		if err := c.client.Set(ctx, versionKey, ver, 0).Err(); err != nil {
			return 0, err
		}
	}
	return ver, nil
}

// BuildKey une las partes con ":" y agrega la versión vigente.
func (c *AnalyticsCache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	ver, err := c.Version(ctx)
	if err != nil {
		return "", fmt.Errorf("cache version: %w", err)
	}
	return fmt.Sprintf("%s:%d", strings.Join(parts, ":"), ver), nil
}

// FetchJSON lee la clave o, si no está, ejecuta loader y guarda su resultado con TTL.
func (c *AnalyticsCache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if loader == nil {
		return errors.New("cache: loader required")
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(payload, dest)
	}
	if !errors.Is(err, redis.Nil) {
		return err
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

// Bump incrementa la versión y publica el nuevo valor para otras instancias.
func (c *AnalyticsCache) Bump(ctx context.Context) error {
	ver, err := c.client.Incr(ctx, versionKey).Result()
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, bumpChannel, strconv.FormatInt(ver, 10)).Err()
}

// Invalidate implementa ports.AnalyticsInvalidator.
func (c *AnalyticsCache) Invalidate(ctx context.Context) error {
	return c.Bump(ctx)
}
