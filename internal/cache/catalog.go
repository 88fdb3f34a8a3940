// Package cache keeps the reference vocabularies (skills, role types, role
// levels, roles) in Redis in front of a repository.CatalogReader.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/garnizeh/staffing/pkg/models"
	"github.com/garnizeh/staffing/pkg/repository"
)

const (
	keyPrefix  = "staffing:catalog:" // staffing:catalog:{table}
	DefaultTTL = 10 * time.Minute
)

var _ repository.CatalogReader = (*Catalog)(nil)

// Catalog serves catalog reads from Redis and loads misses from the next
// reader. Redis failures degrade to direct reads.
type Catalog struct {
	client *redis.Client
	next   repository.CatalogReader
	ttl    time.Duration
	logger *slog.Logger
}

func NewCatalog(client *redis.Client, next repository.CatalogReader, ttl time.Duration, logger *slog.Logger) *Catalog {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{client: client, next: next, ttl: ttl, logger: logger}
}

func key(table string) string { return keyPrefix + table }

// Invalidate drops every cached vocabulary.
func (c *Catalog) Invalidate(ctx context.Context) error {
	keys := []string{
		key(models.TableSkills),
		key(models.TableRoleTypes),
		key(models.TableRoleLevels),
		key(models.TableRoles),
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalog: %w", err)
	}
	return nil
}

// cached returns the list stored under key, loading and storing it on a miss.
func cached[T any](ctx context.Context, c *Catalog, table string, load func(context.Context) ([]T, error)) ([]T, error) {
	k := key(table)
	data, err := c.client.Get(ctx, k).Bytes()
	switch {
	case err == nil:
		var out []T
		if err := json.Unmarshal(data, &out); err == nil {
			return out, nil
		}
		c.logger.Warn("discarding corrupt catalog entry", "key", k)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("catalog cache read failed", "key", k, "error", err)
	}

	out, err := load(ctx)
	if err != nil {
		return nil, err
	}
	data, err = json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", table, err)
	}
	if err := c.client.Set(ctx, k, data, c.ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", "key", k, "error", err)
	}
	return out, nil
}

func (c *Catalog) Skills(ctx context.Context) ([]models.Skill, error) {
	return cached(ctx, c, models.TableSkills, c.next.Skills)
}

func (c *Catalog) RoleTypes(ctx context.Context) ([]models.RoleType, error) {
	return cached(ctx, c, models.TableRoleTypes, c.next.RoleTypes)
}

func (c *Catalog) RoleLevels(ctx context.Context) ([]models.RoleLevel, error) {
	return cached(ctx, c, models.TableRoleLevels, c.next.RoleLevels)
}

func (c *Catalog) Roles(ctx context.Context) ([]models.Role, error) {
	return cached(ctx, c, models.TableRoles, c.next.Roles)
}

// Name lookups scan the cached list and defer to the next reader when the
// name is absent, so a NotFoundError always comes from the source.

func (c *Catalog) SkillByName(ctx context.Context, name string) (*models.Skill, error) {
	all, err := c.Skills(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Name == name {
			return &all[i], nil
		}
	}
	return c.next.SkillByName(ctx, name)
}

func (c *Catalog) RoleTypeByName(ctx context.Context, name string) (*models.RoleType, error) {
	all, err := c.RoleTypes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Name == name {
			return &all[i], nil
		}
	}
	return c.next.RoleTypeByName(ctx, name)
}

func (c *Catalog) RoleLevelByName(ctx context.Context, name string) (*models.RoleLevel, error) {
	all, err := c.RoleLevels(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Name == name {
			return &all[i], nil
		}
	}
	return c.next.RoleLevelByName(ctx, name)
}

func (c *Catalog) RoleByName(ctx context.Context, name string) (*models.Role, error) {
	all, err := c.Roles(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].Name == name {
			return &all[i], nil
		}
	}
	return c.next.RoleByName(ctx, name)
}

// Connect opens a Redis client and pings it.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}
