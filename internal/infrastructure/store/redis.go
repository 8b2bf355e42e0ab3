package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"grocery-manager/internal/core/grocery"
	"grocery-manager/internal/core/recipe"
	"grocery-manager/internal/pkg/common"
)

// Redis is the Redis-backed repository.
type Redis struct {
	client  *redis.Client
	mu      sync.RWMutex
	profile string
}

// NewRedis connects to Redis and returns a repository scoped to the given
// profile.
func NewRedis(addr, profile string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Redis{
		client:  client,
		profile: profile,
	}, nil
}

// Client exposes the underlying Redis client so other components (the AI
// response cache) can share the connection.
func (r *Redis) Client() *redis.Client {
	return r.client
}

// LoadInHouse loads the in-house sequence, empty on any failure.
func (r *Redis) LoadInHouse(ctx context.Context) []grocery.GroceryItem {
	var items []grocery.GroceryItem
	if !r.load(ctx, KeyInHouseItems, &items) {
		return nil
	}
	return items
}

// LoadShopping loads the shopping sequence, empty on any failure.
func (r *Redis) LoadShopping(ctx context.Context) []grocery.GroceryItem {
	var items []grocery.GroceryItem
	if !r.load(ctx, KeyShoppingListItems, &items) {
		return nil
	}
	return items
}

// LoadRecipes loads the saved recipes, empty on any failure.
func (r *Redis) LoadRecipes(ctx context.Context) []recipe.Recipe {
	var recipes []recipe.Recipe
	if !r.load(ctx, KeyRecipes, &recipes) {
		return nil
	}
	return recipes
}

// SaveInHouse writes the in-house sequence.
func (r *Redis) SaveInHouse(ctx context.Context, items []grocery.GroceryItem) error {
	return r.save(ctx, KeyInHouseItems, items)
}

// SaveShopping writes the shopping sequence.
func (r *Redis) SaveShopping(ctx context.Context, items []grocery.GroceryItem) error {
	return r.save(ctx, KeyShoppingListItems, items)
}

// SaveRecipes writes the saved recipes.
func (r *Redis) SaveRecipes(ctx context.Context, recipes []recipe.Recipe) error {
	return r.save(ctx, KeyRecipes, recipes)
}

// SwitchProfile repoints the repository at another profile.
func (r *Redis) SwitchProfile(profile string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profile = profile
}

// Ping checks the Redis connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) key(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profile + ":" + name
}

// load reports whether v holds a cleanly decoded blob. A failed decode can
// leave partial data in v; callers must discard it.
func (r *Redis) load(ctx context.Context, name string, v interface{}) bool {
	data, err := r.client.Get(ctx, r.key(name)).Bytes()
	if err != nil {
		if err != redis.Nil {
			common.LogWarn("store read failed, falling back to empty",
				zap.String("key", name),
				zap.Error(err),
			)
		}
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		common.LogWarn("store blob corrupt, falling back to empty",
			zap.String("key", name),
			zap.Error(err),
		)
		return false
	}
	return true
}

func (r *Redis) save(ctx context.Context, name string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	if err := r.client.Set(ctx, r.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
