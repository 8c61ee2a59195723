// Package accesscontrol answers entitlement queries for one authenticated
// principal, lazily fetching and memoizing the principal's permission grants
// and quota balances from the provider API.
//
// A Cache is scoped to a single principal's session. It must not be shared
// across concurrent principals — construct one per session and pass it by
// reference to the scope that owns it.
package accesscontrol

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Provider API endpoint paths.
const (
	permissionsPath = "/permissions/list"
	quotasPath      = "/quotas/list"
)

// Permission is a capability grant held by the principal, identified by name.
type Permission struct {
	Name string `json:"name"`
}

// Quota is a consumable allowance. The principal "has remaining quota" when
// Remaining is strictly greater than zero.
type Quota struct {
	Name      string  `json:"name"`
	Remaining float64 `json:"remaining"`
}

// Fetcher is the opaque fetch capability the cache uses to reach the provider
// API. provider.APIClient implements it.
type Fetcher interface {
	GetJSON(ctx context.Context, path string, out any) error
}

// Cache memoizes the principal's permission and quota lists. Each list is
// either empty (not yet fetched) or fully populated — refresh is all-or-nothing
// per list, and a fetch error leaves the cache untouched. Concurrent first
// accesses are coalesced into one upstream call per list.
type Cache struct {
	fetcher Fetcher

	mu          sync.RWMutex
	permissions []Permission
	quotas      []Quota

	group singleflight.Group
}

// NewCache creates an empty cache backed by the given fetcher.
func NewCache(fetcher Fetcher) *Cache {
	return &Cache{fetcher: fetcher}
}

type permissionsResponse struct {
	Permissions []Permission `json:"permissions"`
}

type quotasResponse struct {
	Quotas []Quota `json:"quotas"`
}

// ListPermissions returns the cached permission list, fetching it once from
// the provider on first access. An empty fetched list counts as a miss and is
// retried on the next call.
func (c *Cache) ListPermissions(ctx context.Context) ([]Permission, error) {
	c.mu.RLock()
	cached := c.permissions
	c.mu.RUnlock()
	if len(cached) > 0 {
		return cached, nil
	}

	v, err, _ := c.group.Do("permissions", func() (any, error) {
		// A coalesced caller may arrive after the cache was just filled.
		c.mu.RLock()
		filled := c.permissions
		c.mu.RUnlock()
		if len(filled) > 0 {
			return filled, nil
		}

		var resp permissionsResponse
		if err := c.fetcher.GetJSON(ctx, permissionsPath, &resp); err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.permissions = resp.Permissions
		c.mu.Unlock()
		return resp.Permissions, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Permission), nil
}

// ListQuotas returns the cached quota list, fetching it once from the provider
// on first access.
func (c *Cache) ListQuotas(ctx context.Context) ([]Quota, error) {
	c.mu.RLock()
	cached := c.quotas
	c.mu.RUnlock()
	if len(cached) > 0 {
		return cached, nil
	}

	v, err, _ := c.group.Do("quotas", func() (any, error) {
		c.mu.RLock()
		filled := c.quotas
		c.mu.RUnlock()
		if len(filled) > 0 {
			return filled, nil
		}

		var resp quotasResponse
		if err := c.fetcher.GetJSON(ctx, quotasPath, &resp); err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.quotas = resp.Quotas
		c.mu.Unlock()
		return resp.Quotas, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Quota), nil
}

// HasPermission reports whether the principal holds every named permission,
// by exact name match. An empty name list is vacuously true.
func (c *Cache) HasPermission(ctx context.Context, names ...string) (bool, error) {
	permissions, err := c.ListPermissions(ctx)
	if err != nil {
		return false, err
	}

	held := make(map[string]bool, len(permissions))
	for _, p := range permissions {
		held[p.Name] = true
	}

	for _, name := range names {
		if !held[name] {
			return false, nil
		}
	}
	return true, nil
}

// HasRemainingQuota reports whether every named quota exists with a strictly
// positive remaining balance. A missing quota counts as zero remaining, not
// as an error.
func (c *Cache) HasRemainingQuota(ctx context.Context, names ...string) (bool, error) {
	quotas, err := c.ListQuotas(ctx)
	if err != nil {
		return false, err
	}

	remaining := make(map[string]float64, len(quotas))
	for _, q := range quotas {
		remaining[q.Name] = q.Remaining
	}

	for _, name := range names {
		if remaining[name] <= 0 {
			return false, nil
		}
	}
	return true, nil
}
