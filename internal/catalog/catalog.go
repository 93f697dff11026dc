// Package catalog loads and caches the activity/profile/equipment
// configuration. The catalog is fetched once per process; concurrent
// first loads share a single in-flight fetch.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/mlebrun/sailcast/internal/models"
)

// ErrNotFound marks lookups for unknown profile or equipment IDs
var ErrNotFound = errors.New("not found")

// Fetcher produces the parsed catalog from wherever it is stored
type Fetcher func(ctx context.Context) (*models.Catalog, error)

// FileSource returns a Fetcher reading the catalog from a JSON file
func FileSource(path string) Fetcher {
	return func(ctx context.Context) (*models.Catalog, error) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading catalog %s: %w", path, err)
		}
		var catalog models.Catalog
		if err := json.Unmarshal(raw, &catalog); err != nil {
			return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
		}
		log.Debug("catalog loaded",
			"profiles", len(catalog.Profiles),
			"activities", len(catalog.Activities),
			"equipment", len(catalog.Equipment))
		return &catalog, nil
	}
}

// Cache holds the loaded catalog for the lifetime of the process. Its
// lifecycle is empty → loading → loaded: the first caller triggers the
// fetch, concurrent callers wait on the same in-flight load instead of
// fetching again, and a failed load leaves the cache empty so a later
// call can retry.
type Cache struct {
	fetch Fetcher

	mu       sync.Mutex
	data     *models.Catalog
	err      error
	inflight chan struct{}
}

// NewCache creates a cache around the given fetcher
func NewCache(fetch Fetcher) *Cache {
	return &Cache{fetch: fetch}
}

// Load returns the cached catalog, fetching it on first use
func (c *Cache) Load(ctx context.Context) (*models.Catalog, error) {
	c.mu.Lock()
	if c.data != nil {
		data := c.data
		c.mu.Unlock()
		return data, nil
	}

	if c.inflight != nil {
		// Another goroutine is already fetching; wait for it.
		done := c.inflight
		c.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		c.mu.Lock()
		data, err := c.data, c.err
		c.mu.Unlock()
		if data != nil {
			return data, nil
		}
		return nil, err
	}

	done := make(chan struct{})
	c.inflight = done
	c.mu.Unlock()

	data, err := c.fetch(ctx)

	c.mu.Lock()
	c.data, c.err = data, err
	c.inflight = nil
	close(done)
	c.mu.Unlock()

	return data, err
}

// Clear drops the cached catalog so the next Load fetches again.
// Intended for tests.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data, c.err = nil, nil
}

// ProfileByID finds a profile by its identifier
func ProfileByID(catalog *models.Catalog, id string) (*models.Profile, error) {
	for i := range catalog.Profiles {
		if catalog.Profiles[i].ID == id {
			return &catalog.Profiles[i], nil
		}
	}
	return nil, fmt.Errorf("profile %q: %w", id, ErrNotFound)
}

// ProfileByName finds a profile by name, case-insensitively
func ProfileByName(catalog *models.Catalog, name string) (*models.Profile, error) {
	for i := range catalog.Profiles {
		if strings.EqualFold(catalog.Profiles[i].Name, name) {
			return &catalog.Profiles[i], nil
		}
	}
	return nil, fmt.Errorf("profile named %q: %w", name, ErrNotFound)
}

// EquipmentByID finds an equipment item by its identifier
func EquipmentByID(catalog *models.Catalog, id string) (*models.Equipment, error) {
	for i := range catalog.Equipment {
		if catalog.Equipment[i].ID == id {
			return &catalog.Equipment[i], nil
		}
	}
	return nil, fmt.Errorf("equipment %q: %w", id, ErrNotFound)
}
