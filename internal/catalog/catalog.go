// Package catalog holds the load-once, in-memory set of repositories and the
// current selection.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/johanforsgren/toolmanager/internal/domain"
	"github.com/johanforsgren/toolmanager/internal/logger"
	"github.com/johanforsgren/toolmanager/internal/provider/common"
)

const DefaultConcurrency = 4

type Options struct {
	Endpoints common.Endpoints
	// Concurrency bounds parallel requirements fetches. Values below one
	// fall back to DefaultConcurrency.
	Concurrency int
}

// Catalog maps repository identifiers to records. It is populated by the
// first successful Load and read-only afterwards.
type Catalog struct {
	lister       domain.Lister
	requirements domain.RequirementsSource
	endpoints    common.Endpoints
	concurrency  int

	flight singleflight.Group

	mu      sync.RWMutex
	loaded  bool
	order   []domain.RepositoryID
	records map[domain.RepositoryID]domain.Repository
}

func New(lister domain.Lister, requirements domain.RequirementsSource, opts Options) *Catalog {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Catalog{
		lister:       lister,
		requirements: requirements,
		endpoints:    opts.Endpoints,
		concurrency:  concurrency,
		records:      make(map[domain.RepositoryID]domain.Repository),
	}
}

func (c *Catalog) isLoaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Load runs the listing + requirements pipeline once. Concurrent callers
// share a single run; after a success every call returns immediately. A
// failed load publishes nothing and the next call tries again.
//
// The shared run ignores the cancellation of whichever caller started it.
// Each caller still stops waiting when its own ctx is done.
func (c *Catalog) Load(ctx context.Context) error {
	if c.isLoaded() {
		return nil
	}

	shared := context.WithoutCancel(ctx)
	ch := c.flight.DoChan("load", func() (interface{}, error) {
		if c.isLoaded() {
			return nil, nil
		}
		return nil, c.load(shared)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		logger.LogError("CATALOG_LOAD", "wait", ctx.Err())
		return fmt.Errorf("%w: %w", common.ErrCatalogLoad, ctx.Err())
	}
}

func (c *Catalog) load(ctx context.Context) error {
	logger.Log("Catalog: Loading repositories")

	entries, err := c.lister.ListRepositories(ctx)
	if err != nil {
		logger.LogError("CATALOG_LOAD", "listing", err)
		return fmt.Errorf("%w: %w", common.ErrCatalogLoad, err)
	}

	requirements := c.fetchRequirements(ctx, entries)
	if err := ctx.Err(); err != nil {
		logger.LogError("CATALOG_LOAD", "requirements", err)
		return fmt.Errorf("%w: %w", common.ErrCatalogLoad, err)
	}

	order := make([]domain.RepositoryID, 0, len(entries))
	records := make(map[domain.RepositoryID]domain.Repository, len(entries))
	for i, entry := range entries {
		repo := domain.Repository{
			Name:         entry.Name,
			Description:  entry.Description,
			URL:          c.endpoints.RepositoryURL(entry.Name),
			Requirements: requirements[i],
		}

		id := repo.ID()
		if _, exists := records[id]; exists {
			logger.Log("Catalog: Dropping duplicate listing entry %s at position %d", entry.Name, i)
			continue
		}
		records[id] = repo
		order = append(order, id)
	}

	c.mu.Lock()
	c.order = order
	c.records = records
	c.loaded = true
	c.mu.Unlock()

	logger.Log("Catalog: Loaded %d repositories %v", len(order), order)
	return nil
}

// fetchRequirements enriches every entry concurrently. Results are stored
// by listing index so the caller sees them in listing order. Failures
// degrade to an empty list.
func (c *Catalog) fetchRequirements(ctx context.Context, entries []domain.ListingEntry) [][]string {
	results := make([][]string, len(entries))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			reqs, err := c.requirements.FetchRequirements(ctx, entry.Name)
			if err != nil {
				logger.LogError("CATALOG_REQUIREMENTS", entry.Name, err)
				reqs = nil
			}
			if reqs == nil {
				reqs = []string{}
			}
			results[i] = reqs
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// List loads the catalog if needed and returns a snapshot in listing order.
func (c *Catalog) List(ctx context.Context) ([]domain.CatalogEntry, error) {
	if err := c.Load(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := lo.Map(c.order, func(id domain.RepositoryID, _ int) domain.CatalogEntry {
		return domain.CatalogEntry{ID: id, Repository: c.records[id].Clone()}
	})
	logger.Log("Catalog: Returning %d repositories", len(entries))
	return entries, nil
}

func (c *Catalog) Get(id domain.RepositoryID) (domain.Repository, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	repo, ok := c.records[id]
	if !ok {
		return domain.Repository{}, fmt.Errorf("%w: %s", common.ErrNotFound, id)
	}
	return repo.Clone(), nil
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
