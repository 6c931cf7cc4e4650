// Package store resolves a tenant slug to its store through the name registry.
package store

import (
	"context"
	"errors"
	"fmt"

	"storefront-platform/internal/common/logger"
	"storefront-platform/internal/models"
)

var (
	ErrNotFound     = errors.New("STORE_NOT_FOUND")
	ErrLookupFailed = errors.New("STORE_LOOKUP_FAILED")
)

// OwnerResolver maps a slug to the owning user id. Absent slugs yield ErrNotFound.
type OwnerResolver interface {
	ResolveOwner(ctx context.Context, slug string) (string, error)
}

// StoreLoader loads a store by owner id. Absent stores yield ErrNotFound.
type StoreLoader interface {
	LoadStore(ctx context.Context, ownerID string) (*models.Store, error)
}

// Lookup composes the two steps. Every call re-reads both; nothing is cached.
type Lookup struct {
	owners OwnerResolver
	stores StoreLoader
	logger logger.Logger
}

func NewLookup(owners OwnerResolver, stores StoreLoader, log logger.Logger) *Lookup {
	return &Lookup{
		owners: owners,
		stores: stores,
		logger: log.WithFields(map[string]interface{}{"component": "store-lookup"}),
	}
}

// Find returns ErrNotFound when the slug is unregistered or its owner has no
// store, and ErrLookupFailed wrapping the cause for any read failure.
func (l *Lookup) Find(ctx context.Context, slug string) (*models.Store, error) {
	ownerID, err := l.owners.ResolveOwner(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: resolve owner: %v", ErrLookupFailed, err)
	}

	s, err := l.stores.LoadStore(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			l.logger.Warn("registry entry without store", map[string]interface{}{
				"slug":    slug,
				"ownerId": ownerID,
			})
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: load store: %v", ErrLookupFailed, err)
	}
	return s, nil
}
