package memory

import (
	"context"
	"sync"

	"github.com/escrowd/invoicing/internal/cache"
	"github.com/escrowd/invoicing/internal/domain/identity"
	ierr "github.com/escrowd/invoicing/internal/errors"
	"github.com/escrowd/invoicing/internal/logger"
)

// IdentityRegistry is the reference address-to-identity mapping. Identity
// IDs start at 1 and are handed out in registration order. Resolutions are
// cached; a registration never changes an existing mapping so entries are
// only ever added.
type IdentityRegistry struct {
	mu     sync.RWMutex
	byAddr map[string]uint64
	nextID uint64
	cache  cache.Cache
	log    *logger.Logger
}

func NewIdentityRegistry(c cache.Cache, log *logger.Logger) identity.Registry {
	return &IdentityRegistry{
		byAddr: make(map[string]uint64),
		nextID: 1,
		cache:  c,
		log:    log,
	}
}

func (r *IdentityRegistry) Register(ctx context.Context, address string) (uint64, error) {
	if address == "" {
		return 0, ierr.NewError("address cannot be empty").
			WithHint("Please provide an address to register").
			Mark(ierr.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byAddr[address]; ok {
		return 0, ierr.NewError("address already registered").
			WithHint("This address is already linked to an identity").
			WithReportableDetails(map[string]any{
				"address": address,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	id := r.nextID
	r.nextID++
	r.byAddr[address] = id

	r.log.Debugw("identity registered", "address", address, "identity", id)
	return id, nil
}

func (r *IdentityRegistry) Resolve(ctx context.Context, address string) (uint64, error) {
	cacheKey := cache.GenerateKey(cache.PrefixIdentity, address)
	if value, found := r.cache.Get(ctx, cacheKey); found {
		if id, ok := value.(uint64); ok {
			return id, nil
		}
	}

	r.mu.RLock()
	id, ok := r.byAddr[address]
	r.mu.RUnlock()

	if !ok {
		return 0, ierr.NewError("address not registered").
			WithHint("The caller's address is not linked to any identity").
			WithReportableDetails(map[string]any{
				"address": address,
			}).
			Mark(ierr.ErrUnknownIdentity)
	}

	r.cache.Set(ctx, cacheKey, id, cache.DefaultExpiration)
	return id, nil
}
