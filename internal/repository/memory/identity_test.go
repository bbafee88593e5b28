package memory

import (
	"context"
	"testing"

	"github.com/escrowd/invoicing/internal/cache"
	ierr "github.com/escrowd/invoicing/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityRegistryRegister(t *testing.T) {
	ctx := context.Background()
	reg := NewIdentityRegistry(cache.NewInMemoryCache(), testLogger(t))

	// IDs start at 1 and follow registration order
	id, err := reg.Register(ctx, "merchant-a")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	id, err = reg.Register(ctx, "customer-b")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), id)

	_, err = reg.Register(ctx, "merchant-a")
	assert.True(t, ierr.IsAlreadyExists(err))

	_, err = reg.Register(ctx, "")
	assert.True(t, ierr.IsValidation(err))
}

func TestIdentityRegistryResolve(t *testing.T) {
	ctx := context.Background()
	reg := NewIdentityRegistry(cache.NewInMemoryCache(), testLogger(t))

	id, err := reg.Register(ctx, "merchant-a")
	require.NoError(t, err)

	resolved, err := reg.Resolve(ctx, "merchant-a")
	require.NoError(t, err)
	assert.Equal(t, id, resolved)

	// second resolution is served from the cache
	resolved, err = reg.Resolve(ctx, "merchant-a")
	require.NoError(t, err)
	assert.Equal(t, id, resolved)

	_, err = reg.Resolve(ctx, "stranger")
	assert.True(t, ierr.IsUnknownIdentity(err))
}
