package testutil

import (
	"context"

	"github.com/escrowd/invoicing/internal/types"
)

// NewTestContext returns a context carrying a request ID, the way the
// request middleware populates it.
func NewTestContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}
