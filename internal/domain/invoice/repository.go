package invoice

import (
	"context"
)

// Repository defines the interface for invoice persistence operations.
// Implementations assign sequential IDs at creation and never reuse one;
// invoices are never deleted.
type Repository interface {
	// Create inserts a new invoice, assigns it the next sequential ID and
	// appends that ID to the merchant's index. Returns the assigned ID.
	Create(ctx context.Context, inv *Invoice) (uint64, error)

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id uint64) (*Invoice, error)

	// Update replaces the stored invoice. Callers run the lifecycle
	// invariant checks before calling.
	Update(ctx context.Context, inv *Invoice) error

	// ListByMerchant returns the IDs of invoices issued by the merchant,
	// in issue order
	ListByMerchant(ctx context.Context, merchant uint64) ([]uint64, error)

	// Count returns the total number of invoices in the store
	Count(ctx context.Context) (int, error)
}
