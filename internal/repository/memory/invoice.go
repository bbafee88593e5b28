package memory

import (
	"context"
	"sync"

	"github.com/escrowd/invoicing/internal/domain/invoice"
	ierr "github.com/escrowd/invoicing/internal/errors"
	"github.com/escrowd/invoicing/internal/logger"
)

// InvoiceStore keeps invoices in an arena keyed by a monotonically
// increasing handle. The slice index is the invoice ID: invoices are never
// deleted, so IDs are never reused. A reverse index maps each merchant to
// the IDs they issued, in issue order.
type InvoiceStore struct {
	mu         sync.RWMutex
	invoices   []*invoice.Invoice
	byMerchant map[uint64][]uint64
	log        *logger.Logger
}

func NewInvoiceStore(log *logger.Logger) invoice.Repository {
	return &InvoiceStore{
		invoices:   make([]*invoice.Invoice, 0),
		byMerchant: make(map[uint64][]uint64),
		log:        log,
	}
}

// copyInvoice returns a deep copy so callers can never mutate stored state
// without going through Update.
func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}
	out := *inv
	out.Customers = append([]uint64(nil), inv.Customers...)
	return &out
}

func (s *InvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) (uint64, error) {
	if inv == nil {
		return 0, ierr.NewError("invoice cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uint64(len(s.invoices))
	stored := copyInvoice(inv)
	stored.ID = id
	s.invoices = append(s.invoices, stored)
	s.byMerchant[stored.Merchant] = append(s.byMerchant[stored.Merchant], id)

	s.log.Debugw("invoice created", "invoice_id", id, "merchant", stored.Merchant)
	return id, nil
}

func (s *InvoiceStore) Get(ctx context.Context, id uint64) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id >= uint64(len(s.invoices)) {
		return nil, ierr.NewError("invoice not found").
			WithHint("No invoice exists with the given ID").
			WithReportableDetails(map[string]any{
				"invoice_id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	return copyInvoice(s.invoices[id]), nil
}

func (s *InvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").
			Mark(ierr.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if inv.ID >= uint64(len(s.invoices)) {
		return ierr.NewError("invoice not found").
			WithHint("No invoice exists with the given ID").
			WithReportableDetails(map[string]any{
				"invoice_id": inv.ID,
			}).
			Mark(ierr.ErrNotFound)
	}

	s.invoices[inv.ID] = copyInvoice(inv)
	return nil
}

func (s *InvoiceStore) ListByMerchant(ctx context.Context, merchant uint64) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]uint64(nil), s.byMerchant[merchant]...), nil
}

func (s *InvoiceStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.invoices), nil
}
