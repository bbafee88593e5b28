package types

import (
	ierr "github.com/escrowd/invoicing/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus represents the current state of an invoice in its lifecycle.
// Statuses are only ever produced by the lifecycle transitions in the
// invoice domain package; they are never set directly by callers.
type InvoiceStatus string

const (
	// InvoiceStatusDraft is the initial state; terms are freely editable by the merchant
	InvoiceStatusDraft InvoiceStatus = "DRAFT"
	// InvoiceStatusUnpaid means the invoice has been validated and awaits payment
	InvoiceStatusUnpaid InvoiceStatus = "UNPAID"
	// InvoiceStatusPartiallyPaid means some but not all of the amount has been paid
	InvoiceStatusPartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	// InvoiceStatusPaid means the full amount has been paid
	InvoiceStatusPaid InvoiceStatus = "PAID"
	// InvoiceStatusPartiallyRefunded means some but not all of the paid amount has been refunded
	InvoiceStatusPartiallyRefunded InvoiceStatus = "PARTIALLY_REFUNDED"
	// InvoiceStatusRefunded means the entire paid amount has been refunded; terminal
	InvoiceStatusRefunded InvoiceStatus = "REFUNDED"
	// InvoiceStatusCanceled means the merchant canceled the draft; terminal
	InvoiceStatusCanceled InvoiceStatus = "CANCELED"
	// InvoiceStatusDisputed is reserved; no operation currently produces it
	InvoiceStatusDisputed InvoiceStatus = "DISPUTED"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusUnpaid,
		InvoiceStatusPartiallyPaid,
		InvoiceStatusPaid,
		InvoiceStatusPartiallyRefunded,
		InvoiceStatusRefunded,
		InvoiceStatusCanceled,
		InvoiceStatusDisputed,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Please provide a valid invoice status").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PaymentTerm dictates how the invoice's term field is interpreted
type PaymentTerm string

const (
	// PaymentTermDueOnReceipt means payment is expected as soon as the invoice is received
	PaymentTermDueOnReceipt PaymentTerm = "DUE_ON_RECEIPT"
	// PaymentTermDueOnDate means term holds the unix timestamp payment is due on
	PaymentTermDueOnDate PaymentTerm = "DUE_ON_DATE"
	// PaymentTermNoDueDate means the invoice carries no due date and term is ignored
	PaymentTermNoDueDate PaymentTerm = "NO_DUE_DATE"
	// PaymentTermNetD means term holds the number of days after issue payment is due in
	PaymentTermNetD PaymentTerm = "NET_D"
)

func (t PaymentTerm) String() string {
	return string(t)
}

func (t PaymentTerm) Validate() error {
	allowed := []PaymentTerm{
		PaymentTermDueOnReceipt,
		PaymentTermDueOnDate,
		PaymentTermNoDueDate,
		PaymentTermNetD,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid payment term").
			WithHint("Please provide a valid payment term").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
