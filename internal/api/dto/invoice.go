package dto

import (
	"time"

	"github.com/escrowd/invoicing/internal/domain/invoice"
	ierr "github.com/escrowd/invoicing/internal/errors"
	"github.com/escrowd/invoicing/internal/types"
	"github.com/shopspring/decimal"
)

// CreateDraftInvoiceRequest represents the request payload for creating a
// new draft invoice. Business terms are not validated here beyond type
// bounds; the state machine enforces them at validation time.
type CreateDraftInvoiceRequest struct {
	// customers is the ordered set of identity IDs allowed to pay this invoice
	Customers []uint64 `json:"customers"`

	// amount is the total invoice value
	Amount decimal.Decimal `json:"amount"`

	// allow_partial_payment permits paying the invoice in chunks
	AllowPartialPayment bool `json:"allow_partial_payment"`

	// minimum_amount_due is the minimum per-payment chunk when partial payment is allowed
	MinimumAmountDue decimal.Decimal `json:"minimum_amount_due"`

	// payment_term dictates how term is interpreted
	PaymentTerm types.PaymentTerm `json:"payment_term"`

	// term is a date or day-count depending on payment_term
	Term uint64 `json:"term"`
}

func (r *CreateDraftInvoiceRequest) Validate() error {
	if r.Amount.IsNegative() {
		return ierr.NewError("amount must be non negative").
			WithHint("Invoice amount must be non negative").
			Mark(ierr.ErrValidation)
	}
	if r.MinimumAmountDue.IsNegative() {
		return ierr.NewError("minimum amount due must be non negative").
			WithHint("Minimum amount due must be non negative").
			Mark(ierr.ErrValidation)
	}
	return r.PaymentTerm.Validate()
}

// ToInvoice converts the request to a draft invoice for the given merchant
func (r *CreateDraftInvoiceRequest) ToInvoice(merchant uint64) *invoice.Invoice {
	return invoice.New(merchant, r.Customers, r.Amount, r.AllowPartialPayment, r.MinimumAmountDue, r.PaymentTerm, r.Term)
}

// CreateDraftInvoiceResponse carries the ID assigned to the new invoice
type CreateDraftInvoiceResponse struct {
	InvoiceID uint64 `json:"invoice_id"`
}

// UpdateInvoiceCustomersRequest replaces the whole customers set
type UpdateInvoiceCustomersRequest struct {
	Customers []uint64 `json:"customers"`
}

// UpdateInvoicePaymentRequest replaces the invoice payment terms wholesale
type UpdateInvoicePaymentRequest struct {
	Amount              decimal.Decimal   `json:"amount"`
	AllowPartialPayment bool              `json:"allow_partial_payment"`
	MinimumAmountDue    decimal.Decimal   `json:"minimum_amount_due"`
	PaymentTerm         types.PaymentTerm `json:"payment_term"`
	Term                uint64            `json:"term"`
	AdditionalTerms     string            `json:"additional_terms"`
	Note                string            `json:"note"`
}

func (r *UpdateInvoicePaymentRequest) Validate() error {
	if r.Amount.IsNegative() {
		return ierr.NewError("amount must be non negative").
			WithHint("Invoice amount must be non negative").
			Mark(ierr.ErrValidation)
	}
	if r.MinimumAmountDue.IsNegative() {
		return ierr.NewError("minimum amount due must be non negative").
			WithHint("Minimum amount due must be non negative").
			Mark(ierr.ErrValidation)
	}
	return r.PaymentTerm.Validate()
}

// PayInvoiceRequest represents a customer payment against an invoice
type PayInvoiceRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (r *PayInvoiceRequest) Validate() error {
	if r.Amount.IsNegative() {
		return ierr.NewError("amount must be non negative").
			WithHint("Payment amount must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// RefundCustomerRequest represents a merchant-issued refund
type RefundCustomerRequest struct {
	// customer is the identity ID receiving the refund; it need not be
	// listed on the invoice
	Customer uint64          `json:"customer"`
	Amount   decimal.Decimal `json:"amount"`
}

func (r *RefundCustomerRequest) Validate() error {
	if r.Amount.IsNegative() {
		return ierr.NewError("amount must be non negative").
			WithHint("Refund amount must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceInfoResponse is the identity-facing projection of an invoice
type InvoiceInfoResponse struct {
	Status    types.InvoiceStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	Merchant  uint64              `json:"merchant"`
	Customers []uint64            `json:"customers"`
}

func NewInvoiceInfoResponse(inv *invoice.Invoice) *InvoiceInfoResponse {
	return &InvoiceInfoResponse{
		Status:    inv.Status,
		CreatedAt: inv.CreatedAt,
		Merchant:  inv.Merchant,
		Customers: inv.Customers,
	}
}

// InvoiceDetailsResponse is the monetary projection of an invoice
type InvoiceDetailsResponse struct {
	Amount              decimal.Decimal   `json:"amount"`
	PaidAmount          decimal.Decimal   `json:"paid_amount"`
	RefundedAmount      decimal.Decimal   `json:"refunded_amount"`
	AllowPartialPayment bool              `json:"allow_partial_payment"`
	MinimumAmountDue    decimal.Decimal   `json:"minimum_amount_due"`
	PaymentTerm         types.PaymentTerm `json:"payment_term"`
	Term                uint64            `json:"term"`
}

func NewInvoiceDetailsResponse(inv *invoice.Invoice) *InvoiceDetailsResponse {
	return &InvoiceDetailsResponse{
		Amount:              inv.Amount,
		PaidAmount:          inv.PaidAmount,
		RefundedAmount:      inv.RefundedAmount,
		AllowPartialPayment: inv.AllowPartialPayment,
		MinimumAmountDue:    inv.MinimumAmountDue,
		PaymentTerm:         inv.PaymentTerm,
		Term:                inv.Term,
	}
}

// InvoiceAdditionalDetailsResponse carries the free-form merchant fields
type InvoiceAdditionalDetailsResponse struct {
	AdditionalTerms string `json:"additional_terms"`
	Note            string `json:"note"`
}

func NewInvoiceAdditionalDetailsResponse(inv *invoice.Invoice) *InvoiceAdditionalDetailsResponse {
	return &InvoiceAdditionalDetailsResponse{
		AdditionalTerms: inv.AdditionalTerms,
		Note:            inv.Note,
	}
}

// MerchantInvoicesResponse lists the invoice IDs a merchant issued, in
// issue order
type MerchantInvoicesResponse struct {
	Merchant uint64   `json:"merchant"`
	Items    []uint64 `json:"items"`
	Total    int      `json:"total"`
}
