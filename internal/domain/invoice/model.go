package invoice

import (
	"time"

	ierr "github.com/escrowd/invoicing/internal/errors"
	"github.com/escrowd/invoicing/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Invoice represents the invoice domain model. The ID is a sequential handle
// assigned by the store at creation and never reused. Merchant and CreatedAt
// never change after creation.
type Invoice struct {
	ID                  uint64              `json:"id"`
	Merchant            uint64              `json:"merchant"`
	Customers           []uint64            `json:"customers"`
	Amount              decimal.Decimal     `json:"amount"`
	PaidAmount          decimal.Decimal     `json:"paid_amount"`
	RefundedAmount      decimal.Decimal     `json:"refunded_amount"`
	AllowPartialPayment bool                `json:"allow_partial_payment"`
	MinimumAmountDue    decimal.Decimal     `json:"minimum_amount_due"`
	PaymentTerm         types.PaymentTerm   `json:"payment_term"`
	Term                uint64              `json:"term"`
	AdditionalTerms     string              `json:"additional_terms"`
	Note                string              `json:"note"`
	Status              types.InvoiceStatus `json:"status"`
	CreatedAt           time.Time           `json:"created_at"`
}

// New returns a draft invoice for the given merchant with zeroed
// payment counters.
func New(merchant uint64, customers []uint64, amount decimal.Decimal, allowPartialPayment bool, minimumAmountDue decimal.Decimal, paymentTerm types.PaymentTerm, term uint64) *Invoice {
	return &Invoice{
		Merchant:            merchant,
		Customers:           append([]uint64(nil), customers...),
		Amount:              amount,
		PaidAmount:          decimal.Zero,
		RefundedAmount:      decimal.Zero,
		AllowPartialPayment: allowPartialPayment,
		MinimumAmountDue:    minimumAmountDue,
		PaymentTerm:         paymentTerm,
		Term:                term,
		Status:              types.InvoiceStatusDraft,
		CreatedAt:           time.Now().UTC(),
	}
}

// RemainingAmount returns the amount still owed on the invoice.
func (i *Invoice) RemainingAmount() decimal.Decimal {
	return i.Amount.Sub(i.PaidAmount)
}

// IsMerchant reports whether the given identity issued this invoice.
func (i *Invoice) IsMerchant(identity uint64) bool {
	return i.Merchant == identity
}

// HasCustomer reports whether the given identity is listed on the invoice.
func (i *Invoice) HasCustomer(identity uint64) bool {
	return lo.Contains(i.Customers, identity)
}

// Validate checks the monetary invariants that must hold after every
// operation. A violation here means a bug in the lifecycle transitions,
// not bad caller input.
func (i *Invoice) Validate() error {
	if i.Amount.IsNegative() {
		return ierr.NewError("amount must be non negative").
			WithHint("Invoice amount must be non negative").
			Mark(ierr.ErrValidation)
	}

	if i.PaidAmount.IsNegative() {
		return ierr.NewError("paid amount must be non negative").
			WithHint("Paid amount must be non negative").
			Mark(ierr.ErrValidation)
	}

	if i.PaidAmount.GreaterThan(i.Amount) {
		return ierr.NewError("paid amount exceeds invoice amount").
			WithHint("Paid amount must be less than or equal to the invoice amount").
			Mark(ierr.ErrValidation)
	}

	if i.RefundedAmount.IsNegative() {
		return ierr.NewError("refunded amount must be non negative").
			WithHint("Refunded amount must be non negative").
			Mark(ierr.ErrValidation)
	}

	if i.RefundedAmount.GreaterThan(i.PaidAmount) {
		return ierr.NewError("refunded amount exceeds paid amount").
			WithHint("Refunded amount must be less than or equal to the paid amount").
			Mark(ierr.ErrValidation)
	}

	if i.MinimumAmountDue.IsNegative() {
		return ierr.NewError("minimum amount due must be non negative").
			WithHint("Minimum amount due must be non negative").
			Mark(ierr.ErrValidation)
	}

	if err := i.PaymentTerm.Validate(); err != nil {
		return err
	}

	if i.Status != types.InvoiceStatusDraft && len(i.Customers) == 0 {
		return ierr.NewError("customers must be non empty once validated").
			WithHint("A validated invoice must list at least one customer").
			Mark(ierr.ErrValidation)
	}

	return nil
}
