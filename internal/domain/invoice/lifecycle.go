package invoice

import (
	ierr "github.com/escrowd/invoicing/internal/errors"
	"github.com/escrowd/invoicing/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// The lifecycle transitions below are the only legal producers of status
// changes. Canceled is the one status not derivable from the monetary
// tuple; it is set directly by Cancel and is terminal.

// StatusFor computes the status dictated by the monetary tuple. Two
// invoices with the same (amount, paid, refunded, validated) tuple always
// share the same status.
func StatusFor(amount, paidAmount, refundedAmount decimal.Decimal, validated bool) types.InvoiceStatus {
	if !validated {
		return types.InvoiceStatusDraft
	}

	if refundedAmount.IsPositive() {
		if refundedAmount.Equal(paidAmount) {
			return types.InvoiceStatusRefunded
		}
		return types.InvoiceStatusPartiallyRefunded
	}

	if paidAmount.IsZero() {
		return types.InvoiceStatusUnpaid
	}

	if paidAmount.LessThan(amount) {
		return types.InvoiceStatusPartiallyPaid
	}

	return types.InvoiceStatusPaid
}

// MarkValidated locks the invoice terms and makes it payable.
func (i *Invoice) MarkValidated() error {
	if i.Status != types.InvoiceStatusDraft {
		return ierr.NewError("invoice is not a draft").
			WithHint("Only draft invoices can be validated").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"status":     i.Status,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if !i.Amount.IsPositive() {
		return ierr.NewError("invoice amount must be positive").
			WithHint("An invoice must carry a positive amount before validation").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"amount":     i.Amount,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if len(i.Customers) == 0 {
		return ierr.NewError("invoice has no customers").
			WithHint("An invoice must list at least one customer before validation").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	i.Status = StatusFor(i.Amount, i.PaidAmount, i.RefundedAmount, true)
	return nil
}

// Cancel voids a draft invoice. There is no monetary effect: a draft has
// never collected a payment.
func (i *Invoice) Cancel() error {
	if i.Status != types.InvoiceStatusDraft {
		return ierr.NewError("invoice is not a draft").
			WithHint("Only draft invoices can be canceled").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"status":     i.Status,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	i.Status = types.InvoiceStatusCanceled
	return nil
}

// CheckPayable verifies the invoice state and the payment sizing rules
// without mutating anything. ApplyPayment calls it; the payment processor
// also calls it before touching the escrow ledger so a rejected payment
// never moves funds.
func (i *Invoice) CheckPayable(amount decimal.Decimal) error {
	payable := []types.InvoiceStatus{
		types.InvoiceStatusUnpaid,
		types.InvoiceStatusPartiallyPaid,
	}
	if !lo.Contains(payable, i.Status) {
		return ierr.NewError("invoice is not payable").
			WithHint("Payments apply only to unpaid or partially paid invoices").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"status":     i.Status,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	remaining := i.RemainingAmount()
	if !amount.IsPositive() || amount.GreaterThan(remaining) {
		return ierr.NewError("payment amount out of range").
			WithHint("Payment must be positive and no greater than the remaining amount").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"amount":     amount,
				"remaining":  remaining,
			}).
			Mark(ierr.ErrInvalidAmount)
	}

	if !i.AllowPartialPayment && !amount.Equal(remaining) {
		return ierr.NewError("invoice requires full settlement").
			WithHint("This invoice does not allow partial payments").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"amount":     amount,
				"remaining":  remaining,
			}).
			Mark(ierr.ErrInvalidAmount)
	}

	if i.AllowPartialPayment && amount.LessThan(remaining) && amount.LessThan(i.MinimumAmountDue) {
		return ierr.NewError("payment below minimum amount due").
			WithHint("Partial payments must be at least the minimum amount due").
			WithReportableDetails(map[string]any{
				"invoice_id":         i.ID,
				"amount":             amount,
				"minimum_amount_due": i.MinimumAmountDue,
			}).
			Mark(ierr.ErrInvalidAmount)
	}

	return nil
}

// ApplyPayment records a payment and recomputes the status.
func (i *Invoice) ApplyPayment(amount decimal.Decimal) error {
	if err := i.CheckPayable(amount); err != nil {
		return err
	}

	i.PaidAmount = i.PaidAmount.Add(amount)
	i.Status = StatusFor(i.Amount, i.PaidAmount, i.RefundedAmount, true)
	return i.Validate()
}

// CheckRefundable verifies the invoice state and the refund sizing rules
// without mutating anything.
func (i *Invoice) CheckRefundable(amount decimal.Decimal) error {
	refundable := []types.InvoiceStatus{
		types.InvoiceStatusPartiallyPaid,
		types.InvoiceStatusPaid,
		types.InvoiceStatusPartiallyRefunded,
	}
	if !lo.Contains(refundable, i.Status) {
		return ierr.NewError("invoice is not refundable").
			WithHint("Refunds apply only to invoices that have collected a payment").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"status":     i.Status,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	if !amount.IsPositive() || i.RefundedAmount.Add(amount).GreaterThan(i.PaidAmount) {
		return ierr.NewError("refund amount out of range").
			WithHint("Refunds must be positive and may not exceed the paid amount").
			WithReportableDetails(map[string]any{
				"invoice_id":  i.ID,
				"amount":      amount,
				"paid_amount": i.PaidAmount,
				"refunded":    i.RefundedAmount,
			}).
			Mark(ierr.ErrInvalidAmount)
	}

	return nil
}

// ApplyRefund records a refund and recomputes the status.
func (i *Invoice) ApplyRefund(amount decimal.Decimal) error {
	if err := i.CheckRefundable(amount); err != nil {
		return err
	}

	i.RefundedAmount = i.RefundedAmount.Add(amount)
	i.Status = StatusFor(i.Amount, i.PaidAmount, i.RefundedAmount, true)
	return i.Validate()
}

// Editable reports whether the invoice terms may still be replaced.
func (i *Invoice) Editable() bool {
	return i.Status == types.InvoiceStatusDraft
}
