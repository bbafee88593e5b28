package service

import (
	"context"

	"github.com/escrowd/invoicing/internal/api/dto"
	ierr "github.com/escrowd/invoicing/internal/errors"
	"github.com/escrowd/invoicing/internal/types"
)

// RefundService validates and applies merchant-issued refunds. The refund
// recipient is whatever identity the merchant supplies; it is not required
// to be listed on the invoice, so a stricter address-of-record policy
// belongs to the caller.
type RefundService interface {
	RefundCustomer(ctx context.Context, caller string, id uint64, req dto.RefundCustomerRequest) error
}

type refundService struct {
	ServiceParams
}

func NewRefundService(params ServiceParams) RefundService {
	return &refundService{
		ServiceParams: params,
	}
}

func (s *refundService) RefundCustomer(ctx context.Context, caller string, id uint64, req dto.RefundCustomerRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	merchant, err := s.IdentityResolver.Resolve(ctx, caller)
	if err != nil {
		return err
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if !inv.IsMerchant(merchant) {
		return ierr.NewError("caller is not the invoice merchant").
			WithHint("Only the issuing merchant can refund an invoice").
			WithReportableDetails(map[string]any{
				"invoice_id": id,
				"caller":     merchant,
			}).
			Mark(ierr.ErrPermissionDenied)
	}

	if err := inv.CheckRefundable(req.Amount); err != nil {
		return err
	}

	transferRef := types.GenerateShortIDWithPrefix("tx_")
	if err := s.Ledger.Transfer(ctx, inv.Merchant, req.Customer, req.Amount); err != nil {
		s.Logger.Errorw("escrow transfer failed",
			"error", err,
			"transfer_ref", transferRef,
			"invoice_id", id,
			"customer", req.Customer,
			"amount", req.Amount)
		return ierr.WithError(err).
			WithHint("The escrow ledger rejected the refund transfer").
			Mark(ierr.ErrTransferFailed)
	}

	if err := inv.ApplyRefund(req.Amount); err != nil {
		return err
	}

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	s.Logger.Infow("refund applied",
		"transfer_ref", transferRef,
		"invoice_id", id,
		"customer", req.Customer,
		"amount", req.Amount,
		"refunded_amount", inv.RefundedAmount,
		"status", inv.Status)
	return nil
}
