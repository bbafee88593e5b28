package service

import (
	"context"

	"github.com/escrowd/invoicing/internal/api/dto"
	ierr "github.com/escrowd/invoicing/internal/errors"
	"github.com/escrowd/invoicing/internal/types"
)

// PaymentService validates and applies customer payments. The escrow
// transfer runs only after every check has passed, and the invoice is
// written only after the transfer succeeds, so a failure at any point
// leaves all state exactly as it was.
type PaymentService interface {
	PayInvoice(ctx context.Context, caller string, id uint64, req dto.PayInvoiceRequest) error
}

type paymentService struct {
	ServiceParams
}

func NewPaymentService(params ServiceParams) PaymentService {
	return &paymentService{
		ServiceParams: params,
	}
}

func (s *paymentService) PayInvoice(ctx context.Context, caller string, id uint64, req dto.PayInvoiceRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	payer, err := s.IdentityResolver.Resolve(ctx, caller)
	if err != nil {
		return err
	}

	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if !inv.HasCustomer(payer) {
		return ierr.NewError("payer is not listed on the invoice").
			WithHint("Only identities listed as customers may pay this invoice").
			WithReportableDetails(map[string]any{
				"invoice_id": id,
				"payer":      payer,
			}).
			Mark(ierr.ErrPermissionDenied)
	}

	if err := inv.CheckPayable(req.Amount); err != nil {
		return err
	}

	transferRef := types.GenerateShortIDWithPrefix("tx_")
	if err := s.Ledger.Transfer(ctx, payer, inv.Merchant, req.Amount); err != nil {
		s.Logger.Errorw("escrow transfer failed",
			"error", err,
			"transfer_ref", transferRef,
			"invoice_id", id,
			"payer", payer,
			"amount", req.Amount)
		return ierr.WithError(err).
			WithHint("The escrow ledger rejected the payment transfer").
			Mark(ierr.ErrTransferFailed)
	}

	if err := inv.ApplyPayment(req.Amount); err != nil {
		// The transfer has already settled; a failure here means the
		// payable check and the apply disagree, which is a bug.
		return err
	}

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	s.Logger.Infow("payment applied",
		"transfer_ref", transferRef,
		"invoice_id", id,
		"payer", payer,
		"amount", req.Amount,
		"paid_amount", inv.PaidAmount,
		"status", inv.Status)
	return nil
}
