package service

import (
	"context"

	"github.com/escrowd/invoicing/internal/api/dto"
	"github.com/escrowd/invoicing/internal/domain/invoice"
	ierr "github.com/escrowd/invoicing/internal/errors"
)

// InvoiceService owns the invoice lifecycle outside of money movement:
// draft creation, draft edits, validation, cancellation and the read
// projections. Every mutating operation takes the caller's on-record
// address and resolves it exactly once before touching any state.
type InvoiceService interface {
	CreateDraftInvoice(ctx context.Context, caller string, req dto.CreateDraftInvoiceRequest) (*dto.CreateDraftInvoiceResponse, error)
	UpdateInvoiceCustomers(ctx context.Context, caller string, id uint64, req dto.UpdateInvoiceCustomersRequest) error
	UpdateInvoicePayment(ctx context.Context, caller string, id uint64, req dto.UpdateInvoicePaymentRequest) error
	ValidateInvoice(ctx context.Context, caller string, id uint64) error
	CancelInvoice(ctx context.Context, caller string, id uint64) error
	GetInvoiceInfo(ctx context.Context, id uint64) (*dto.InvoiceInfoResponse, error)
	GetInvoiceDetails(ctx context.Context, id uint64) (*dto.InvoiceDetailsResponse, error)
	GetInvoiceAdditionalDetails(ctx context.Context, id uint64) (*dto.InvoiceAdditionalDetailsResponse, error)
	GetInvoicesFromMerchant(ctx context.Context, merchant uint64) (*dto.MerchantInvoicesResponse, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

func (s *invoiceService) CreateDraftInvoice(ctx context.Context, caller string, req dto.CreateDraftInvoiceRequest) (*dto.CreateDraftInvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	merchant, err := s.IdentityResolver.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}

	inv := req.ToInvoice(merchant)
	if err := inv.Validate(); err != nil {
		return nil, err
	}

	id, err := s.InvoiceRepo.Create(ctx, inv)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("draft invoice created",
		"invoice_id", id,
		"merchant", merchant,
		"amount", inv.Amount)

	return &dto.CreateDraftInvoiceResponse{InvoiceID: id}, nil
}

func (s *invoiceService) UpdateInvoiceCustomers(ctx context.Context, caller string, id uint64, req dto.UpdateInvoiceCustomersRequest) error {
	inv, callerIdentity, err := s.getForCaller(ctx, caller, id)
	if err != nil {
		return err
	}

	if !inv.IsMerchant(callerIdentity) {
		return ierr.NewError("caller is not the invoice merchant").
			WithHint("Only the issuing merchant can update an invoice").
			WithReportableDetails(map[string]any{
				"invoice_id": id,
				"caller":     callerIdentity,
			}).
			Mark(ierr.ErrPermissionDenied)
	}

	if !inv.Editable() {
		return ierr.NewError("invoice is not a draft").
			WithHint("Customers can only be updated while the invoice is a draft").
			WithReportableDetails(map[string]any{
				"invoice_id": id,
				"status":     inv.Status,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	// wholesale replacement, not a merge
	inv.Customers = append([]uint64(nil), req.Customers...)

	return s.InvoiceRepo.Update(ctx, inv)
}

func (s *invoiceService) UpdateInvoicePayment(ctx context.Context, caller string, id uint64, req dto.UpdateInvoicePaymentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	inv, callerIdentity, err := s.getForCaller(ctx, caller, id)
	if err != nil {
		return err
	}

	if !inv.IsMerchant(callerIdentity) {
		return ierr.NewError("caller is not the invoice merchant").
			WithHint("Only the issuing merchant can update an invoice").
			WithReportableDetails(map[string]any{
				"invoice_id": id,
				"caller":     callerIdentity,
			}).
			Mark(ierr.ErrPermissionDenied)
	}

	if !inv.Editable() {
		return ierr.NewError("invoice is not a draft").
			WithHint("Payment terms can only be updated while the invoice is a draft").
			WithReportableDetails(map[string]any{
				"invoice_id": id,
				"status":     inv.Status,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	inv.Amount = req.Amount
	inv.AllowPartialPayment = req.AllowPartialPayment
	inv.MinimumAmountDue = req.MinimumAmountDue
	inv.PaymentTerm = req.PaymentTerm
	inv.Term = req.Term
	inv.AdditionalTerms = req.AdditionalTerms
	inv.Note = req.Note

	return s.InvoiceRepo.Update(ctx, inv)
}

func (s *invoiceService) ValidateInvoice(ctx context.Context, caller string, id uint64) error {
	inv, callerIdentity, err := s.getForCaller(ctx, caller, id)
	if err != nil {
		return err
	}

	if !inv.IsMerchant(callerIdentity) {
		return ierr.NewError("caller is not the invoice merchant").
			WithHint("Only the issuing merchant can validate an invoice").
			WithReportableDetails(map[string]any{
				"invoice_id": id,
				"caller":     callerIdentity,
			}).
			Mark(ierr.ErrPermissionDenied)
	}

	if err := inv.MarkValidated(); err != nil {
		return err
	}

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	s.Logger.Infow("invoice validated",
		"invoice_id", id,
		"merchant", inv.Merchant,
		"amount", inv.Amount)
	return nil
}

func (s *invoiceService) CancelInvoice(ctx context.Context, caller string, id uint64) error {
	inv, callerIdentity, err := s.getForCaller(ctx, caller, id)
	if err != nil {
		return err
	}

	if !inv.IsMerchant(callerIdentity) {
		return ierr.NewError("caller is not the invoice merchant").
			WithHint("Only the issuing merchant can cancel an invoice").
			WithReportableDetails(map[string]any{
				"invoice_id": id,
				"caller":     callerIdentity,
			}).
			Mark(ierr.ErrPermissionDenied)
	}

	if err := inv.Cancel(); err != nil {
		return err
	}

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return err
	}

	s.Logger.Infow("invoice canceled", "invoice_id", id, "merchant", inv.Merchant)
	return nil
}

func (s *invoiceService) GetInvoiceInfo(ctx context.Context, id uint64) (*dto.InvoiceInfoResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceInfoResponse(inv), nil
}

func (s *invoiceService) GetInvoiceDetails(ctx context.Context, id uint64) (*dto.InvoiceDetailsResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceDetailsResponse(inv), nil
}

func (s *invoiceService) GetInvoiceAdditionalDetails(ctx context.Context, id uint64) (*dto.InvoiceAdditionalDetailsResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceAdditionalDetailsResponse(inv), nil
}

func (s *invoiceService) GetInvoicesFromMerchant(ctx context.Context, merchant uint64) (*dto.MerchantInvoicesResponse, error) {
	ids, err := s.InvoiceRepo.ListByMerchant(ctx, merchant)
	if err != nil {
		return nil, err
	}
	return &dto.MerchantInvoicesResponse{
		Merchant: merchant,
		Items:    ids,
		Total:    len(ids),
	}, nil
}

// getForCaller resolves the caller's identity and loads the invoice. Both
// lookups are reads; nothing is committed on failure.
func (s *invoiceService) getForCaller(ctx context.Context, caller string, id uint64) (*invoice.Invoice, uint64, error) {
	callerIdentity, err := s.IdentityResolver.Resolve(ctx, caller)
	if err != nil {
		return nil, 0, err
	}

	loaded, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	return loaded, callerIdentity, nil
}
