package service

import (
	"testing"

	"github.com/escrowd/invoicing/internal/api/dto"
	ierr "github.com/escrowd/invoicing/internal/errors"
	"github.com/escrowd/invoicing/internal/testutil"
	"github.com/escrowd/invoicing/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type RefundServiceSuite struct {
	testutil.BaseServiceTestSuite
	invoiceService InvoiceService
	paymentService PaymentService
	refundService  RefundService

	merchant uint64
	customer uint64
	stranger uint64
}

func TestRefundService(t *testing.T) {
	suite.Run(t, new(RefundServiceSuite))
}

func (s *RefundServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	params := ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		InvoiceRepo:      stores.InvoiceRepo,
		IdentityResolver: stores.IdentityReg,
		Ledger:           stores.Ledger,
	}
	s.invoiceService = NewInvoiceService(params)
	s.paymentService = NewPaymentService(params)
	s.refundService = NewRefundService(params)

	ctx := s.GetContext()
	var err error
	s.merchant, err = stores.IdentityReg.Register(ctx, merchantAddr)
	s.Require().NoError(err)
	s.customer, err = stores.IdentityReg.Register(ctx, customerAddr)
	s.Require().NoError(err)
	s.stranger, err = stores.IdentityReg.Register(ctx, strangerAddr)
	s.Require().NoError(err)
}

// paidInvoice creates a validated invoice and pays it in full, leaving the
// merchant's escrow funded and approved for refunds.
func (s *RefundServiceSuite) paidInvoice(amount int64) uint64 {
	ctx := s.GetContext()
	resp, err := s.invoiceService.CreateDraftInvoice(ctx, merchantAddr, dto.CreateDraftInvoiceRequest{
		Customers:   []uint64{s.customer},
		Amount:      decimal.NewFromInt(amount),
		PaymentTerm: types.PaymentTermDueOnReceipt,
	})
	s.Require().NoError(err)
	id := resp.InvoiceID
	s.Require().NoError(s.invoiceService.ValidateInvoice(ctx, merchantAddr, id))

	ledger := s.GetStores().Ledger
	s.Require().NoError(ledger.Deposit(ctx, s.customer, decimal.NewFromInt(amount)))
	s.Require().NoError(ledger.Approve(ctx, s.customer, decimal.NewFromInt(amount)))
	s.Require().NoError(s.paymentService.PayInvoice(ctx, customerAddr, id, dto.PayInvoiceRequest{
		Amount: decimal.NewFromInt(amount),
	}))

	s.Require().NoError(ledger.Approve(ctx, s.merchant, decimal.NewFromInt(amount)))
	return id
}

func (s *RefundServiceSuite) refund(caller string, id uint64, customer uint64, amount int64) error {
	return s.refundService.RefundCustomer(s.GetContext(), caller, id, dto.RefundCustomerRequest{
		Customer: customer,
		Amount:   decimal.NewFromInt(amount),
	})
}

func (s *RefundServiceSuite) details(id uint64) *dto.InvoiceDetailsResponse {
	details, err := s.invoiceService.GetInvoiceDetails(s.GetContext(), id)
	s.Require().NoError(err)
	return details
}

func (s *RefundServiceSuite) status(id uint64) types.InvoiceStatus {
	info, err := s.invoiceService.GetInvoiceInfo(s.GetContext(), id)
	s.Require().NoError(err)
	return info.Status
}

func (s *RefundServiceSuite) TestPartialThenFullRefund() {
	id := s.paidInvoice(1000)

	s.NoError(s.refund(merchantAddr, id, s.customer, 100))
	s.Equal(types.InvoiceStatusPartiallyRefunded, s.status(id))
	s.True(s.details(id).RefundedAmount.Equal(decimal.NewFromInt(100)))

	s.NoError(s.refund(merchantAddr, id, s.customer, 900))
	s.Equal(types.InvoiceStatusRefunded, s.status(id))
	s.True(s.details(id).RefundedAmount.Equal(decimal.NewFromInt(1000)))

	balance, err := s.GetStores().Ledger.BalanceOf(s.GetContext(), s.customer)
	s.NoError(err)
	s.True(balance.Equal(decimal.NewFromInt(1000)))
}

func (s *RefundServiceSuite) TestRefundedInvoiceIsTerminal() {
	id := s.paidInvoice(1000)
	s.Require().NoError(s.refund(merchantAddr, id, s.customer, 1000))

	err := s.refund(merchantAddr, id, s.customer, 1)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *RefundServiceSuite) TestOverRefundCommitsNothing() {
	id := s.paidInvoice(1000)
	s.Require().NoError(s.refund(merchantAddr, id, s.customer, 600))

	err := s.refund(merchantAddr, id, s.customer, 500)
	s.True(ierr.IsInvalidAmount(err))

	// the failed refund changed nothing
	s.Equal(types.InvoiceStatusPartiallyRefunded, s.status(id))
	s.True(s.details(id).RefundedAmount.Equal(decimal.NewFromInt(600)))
}

func (s *RefundServiceSuite) TestRefundNotMerchant() {
	id := s.paidInvoice(1000)

	err := s.refund(customerAddr, id, s.customer, 100)
	s.True(ierr.IsPermissionDenied(err))
	s.True(s.details(id).RefundedAmount.IsZero())
}

func (s *RefundServiceSuite) TestRefundUnpaidInvoice() {
	ctx := s.GetContext()
	resp, err := s.invoiceService.CreateDraftInvoice(ctx, merchantAddr, dto.CreateDraftInvoiceRequest{
		Customers:   []uint64{s.customer},
		Amount:      decimal.NewFromInt(1000),
		PaymentTerm: types.PaymentTermNoDueDate,
	})
	s.Require().NoError(err)
	s.Require().NoError(s.invoiceService.ValidateInvoice(ctx, merchantAddr, resp.InvoiceID))

	refundErr := s.refund(merchantAddr, resp.InvoiceID, s.customer, 100)
	s.True(ierr.IsInvalidOperation(refundErr))
}

func (s *RefundServiceSuite) TestRefundToUnlistedIdentity() {
	// the refund recipient does not have to be listed on the invoice
	id := s.paidInvoice(1000)

	s.NoError(s.refund(merchantAddr, id, s.stranger, 100))

	balance, err := s.GetStores().Ledger.BalanceOf(s.GetContext(), s.stranger)
	s.NoError(err)
	s.True(balance.Equal(decimal.NewFromInt(100)))
}

func (s *RefundServiceSuite) TestRefundTransferFailure() {
	id := s.paidInvoice(1000)
	// revoke the merchant's allowance so the refund transfer fails
	s.Require().NoError(s.GetStores().Ledger.Approve(s.GetContext(), s.merchant, decimal.Zero))

	err := s.refund(merchantAddr, id, s.customer, 100)
	s.True(ierr.IsTransferFailed(err))

	s.Equal(types.InvoiceStatusPaid, s.status(id))
	s.True(s.details(id).RefundedAmount.IsZero())
}

func (s *RefundServiceSuite) TestRefundZeroAmount() {
	id := s.paidInvoice(1000)

	err := s.refund(merchantAddr, id, s.customer, 0)
	s.True(ierr.IsInvalidAmount(err))
}
