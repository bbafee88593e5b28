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

const (
	merchantAddr  = "0xmerchant"
	customerAddr  = "0xcustomer"
	customer2Addr = "0xcustomer2"
	strangerAddr  = "0xstranger"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	invoiceService InvoiceService

	merchant  uint64
	customer  uint64
	customer2 uint64
	stranger  uint64
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.invoiceService = NewInvoiceService(ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		InvoiceRepo:      stores.InvoiceRepo,
		IdentityResolver: stores.IdentityReg,
		Ledger:           stores.Ledger,
	})

	ctx := s.GetContext()
	var err error
	s.merchant, err = stores.IdentityReg.Register(ctx, merchantAddr)
	s.Require().NoError(err)
	s.customer, err = stores.IdentityReg.Register(ctx, customerAddr)
	s.Require().NoError(err)
	s.customer2, err = stores.IdentityReg.Register(ctx, customer2Addr)
	s.Require().NoError(err)
	s.stranger, err = stores.IdentityReg.Register(ctx, strangerAddr)
	s.Require().NoError(err)
}

func (s *InvoiceServiceSuite) createDraft(amount int64, partial bool, minimum int64, customers []uint64) uint64 {
	resp, err := s.invoiceService.CreateDraftInvoice(s.GetContext(), merchantAddr, dto.CreateDraftInvoiceRequest{
		Customers:           customers,
		Amount:              decimal.NewFromInt(amount),
		AllowPartialPayment: partial,
		MinimumAmountDue:    decimal.NewFromInt(minimum),
		PaymentTerm:         types.PaymentTermDueOnReceipt,
	})
	s.Require().NoError(err)
	return resp.InvoiceID
}

func (s *InvoiceServiceSuite) TestCreateDraftInvoice() {
	id := s.createDraft(500, true, 10, []uint64{s.customer, s.customer2})
	s.Equal(uint64(0), id)

	info, err := s.invoiceService.GetInvoiceInfo(s.GetContext(), id)
	s.NoError(err)
	s.Equal(types.InvoiceStatusDraft, info.Status)
	s.Equal(s.merchant, info.Merchant)
	s.Equal([]uint64{s.customer, s.customer2}, info.Customers)

	// sequential IDs in creation order
	id2 := s.createDraft(100, false, 0, nil)
	s.Equal(uint64(1), id2)
}

func (s *InvoiceServiceSuite) TestCreateDraftInvoiceUnknownCaller() {
	_, err := s.invoiceService.CreateDraftInvoice(s.GetContext(), "0xnobody", dto.CreateDraftInvoiceRequest{
		Amount:      decimal.NewFromInt(100),
		PaymentTerm: types.PaymentTermNoDueDate,
	})
	s.True(ierr.IsUnknownIdentity(err))
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceCustomers() {
	id := s.createDraft(500, true, 10, []uint64{s.customer})

	err := s.invoiceService.UpdateInvoiceCustomers(s.GetContext(), merchantAddr, id, dto.UpdateInvoiceCustomersRequest{
		Customers: []uint64{s.customer2},
	})
	s.NoError(err)

	info, err := s.invoiceService.GetInvoiceInfo(s.GetContext(), id)
	s.NoError(err)
	s.Equal([]uint64{s.customer2}, info.Customers)
}

func (s *InvoiceServiceSuite) TestUpdateInvoiceCustomersNotMerchant() {
	id := s.createDraft(500, true, 10, []uint64{s.customer})

	err := s.invoiceService.UpdateInvoiceCustomers(s.GetContext(), strangerAddr, id, dto.UpdateInvoiceCustomersRequest{
		Customers: []uint64{s.stranger},
	})
	s.True(ierr.IsPermissionDenied(err))
}

func (s *InvoiceServiceSuite) TestUpdateInvoicePayment() {
	id := s.createDraft(500, true, 10, []uint64{s.customer})

	err := s.invoiceService.UpdateInvoicePayment(s.GetContext(), merchantAddr, id, dto.UpdateInvoicePaymentRequest{
		Amount:           decimal.NewFromInt(750),
		PaymentTerm:      types.PaymentTermNetD,
		Term:             30,
		AdditionalTerms:  "net 30",
		Note:             "updated",
		MinimumAmountDue: decimal.Zero,
	})
	s.NoError(err)

	details, err := s.invoiceService.GetInvoiceDetails(s.GetContext(), id)
	s.NoError(err)
	s.True(details.Amount.Equal(decimal.NewFromInt(750)))
	s.Equal(types.PaymentTermNetD, details.PaymentTerm)
	s.Equal(uint64(30), details.Term)
	s.False(details.AllowPartialPayment)

	additional, err := s.invoiceService.GetInvoiceAdditionalDetails(s.GetContext(), id)
	s.NoError(err)
	s.Equal("net 30", additional.AdditionalTerms)
	s.Equal("updated", additional.Note)
}

func (s *InvoiceServiceSuite) TestUpdateAfterValidateRejected() {
	id := s.createDraft(500, true, 10, []uint64{s.customer})
	s.Require().NoError(s.invoiceService.ValidateInvoice(s.GetContext(), merchantAddr, id))

	err := s.invoiceService.UpdateInvoiceCustomers(s.GetContext(), merchantAddr, id, dto.UpdateInvoiceCustomersRequest{
		Customers: []uint64{s.customer2},
	})
	s.True(ierr.IsInvalidOperation(err))

	err = s.invoiceService.UpdateInvoicePayment(s.GetContext(), merchantAddr, id, dto.UpdateInvoicePaymentRequest{
		Amount:      decimal.NewFromInt(1),
		PaymentTerm: types.PaymentTermNoDueDate,
	})
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestValidateInvoice() {
	id := s.createDraft(500, true, 10, []uint64{s.customer})

	s.NoError(s.invoiceService.ValidateInvoice(s.GetContext(), merchantAddr, id))

	info, err := s.invoiceService.GetInvoiceInfo(s.GetContext(), id)
	s.NoError(err)
	s.Equal(types.InvoiceStatusUnpaid, info.Status)

	// a second validation is an invalid operation
	err = s.invoiceService.ValidateInvoice(s.GetContext(), merchantAddr, id)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestValidateInvoiceNotMerchant() {
	id := s.createDraft(500, true, 10, []uint64{s.customer})

	err := s.invoiceService.ValidateInvoice(s.GetContext(), customerAddr, id)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *InvoiceServiceSuite) TestValidateInvoiceWithoutCustomers() {
	id := s.createDraft(500, true, 10, nil)

	err := s.invoiceService.ValidateInvoice(s.GetContext(), merchantAddr, id)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestCancelInvoice() {
	id := s.createDraft(500, true, 10, []uint64{s.customer})

	s.NoError(s.invoiceService.CancelInvoice(s.GetContext(), merchantAddr, id))

	info, err := s.invoiceService.GetInvoiceInfo(s.GetContext(), id)
	s.NoError(err)
	s.Equal(types.InvoiceStatusCanceled, info.Status)

	// terminal: neither validation nor another cancel applies
	s.True(ierr.IsInvalidOperation(s.invoiceService.ValidateInvoice(s.GetContext(), merchantAddr, id)))
	s.True(ierr.IsInvalidOperation(s.invoiceService.CancelInvoice(s.GetContext(), merchantAddr, id)))
}

func (s *InvoiceServiceSuite) TestCancelInvoiceNotMerchant() {
	id := s.createDraft(500, true, 10, []uint64{s.customer})

	err := s.invoiceService.CancelInvoice(s.GetContext(), customerAddr, id)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *InvoiceServiceSuite) TestGetInvoiceNotFound() {
	_, err := s.invoiceService.GetInvoiceInfo(s.GetContext(), 42)
	s.True(ierr.IsNotFound(err))

	_, err = s.invoiceService.GetInvoiceDetails(s.GetContext(), 42)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestGetInvoicesFromMerchant() {
	a := s.createDraft(100, false, 0, []uint64{s.customer})
	b := s.createDraft(200, false, 0, []uint64{s.customer})

	resp, err := s.invoiceService.GetInvoicesFromMerchant(s.GetContext(), s.merchant)
	s.NoError(err)
	s.Equal([]uint64{a, b}, resp.Items)
	s.Equal(2, resp.Total)

	empty, err := s.invoiceService.GetInvoicesFromMerchant(s.GetContext(), s.stranger)
	s.NoError(err)
	s.Empty(empty.Items)
	s.Equal(0, empty.Total)
}
