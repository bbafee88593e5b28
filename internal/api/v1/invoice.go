package v1

import (
	"net/http"
	"strconv"

	"github.com/escrowd/invoicing/internal/api/dto"
	ierr "github.com/escrowd/invoicing/internal/errors"
	"github.com/escrowd/invoicing/internal/logger"
	"github.com/escrowd/invoicing/internal/service"
	"github.com/escrowd/invoicing/internal/types"
	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	paymentService service.PaymentService
	refundService  service.RefundService
	logger         *logger.Logger
}

func NewInvoiceHandler(
	invoiceService service.InvoiceService,
	paymentService service.PaymentService,
	refundService service.RefundService,
	logger *logger.Logger,
) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		paymentService: paymentService,
		refundService:  refundService,
		logger:         logger,
	}
}

// CreateDraftInvoice handles POST /invoices
func (h *InvoiceHandler) CreateDraftInvoice(c *gin.Context) {
	var req dto.CreateDraftInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorw("failed to bind request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	caller, err := callerAddress(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.invoiceService.CreateDraftInvoice(c.Request.Context(), caller, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// UpdateInvoiceCustomers handles PUT /invoices/:id/customers
func (h *InvoiceHandler) UpdateInvoiceCustomers(c *gin.Context) {
	id, err := invoiceID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateInvoiceCustomersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	caller, err := callerAddress(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.invoiceService.UpdateInvoiceCustomers(c.Request.Context(), caller, id, req); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateInvoicePayment handles PUT /invoices/:id/payment
func (h *InvoiceHandler) UpdateInvoicePayment(c *gin.Context) {
	id, err := invoiceID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.UpdateInvoicePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	caller, err := callerAddress(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.invoiceService.UpdateInvoicePayment(c.Request.Context(), caller, id, req); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ValidateInvoice handles POST /invoices/:id/validate
func (h *InvoiceHandler) ValidateInvoice(c *gin.Context) {
	id, err := invoiceID(c)
	if err != nil {
		c.Error(err)
		return
	}

	caller, err := callerAddress(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.invoiceService.ValidateInvoice(c.Request.Context(), caller, id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CancelInvoice handles POST /invoices/:id/cancel
func (h *InvoiceHandler) CancelInvoice(c *gin.Context) {
	id, err := invoiceID(c)
	if err != nil {
		c.Error(err)
		return
	}

	caller, err := callerAddress(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.invoiceService.CancelInvoice(c.Request.Context(), caller, id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PayInvoice handles POST /invoices/:id/pay
func (h *InvoiceHandler) PayInvoice(c *gin.Context) {
	id, err := invoiceID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.PayInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	caller, err := callerAddress(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.paymentService.PayInvoice(c.Request.Context(), caller, id, req); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RefundCustomer handles POST /invoices/:id/refund
func (h *InvoiceHandler) RefundCustomer(c *gin.Context) {
	id, err := invoiceID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req dto.RefundCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	caller, err := callerAddress(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.refundService.RefundCustomer(c.Request.Context(), caller, id, req); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetInvoiceInfo handles GET /invoices/:id/info
func (h *InvoiceHandler) GetInvoiceInfo(c *gin.Context) {
	id, err := invoiceID(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.invoiceService.GetInvoiceInfo(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetInvoiceDetails handles GET /invoices/:id/details
func (h *InvoiceHandler) GetInvoiceDetails(c *gin.Context) {
	id, err := invoiceID(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.invoiceService.GetInvoiceDetails(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetInvoiceAdditionalDetails handles GET /invoices/:id/additional-details
func (h *InvoiceHandler) GetInvoiceAdditionalDetails(c *gin.Context) {
	id, err := invoiceID(c)
	if err != nil {
		c.Error(err)
		return
	}

	resp, err := h.invoiceService.GetInvoiceAdditionalDetails(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetInvoicesFromMerchant handles GET /merchants/:id/invoices
func (h *InvoiceHandler) GetInvoicesFromMerchant(c *gin.Context) {
	merchant, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(ierr.WithError(err).WithHint("invalid merchant identity").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.invoiceService.GetInvoicesFromMerchant(c.Request.Context(), merchant)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func invoiceID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("invalid invoice id").
			Mark(ierr.ErrValidation)
	}
	return id, nil
}

func callerAddress(c *gin.Context) (string, error) {
	address := types.GetCallerAddress(c.Request.Context())
	if address == "" {
		return "", ierr.NewError("caller address is required").
			WithHint("Set the X-Caller-Address header").
			Mark(ierr.ErrValidation)
	}
	return address, nil
}
