package api

import (
	"net/http"

	v1 "github.com/escrowd/invoicing/internal/api/v1"
	"github.com/escrowd/invoicing/internal/config"
	"github.com/escrowd/invoicing/internal/logger"
	"github.com/escrowd/invoicing/internal/rest/middleware"
	"github.com/escrowd/invoicing/internal/types"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Invoice  *v1.InvoiceHandler
	Identity *v1.IdentityHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode == types.ModeProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware,
		middleware.CallerAddressMiddleware,
		middleware.CORSMiddleware,
		middleware.ErrorHandler(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := router.Group("/v1")

	invoices := apiV1.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateDraftInvoice)
		invoices.GET("/:id/info", handlers.Invoice.GetInvoiceInfo)
		invoices.GET("/:id/details", handlers.Invoice.GetInvoiceDetails)
		invoices.GET("/:id/additional-details", handlers.Invoice.GetInvoiceAdditionalDetails)
		invoices.PUT("/:id/customers", handlers.Invoice.UpdateInvoiceCustomers)
		invoices.PUT("/:id/payment", handlers.Invoice.UpdateInvoicePayment)
		invoices.POST("/:id/validate", handlers.Invoice.ValidateInvoice)
		invoices.POST("/:id/cancel", handlers.Invoice.CancelInvoice)
		invoices.POST("/:id/pay", handlers.Invoice.PayInvoice)
		invoices.POST("/:id/refund", handlers.Invoice.RefundCustomer)
	}

	merchants := apiV1.Group("/merchants")
	{
		merchants.GET("/:id/invoices", handlers.Invoice.GetInvoicesFromMerchant)
	}

	identities := apiV1.Group("/identities")
	{
		identities.POST("", handlers.Identity.RegisterIdentity)
	}

	escrow := apiV1.Group("/ledger")
	{
		escrow.POST("/deposits", handlers.Identity.Deposit)
		escrow.POST("/approvals", handlers.Identity.Approve)
		escrow.GET("/balances/:id", handlers.Identity.GetBalance)
	}

	return router
}
