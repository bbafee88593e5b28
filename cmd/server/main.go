package main

import (
	"context"
	"time"

	"github.com/escrowd/invoicing/internal/api"
	v1 "github.com/escrowd/invoicing/internal/api/v1"
	"github.com/escrowd/invoicing/internal/cache"
	"github.com/escrowd/invoicing/internal/config"
	"github.com/escrowd/invoicing/internal/domain/identity"
	"github.com/escrowd/invoicing/internal/domain/invoice"
	"github.com/escrowd/invoicing/internal/domain/ledger"
	"github.com/escrowd/invoicing/internal/logger"
	"github.com/escrowd/invoicing/internal/repository"
	"github.com/escrowd/invoicing/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Stores
			repository.NewInvoiceRepository,
			repository.NewIdentityRegistry,
			repository.NewEscrowLedger,

			// Services
			provideServiceParams,
			service.NewInvoiceService,
			service.NewPaymentService,
			service.NewRefundService,
			provideIdentityService,

			// Handlers
			v1.NewInvoiceHandler,
			v1.NewIdentityHandler,
			provideHandlers,

			// Router
			api.NewRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideServiceParams(
	logger *logger.Logger,
	cfg *config.Configuration,
	invoiceRepo invoice.Repository,
	identityReg identity.Registry,
	escrowLedger ledger.Ledger,
) service.ServiceParams {
	return service.ServiceParams{
		Logger:           logger,
		Config:           cfg,
		InvoiceRepo:      invoiceRepo,
		IdentityResolver: identityReg,
		Ledger:           escrowLedger,
	}
}

func provideIdentityService(
	identityReg identity.Registry,
	escrowLedger ledger.Ledger,
	logger *logger.Logger,
) service.IdentityService {
	return service.NewIdentityService(identityReg, escrowLedger, logger)
}

func provideHandlers(
	invoiceHandler *v1.InvoiceHandler,
	identityHandler *v1.IdentityHandler,
) api.Handlers {
	return api.Handlers{
		Invoice:  invoiceHandler,
		Identity: identityHandler,
	}
}

func startServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			return nil
		},
	})
}
