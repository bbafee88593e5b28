package service

import (
	"github.com/escrowd/invoicing/internal/config"
	"github.com/escrowd/invoicing/internal/domain/identity"
	"github.com/escrowd/invoicing/internal/domain/invoice"
	"github.com/escrowd/invoicing/internal/domain/ledger"
	"github.com/escrowd/invoicing/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Repositories
	InvoiceRepo invoice.Repository

	// External collaborators
	IdentityResolver identity.Resolver
	Ledger           ledger.TransferCapability
}
