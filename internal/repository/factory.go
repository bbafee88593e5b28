package repository

import (
	"github.com/escrowd/invoicing/internal/cache"
	"github.com/escrowd/invoicing/internal/domain/identity"
	"github.com/escrowd/invoicing/internal/domain/invoice"
	"github.com/escrowd/invoicing/internal/domain/ledger"
	"github.com/escrowd/invoicing/internal/logger"
	memoryRepo "github.com/escrowd/invoicing/internal/repository/memory"
)

func NewInvoiceRepository(logger *logger.Logger) invoice.Repository {
	return memoryRepo.NewInvoiceStore(logger)
}

func NewIdentityRegistry(cache cache.Cache, logger *logger.Logger) identity.Registry {
	return memoryRepo.NewIdentityRegistry(cache, logger)
}

func NewEscrowLedger(logger *logger.Logger) ledger.Ledger {
	return memoryRepo.NewEscrowLedger(logger)
}
