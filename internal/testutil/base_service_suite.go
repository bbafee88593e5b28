package testutil

import (
	"context"

	"github.com/escrowd/invoicing/internal/cache"
	"github.com/escrowd/invoicing/internal/config"
	"github.com/escrowd/invoicing/internal/domain/identity"
	"github.com/escrowd/invoicing/internal/domain/invoice"
	"github.com/escrowd/invoicing/internal/domain/ledger"
	"github.com/escrowd/invoicing/internal/logger"
	"github.com/escrowd/invoicing/internal/repository"
	"github.com/stretchr/testify/suite"
)

// Stores is the in-memory backing state shared by a test suite run
type Stores struct {
	InvoiceRepo invoice.Repository
	IdentityReg identity.Registry
	Ledger      ledger.Ledger
}

// BaseServiceTestSuite provides common functionality for service tests:
// fresh in-memory stores per test, a test logger and a request-scoped
// context.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	cfg    *config.Configuration
	logger *logger.Logger
	stores Stores
}

// SetupTest initializes fresh stores before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.cfg = config.GetDefaultConfig()

	var err error
	s.logger, err = logger.NewLogger(s.cfg)
	s.Require().NoError(err)

	s.ctx = NewTestContext()
	s.stores = Stores{
		InvoiceRepo: repository.NewInvoiceRepository(s.logger),
		IdentityReg: repository.NewIdentityRegistry(cache.NewInMemoryCache(), s.logger),
		Ledger:      repository.NewEscrowLedger(s.logger),
	}
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}
